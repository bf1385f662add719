package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/metrics"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
)

const (
	msgInvalidShop     = "Shop Id is invalid!"
	msgProductNotFound = "Product is not found with this id"
)

type ProductDeps struct {
	Products repository.ProductRepository
	Shops    repository.AccountRepository
	Cache    repository.ProductCache
	CacheTTL time.Duration
	Events   EventPublisher
	Metrics  *metrics.MetricsManager
	Log      logger.Logger
	Now      func() time.Time
}

type ProductUsecase struct {
	ProductDeps
}

func NewProductUsecase(deps ProductDeps) *ProductUsecase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logger.NewNopLogger()
	}
	return &ProductUsecase{ProductDeps: deps}
}

// Create stores a product for the authenticated seller. The shop snapshot is
// taken from the seller's account at creation time.
func (u *ProductUsecase) Create(ctx context.Context, sellerID string, in entity.ProductInput) (p *entity.Product, err error) {
	ctx, span := tracer.Start(ctx, "ProductUsecase.Create")
	defer func() { endSpan(span, err) }()

	if verr := in.Validate(); verr != nil {
		return nil, validationError(verr)
	}
	if in.ShopID != sellerID {
		return nil, apperror.Validation(msgInvalidShop, map[string]string{"shopId": msgInvalidShop})
	}

	shop, err := u.Shops.FindByID(ctx, in.ShopID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Validation(msgInvalidShop, map[string]string{"shopId": msgInvalidShop})
		}
		return nil, apperror.Internal(fmt.Errorf("failed to load shop %s: %w", in.ShopID, err))
	}

	product, err := entity.NewProduct(in, entity.ShopSnapshot{
		ID:      shop.ID,
		Name:    shop.Name,
		Email:   shop.Email,
		Avatar:  shop.Avatar,
		Address: shop.Address,
	}, u.Now().UTC())
	if err != nil {
		return nil, validationError(err)
	}

	created, err := u.Products.Create(ctx, product)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.Metrics.IncProductsCreated()
	u.publish(ctx, SubjectProductCreated, ProductEvent{ProductID: created.ID, ShopID: created.ShopID, OccurredAt: created.CreatedAt})
	return created, nil
}

// Get serves from the cache when possible.
func (u *ProductUsecase) Get(ctx context.Context, id string) (*entity.Product, error) {
	if u.Cache != nil {
		cached, err := u.Cache.Get(ctx, id)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			u.Log.Warnw("Product cache read failed", "product_id", id, "error", err)
		}
	}

	product, err := u.Products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(msgProductNotFound)
		}
		return nil, apperror.Internal(err)
	}

	if u.Cache != nil {
		if err := u.Cache.Set(ctx, product, u.CacheTTL); err != nil {
			u.Log.Warnw("Product cache write failed", "product_id", id, "error", err)
		}
	}
	return product, nil
}

func (u *ProductUsecase) ListByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	products, err := u.Products.ListByShop(ctx, shopID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return products, nil
}

func (u *ProductUsecase) ListAll(ctx context.Context) ([]entity.Product, error) {
	products, err := u.Products.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return products, nil
}

// Delete removes a product owned by sellerID. A product owned by another
// shop is reported as not found.
func (u *ProductUsecase) Delete(ctx context.Context, sellerID, productID string) (err error) {
	ctx, span := tracer.Start(ctx, "ProductUsecase.Delete")
	defer func() { endSpan(span, err) }()

	product, err := u.Products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(msgProductNotFound)
		}
		return apperror.Internal(err)
	}
	if product.ShopID != sellerID {
		return apperror.NotFound(msgProductNotFound)
	}

	if err = u.Products.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(msgProductNotFound)
		}
		return apperror.Internal(err)
	}

	if u.Cache != nil {
		if cerr := u.Cache.Delete(ctx, productID); cerr != nil {
			u.Log.Warnw("Product cache invalidation failed", "product_id", productID, "error", cerr)
		}
	}
	u.Metrics.IncProductsDeleted()
	u.publish(ctx, SubjectProductDeleted, ProductEvent{ProductID: productID, ShopID: sellerID, OccurredAt: u.Now().UTC()})
	return nil
}

func (u *ProductUsecase) publish(ctx context.Context, subject string, event interface{}) {
	if u.Events == nil {
		return
	}
	if err := u.Events.Publish(ctx, subject, event); err != nil {
		u.Log.Warnw("Failed to publish event", "subject", subject, "error", err)
	}
}
