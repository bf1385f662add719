package repository

import (
	"context"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]entity.Product, error)
	// ListAll returns every product, newest first.
	ListAll(ctx context.Context) ([]entity.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductCache interface {
	Get(ctx context.Context, productID string) (*entity.Product, error)
	Set(ctx context.Context, product *entity.Product, ttl time.Duration) error
	Delete(ctx context.Context, productID string) error
}
