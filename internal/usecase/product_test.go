package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSellerID = "64b0000000000000000000aa"

type productFixture struct {
	products *MockProductRepository
	shops    *MockAccountRepository
	cache    *MockProductCache
	events   *MockEventPublisher
	now      time.Time
	uc       *ProductUsecase
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products: new(MockProductRepository),
		shops:    new(MockAccountRepository),
		cache:    new(MockProductCache),
		events:   new(MockEventPublisher),
		now:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	f.uc = NewProductUsecase(ProductDeps{
		Products: f.products,
		Shops:    f.shops,
		Cache:    f.cache,
		CacheTTL: 5 * time.Minute,
		Events:   f.events,
		Now:      func() time.Time { return f.now },
	})
	return f
}

func productInput() entity.ProductInput {
	price, discount, stock := 100.0, 80.0, 4
	return entity.ProductInput{
		Name:          "Bike",
		Description:   "Road bike",
		Category:      "Sports",
		Tags:          "bike",
		OriginalPrice: &price,
		DiscountPrice: &discount,
		Stock:         &stock,
		Images:        []string{"bike.png"},
		ShopID:        testSellerID,
	}
}

func TestProductUsecase_Create(t *testing.T) {
	f := newProductFixture()
	shop := &entity.Account{ID: testSellerID, Name: "Shop", Email: "shop@x.com", Avatar: "shop.png", Address: "1 Main St"}
	f.shops.On("FindByID", mock.Anything, testSellerID).Return(shop, nil).Once()

	var stored *entity.Product
	f.products.On("Create", mock.Anything, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*entity.Product) }).
		Return(&entity.Product{ID: "64b0000000000000000000bb", ShopID: testSellerID, CreatedAt: f.now}, nil).Once()
	f.events.On("Publish", mock.Anything, SubjectProductCreated, mock.AnythingOfType("usecase.ProductEvent")).Return(nil).Once()

	created, err := f.uc.Create(context.Background(), testSellerID, productInput())
	require.NoError(t, err)

	assert.Equal(t, "64b0000000000000000000bb", created.ID)
	require.NotNil(t, stored)
	assert.Equal(t, 0, stored.SoldOut)
	assert.Equal(t, f.now, stored.CreatedAt)
	assert.Equal(t, entity.ShopSnapshot{ID: testSellerID, Name: "Shop", Email: "shop@x.com", Avatar: "shop.png", Address: "1 Main St"}, stored.Shop)
	f.events.AssertExpectations(t)
}

func TestProductUsecase_Create_MissingStockNamesField(t *testing.T) {
	f := newProductFixture()
	in := productInput()
	in.Stock = nil

	_, err := f.uc.Create(context.Background(), testSellerID, in)
	appErr := requireAppError(t, err, apperror.KindValidation)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Please enter your product stock!", appErr.Fields["stock"])
	assert.Contains(t, appErr.Message, "stock")

	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Create_ShopMismatch(t *testing.T) {
	f := newProductFixture()
	in := productInput()
	in.ShopID = "64b0000000000000000000cc"

	_, err := f.uc.Create(context.Background(), testSellerID, in)
	appErr := requireAppError(t, err, apperror.KindValidation)
	assert.Equal(t, "Shop Id is invalid!", appErr.Message)
	f.shops.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestProductUsecase_Create_UnknownShop(t *testing.T) {
	f := newProductFixture()
	f.shops.On("FindByID", mock.Anything, testSellerID).Return(nil, repository.ErrNotFound).Once()

	_, err := f.uc.Create(context.Background(), testSellerID, productInput())
	appErr := requireAppError(t, err, apperror.KindValidation)
	assert.Equal(t, "Shop Id is invalid!", appErr.Fields["shopId"])
}

func TestProductUsecase_Get(t *testing.T) {
	product := &entity.Product{ID: "p1", Name: "Bike", ShopID: testSellerID}

	t.Run("cache hit", func(t *testing.T) {
		f := newProductFixture()
		f.cache.On("Get", mock.Anything, "p1").Return(product, nil).Once()

		got, err := f.uc.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, product, got)
		f.products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		f := newProductFixture()
		f.cache.On("Get", mock.Anything, "p1").Return(nil, repository.ErrNotFound).Once()
		f.products.On("FindByID", mock.Anything, "p1").Return(product, nil).Once()
		f.cache.On("Set", mock.Anything, product, 5*time.Minute).Return(nil).Once()

		got, err := f.uc.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, product, got)
		f.cache.AssertExpectations(t)
	})

	t.Run("cache failure falls back to store", func(t *testing.T) {
		f := newProductFixture()
		f.cache.On("Get", mock.Anything, "p1").Return(nil, errors.New("redis down")).Once()
		f.products.On("FindByID", mock.Anything, "p1").Return(product, nil).Once()
		f.cache.On("Set", mock.Anything, product, 5*time.Minute).Return(errors.New("redis down")).Once()

		got, err := f.uc.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, product, got)
	})

	t.Run("not found", func(t *testing.T) {
		f := newProductFixture()
		f.cache.On("Get", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()
		f.products.On("FindByID", mock.Anything, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := f.uc.Get(context.Background(), "missing")
		appErr := requireAppError(t, err, apperror.KindNotFound)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
	})
}

func TestProductUsecase_Lists(t *testing.T) {
	f := newProductFixture()
	products := []entity.Product{{ID: "p2"}, {ID: "p1"}}
	f.products.On("ListAll", mock.Anything).Return(products, nil).Once()
	f.products.On("ListByShop", mock.Anything, testSellerID).Return([]entity.Product{{ID: "p1"}}, nil).Once()
	f.products.On("ListByShop", mock.Anything, "broken").Return(nil, errors.New("cursor error")).Once()

	all, err := f.uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, all)

	byShop, err := f.uc.ListByShop(context.Background(), testSellerID)
	require.NoError(t, err)
	assert.Len(t, byShop, 1)

	_, err = f.uc.ListByShop(context.Background(), "broken")
	requireAppError(t, err, apperror.KindInternal)
}

func TestProductUsecase_Delete(t *testing.T) {
	owned := &entity.Product{ID: "p1", ShopID: testSellerID}

	t.Run("owner deletes", func(t *testing.T) {
		f := newProductFixture()
		f.products.On("FindByID", mock.Anything, "p1").Return(owned, nil).Once()
		f.products.On("Delete", mock.Anything, "p1").Return(nil).Once()
		f.cache.On("Delete", mock.Anything, "p1").Return(nil).Once()
		f.events.On("Publish", mock.Anything, SubjectProductDeleted, mock.Anything).Return(nil).Once()

		require.NoError(t, f.uc.Delete(context.Background(), testSellerID, "p1"))
		f.products.AssertExpectations(t)
		f.cache.AssertExpectations(t)
		f.events.AssertExpectations(t)
	})

	t.Run("other shop gets not found", func(t *testing.T) {
		f := newProductFixture()
		f.products.On("FindByID", mock.Anything, "p1").Return(owned, nil).Once()

		err := f.uc.Delete(context.Background(), "64b0000000000000000000dd", "p1")
		requireAppError(t, err, apperror.KindNotFound)
		f.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newProductFixture()
		f.products.On("FindByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound).Once()

		err := f.uc.Delete(context.Background(), testSellerID, "nope")
		appErr := requireAppError(t, err, apperror.KindNotFound)
		assert.Equal(t, "Product is not found with this id", appErr.Message)
	})
}
