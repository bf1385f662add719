package handler

import (
	"context"
	"io"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type MockAccountService struct {
	mock.Mock
	kind entity.Kind
}

func (m *MockAccountService) Kind() entity.Kind {
	return m.kind
}

func (m *MockAccountService) Register(ctx context.Context, in usecase.RegisterInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockAccountService) Activate(ctx context.Context, token string) (*usecase.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Session), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*usecase.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.Session), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, id string) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, sellerID string, in entity.ProductInput) (*entity.Product, error) {
	args := m.Called(ctx, sellerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) ListByShop(ctx context.Context, shopID string) ([]entity.Product, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) ListAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, sellerID, productID string) error {
	args := m.Called(ctx, sellerID, productID)
	return args.Error(0)
}

// recordingSaver keeps the uploaded bytes in memory.
type recordingSaver struct {
	name string
	data []byte
	ref  string
	err  error
}

func (s *recordingSaver) Save(_ context.Context, originalName string, r io.Reader, _ int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.name = originalName
	s.data = data
	return s.ref, nil
}
