package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/handler"
	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/auth"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/metrics"
	"github.com/EhteshamRajpot/shop-o-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAccounts struct {
	kind entity.Kind
}

func (s stubAccounts) Kind() entity.Kind { return s.kind }

func (s stubAccounts) Register(context.Context, usecase.RegisterInput) (string, error) {
	return "", apperror.Validation("Please enter your name!", nil)
}

func (s stubAccounts) Activate(context.Context, string) (*usecase.Session, error) {
	return nil, apperror.InvalidOrExpiredToken(nil)
}

func (s stubAccounts) Login(context.Context, string, string) (*usecase.Session, error) {
	return nil, apperror.MissingCredentials()
}

func (s stubAccounts) GetAccount(_ context.Context, id string) (*entity.Account, error) {
	return &entity.Account{ID: id, Kind: s.kind, Name: "Jane"}, nil
}

func (s stubAccounts) Logout(context.Context, string, time.Time) error { return nil }

type stubProducts struct{}

func (stubProducts) Create(_ context.Context, sellerID string, in entity.ProductInput) (*entity.Product, error) {
	return &entity.Product{ID: "p1", ShopID: sellerID, Name: in.Name}, nil
}

func (stubProducts) Get(_ context.Context, id string) (*entity.Product, error) {
	return nil, apperror.NotFound("Product is not found with this id")
}

func (stubProducts) ListByShop(context.Context, string) ([]entity.Product, error) {
	return []entity.Product{}, nil
}

func (stubProducts) ListAll(context.Context) ([]entity.Product, error) {
	return []entity.Product{}, nil
}

func (stubProducts) Delete(context.Context, string, string) error { return nil }

func newTestRouter(t *testing.T, uploadDir string) (http.Handler, *auth.SessionIssuer, *metrics.MetricsManager) {
	t.Helper()
	log := logger.NewNopLogger()
	issuer := auth.NewSessionIssuer("session-secret", time.Hour, nil)
	m := metrics.NewMetricsManager("shop_o_test")

	r := New(Deps{
		Users:     handler.NewAccountHandler(stubAccounts{kind: entity.KindUser}, nil, handler.CookieConfig{}, 0, log),
		Shops:     handler.NewAccountHandler(stubAccounts{kind: entity.KindSeller}, nil, handler.CookieConfig{}, 0, log),
		Products:  handler.NewProductHandler(stubProducts{}, log),
		Verifier:  issuer,
		Metrics:   m,
		Log:       log,
		UploadDir: uploadDir,
	})
	return r, issuer, m
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode int
	}{
		{name: "healthz", method: http.MethodGet, path: "/healthz", wantCode: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantCode: http.StatusOK},
		{name: "user activation", method: http.MethodPost, path: "/api/v2/user/activation", body: `{"activation_token":"x"}`, wantCode: http.StatusBadRequest},
		{name: "shop activation", method: http.MethodPost, path: "/api/v2/shop/activation", body: `{"activation_token":"x"}`, wantCode: http.StatusBadRequest},
		{name: "shop login", method: http.MethodPost, path: "/api/v2/shop/login-shop", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "all products", method: http.MethodGet, path: "/api/v2/product/get-all-products", wantCode: http.StatusCreated},
		{name: "shop products", method: http.MethodGet, path: "/api/v2/product/get-all-products-shop/s1", wantCode: http.StatusCreated},
		{name: "product by id", method: http.MethodGet, path: "/api/v2/product/p1", wantCode: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/api/v2/nope", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouter_GuardedRoutes(t *testing.T) {
	r, issuer, _ := newTestRouter(t, "")
	userToken, _, err := issuer.Issue("u1", entity.KindUser)
	require.NoError(t, err)
	sellerToken, _, err := issuer.Issue("s1", entity.KindSeller)
	require.NoError(t, err)

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		wantCode int
	}{
		{name: "getuser anonymous", method: http.MethodGet, path: "/api/v2/user/getuser", wantCode: http.StatusUnauthorized},
		{name: "getuser with user", method: http.MethodGet, path: "/api/v2/user/getuser", token: userToken, wantCode: http.StatusOK},
		{name: "getuser with seller", method: http.MethodGet, path: "/api/v2/user/getuser", token: sellerToken, wantCode: http.StatusUnauthorized},
		{name: "getSeller with seller", method: http.MethodGet, path: "/api/v2/shop/getSeller", token: sellerToken, wantCode: http.StatusOK},
		{name: "getSeller with user", method: http.MethodGet, path: "/api/v2/shop/getSeller", token: userToken, wantCode: http.StatusUnauthorized},
		{name: "user logout", method: http.MethodGet, path: "/api/v2/user/logout", token: userToken, wantCode: http.StatusCreated},
		{name: "create product with user", method: http.MethodPost, path: "/api/v2/product/create-product", token: userToken, wantCode: http.StatusUnauthorized},
		{name: "create product with seller", method: http.MethodPost, path: "/api/v2/product/create-product", token: sellerToken, wantCode: http.StatusCreated},
		{name: "delete product anonymous", method: http.MethodDelete, path: "/api/v2/product/delete-shop-product/p1", wantCode: http.StatusUnauthorized},
		{name: "delete product with seller", method: http.MethodDelete, path: "/api/v2/product/delete-shop-product/p1", token: sellerToken, wantCode: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{"name":"Lamp"}`))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouter_RecordsRouteLatency(t *testing.T) {
	r, _, _ := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v2/product/get-all-products-shop/s1", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `route="/api/v2/product/get-all-products-shop/{id}"`)
}

func TestRouter_ServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0o644))
	r, _, _ := newTestRouter(t, dir)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
}
