package handler

import (
	"context"
	"net/http"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/middleware"
	"github.com/EhteshamRajpot/shop-o-backend/internal/apperror"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/go-chi/chi/v5"
)

type ProductService interface {
	Create(ctx context.Context, sellerID string, in entity.ProductInput) (*entity.Product, error)
	Get(ctx context.Context, id string) (*entity.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]entity.Product, error)
	ListAll(ctx context.Context) ([]entity.Product, error)
	Delete(ctx context.Context, sellerID, productID string) error
}

type ProductHandler struct {
	svc ProductService
	log logger.Logger
}

func NewProductHandler(svc ProductService, log logger.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log.Named("product_handler")}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.ErrUnauthorized)
		return
	}

	var in entity.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	product, err := h.svc.Create(r.Context(), p.ID, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "product": product})
}

func (h *ProductHandler) ListByShop(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListByShop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "products": products})
}

func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.ListAll(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "products": products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "product": product})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.ErrUnauthorized)
		return
	}
	if err := h.svc.Delete(r.Context(), p.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Product Deleted successfully!"})
}
