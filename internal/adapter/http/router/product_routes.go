package router

import (
	"net/http"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/handler"
	"github.com/go-chi/chi/v5"
)

func setupProductRoutes(r chi.Router, h *handler.ProductHandler, requireSeller func(http.Handler) http.Handler) {
	r.Get("/get-all-products", h.ListAll)
	r.Get("/get-all-products-shop/{id}", h.ListByShop)
	r.Get("/{id}", h.Get)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(requireSeller)
		authRouter.Post("/create-product", h.Create)
		authRouter.Delete("/delete-shop-product/{id}", h.Delete)
	})
}
