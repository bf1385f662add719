package router

import (
	"net/http"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/handler"
	"github.com/go-chi/chi/v5"
)

type accountPaths struct {
	register string
	login    string
	me       string
}

// setupAccountRoutes mounts the registration, activation and session routes
// shared by users and shops.
func setupAccountRoutes(r chi.Router, h *handler.AccountHandler, paths accountPaths, guard func(http.Handler) http.Handler) {
	r.Post(paths.register, h.Register)
	r.Post("/activation", h.Activate)
	r.Post(paths.login, h.Login)

	r.Group(func(authRouter chi.Router) {
		authRouter.Use(guard)
		authRouter.Get(paths.me, h.Me)
		authRouter.Get("/logout", h.Logout)
	})
}
