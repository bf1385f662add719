package router

import (
	"net/http"

	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/handler"
	"github.com/EhteshamRajpot/shop-o-backend/internal/adapter/http/middleware"
	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/logger"
	"github.com/EhteshamRajpot/shop-o-backend/internal/platform/metrics"
	"github.com/EhteshamRajpot/shop-o-backend/internal/repository"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Users    *handler.AccountHandler
	Shops    *handler.AccountHandler
	Products *handler.ProductHandler

	Verifier middleware.TokenVerifier
	Sessions repository.SessionStore
	Metrics  *metrics.MetricsManager
	Log      logger.Logger

	// UploadDir is served under /uploads when set. Only meaningful for the
	// local storage driver.
	UploadDir string
}

func New(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(d.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}
	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.UploadDir))))
	}

	requireUser := middleware.RequireKind(entity.KindUser, d.Verifier, d.Sessions, d.Log)
	requireSeller := middleware.RequireKind(entity.KindSeller, d.Verifier, d.Sessions, d.Log)

	r.Route("/api/v2", func(api chi.Router) {
		api.Route("/user", func(ur chi.Router) {
			setupAccountRoutes(ur, d.Users, accountPaths{
				register: "/create-user",
				login:    "/login-user",
				me:       "/getuser",
			}, requireUser)
		})
		api.Route("/shop", func(sr chi.Router) {
			setupAccountRoutes(sr, d.Shops, accountPaths{
				register: "/create-shop",
				login:    "/login-shop",
				me:       "/getSeller",
			}, requireSeller)
		})
		api.Route("/product", func(pr chi.Router) {
			setupProductRoutes(pr, d.Products, requireSeller)
		})
	})

	return r
}
