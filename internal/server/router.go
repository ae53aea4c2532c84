package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"studentsites/internal/health"
	"studentsites/internal/metrics"
	offercontroller "studentsites/internal/offer/controller"
	ordercontroller "studentsites/internal/order/controller"
	"studentsites/internal/server/middleware"
)

const banner = "StudentSites API is running!"

type RouterConfig struct {
	Orders         *ordercontroller.OrderController
	Offers         *offercontroller.OfferController
	Health         *health.Registry
	SubmitLimiter  *rate.Limiter
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(banner))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RateLimit(cfg.SubmitLimiter, logger)).Post("/", cfg.Orders.Submit)
			r.Get("/all", cfg.Orders.ListAll)
			r.Patch("/{id}/status", cfg.Orders.UpdateStatus)
		})
		r.Get("/projects", cfg.Orders.ListProjects)

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", cfg.Offers.List)
			r.Post("/", cfg.Offers.Create)
			r.Get("/active", cfg.Offers.ListActive)
			r.Patch("/{id}", cfg.Offers.SetActive)
			r.Delete("/{id}", cfg.Offers.Delete)
		})
		r.Get("/packages", cfg.Offers.Packages)
	})

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.Health, health.DefaultTimeout))
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return r
}
