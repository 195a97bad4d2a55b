package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hi5-laundry/api/internal/config"
	"github.com/hi5-laundry/api/internal/handler"
	"github.com/hi5-laundry/api/internal/service"
	"github.com/hi5-laundry/api/internal/settings"
	"github.com/hi5-laundry/api/internal/store"
	"github.com/hi5-laundry/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, mem *store.Memory, shop *settings.Settings, loc *time.Location, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Live dashboard feed
	r.Get("/ws/dashboard", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, w, r)
	})

	// Orders
	orderService := service.NewOrderService(mem, shop, loc, cfg.SubmitDelay)
	orderHandler := handler.NewOrderHandler(orderService, mem, loc)
	r.Route("/orders", orderHandler.RegisterRoutes)

	// Owner/membership dashboards
	metricsHandler := handler.NewMetricsHandler(mem, loc)
	r.Route("/metrics", metricsHandler.RegisterRoutes)

	// Admin panel
	adminHandler := handler.NewAdminHandler(shop, mem)
	r.Route("/admin", adminHandler.RegisterRoutes)

	return r
}
