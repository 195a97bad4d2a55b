package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/service"
)

// MetricsStore defines the store methods needed to compute the dashboard
// snapshot. Satisfied by *store.Memory.
type MetricsStore interface {
	List() []domain.Order
	ListStaff() []domain.Staff
}

// MetricsHandler serves the owner/membership dashboard projections.
type MetricsHandler struct {
	store MetricsStore
	loc   *time.Location
	now   func() time.Time
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(store MetricsStore, loc *time.Location) *MetricsHandler {
	return &MetricsHandler{store: store, loc: loc, now: time.Now}
}

// RegisterRoutes registers metrics endpoints. Expected to be mounted at
// /metrics.
func (h *MetricsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Snapshot)
}

// Snapshot handles GET /metrics: a full recompute over the order store.
// Read-only; never mutates an order.
func (h *MetricsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap := service.Recompute(h.store.List(), h.store.ListStaff(), h.now(), h.loc)
	writeJSON(w, http.StatusOK, snap)
}
