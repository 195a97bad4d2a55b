package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/settings"
	"github.com/shopspring/decimal"
)

// StaffStore defines the roster methods the admin handlers need.
// Satisfied by *store.Memory.
type StaffStore interface {
	AddStaff(s domain.Staff)
	ListStaff() []domain.Staff
}

// AdminHandler handles the admin panel operations: discount table, unit
// prices, express SLA, the holiday set, and the staff roster. Edits apply
// to subsequent computations only; existing order prices never move.
type AdminHandler struct {
	settings *settings.Settings
	store    StaffStore
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg *settings.Settings, store StaffStore) *AdminHandler {
	return &AdminHandler{settings: cfg, store: store}
}

// RegisterRoutes registers admin endpoints. Expected to be mounted at
// /admin.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Put("/discounts/{tier}", h.SetDiscount)
	r.Put("/prices/{type}", h.SetUnitPrice)
	r.Put("/sla", h.SetSLA)
	r.Get("/holidays", h.ListHolidays)
	r.Post("/holidays", h.AddHoliday)
	r.Delete("/holidays/{date}", h.RemoveHoliday)
	r.Get("/staff", h.ListStaff)
	r.Post("/staff", h.AddStaff)
}

// --- Request / Response types ---

type setDiscountRequest struct {
	Fraction string `json:"fraction"`
}

type setPriceRequest struct {
	Amount string `json:"amount"`
}

type setSLARequest struct {
	Minutes int `json:"minutes"`
}

type holidayRequest struct {
	Date string `json:"date"`
}

type addStaffRequest struct {
	Name string `json:"name"`
}

type staffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// --- Handlers ---

// SetDiscount handles PUT /admin/discounts/{tier}. The fraction is a
// decimal string in [0, 1), e.g. "0.10" for 10% off.
func (h *AdminHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req setDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	fraction, err := decimal.NewFromString(req.Fraction)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid fraction"})
		return
	}

	if err := h.settings.SetDiscount(chi.URLParam(r, "tier"), fraction); err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetUnitPrice handles PUT /admin/prices/{type}.
func (h *AdminHandler) SetUnitPrice(w http.ResponseWriter, r *http.Request) {
	var req setPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amount"})
		return
	}

	if err := h.settings.SetUnitPrice(chi.URLParam(r, "type"), amount); err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetSLA handles PUT /admin/sla.
func (h *AdminHandler) SetSLA(w http.ResponseWriter, r *http.Request) {
	var req setSLARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.settings.SetSLA(req.Minutes); err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListHolidays handles GET /admin/holidays.
func (h *AdminHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"holidays": h.settings.Holidays()})
}

// AddHoliday handles POST /admin/holidays.
func (h *AdminHandler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req holidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.settings.AddHoliday(req.Date); err != nil {
		writeAdminError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]string{"holidays": h.settings.Holidays()})
}

// RemoveHoliday handles DELETE /admin/holidays/{date}. Removing an unknown
// date is a no-op.
func (h *AdminHandler) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	h.settings.RemoveHoliday(chi.URLParam(r, "date"))
	writeJSON(w, http.StatusOK, map[string][]string{"holidays": h.settings.Holidays()})
}

// ListStaff handles GET /admin/staff.
func (h *AdminHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	roster := h.store.ListStaff()
	resp := make([]staffResponse, len(roster))
	for i, m := range roster {
		resp[i] = staffResponse{ID: m.ID, Name: m.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddStaff handles POST /admin/staff. IDs are system-generated.
func (h *AdminHandler) AddStaff(w http.ResponseWriter, r *http.Request) {
	var req addStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	member := domain.Staff{ID: uuid.NewString(), Name: req.Name}
	h.store.AddStaff(member)
	writeJSON(w, http.StatusCreated, staffResponse{ID: member.ID, Name: member.Name})
}

// writeAdminError maps settings errors to HTTP status codes. Everything the
// settings layer rejects is a bad request.
func writeAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settings.ErrUnknownTier),
		errors.Is(err, settings.ErrUnknownService):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}
