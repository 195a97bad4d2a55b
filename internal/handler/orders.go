package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/service"
	"github.com/shopspring/decimal"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	Submit(req service.CreateOrderRequest) <-chan service.SubmitResult
	Advance(token string) (domain.Order, error)
	Get(token string) (domain.Order, error)
}

// OrderLister defines the store methods needed by the list endpoint.
// Satisfied by *store.Memory.
type OrderLister interface {
	List() []domain.Order
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderLister
	loc   *time.Location
}

// NewOrderHandler creates a new OrderHandler. loc is the business timezone
// used for date filtering.
func NewOrderHandler(svc OrderServicer, store OrderLister, loc *time.Location) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, loc: loc}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{token}", h.Get)
	r.Post("/{token}/advance", h.Advance)
}

// --- Request / Response types ---

type createOrderRequest struct {
	Token         string  `json:"token"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Weight        float64 `json:"weight"`
	Blankets      bool    `json:"blankets"`
	ServiceType   string  `json:"service_type"`
	PaymentMethod string  `json:"payment_method"`
	Membership    string  `json:"membership"`
	StaffID       string  `json:"staff_id"`
}

type orderResponse struct {
	Token         string `json:"token"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Weight        string `json:"weight"`
	Loads         int    `json:"loads"`
	Blankets      bool   `json:"blankets"`
	ServiceType   string `json:"service_type"`
	Price         int64  `json:"price"`
	CreatedAt     int64  `json:"created_at"` // epoch ms
	DueAt         *int64 `json:"due_at"`
	Stage         string `json:"stage"`
	StageLabel    string `json:"stage_label"`
	CompletedAt   *int64 `json:"completed_at"`
	StaffID       string `json:"staff_id,omitempty"`
	PaymentMethod string `json:"payment_method"`
	Membership    string `json:"membership"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// --- Handlers ---

// Create handles POST /orders. The body is submitted through the
// asynchronous create path; the response is sent once the submission
// reaches its single terminal outcome.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := <-h.svc.Submit(service.CreateOrderRequest{
		Token:         req.Token,
		Name:          req.Name,
		Phone:         req.Phone,
		Weight:        decimal.NewFromFloat(req.Weight),
		Blankets:      req.Blankets,
		ServiceType:   req.ServiceType,
		PaymentMethod: req.PaymentMethod,
		Membership:    req.Membership,
		StaffID:       req.StaffID,
	})
	if result.Err != nil {
		writeOrderError(w, result.Err, "create order")
		return
	}

	writeJSON(w, http.StatusCreated, toOrderResponse(result.Order))
}

// List handles GET /orders with the staff search/filter criteria:
// q, status (all|ready|in_progress), date (YYYY-MM-DD), staff_id, and
// view=staff which hides membership-covered orders from the operational
// view. Results are sorted newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if d := q.Get("date"); d != "" {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date format, use YYYY-MM-DD"})
			return
		}
	}

	orders := service.Filter(h.store.List(), service.FilterCriteria{
		Query:                    q.Get("q"),
		Status:                   q.Get("status"),
		Date:                     q.Get("date"),
		StaffID:                  q.Get("staff_id"),
		ExcludeMembershipCovered: q.Get("view") == "staff",
	}, h.loc)

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}

	writeJSON(w, http.StatusOK, orderListResponse{Orders: resp, Total: len(resp)})
}

// Get handles GET /orders/{token}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Get(chi.URLParam(r, "token"))
	if err != nil {
		writeOrderError(w, err, "get order")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// Advance handles POST /orders/{token}/advance. Advancing a picked_up order
// returns the order unchanged.
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.Advance(chi.URLParam(r, "token"))
	if err != nil {
		writeOrderError(w, err, "advance order")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// --- Helpers ---

// writeOrderError maps service errors to HTTP status codes.
func writeOrderError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
	case errors.Is(err, service.ErrDuplicateToken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrHolidayBlocked):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case service.IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func toOrderResponse(o domain.Order) orderResponse {
	resp := orderResponse{
		Token:         o.Token,
		Name:          o.Name,
		Phone:         o.Phone,
		Weight:        o.Weight.String(),
		Loads:         o.Loads,
		Blankets:      o.Blankets,
		ServiceType:   o.ServiceType,
		Price:         o.Price,
		CreatedAt:     o.CreatedAt.UnixMilli(),
		Stage:         o.Stage,
		StageLabel:    domain.StageLabel(o.Stage),
		StaffID:       o.StaffID,
		PaymentMethod: o.PaymentMethod,
		Membership:    o.Membership,
	}
	if o.DueAt != nil {
		ms := o.DueAt.UnixMilli()
		resp.DueAt = &ms
	}
	if o.CompletedAt != nil {
		ms := o.CompletedAt.UnixMilli()
		resp.CompletedAt = &ms
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
