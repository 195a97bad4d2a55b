package service

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/enum"
	"github.com/hi5-laundry/api/internal/pricing"
	"github.com/hi5-laundry/api/internal/settings"
	"github.com/hi5-laundry/api/internal/store"
	"github.com/shopspring/decimal"
)

// Errors returned by the order service. Store sentinels are re-exported so
// handlers only ever match against this package.
var (
	ErrDuplicateToken = store.ErrDuplicateToken
	ErrNotFound       = store.ErrNotFound
	ErrInvalidWeight  = pricing.ErrInvalidWeight
)

// Validation errors; all map to a user-visible 4xx.
var (
	ErrEmptyToken         = errValidation("token is required")
	ErrInvalidName        = errValidation("name must contain only letters and spaces")
	ErrInvalidPhone       = errValidation("phone must be exactly 10 digits")
	ErrInvalidServiceType = errValidation("invalid service type")
	ErrInvalidTier        = errValidation("invalid membership tier")
	ErrInvalidPayment     = errValidation("invalid payment method")
	ErrPaymentNotCovered  = errValidation("membership_covered requires a membership and normal service")
	ErrUnknownStaff       = errValidation("unknown staff id")
	ErrHolidayBlocked     = errValidation("new orders cannot be placed on holidays")
)

// validationError marks errors the handler maps to 400-class responses.
type validationError string

func (e validationError) Error() string { return string(e) }

func errValidation(msg string) error { return validationError(msg) }

// IsValidationError reports whether err is a rejected-input condition rather
// than an internal failure.
func IsValidationError(err error) bool {
	if _, ok := err.(validationError); ok {
		return true
	}
	return err == pricing.ErrInvalidWeight ||
		err == pricing.ErrUnknownServiceType ||
		err == pricing.ErrUnknownTier
}

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

// OrderStore defines the store methods the order service needs.
// Satisfied by *store.Memory; narrow interface for testability.
type OrderStore interface {
	Create(o domain.Order) error
	Get(token string) (domain.Order, error)
	Update(token string, mutate func(*domain.Order)) (domain.Order, error)
	List() []domain.Order
	ListStaff() []domain.Staff
}

// CreateOrderRequest is the validated input for creating an order.
type CreateOrderRequest struct {
	Token         string
	Name          string
	Phone         string
	Weight        decimal.Decimal
	Blankets      bool
	ServiceType   string
	PaymentMethod string
	Membership    string
	StaffID       string
}

// SubmitResult is the single terminal outcome of an asynchronous submission.
type SubmitResult struct {
	Order domain.Order
	Err   error
}

// OrderService owns the order lifecycle: creation (with pricing and the
// holiday gate) and stage advancement.
type OrderService struct {
	store    OrderStore
	settings *settings.Settings
	loc      *time.Location
	delay    time.Duration
	now      func() time.Time
}

// NewOrderService creates a new OrderService. loc is the business timezone
// used by the holiday gate; delay is the simulated submission latency.
func NewOrderService(st OrderStore, cfg *settings.Settings, loc *time.Location, delay time.Duration) *OrderService {
	return &OrderService{
		store:    st,
		settings: cfg,
		loc:      loc,
		delay:    delay,
		now:      time.Now,
	}
}

// Create validates, prices, and stores a new order. The price and the
// express deadline are computed from one configuration snapshot taken here
// and never recomputed afterwards.
func (s *OrderService) Create(req CreateOrderRequest) (domain.Order, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return domain.Order{}, ErrEmptyToken
	}
	if !nameRe.MatchString(req.Name) {
		return domain.Order{}, ErrInvalidName
	}
	if !phoneRe.MatchString(req.Phone) {
		return domain.Order{}, ErrInvalidPhone
	}
	if req.ServiceType != enum.ServiceTypeNormal && req.ServiceType != enum.ServiceTypeExpress {
		return domain.Order{}, ErrInvalidServiceType
	}
	if !isValidTier(req.Membership) {
		return domain.Order{}, ErrInvalidTier
	}

	payment, err := resolvePayment(req.PaymentMethod, req.Membership, req.ServiceType)
	if err != nil {
		return domain.Order{}, err
	}

	staffID, err := s.resolveStaff(req.StaffID)
	if err != nil {
		return domain.Order{}, err
	}

	now := s.now()
	snap := s.settings.Snapshot()

	if snap.IsHoliday(now, s.loc) {
		return domain.Order{}, ErrHolidayBlocked
	}

	loads, price, err := pricing.Quote(req.Weight, req.ServiceType, req.Membership, snap.Rates)
	if err != nil {
		return domain.Order{}, err
	}

	order := domain.Order{
		Token:         token,
		Name:          req.Name,
		Phone:         req.Phone,
		Weight:        req.Weight,
		Loads:         loads,
		Blankets:      req.Blankets,
		ServiceType:   req.ServiceType,
		Price:         price,
		CreatedAt:     now,
		Stage:         enum.StageReceived,
		StaffID:       staffID,
		PaymentMethod: payment,
		Membership:    req.Membership,
	}
	if req.ServiceType == enum.ServiceTypeExpress {
		due := now.Add(snap.SLA)
		order.DueAt = &due
	}

	if err := s.store.Create(order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Submit runs Create after the configured submission delay. The operation is
// non-cancelable: once called it delivers exactly one terminal result on the
// returned channel, either the committed order or an error.
func (s *OrderService) Submit(req CreateOrderRequest) <-chan SubmitResult {
	ch := make(chan SubmitResult, 1)
	go func() {
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
		order, err := s.Create(req)
		ch <- SubmitResult{Order: order, Err: err}
	}()
	return ch
}

// Advance walks the order one stage forward. Advancing a terminal order is
// an idempotent no-op; CompletedAt is stamped exactly once, on the
// transition that lands the order in picked_up.
func (s *OrderService) Advance(token string) (domain.Order, error) {
	return s.store.Update(token, func(o *domain.Order) {
		if domain.IsTerminalStage(o.Stage) {
			return
		}
		o.Stage = domain.NextStage(o.Stage)
		if o.Stage == enum.StagePickedUp && o.CompletedAt == nil {
			t := s.now()
			o.CompletedAt = &t
		}
	})
}

// Get returns the order with the given token.
func (s *OrderService) Get(token string) (domain.Order, error) {
	return s.store.Get(token)
}

// resolveStaff validates an explicit assignment against the roster, or picks
// a random member when none is given. An empty roster leaves the order
// unassigned.
func (s *OrderService) resolveStaff(staffID string) (string, error) {
	roster := s.store.ListStaff()
	if staffID == "" {
		if len(roster) == 0 {
			return "", nil
		}
		return roster[rand.Intn(len(roster))].ID, nil
	}
	for _, m := range roster {
		if m.ID == staffID {
			return staffID, nil
		}
	}
	return "", ErrUnknownStaff
}

// resolvePayment enforces the membership invariant: membership_covered is
// valid only for normal-service orders placed by members, and such orders
// are always covered (the counter never charges a member for a normal load).
func resolvePayment(method, tier, serviceType string) (string, error) {
	if tier != enum.MembershipNone && serviceType == enum.ServiceTypeNormal {
		return enum.PaymentMethodMembershipCovered, nil
	}

	switch method {
	case enum.PaymentMethodCash, enum.PaymentMethodOnline, enum.PaymentMethodPending:
		return method, nil
	case "":
		return enum.PaymentMethodCash, nil
	case enum.PaymentMethodMembershipCovered:
		return "", ErrPaymentNotCovered
	}
	return "", ErrInvalidPayment
}

func isValidTier(tier string) bool {
	switch tier {
	case enum.MembershipNone, enum.MembershipSilver,
		enum.MembershipGold, enum.MembershipPlatinum:
		return true
	}
	return false
}
