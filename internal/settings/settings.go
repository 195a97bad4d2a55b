package settings

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hi5-laundry/api/internal/enum"
	"github.com/hi5-laundry/api/internal/pricing"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for holidays, always
// interpreted in the configured business timezone.
const DateLayout = "2006-01-02"

var (
	ErrInvalidFraction = errors.New("discount fraction must be in [0, 1)")
	ErrInvalidAmount   = errors.New("unit price must be positive")
	ErrInvalidMinutes  = errors.New("sla minutes must be positive")
	ErrInvalidDate     = errors.New("invalid date, use YYYY-MM-DD")
	ErrUnknownTier     = errors.New("unknown membership tier")
	ErrUnknownService  = errors.New("unknown service type")
	ErrNoneTier        = errors.New("the none tier carries no discount")
)

// Settings is the admin-editable shop configuration: unit prices, the
// membership discount table, the holiday set, and the express SLA. One
// RWMutex guards all of it; reads hand out copies. Edits take effect for
// subsequent quotes only; prices already frozen on orders never move.
type Settings struct {
	mu         sync.RWMutex
	unitPrices map[string]decimal.Decimal
	discounts  map[string]decimal.Decimal
	holidays   map[string]bool
	sla        time.Duration
}

// Snapshot is an immutable view of the configuration, taken once per
// operation so a single order creation sees one consistent table.
type Snapshot struct {
	Rates    pricing.Rates
	Holidays map[string]bool
	SLA      time.Duration
}

// NewDefault returns Settings preloaded with the shop's standard rates:
// normal 350/load, express 450/load, silver/gold/platinum at 5/10/15% off,
// a 60 minute express SLA, and no holidays.
func NewDefault() *Settings {
	return &Settings{
		unitPrices: map[string]decimal.Decimal{
			enum.ServiceTypeNormal:  decimal.NewFromInt(350),
			enum.ServiceTypeExpress: decimal.NewFromInt(450),
		},
		discounts: map[string]decimal.Decimal{
			enum.MembershipNone:     decimal.Zero,
			enum.MembershipSilver:   decimal.NewFromFloat(0.05),
			enum.MembershipGold:     decimal.NewFromFloat(0.10),
			enum.MembershipPlatinum: decimal.NewFromFloat(0.15),
		},
		holidays: make(map[string]bool),
		sla:      60 * time.Minute,
	}
}

// Snapshot returns a copy of the current configuration.
func (s *Settings) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prices := make(map[string]decimal.Decimal, len(s.unitPrices))
	for k, v := range s.unitPrices {
		prices[k] = v
	}
	discounts := make(map[string]decimal.Decimal, len(s.discounts))
	for k, v := range s.discounts {
		discounts[k] = v
	}
	holidays := make(map[string]bool, len(s.holidays))
	for k := range s.holidays {
		holidays[k] = true
	}

	return Snapshot{
		Rates:    pricing.Rates{UnitPrices: prices, Discounts: discounts},
		Holidays: holidays,
		SLA:      s.sla,
	}
}

// SetDiscount updates the discount fraction for a tier. The none tier is
// not editable.
func (s *Settings) SetDiscount(tier string, fraction decimal.Decimal) error {
	if tier == enum.MembershipNone {
		return ErrNoneTier
	}
	if fraction.IsNegative() || fraction.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidFraction
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.discounts[tier]; !ok {
		return ErrUnknownTier
	}
	s.discounts[tier] = fraction
	return nil
}

// SetUnitPrice updates the per-load price for a service type.
func (s *Settings) SetUnitPrice(serviceType string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.unitPrices[serviceType]; !ok {
		return ErrUnknownService
	}
	s.unitPrices[serviceType] = amount
	return nil
}

// SetSLA updates the express deadline.
func (s *Settings) SetSLA(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidMinutes
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sla = time.Duration(minutes) * time.Minute
	return nil
}

// AddHoliday blocks order creation on the given calendar date.
func (s *Settings) AddHoliday(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[date] = true
	return nil
}

// RemoveHoliday unblocks the date. Removing an unknown date is a no-op.
func (s *Settings) RemoveHoliday(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holidays, date)
}

// Holidays returns the blocked dates, sorted.
func (s *Settings) Holidays() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.holidays))
	for d := range s.holidays {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// IsHoliday reports whether t falls on a blocked calendar date. The
// timestamp is normalized to a date in loc, one fixed business timezone,
// never the host locale.
func (sn Snapshot) IsHoliday(t time.Time, loc *time.Location) bool {
	return sn.Holidays[t.In(loc).Format(DateLayout)]
}
