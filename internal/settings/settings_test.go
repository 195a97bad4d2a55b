package settings

import (
	"testing"
	"time"

	"github.com/hi5-laundry/api/internal/enum"
	"github.com/shopspring/decimal"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestDefaults(t *testing.T) {
	s := NewDefault()
	snap := s.Snapshot()

	if !snap.Rates.UnitPrices[enum.ServiceTypeNormal].Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected normal unit price 350, got %s", snap.Rates.UnitPrices[enum.ServiceTypeNormal])
	}
	if !snap.Rates.UnitPrices[enum.ServiceTypeExpress].Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected express unit price 450, got %s", snap.Rates.UnitPrices[enum.ServiceTypeExpress])
	}
	if !snap.Rates.Discounts[enum.MembershipGold].Equal(decimal.NewFromFloat(0.10)) {
		t.Errorf("expected gold discount 0.10, got %s", snap.Rates.Discounts[enum.MembershipGold])
	}
	if snap.SLA != 60*time.Minute {
		t.Errorf("expected 60 minute SLA, got %s", snap.SLA)
	}
	if len(snap.Holidays) != 0 {
		t.Errorf("expected no holidays, got %d", len(snap.Holidays))
	}
}

func TestSetDiscount(t *testing.T) {
	s := NewDefault()
	if err := s.SetDiscount(enum.MembershipSilver, decimal.NewFromFloat(0.08)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().Rates.Discounts[enum.MembershipSilver].Equal(decimal.NewFromFloat(0.08)) {
		t.Error("discount not updated")
	}
}

func TestSetDiscountRejectsBadInput(t *testing.T) {
	s := NewDefault()
	if err := s.SetDiscount(enum.MembershipGold, decimal.NewFromInt(1)); err != ErrInvalidFraction {
		t.Errorf("fraction 1: expected ErrInvalidFraction, got %v", err)
	}
	if err := s.SetDiscount(enum.MembershipGold, decimal.NewFromFloat(-0.1)); err != ErrInvalidFraction {
		t.Errorf("negative fraction: expected ErrInvalidFraction, got %v", err)
	}
	if err := s.SetDiscount(enum.MembershipNone, decimal.NewFromFloat(0.1)); err != ErrNoneTier {
		t.Errorf("none tier: expected ErrNoneTier, got %v", err)
	}
	if err := s.SetDiscount("diamond", decimal.NewFromFloat(0.1)); err != ErrUnknownTier {
		t.Errorf("unknown tier: expected ErrUnknownTier, got %v", err)
	}
}

func TestSetUnitPrice(t *testing.T) {
	s := NewDefault()
	if err := s.SetUnitPrice(enum.ServiceTypeExpress, decimal.NewFromInt(500)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().Rates.UnitPrices[enum.ServiceTypeExpress].Equal(decimal.NewFromInt(500)) {
		t.Error("unit price not updated")
	}

	if err := s.SetUnitPrice(enum.ServiceTypeNormal, decimal.Zero); err != ErrInvalidAmount {
		t.Errorf("zero amount: expected ErrInvalidAmount, got %v", err)
	}
	if err := s.SetUnitPrice("dryclean", decimal.NewFromInt(100)); err != ErrUnknownService {
		t.Errorf("unknown service: expected ErrUnknownService, got %v", err)
	}
}

func TestHolidays(t *testing.T) {
	s := NewDefault()

	if err := s.AddHoliday("2026-01-26"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddHoliday("2026-08-15"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddHoliday("not-a-date"); err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	got := s.Holidays()
	if len(got) != 2 || got[0] != "2026-01-26" || got[1] != "2026-08-15" {
		t.Errorf("expected sorted holidays, got %v", got)
	}

	s.RemoveHoliday("2026-01-26")
	s.RemoveHoliday("2026-12-25") // unknown date, no-op
	if got := s.Holidays(); len(got) != 1 || got[0] != "2026-08-15" {
		t.Errorf("expected one holiday left, got %v", got)
	}
}

func TestIsHolidayNormalizesToBusinessDate(t *testing.T) {
	s := NewDefault()
	if err := s.AddHoliday("2026-01-26"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()

	// 2026-01-25 20:00 UTC is already 2026-01-26 01:30 in IST.
	eveUTC := time.Date(2026, 1, 25, 20, 0, 0, 0, time.UTC)
	if !snap.IsHoliday(eveUTC, ist) {
		t.Error("timestamp on the holiday in business time should be blocked")
	}

	// Noon the day before, clearly not the holiday anywhere.
	dayBefore := time.Date(2026, 1, 25, 12, 0, 0, 0, ist)
	if snap.IsHoliday(dayBefore, ist) {
		t.Error("day before the holiday should not be blocked")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewDefault()
	snap := s.Snapshot()

	snap.Rates.Discounts[enum.MembershipGold] = decimal.NewFromFloat(0.5)
	snap.Holidays["2026-01-01"] = true

	fresh := s.Snapshot()
	if !fresh.Rates.Discounts[enum.MembershipGold].Equal(decimal.NewFromFloat(0.10)) {
		t.Error("mutating a snapshot leaked into settings")
	}
	if len(fresh.Holidays) != 0 {
		t.Error("mutating a snapshot's holidays leaked into settings")
	}
}
