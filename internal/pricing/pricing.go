package pricing

import (
	"errors"

	"github.com/hi5-laundry/api/internal/enum"
	"github.com/shopspring/decimal"
)

// BaseLoadWeightKg is the billing unit: one load covers up to 6kg.
const BaseLoadWeightKg = 6

// MaxWeightKg is the largest drop-off the shop accepts.
const MaxWeightKg = 60

var (
	ErrInvalidWeight      = errors.New("weight must be in (0, 60] kg")
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrUnknownTier        = errors.New("unknown membership tier")
)

// Rates is the pricing configuration a quote is computed against. Callers
// pass an explicit snapshot rather than reading ambient state, so a quote is
// reproducible and the price frozen on an order is a historical fact.
type Rates struct {
	// UnitPrices maps service type to the rupee price of one load.
	UnitPrices map[string]decimal.Decimal
	// Discounts maps membership tier to a fraction in [0, 1). Applies to
	// normal-service loads only, never express.
	Discounts map[string]decimal.Decimal
}

// Quote computes the load count and final price for a drop-off.
//
//	loads = ceil(weight / 6kg), minimum 1 for any positive weight
//	price = round(loads * unitPrice * (1 - discount))
//
// Rounding is half-away-from-zero to the whole rupee. Pure: callers re-quote
// whenever weight, service type, tier, or the discount table change.
func Quote(weight decimal.Decimal, serviceType, tier string, rates Rates) (loads int, price int64, err error) {
	if weight.LessThanOrEqual(decimal.Zero) || weight.GreaterThan(decimal.NewFromInt(MaxWeightKg)) {
		return 0, 0, ErrInvalidWeight
	}

	unit, ok := rates.UnitPrices[serviceType]
	if !ok {
		return 0, 0, ErrUnknownServiceType
	}

	discount, ok := rates.Discounts[tier]
	if !ok {
		return 0, 0, ErrUnknownTier
	}

	loads = int(weight.Div(decimal.NewFromInt(BaseLoadWeightKg)).Ceil().IntPart())

	total := decimal.NewFromInt(int64(loads)).Mul(unit)
	if serviceType == enum.ServiceTypeNormal && tier != enum.MembershipNone {
		total = total.Mul(decimal.NewFromInt(1).Sub(discount))
	}

	return loads, total.Round(0).IntPart(), nil
}
