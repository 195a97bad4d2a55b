package service

import (
	"strings"
	"time"

	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/enum"
	"github.com/hi5-laundry/api/internal/settings"
)

// FilterCriteria selects a subset of orders; all set criteria compose as
// logical AND.
type FilterCriteria struct {
	// Query matches case-insensitively against token and name, and as a
	// plain substring against phone.
	Query string
	// Status is one of the staff status filters: all, ready, in_progress.
	Status string
	// Date restricts to orders created on one calendar date (YYYY-MM-DD,
	// business timezone).
	Date string
	// StaffID restricts to orders assigned to one roster member.
	StaffID string
	// ExcludeMembershipCovered hides membership orders from operational
	// staff views; the membership desk settles those separately.
	ExcludeMembershipCovered bool
}

// Filter returns the orders matching the criteria. Input order is
// preserved; the result is a fresh slice.
func Filter(orders []domain.Order, c FilterCriteria, loc *time.Location) []domain.Order {
	query := strings.ToLower(strings.TrimSpace(c.Query))

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if query != "" &&
			!strings.Contains(strings.ToLower(o.Token), query) &&
			!strings.Contains(strings.ToLower(o.Name), query) &&
			!strings.Contains(o.Phone, c.Query) {
			continue
		}

		switch c.Status {
		case enum.StatusFilterReady:
			if o.Stage != enum.StageReady {
				continue
			}
		case enum.StatusFilterInProgress:
			if o.Stage != enum.StageWash && o.Stage != enum.StageDry && o.Stage != enum.StageFold {
				continue
			}
		}

		if c.Date != "" && o.CreatedAt.In(loc).Format(settings.DateLayout) != c.Date {
			continue
		}

		if c.StaffID != "" && o.StaffID != c.StaffID {
			continue
		}

		if c.ExcludeMembershipCovered && o.PaymentMethod == enum.PaymentMethodMembershipCovered {
			continue
		}

		out = append(out, o)
	}
	return out
}
