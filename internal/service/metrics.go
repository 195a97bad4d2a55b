package service

import (
	"sort"
	"time"

	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/enum"
)

// defaultTurnaroundMin is reported when no ready orders exist to average.
const defaultTurnaroundMin = 60

// StaffLoad is today's order count for one roster member. Every known
// member gets an entry, zero-filled.
type StaffLoad struct {
	StaffID string `json:"staff_id"`
	Name    string `json:"name"`
	Orders  int    `json:"orders"`
}

// CustomerVisits aggregates one customer's month, keyed by phone number.
type CustomerVisits struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Visits     int    `json:"visits"`
	TotalSpend int64  `json:"total_spend"`
}

// MemberOrder is a membership-covered order as shown on the membership
// report.
type MemberOrder struct {
	Token      string `json:"token"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Loads      int    `json:"loads"`
	Membership string `json:"membership"`
	Price      int64  `json:"price"`
}

// MetricsSnapshot is the full set of dashboard KPIs, derived from one scan
// of the order store. It is a read-only projection; computing it never
// mutates an order.
type MetricsSnapshot struct {
	GeneratedAt int64 `json:"generated_at"` // epoch ms

	// Day window (createdAt >= local midnight).
	Revenue          int64            `json:"revenue"`
	TodayCount       int              `json:"today_count"`
	NormalCount      int              `json:"normal_count"`
	ExpressCount     int              `json:"express_count"`
	TodayTotalLoads  int              `json:"today_total_loads"`
	StageCounts      map[string]int   `json:"stage_counts"`
	PaymentCounts    map[string]int   `json:"payment_counts"`
	OnTimeRate       int              `json:"on_time_rate"`       // percent
	AvgTurnaroundMin int              `json:"avg_turnaround_min"` // whole minutes
	StaffLoad        []StaffLoad      `json:"staff_load"`

	// Month window (createdAt >= 1st of month, local midnight).
	MonthlyCustomerVisits []CustomerVisits `json:"monthly_customer_visits"`
	MonthlyTotalLoads     int              `json:"monthly_total_loads"`
	MonthlyTotalRevenue   int64            `json:"monthly_total_revenue"`

	// Membership (all-time, normal-service member orders).
	MemberLoadsTotal  int            `json:"member_loads_total"`
	MemberLoadsByTier map[string]int `json:"member_loads_by_tier"`
	TodayMemberLoads  int            `json:"today_member_loads"`
	MembershipOrders  []MemberOrder  `json:"membership_orders"`
}

// Recompute derives the full snapshot from scratch. The scale here is one
// shop's day, so a rescan per call beats maintaining incremental aggregates;
// day and month windows are anchored to local midnight in loc.
func Recompute(orders []domain.Order, staff []domain.Staff, now time.Time, loc *time.Location) MetricsSnapshot {
	local := now.In(loc)
	startOfDay := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	startOfMonth := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	snap := MetricsSnapshot{
		GeneratedAt:       now.UnixMilli(),
		StageCounts:       make(map[string]int),
		PaymentCounts:     make(map[string]int),
		MemberLoadsByTier: make(map[string]int),
	}

	var readyCount, onTimeCount, turnaroundMin int
	visits := make(map[string]*CustomerVisits)

	for _, o := range orders {
		// All-time membership totals.
		if o.Membership != enum.MembershipNone && o.ServiceType == enum.ServiceTypeNormal {
			snap.MemberLoadsTotal += o.Loads
			snap.MemberLoadsByTier[o.Membership] += o.Loads
		}
		if o.PaymentMethod == enum.PaymentMethodMembershipCovered {
			snap.MembershipOrders = append(snap.MembershipOrders, MemberOrder{
				Token:      o.Token,
				Name:       o.Name,
				Phone:      o.Phone,
				Loads:      o.Loads,
				Membership: o.Membership,
				Price:      o.Price,
			})
		}

		if o.CreatedAt.Before(startOfMonth) {
			continue
		}

		// Month window.
		snap.MonthlyTotalLoads += o.Loads
		snap.MonthlyTotalRevenue += o.Price
		if v, ok := visits[o.Phone]; ok {
			v.Visits++
			v.TotalSpend += o.Price
		} else {
			visits[o.Phone] = &CustomerVisits{
				Name:       o.Name,
				Phone:      o.Phone,
				Visits:     1,
				TotalSpend: o.Price,
			}
		}

		if o.CreatedAt.Before(startOfDay) {
			continue
		}

		// Day window.
		snap.Revenue += o.Price
		snap.TodayCount++
		snap.TodayTotalLoads += o.Loads
		snap.StageCounts[o.Stage]++
		snap.PaymentCounts[o.PaymentMethod]++
		if o.ServiceType == enum.ServiceTypeNormal {
			snap.NormalCount++
		} else {
			snap.ExpressCount++
		}
		if o.PaymentMethod == enum.PaymentMethodMembershipCovered {
			snap.TodayMemberLoads += o.Loads
		}

		if o.Stage == enum.StageReady {
			readyCount++
			if o.DueAt == nil || (o.CompletedAt != nil && !o.CompletedAt.After(*o.DueAt)) {
				onTimeCount++
			}
			completed := now
			if o.CompletedAt != nil {
				completed = *o.CompletedAt
			}
			turnaroundMin += int(completed.Sub(o.CreatedAt).Minutes())
		}
	}

	if readyCount > 0 {
		snap.OnTimeRate = int(float64(onTimeCount)/float64(readyCount)*100 + 0.5)
		snap.AvgTurnaroundMin = int(float64(turnaroundMin)/float64(readyCount) + 0.5)
	} else {
		snap.OnTimeRate = 100
		snap.AvgTurnaroundMin = defaultTurnaroundMin
	}

	// Staff workload over the day window, one entry per roster member.
	snap.StaffLoad = make([]StaffLoad, len(staff))
	dayByStaff := make(map[string]int)
	for _, o := range orders {
		if !o.CreatedAt.Before(startOfDay) && o.StaffID != "" {
			dayByStaff[o.StaffID]++
		}
	}
	for i, m := range staff {
		snap.StaffLoad[i] = StaffLoad{StaffID: m.ID, Name: m.Name, Orders: dayByStaff[m.ID]}
	}

	snap.MonthlyCustomerVisits = make([]CustomerVisits, 0, len(visits))
	for _, v := range visits {
		snap.MonthlyCustomerVisits = append(snap.MonthlyCustomerVisits, *v)
	}
	sort.Slice(snap.MonthlyCustomerVisits, func(i, j int) bool {
		a, b := snap.MonthlyCustomerVisits[i], snap.MonthlyCustomerVisits[j]
		if a.Visits != b.Visits {
			return a.Visits > b.Visits
		}
		if a.TotalSpend != b.TotalSpend {
			return a.TotalSpend > b.TotalSpend
		}
		return a.Phone < b.Phone
	})

	// Stable report order for the membership table: newest tokens last is
	// meaningless for a map scan, so sort by token.
	sort.Slice(snap.MembershipOrders, func(i, j int) bool {
		return snap.MembershipOrders[i].Token < snap.MembershipOrders[j].Token
	})

	return snap
}
