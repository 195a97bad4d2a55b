package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the central entity: one drop-off tracked from intake to pickup.
// Identity fields (token, name, phone, weight, service type, membership,
// price) are fixed at creation; only Stage and CompletedAt mutate afterwards.
type Order struct {
	Token         string
	Name          string
	Phone         string
	Weight        decimal.Decimal // kg
	Loads         int             // derived: ceil(weight / 6kg)
	Blankets      bool            // handled at the counter, not part of Price
	ServiceType   string
	Price         int64 // whole rupees, frozen at creation time
	CreatedAt     time.Time
	DueAt         *time.Time // express only: CreatedAt + SLA
	Stage         string
	CompletedAt   *time.Time // stamped once, on entering picked_up
	StaffID       string
	PaymentMethod string
	Membership    string
}

// Staff is a member of the shop roster; workload metrics are keyed by ID.
type Staff struct {
	ID   string
	Name string
}
