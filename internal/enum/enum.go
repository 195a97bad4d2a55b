package enum

// ── Order stage machine (forward walk, picked_up terminal) ──

const (
	StageReceived = "received"
	StageWash     = "wash"
	StageDry      = "dry"
	StageFold     = "fold"
	StageReady    = "ready"
	StagePickedUp = "picked_up"
)

const (
	ServiceTypeNormal  = "normal"
	ServiceTypeExpress = "express"
)

const (
	PaymentMethodCash              = "cash"
	PaymentMethodOnline            = "online"
	PaymentMethodPending           = "pending"
	PaymentMethodMembershipCovered = "membership_covered"
)

const (
	MembershipNone     = "none"
	MembershipSilver   = "silver"
	MembershipGold     = "gold"
	MembershipPlatinum = "platinum"
)

// ── Staff-facing status filters (coarse view over fine-grained stages) ──

const (
	StatusFilterAll        = "all"
	StatusFilterReady      = "ready"
	StatusFilterInProgress = "in_progress"
)
