package store

import (
	"errors"
	"sync"

	"github.com/hi5-laundry/api/internal/domain"
)

var (
	// ErrDuplicateToken is returned when creating an order whose token is
	// already taken. Tokens are human-assigned; the store never overwrites.
	ErrDuplicateToken = errors.New("order token already exists")
	// ErrNotFound is returned when no order matches the token.
	ErrNotFound = errors.New("order not found")
)

// Memory is the in-process order store. Orders live in a map keyed by token
// behind one RWMutex; all reads hand out copies so callers can never mutate
// a stored order except through Update.
type Memory struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	staff  []domain.Staff
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{orders: make(map[string]domain.Order)}
}

// Create inserts a new order. Duplicate tokens are rejected and the store
// is left unchanged.
func (m *Memory) Create(o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.Token]; ok {
		return ErrDuplicateToken
	}
	m.orders[o.Token] = o
	return nil
}

// Get returns a copy of the order with the given token.
func (m *Memory) Get(token string) (domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[token]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

// Update applies mutate to the order under the write lock, so a multi-field
// change (stage plus completion stamp) is observed atomically.
func (m *Memory) Update(token string, mutate func(*domain.Order)) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[token]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	mutate(&o)
	m.orders[token] = o
	return o, nil
}

// List returns a copy of all orders. No ordering is guaranteed; consumers
// that need recency sort by CreatedAt themselves.
func (m *Memory) List() []domain.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out
}

// AddStaff appends a member to the roster.
func (m *Memory) AddStaff(s domain.Staff) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff = append(m.staff, s)
}

// ListStaff returns a copy of the roster in insertion order.
func (m *Memory) ListStaff() []domain.Staff {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Staff, len(m.staff))
	copy(out, m.staff)
	return out
}
