package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/enum"
	"github.com/hi5-laundry/api/internal/handler"
	"github.com/hi5-laundry/api/internal/service"
)

type mockMetricsStore struct {
	orders []domain.Order
	staff  []domain.Staff
}

func (m *mockMetricsStore) List() []domain.Order      { return m.orders }
func (m *mockMetricsStore) ListStaff() []domain.Staff { return m.staff }

func TestMetricsSnapshotHandler(t *testing.T) {
	covered := sampleOrder()
	covered.PaymentMethod = enum.PaymentMethodMembershipCovered
	covered.Membership = enum.MembershipGold
	covered.CreatedAt = time.Now()

	paying := sampleOrder()
	paying.Token = "HI5-1433"
	paying.CreatedAt = time.Now()

	store := &mockMetricsStore{
		orders: []domain.Order{covered, paying},
		staff:  []domain.Staff{{ID: "stf-1", Name: "Arjun"}},
	}

	r := chi.NewRouter()
	handler.NewMetricsHandler(store, ist).RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var snap service.MetricsSnapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if snap.TodayCount != 2 {
		t.Errorf("expected 2 orders today, got %d", snap.TodayCount)
	}
	if snap.Revenue != 700 {
		t.Errorf("expected revenue 700, got %d", snap.Revenue)
	}
	if snap.MemberLoadsByTier[enum.MembershipGold] != 1 {
		t.Errorf("expected 1 gold load, got %d", snap.MemberLoadsByTier[enum.MembershipGold])
	}
	if len(snap.StaffLoad) != 1 || snap.StaffLoad[0].Name != "Arjun" {
		t.Errorf("expected roster entry for Arjun, got %v", snap.StaffLoad)
	}
	if snap.GeneratedAt == 0 {
		t.Error("expected a generated_at timestamp")
	}
}
