package service

import (
	"testing"
	"time"

	"github.com/hi5-laundry/api/internal/domain"
	"github.com/hi5-laundry/api/internal/enum"
)

func filterFixture() []domain.Order {
	return []domain.Order{
		{
			Token:         "HI5-1001",
			Name:          "Ayesha Khan",
			Phone:         "9000000001",
			Stage:         enum.StageWash,
			StaffID:       "stf-1",
			CreatedAt:     time.Date(2026, 3, 10, 9, 0, 0, 0, ist),
			PaymentMethod: enum.PaymentMethodCash,
		},
		{
			Token:         "HI5-1002",
			Name:          "Ravi",
			Phone:         "9111111111",
			Stage:         enum.StageReady,
			StaffID:       "stf-2",
			CreatedAt:     time.Date(2026, 3, 10, 10, 0, 0, 0, ist),
			PaymentMethod: enum.PaymentMethodMembershipCovered,
		},
		{
			Token:         "HI5-1003",
			Name:          "Meera",
			Phone:         "9222222222",
			Stage:         enum.StagePickedUp,
			StaffID:       "stf-1",
			CreatedAt:     time.Date(2026, 3, 9, 18, 0, 0, 0, ist),
			PaymentMethod: enum.PaymentMethodOnline,
		},
	}
}

func tokens(orders []domain.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.Token
	}
	return out
}

func TestFilterNoCriteriaReturnsAll(t *testing.T) {
	got := Filter(filterFixture(), FilterCriteria{}, ist)
	if len(got) != 3 {
		t.Errorf("expected all 3 orders, got %v", tokens(got))
	}
}

func TestFilterQuery(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  []string
	}{
		{"token fragment", "1002", []string{"HI5-1002"}},
		{"name case-insensitive", "ayesha", []string{"HI5-1001"}},
		{"name uppercase", "RAVI", []string{"HI5-1002"}},
		{"phone substring", "9222", []string{"HI5-1003"}},
		{"padded query", "  meera  ", []string{"HI5-1003"}},
		{"no match", "zzz", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokens(Filter(filterFixture(), FilterCriteria{Query: tc.query}, ist))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestFilterStatus(t *testing.T) {
	ready := Filter(filterFixture(), FilterCriteria{Status: enum.StatusFilterReady}, ist)
	if len(ready) != 1 || ready[0].Token != "HI5-1002" {
		t.Errorf("ready: expected HI5-1002, got %v", tokens(ready))
	}

	inProgress := Filter(filterFixture(), FilterCriteria{Status: enum.StatusFilterInProgress}, ist)
	if len(inProgress) != 1 || inProgress[0].Token != "HI5-1001" {
		t.Errorf("in_progress: expected HI5-1001, got %v", tokens(inProgress))
	}

	all := Filter(filterFixture(), FilterCriteria{Status: enum.StatusFilterAll}, ist)
	if len(all) != 3 {
		t.Errorf("all: expected 3 orders, got %v", tokens(all))
	}
}

func TestFilterDateUsesBusinessTimezone(t *testing.T) {
	orders := filterFixture()
	// Created 2026-03-09 20:00 UTC, which is already 2026-03-10 in IST.
	orders = append(orders, domain.Order{
		Token:     "HI5-1004",
		Name:      "Sunil",
		Phone:     "9333333333",
		Stage:     enum.StageReceived,
		CreatedAt: time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC),
	})

	got := tokens(Filter(orders, FilterCriteria{Date: "2026-03-10"}, ist))
	if len(got) != 3 {
		t.Fatalf("expected 3 orders on 2026-03-10, got %v", got)
	}

	got = tokens(Filter(orders, FilterCriteria{Date: "2026-03-09"}, ist))
	if len(got) != 1 || got[0] != "HI5-1003" {
		t.Errorf("expected only HI5-1003 on 2026-03-09, got %v", got)
	}
}

func TestFilterStaff(t *testing.T) {
	got := tokens(Filter(filterFixture(), FilterCriteria{StaffID: "stf-1"}, ist))
	if len(got) != 2 || got[0] != "HI5-1001" || got[1] != "HI5-1003" {
		t.Errorf("expected stf-1's orders, got %v", got)
	}
}

func TestFilterExcludesMembershipCovered(t *testing.T) {
	got := tokens(Filter(filterFixture(), FilterCriteria{ExcludeMembershipCovered: true}, ist))
	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %v", got)
	}
	for _, tok := range got {
		if tok == "HI5-1002" {
			t.Error("membership covered order leaked into the staff view")
		}
	}
}

func TestFilterCriteriaCompose(t *testing.T) {
	got := Filter(filterFixture(), FilterCriteria{
		Query:   "hi5",
		Date:    "2026-03-10",
		StaffID: "stf-1",
	}, ist)
	if len(got) != 1 || got[0].Token != "HI5-1001" {
		t.Errorf("expected only HI5-1001, got %v", tokens(got))
	}
}
