package service

import (
	"context"
	"errors"
	"testing"

	"smartpenny/internal/core"
)

type fakeDealStore struct {
	deals []core.Deal
	err   error
}

func (f *fakeDealStore) ListDeals(_ context.Context, category string) ([]core.Deal, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Deal
	for _, d := range f.deals {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func TestListDealsEmptyStoreServesFallback(t *testing.T) {
	svc := NewDealService(&fakeDealStore{}, testLogger())
	deals, source := svc.ListDeals(context.Background(), "")
	if source != DealSourceFallback {
		t.Fatalf("source: got %q, want %q", source, DealSourceFallback)
	}
	if len(deals) != len(fallbackDeals) {
		t.Fatalf("expected %d fallback deals, got %d", len(fallbackDeals), len(deals))
	}
}

func TestListDealsStoreErrorServesFallback(t *testing.T) {
	svc := NewDealService(&fakeDealStore{err: errors.New("db down")}, testLogger())
	deals, source := svc.ListDeals(context.Background(), "")
	if source != DealSourceFallback {
		t.Fatalf("source: got %q, want %q", source, DealSourceFallback)
	}
	if len(deals) == 0 {
		t.Fatal("expected fallback deals")
	}
}

func TestListDealsFromStoreSortedSponsoredFirst(t *testing.T) {
	svc := NewDealService(&fakeDealStore{deals: []core.Deal{
		{ID: "a", Name: "Plain High", Rating: 4.9, Category: "Cafe"},
		{ID: "b", Name: "Sponsored Low", Rating: 3.1, IsSponsored: true, Category: "Cafe"},
		{ID: "c", Name: "Sponsored High", Rating: 4.5, IsSponsored: true, Category: "Cafe"},
	}}, testLogger())

	deals, source := svc.ListDeals(context.Background(), "")
	if source != DealSourceStore {
		t.Fatalf("source: got %q, want %q", source, DealSourceStore)
	}
	gotOrder := []string{deals[0].ID, deals[1].ID, deals[2].ID}
	wantOrder := []string{"c", "b", "a"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order: got %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestListDealsCategoryFilter(t *testing.T) {
	svc := NewDealService(&fakeDealStore{}, testLogger())

	deals, _ := svc.ListDeals(context.Background(), "Cafe")
	if len(deals) != 1 || deals[0].Name != "The Daily Grind" {
		t.Fatalf("unexpected Cafe deals: %+v", deals)
	}

	// "All" behaves like no filter.
	all, _ := svc.ListDeals(context.Background(), "All")
	if len(all) != len(fallbackDeals) {
		t.Fatalf("expected all %d deals for \"All\", got %d", len(fallbackDeals), len(all))
	}
}
