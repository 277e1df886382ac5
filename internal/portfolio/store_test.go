package portfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cleartrack/internal/models"
)

func holding(id, ticker string) models.Holding {
	return models.Holding{
		ID:            id,
		Ticker:        ticker,
		Shares:        decimal.NewFromInt(1),
		PurchasePrice: decimal.NewFromInt(100),
		CurrentPrice:  decimal.NewFromInt(110),
	}
}

func TestStore_InsertionOrder(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		if err := s.Add(holding(id, "AAPL")); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	got := s.List()
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("expected insertion order a,b,c; got %v", got)
	}
}

func TestStore_DuplicateID(t *testing.T) {
	s := NewStore()
	if err := s.Add(holding("a", "AAPL")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(holding("a", "MSFT")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestStore_RemoveReturnsPosition(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		_ = s.Add(holding(id, "AAPL"))
	}
	h, idx, err := s.Remove("b")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if h.ID != "b" || idx != 1 {
		t.Fatalf("expected (b, 1), got (%s, %d)", h.ID, idx)
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}

	if _, _, err := s.Remove("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_InsertRestoresOrder(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c"} {
		_ = s.Add(holding(id, "AAPL"))
	}
	h, idx, _ := s.Remove("b")
	if err := s.Insert(h, idx); err != nil {
		t.Fatalf("insert: %v", err)
	}
	got := s.List()
	if got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("expected order restored, got %v", got)
	}

	// past-the-end positions append
	tail, _, _ := s.Remove("c")
	if err := s.Insert(tail, 99); err != nil {
		t.Fatalf("insert at tail: %v", err)
	}
	if got := s.List(); got[2].ID != "c" {
		t.Fatalf("expected c appended, got %v", got)
	}
}

func TestStore_ReplaceID(t *testing.T) {
	s := NewStore()
	_ = s.Add(holding("local", "AAPL"))
	_ = s.Add(holding("other", "MSFT"))

	if err := s.ReplaceID("local", "srv-1"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := s.Get("srv-1"); err != nil {
		t.Fatalf("expected holding under new id: %v", err)
	}
	if _, err := s.Get("local"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old id must be gone, got %v", err)
	}
	if err := s.ReplaceID("srv-1", "other"); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if err := s.ReplaceID("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListIsACopy(t *testing.T) {
	s := NewStore()
	_ = s.Add(holding("a", "AAPL"))
	got := s.List()
	got[0].ID = "mutated"
	if h, _ := s.Get("a"); h.ID != "a" {
		t.Fatalf("mutating the listed slice must not touch store state")
	}
}
