package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cleartrack/internal/models"
)

func TestHistorySeries_SortsAscending(t *testing.T) {
	fake := newFakeRemote()
	fake.history = []models.HistoryPoint{
		{Date: "2026-08-27", ProfitLoss: decimal.NewFromInt(300)},
		{Date: "2026-08-25", ProfitLoss: decimal.NewFromInt(100)},
		{Date: "2026-08-26", ProfitLoss: decimal.NewFromInt(-50)},
	}
	points, err := NewHistorySeries(fake).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []string{"2026-08-25", "2026-08-26", "2026-08-27"}
	for i, w := range want {
		if points[i].Date != w {
			t.Fatalf("expected %v at %d, got %v", w, i, points[i].Date)
		}
	}
}

func TestHistorySeries_EmptyIsNotAnError(t *testing.T) {
	fake := newFakeRemote()
	points, err := NewHistorySeries(fake).Fetch(context.Background())
	if err != nil {
		t.Fatalf("empty history must not fail: %v", err)
	}
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil series, got %v", points)
	}
}

func TestHistorySeries_RemoteFailure(t *testing.T) {
	fake := newFakeRemote()
	fake.histErr = errors.New("boom")
	_, err := NewHistorySeries(fake).Fetch(context.Background())
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}
