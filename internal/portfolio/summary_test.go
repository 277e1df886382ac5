package portfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cleartrack/internal/models"
)

func TestSummarize(t *testing.T) {
	holdings := []models.Holding{
		{Ticker: "AAPL", Shares: decimal.NewFromInt(10), PurchasePrice: decimal.NewFromInt(150), CurrentPrice: decimal.NewFromInt(175)},
		{Ticker: "BRK", Shares: decimal.NewFromInt(5), PurchasePrice: decimal.NewFromInt(2500), CurrentPrice: decimal.NewFromInt(2800)},
	}
	sum := Summarize(holdings)
	if sum.TotalInvested.String() != "14000" {
		t.Fatalf("expected invested 14000, got %s", sum.TotalInvested)
	}
	if sum.CurrentValue.String() != "15750" {
		t.Fatalf("expected value 15750, got %s", sum.CurrentValue)
	}
	if sum.HoldingsCount != 2 {
		t.Fatalf("expected count 2, got %d", sum.HoldingsCount)
	}

	m, err := SummaryMetrics(sum)
	if err != nil {
		t.Fatalf("summary metrics: %v", err)
	}
	if m.ProfitLoss.String() != "1750" {
		t.Fatalf("expected aggregate profit 1750, got %s", m.ProfitLoss)
	}
	if m.ProfitLossPercent.String() != "12.5" {
		t.Fatalf("expected 12.5%%, got %s", m.ProfitLossPercent)
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	if !sum.TotalInvested.IsZero() || !sum.CurrentValue.IsZero() || sum.HoldingsCount != 0 {
		t.Fatalf("empty portfolio must summarize to zeros, got %+v", sum)
	}
	if _, err := SummaryMetrics(sum); !errors.Is(err, ErrDegenerateMetric) {
		t.Fatalf("expected ErrDegenerateMetric on zero invested, got %v", err)
	}
}
