package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func setupDB(t *testing.T) *sqlx.DB {
	url := os.Getenv("POSTGRES_URL")
	if url == "" {
		t.Skip("POSTGRES_URL is not set; skipping integration tests")
	}
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	files := []string{"../../migrations/0001_init.up.sql"}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read migration %s: %v", f, err)
		}
		if _, err := db.Exec(string(b)); err != nil {
			t.Logf("exec migration %s: %v", f, err)
		}
	}
	return db
}

func TestHoldingLifecycle(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	r := New(db, logger)
	ctx := context.Background()

	shares := decimal.NewFromFloat(10.5)
	price := decimal.NewFromFloat(150.25)

	created, err := r.CreateHolding(ctx, "AAPL", shares, price)
	if err != nil {
		t.Fatalf("create holding failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}

	got, err := r.GetHolding(ctx, created.ID)
	if err != nil {
		t.Fatalf("get holding failed: %v", err)
	}
	if got.Ticker != "AAPL" || !got.Shares.Equal(shares) || !got.PurchasePrice.Equal(price) {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	all, err := r.GetHoldings(ctx)
	if err != nil {
		t.Fatalf("get holdings failed: %v", err)
	}
	found := false
	for _, h := range all {
		if h.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("created holding missing from list")
	}

	deleted, err := r.DeleteHolding(ctx, created.ID)
	if err != nil {
		t.Fatalf("delete holding failed: %v", err)
	}
	if !deleted {
		t.Fatalf("expected delete to affect a row")
	}

	deleted, err = r.DeleteHolding(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if deleted {
		t.Fatalf("expected no row on second delete")
	}
}

func TestPriceRoundTrip(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	r := New(db, logger)
	ctx := context.Background()

	if err := r.EnsureStockExists(ctx, "AAPL", "Apple Inc"); err != nil {
		t.Fatalf("ensure stock failed: %v", err)
	}

	known, err := r.StockExists(ctx, "AAPL")
	if err != nil || !known {
		t.Fatalf("expected AAPL known, got %v %v", known, err)
	}
	known, err = r.StockExists(ctx, "ZZZZ")
	if err != nil || known {
		t.Fatalf("expected ZZZZ unknown, got %v %v", known, err)
	}

	want := decimal.NewFromFloat(175.5)
	ts := time.Now().UTC()
	if err := r.UpsertPrice(ctx, "AAPL", want, ts); err != nil {
		t.Fatalf("upsert price failed: %v", err)
	}

	got, gotTS, err := r.GetLatestPrice(ctx, "AAPL")
	if err != nil {
		t.Fatalf("get latest price failed: %v", err)
	}
	if !got.Equal(want.Round(4)) {
		t.Fatalf("expected price %s, got %s", want, got)
	}
	if gotTS.Before(ts.Add(-time.Second)) {
		t.Fatalf("stale timestamp %v", gotTS)
	}
}

func TestHistoryAppendAndFetch(t *testing.T) {
	db := setupDB(t)
	logger := logrus.New()
	r := New(db, logger)
	ctx := context.Background()

	day := time.Now().UTC()
	value := decimal.NewFromInt(15750)
	invested := decimal.NewFromInt(14000)
	if err := r.AppendHistory(ctx, day, value, invested); err != nil {
		t.Fatalf("append history failed: %v", err)
	}

	points, err := r.GetHistory(ctx, day.Add(-time.Hour))
	if err != nil {
		t.Fatalf("get history failed: %v", err)
	}
	if len(points) == 0 {
		t.Fatalf("expected at least one history point")
	}
	last := points[len(points)-1]
	if last.Date != day.Format("2006-01-02") {
		t.Fatalf("expected date %s, got %s", day.Format("2006-01-02"), last.Date)
	}
	if !last.ProfitLoss.Equal(decimal.NewFromInt(1750)) {
		t.Fatalf("expected profit 1750, got %s", last.ProfitLoss)
	}

	for i := 1; i < len(points); i++ {
		if points[i-1].Date > points[i].Date {
			t.Fatalf("history not ascending: %v", points)
		}
	}
}
