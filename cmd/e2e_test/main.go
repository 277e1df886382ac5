package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cleartrack/internal/models"
	"cleartrack/internal/portfolio"
	"cleartrack/internal/remote"
)

func main() {
	_ = godotenv.Load()
	baseURL := os.Getenv("CLEARTRACK_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)
	checkHealth(baseURL)

	logger := logrus.New()
	client := remote.NewHTTPClient(
		remote.WithBaseURL(baseURL),
		remote.WithLogger(logger),
		remote.WithTimeout(10*time.Second),
	)
	ctrl := portfolio.NewController(client, logger)

	ctx := context.Background()
	if err := ctrl.Load(ctx); err != nil {
		log.Fatalf("initial load failed: %v", err)
	}
	fmt.Printf("Loaded %d holdings\n", len(ctrl.Holdings()))

	// 1. Invalid ticker must be rejected without touching local state
	before := len(ctrl.Holdings())
	_, err := ctrl.AddHolding(ctx, models.HoldingDraft{
		Ticker:        "ZZZZ",
		Shares:        decimal.NewFromInt(1),
		PurchasePrice: decimal.NewFromInt(1),
	})
	if err == nil {
		log.Fatalf("expected invalid ticker rejection")
	}
	if len(ctrl.Holdings()) != before {
		log.Fatalf("store changed on rejected add")
	}
	fmt.Println("Invalid ticker rejected")

	// 2. Add a real holding through the optimistic-sync path
	h, err := ctrl.AddHolding(ctx, models.HoldingDraft{
		Ticker:        "aapl",
		Shares:        decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(150),
	})
	if err != nil {
		log.Fatalf("add holding failed: %v", err)
	}
	fmt.Printf("Created holding %s (%s @ %s)\n", h.ID, h.Ticker, h.CurrentPrice.StringFixed(4))

	sum := ctrl.Summary()
	fmt.Printf("Summary: invested=%s value=%s count=%d\n",
		sum.TotalInvested.StringFixed(4), sum.CurrentValue.StringFixed(4), sum.HoldingsCount)

	// 3. History fetch (empty is fine on a fresh database)
	series := portfolio.NewHistorySeries(client)
	points, err := series.Fetch(ctx)
	if err != nil {
		log.Fatalf("history fetch failed: %v", err)
	}
	fmt.Printf("History points: %d\n", len(points))

	// 4. Delete it again; round trip must restore the original count
	if err := ctrl.DeleteHolding(ctx, h.ID); err != nil {
		log.Fatalf("delete holding failed: %v", err)
	}
	if len(ctrl.Holdings()) != before {
		log.Fatalf("round trip did not restore holding count")
	}
	fmt.Println("Round trip add/delete OK")

	fmt.Println("ALL TESTS PASSED")
}

func checkHealth(baseURL string) {
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		log.Fatalf("health check failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		log.Fatalf("health check status %d", resp.StatusCode)
	}
	fmt.Println("Server healthy")
}
