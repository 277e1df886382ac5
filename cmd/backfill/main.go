package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Seeds demo stocks, a holding and yesterday's prices so the history
// endpoint has something to chart on a fresh database.
func main() {
	godotenv.Load()
	dbURL := os.Getenv("POSTGRES_URL")
	if dbURL == "" {
		log.Fatal("POSTGRES_URL is required")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	yesterday := time.Now().AddDate(0, 0, -1).UTC().Truncate(24 * time.Hour)

	fmt.Printf("Backfilling demo data for %s...\n", yesterday.Format("2006-01-02"))

	prices := map[string]string{
		"AAPL": "175.50",
		"MSFT": "402.75",
		"GOOG": "141.25",
	}
	for sym, p := range prices {
		if _, err := db.ExecContext(ctx, `INSERT INTO stocks (symbol, name) VALUES ($1, $1) ON CONFLICT (symbol) DO NOTHING`, sym); err != nil {
			fmt.Printf("Warning: could not insert stock %s: %v\n", sym, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO price_history (symbol, price, ts) VALUES ($1, $2::numeric, $3)`, sym, p, yesterday); err != nil {
			fmt.Printf("Warning: could not insert price for %s: %v\n", sym, err)
		}
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO holdings (id, ticker, shares, purchase_price, created_at)
		VALUES (gen_random_uuid(), 'AAPL', 10::numeric, 150::numeric, $1)`,
		yesterday)
	if err != nil {
		fmt.Printf("Warning: could not insert holding: %v\n", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO portfolio_history (id, date, total_value, total_invested, profit_loss)
		VALUES (gen_random_uuid(), $1, 1755::numeric, 1500::numeric, 255::numeric)`,
		yesterday)
	if err != nil {
		fmt.Printf("Warning: could not insert history row: %v\n", err)
	}

	fmt.Println("Successfully backfilled yesterday's data!")
}
