package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one recorded position in a single ticker.
type Holding struct {
	ID            string          `db:"id" json:"id"`
	Ticker        string          `db:"ticker" json:"ticker"`
	Shares        decimal.Decimal `db:"shares" json:"shares"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	CurrentPrice  decimal.Decimal `db:"current_price" json:"current_price"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// TotalCost is shares * purchase price, recomputed on every read.
func (h Holding) TotalCost() decimal.Decimal {
	return h.Shares.Mul(h.PurchasePrice)
}

// CurrentValue is shares * current price, recomputed on every read.
func (h Holding) CurrentValue() decimal.Decimal {
	return h.Shares.Mul(h.CurrentPrice)
}

// HoldingDraft is the caller-supplied input for a new holding; the current
// price and id are resolved during creation.
type HoldingDraft struct {
	Ticker        string          `json:"ticker"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

type PortfolioSummary struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	HoldingsCount int             `json:"holdings_count"`
}

// HistoryPoint is one entry of the portfolio profit/loss time series.
// Date is a calendar date formatted 2006-01-02, sortable as a string.
type HistoryPoint struct {
	Date       string          `db:"date" json:"date"`
	ProfitLoss decimal.Decimal `db:"profit_loss" json:"profit_loss"`
}
