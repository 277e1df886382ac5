package database

import (
	"time"

	"github.com/shopspring/decimal"

	"cleartrack/internal/models"
)

// holdingRow scans numeric columns as text so decimal parsing stays
// explicit.
type holdingRow struct {
	ID            string    `db:"id"`
	Ticker        string    `db:"ticker"`
	Shares        string    `db:"shares"`
	PurchasePrice string    `db:"purchase_price"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r holdingRow) toModel() (models.Holding, error) {
	shares, err := decimal.NewFromString(r.Shares)
	if err != nil {
		return models.Holding{}, err
	}
	price, err := decimal.NewFromString(r.PurchasePrice)
	if err != nil {
		return models.Holding{}, err
	}
	return models.Holding{
		ID:            r.ID,
		Ticker:        r.Ticker,
		Shares:        shares,
		PurchasePrice: price,
		CreatedAt:     r.CreatedAt,
	}, nil
}
