package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cleartrack/internal/models"
)

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

func (r *Repo) CreateHolding(ctx context.Context, ticker string, shares, purchasePrice decimal.Decimal) (models.Holding, error) {
	var h models.Holding
	q := `INSERT INTO holdings (id, ticker, shares, purchase_price, created_at)
	      VALUES (gen_random_uuid(), $1, $2::numeric, $3::numeric, now())
	      RETURNING id, ticker, created_at`
	if err := r.db.QueryRowContext(ctx, q, ticker, shares.String(), purchasePrice.String()).Scan(&h.ID, &h.Ticker, &h.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("duplicate holding id for %s: %v", ticker, err)
		}
		return models.Holding{}, err
	}
	h.Shares = shares
	h.PurchasePrice = purchasePrice
	return h, nil
}

func (r *Repo) DeleteHolding(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repo) GetHolding(ctx context.Context, id string) (models.Holding, error) {
	var row holdingRow
	err := r.db.GetContext(ctx, &row, `SELECT id, ticker, shares::text AS shares, purchase_price::text AS purchase_price, created_at FROM holdings WHERE id = $1`, id)
	if err != nil {
		return models.Holding{}, err
	}
	return row.toModel()
}

func (r *Repo) GetHoldings(ctx context.Context) ([]models.Holding, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT id, ticker, shares::text AS shares, purchase_price::text AS purchase_price, created_at FROM holdings ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.Holding{}
	for rows.Next() {
		var row holdingRow
		if err := rows.StructScan(&row); err != nil {
			r.log.Warnf("scan holding failed: %v", err)
			continue
		}
		h, err := row.toModel()
		if err != nil {
			r.log.Warnf("decode holding %s failed: %v", row.ID, err)
			continue
		}
		res = append(res, h)
	}
	return res, nil
}

func (r *Repo) GetLatestPrice(ctx context.Context, ticker string) (decimal.Decimal, time.Time, error) {
	var priceStr string
	var ts time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT price, ts FROM price_history WHERE symbol = $1 ORDER BY ts DESC LIMIT 1`, ticker).Scan(&priceStr, &ts); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	p, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return p, ts, nil
}

func (r *Repo) UpsertPrice(ctx context.Context, ticker string, price decimal.Decimal, ts time.Time) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO price_history (symbol, price, ts) VALUES ($1, $2::numeric, $3)`, ticker, price.StringFixed(4), ts)
	return err
}

func (r *Repo) GetAllSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT symbol FROM stocks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			r.log.Warnf("scan symbol failed: %v", err)
			continue
		}
		res = append(res, s)
	}
	return res, nil
}

func (r *Repo) StockExists(ctx context.Context, symbol string) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM stocks WHERE symbol = $1`, symbol)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) EnsureStockExists(ctx context.Context, symbol, name string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO stocks (symbol, name) VALUES ($1, $2) ON CONFLICT (symbol) DO NOTHING`, symbol, name)
	return err
}

// AppendHistory records one portfolio valuation row; the snapshot job
// calls this once per run.
func (r *Repo) AppendHistory(ctx context.Context, date time.Time, totalValue, totalInvested decimal.Decimal) error {
	pl := totalValue.Sub(totalInvested)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO portfolio_history (id, date, total_value, total_invested, profit_loss)
		 VALUES (gen_random_uuid(), $1, $2::numeric, $3::numeric, $4::numeric)`,
		date, totalValue.StringFixed(4), totalInvested.StringFixed(4), pl.StringFixed(4))
	return err
}

// GetHistory returns profit/loss points since the given time, ascending
// by date.
func (r *Repo) GetHistory(ctx context.Context, since time.Time) ([]models.HistoryPoint, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT date, profit_loss::text FROM portfolio_history WHERE date >= $1 ORDER BY date ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []models.HistoryPoint{}
	for rows.Next() {
		var date time.Time
		var plStr string
		if err := rows.Scan(&date, &plStr); err != nil {
			r.log.Warnf("scan history row failed: %v", err)
			continue
		}
		pl, err := decimal.NewFromString(plStr)
		if err != nil {
			r.log.Warnf("decode history profit_loss failed: %v", err)
			continue
		}
		res = append(res, models.HistoryPoint{Date: date.UTC().Format("2006-01-02"), ProfitLoss: pl})
	}
	return res, nil
}
