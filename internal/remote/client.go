// Package remote defines the boundary to the backend service that
// persists holdings and supplies live prices. The core consumes the
// Client interface only; the HTTP implementation lives alongside it.
package remote

import (
	"context"

	"github.com/shopspring/decimal"

	"cleartrack/internal/models"
)

// Client is the only I/O surface the portfolio core talks to.
type Client interface {
	// ListHoldings retrieves all persisted holdings.
	ListHoldings(ctx context.Context) ([]models.Holding, error)

	// CreateHolding persists a new holding and returns the created record
	// with the remote-assigned id.
	CreateHolding(ctx context.Context, draft models.HoldingDraft) (models.Holding, error)

	// DeleteHolding removes a persisted holding by id.
	DeleteHolding(ctx context.Context, id string) error

	// Summary retrieves the remote portfolio summary.
	Summary(ctx context.Context) (models.PortfolioSummary, error)

	// History retrieves the portfolio profit/loss time series.
	History(ctx context.Context) ([]models.HistoryPoint, error)

	// CurrentPrice resolves the latest price for a ticker. A zero price
	// means the ticker is unresolvable; it is not an error at this layer.
	CurrentPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}
