package portfolio

import (
	"github.com/shopspring/decimal"

	"cleartrack/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Metrics holds the derived profit/loss figures for a single holding or
// for the portfolio as a whole.
type Metrics struct {
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}

// MetricsFor derives profit/loss for one holding. A zero cost basis cannot
// happen for holdings created through the Controller, but a defective
// record must surface ErrDegenerateMetric instead of an undefined number.
func MetricsFor(h models.Holding) (Metrics, error) {
	return metrics(h.CurrentValue(), h.TotalCost())
}

func metrics(currentValue, totalCost decimal.Decimal) (Metrics, error) {
	if totalCost.IsZero() {
		return Metrics{}, ErrDegenerateMetric
	}
	pl := currentValue.Sub(totalCost)
	return Metrics{
		ProfitLoss:        pl,
		ProfitLossPercent: pl.Div(totalCost).Mul(hundred),
	}, nil
}
