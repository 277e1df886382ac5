package portfolio

import (
	"cleartrack/internal/models"
)

// Summarize derives the portfolio-level totals from a set of holdings.
// An empty portfolio summarizes to zeros; that is well-defined, not an
// error.
func Summarize(holdings []models.Holding) models.PortfolioSummary {
	var sum models.PortfolioSummary
	for _, h := range holdings {
		sum.TotalInvested = sum.TotalInvested.Add(h.TotalCost())
		sum.CurrentValue = sum.CurrentValue.Add(h.CurrentValue())
	}
	sum.HoldingsCount = len(holdings)
	return sum
}

// SummaryMetrics derives aggregate profit/loss from a summary, applying
// the same zero-basis rule as per-holding metrics.
func SummaryMetrics(sum models.PortfolioSummary) (Metrics, error) {
	return metrics(sum.CurrentValue, sum.TotalInvested)
}
