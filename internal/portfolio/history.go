package portfolio

import (
	"context"
	"fmt"
	"sort"

	"cleartrack/internal/models"
	"cleartrack/internal/remote"
)

// HistorySeries exposes the remote portfolio profit/loss time series,
// normalized for charting. Read-only; nothing here mutates local state.
type HistorySeries struct {
	client remote.Client
}

func NewHistorySeries(client remote.Client) *HistorySeries {
	return &HistorySeries{client: client}
}

// Fetch returns the series sorted ascending by date. An empty series is a
// valid result and distinct from a fetch failure.
func (s *HistorySeries) Fetch(ctx context.Context) ([]models.HistoryPoint, error) {
	points, err := s.client.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch history: %v", ErrRemoteUnavailable, err)
	}
	if points == nil {
		points = []models.HistoryPoint{}
	}
	// dates are 2006-01-02 strings, so lexicographic order is date order
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points, nil
}
