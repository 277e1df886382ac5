package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cleartrack/internal/database"
)

// SnapshotService records a price snapshot for every holding and appends
// one portfolio_history valuation row per run.
type SnapshotService struct {
	repo   *database.Repo
	prices PriceProvider
	log    *logrus.Logger
}

func NewSnapshotService(r *database.Repo, prices PriceProvider, log *logrus.Logger) *SnapshotService {
	return &SnapshotService{repo: r, prices: prices, log: log}
}

func (s *SnapshotService) Run(ctx context.Context) error {
	holdings, err := s.repo.GetHoldings(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	totalValue := decimal.Zero
	totalInvested := decimal.Zero
	for _, h := range holdings {
		price, _, err := s.prices.GetPrice(ctx, h.Ticker)
		if err != nil {
			s.log.Warnf("snapshot price for %s failed: %v", h.Ticker, err)
			continue
		}
		if err := s.repo.UpsertPrice(ctx, h.Ticker, price, now); err != nil {
			s.log.Warnf("snapshot upsert for %s failed: %v", h.Ticker, err)
		}
		totalValue = totalValue.Add(h.Shares.Mul(price))
		totalInvested = totalInvested.Add(h.Shares.Mul(h.PurchasePrice))
	}

	return s.repo.AppendHistory(ctx, now, totalValue, totalInvested)
}

// Start runs the snapshot job on an interval until the context is
// canceled.
func (s *SnapshotService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.log.Info("snapshot job stopping")
				return
			case <-ticker.C:
				if err := s.Run(ctx); err != nil {
					s.log.Warnf("snapshot run failed: %v", err)
				}
			}
		}
	}()
}
