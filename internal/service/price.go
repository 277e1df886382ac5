package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cleartrack/internal/database"
)

const priceFreshness = 15 * time.Minute

type PriceProvider interface {
	// GetPrice resolves the latest price for a symbol. A zero price means
	// the symbol is not a known stock.
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error)
	Start(ctx context.Context, interval time.Duration)
}

// QuoteSource supplies raw quotes for known symbols; swappable so the
// service can run against a real feed or the built-in pseudo feed.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// RandomQuoteSource generates walk-less pseudo quotes in a fixed band.
type RandomQuoteSource struct{}

func (RandomQuoteSource) Quote(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.NewFromFloat(50 + rand.Float64()*(5000-50)), nil
}

type PriceService struct {
	repo   *database.Repo
	source QuoteSource
	log    *logrus.Logger
}

func NewPriceService(r *database.Repo, source QuoteSource, log *logrus.Logger) *PriceService {
	return &PriceService{repo: r, source: source, log: log}
}

// GetPrice serves from price_history when fresh, otherwise quotes and
// caches. Unknown symbols resolve to zero so the caller can reject the
// ticker.
func (p *PriceService) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	known, err := p.repo.StockExists(ctx, symbol)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	if !known {
		return decimal.Zero, time.Time{}, nil
	}

	price, ts, err := p.repo.GetLatestPrice(ctx, symbol)
	if err == nil && time.Since(ts) < priceFreshness {
		return price, ts, nil
	}

	val, err := p.source.Quote(ctx, symbol)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	now := time.Now().UTC()
	if err := p.repo.UpsertPrice(ctx, symbol, val, now); err != nil {
		p.log.Warnf("cache price for %s failed: %v", symbol, err)
	}
	return val, now, nil
}

// Start refreshes quotes for all known symbols on an interval until the
// context is canceled.
func (p *PriceService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.log.Info("price updater stopping")
				return
			case <-ticker.C:
				symbols, err := p.repo.GetAllSymbols(ctx)
				if err != nil {
					p.log.Warnf("failed to fetch symbols: %v", err)
					continue
				}
				for _, s := range symbols {
					val, err := p.source.Quote(ctx, s)
					if err != nil {
						p.log.Warnf("quote %s failed: %v", s, err)
						continue
					}
					_ = p.repo.UpsertPrice(ctx, s, val, time.Now().UTC())
				}
			}
		}
	}()
}
