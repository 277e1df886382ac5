package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"cleartrack/internal/remote"
)

// NormalizeTicker maps equivalent spellings ("aapl", " AAPL ") onto one
// symbol so they share a holding identity space.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Validator confirms a ticker is resolvable before a holding may be
// created.
type Validator struct {
	client remote.Client
}

func NewValidator(client remote.Client) *Validator {
	return &Validator{client: client}
}

// Validate normalizes the ticker and resolves its current price. An
// absent or non-positive price fails with ErrInvalidTicker; a transport
// failure surfaces as ErrRemoteUnavailable.
func (v *Validator) Validate(ctx context.Context, ticker string) (decimal.Decimal, error) {
	sym := NormalizeTicker(ticker)
	if sym == "" {
		return decimal.Zero, fmt.Errorf("%w: empty symbol", ErrInvalidTicker)
	}
	price, err := v.client.CurrentPrice(ctx, sym)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price lookup for %s: %v", ErrRemoteUnavailable, sym, err)
	}
	if price.Cmp(decimal.Zero) <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidTicker, sym)
	}
	return price, nil
}
