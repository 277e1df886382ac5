package portfolio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cleartrack/internal/models"
	"cleartrack/internal/remote"
)

const DefaultRemoteTimeout = 10 * time.Second

// Controller mediates every write to the holdings store. A mutation is
// validated, applied optimistically, then confirmed against the remote
// service; if the remote call fails or times out, the local change is
// rolled back and the store is exactly its pre-call state again.
type Controller struct {
	store     *Store
	client    remote.Client
	validator *Validator
	log       *logrus.Logger
	timeout   time.Duration

	mu       sync.Mutex
	cond     *sync.Cond
	inflight map[string]struct{}
}

type ControllerOption func(*Controller)

// WithRemoteTimeout bounds each remote confirm call.
func WithRemoteTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) { c.timeout = d }
}

func NewController(client remote.Client, log *logrus.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:     NewStore(),
		client:    client,
		validator: NewValidator(client),
		log:       log,
		timeout:   DefaultRemoteTimeout,
		inflight:  map[string]struct{}{},
	}
	c.cond = sync.NewCond(&c.mu)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the store contents with the remote holdings list. Meant
// for startup synchronization, before any local mutation is in flight.
func (c *Controller) Load(ctx context.Context) error {
	holdings, err := c.client.ListHoldings(ctx)
	if err != nil {
		return fmt.Errorf("%w: list holdings: %v", ErrRemoteUnavailable, err)
	}
	c.store.Reset(holdings)
	return nil
}

// Holdings returns the current holdings in insertion order.
func (c *Controller) Holdings() []models.Holding {
	return c.store.List()
}

func (c *Controller) Holding(id string) (models.Holding, error) {
	return c.store.Get(id)
}

// Summary is recomputed from the store on every call; it never drifts.
func (c *Controller) Summary() models.PortfolioSummary {
	return Summarize(c.store.List())
}

func (c *Controller) HoldingMetrics(id string) (Metrics, error) {
	h, err := c.store.Get(id)
	if err != nil {
		return Metrics{}, err
	}
	return MetricsFor(h)
}

type addResult struct {
	holding models.Holding
	err     error
}

// AddHolding validates the draft, inserts it optimistically and confirms
// it with the remote service. On confirmation the remote-assigned id
// replaces the local one. If the caller abandons the context, the
// in-flight confirm still resolves and the store is never left
// indeterminate.
func (c *Controller) AddHolding(ctx context.Context, draft models.HoldingDraft) (models.Holding, error) {
	if draft.Shares.Cmp(decimal.Zero) <= 0 || draft.PurchasePrice.Cmp(decimal.Zero) <= 0 {
		return models.Holding{}, ErrInvalidHolding
	}

	sym := NormalizeTicker(draft.Ticker)
	price, err := c.validator.Validate(ctx, sym)
	if err != nil {
		return models.Holding{}, err
	}

	h := models.Holding{
		ID:            uuid.NewString(),
		Ticker:        sym,
		Shares:        draft.Shares,
		PurchasePrice: draft.PurchasePrice,
		CurrentPrice:  price,
		CreatedAt:     time.Now().UTC(),
	}

	c.acquire(h.ID)
	if err := c.store.Add(h); err != nil {
		c.release(h.ID)
		return models.Holding{}, err
	}

	results := make(chan addResult, 1)
	go func() {
		defer c.release(h.ID)
		rctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		created, err := c.client.CreateHolding(rctx, models.HoldingDraft{
			Ticker:        sym,
			Shares:        draft.Shares,
			PurchasePrice: draft.PurchasePrice,
		})
		if err != nil {
			if _, _, rbErr := c.store.Remove(h.ID); rbErr != nil {
				c.log.Errorf("rollback of optimistic add %s failed: %v", h.ID, rbErr)
			}
			results <- addResult{err: fmt.Errorf("%w: create %s: %v", ErrRemoteUnavailable, sym, err)}
			return
		}

		// the remote id wins once the write is confirmed
		final := h
		if created.ID != "" && created.ID != h.ID {
			if err := c.store.ReplaceID(h.ID, created.ID); err != nil {
				c.log.Warnf("id reconciliation %s -> %s failed: %v", h.ID, created.ID, err)
			} else {
				final.ID = created.ID
			}
		}
		results <- addResult{holding: final}
	}()

	select {
	case r := <-results:
		return r.holding, r.err
	case <-ctx.Done():
		return models.Holding{}, ctx.Err()
	}
}

// DeleteHolding removes a holding optimistically and confirms the delete
// remotely. On failure the retained holding is reinserted at its original
// position.
func (c *Controller) DeleteHolding(ctx context.Context, id string) error {
	c.acquire(id)

	h, idx, err := c.store.Remove(id)
	if err != nil {
		c.release(id)
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer c.release(id)
		rctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.client.DeleteHolding(rctx, id); err != nil {
			if rbErr := c.store.Insert(h, idx); rbErr != nil {
				c.log.Errorf("rollback of optimistic delete %s failed: %v", id, rbErr)
			}
			done <- fmt.Errorf("%w: delete %s: %v", ErrRemoteUnavailable, id, err)
			return
		}
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// acquire blocks until no other mutation on the same id is in flight.
// Mutations on distinct ids proceed concurrently.
func (c *Controller) acquire(id string) {
	c.mu.Lock()
	for {
		if _, busy := c.inflight[id]; !busy {
			break
		}
		c.cond.Wait()
	}
	c.inflight[id] = struct{}{}
	c.mu.Unlock()
}

func (c *Controller) release(id string) {
	c.mu.Lock()
	delete(c.inflight, id)
	c.cond.Broadcast()
	c.mu.Unlock()
}
