package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"cleartrack/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// HTTPClient implements Client against the ClearTrack HTTP API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
	limiter    *rate.Limiter
}

type Option func(*HTTPClient)

func WithBaseURL(baseURL string) Option {
	return func(c *HTTPClient) { c.baseURL = baseURL }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = timeout }
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *HTTPClient) { c.log = log }
}

func WithRateLimit(requestsPerSecond int) Option {
	return func(c *HTTPClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		log:        logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cleartrack api error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debugf("remote %s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: string(msg), Endpoint: path}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) ListHoldings(ctx context.Context) ([]models.Holding, error) {
	var out []models.Holding
	if err := c.do(ctx, http.MethodGet, "/api/holdings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateHolding(ctx context.Context, draft models.HoldingDraft) (models.Holding, error) {
	var out models.Holding
	if err := c.do(ctx, http.MethodPost, "/api/holdings", draft, &out); err != nil {
		return models.Holding{}, err
	}
	return out, nil
}

func (c *HTTPClient) DeleteHolding(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/holdings/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Summary(ctx context.Context) (models.PortfolioSummary, error) {
	var out models.PortfolioSummary
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/summary", nil, &out); err != nil {
		return models.PortfolioSummary{}, err
	}
	return out, nil
}

func (c *HTTPClient) History(ctx context.Context) ([]models.HistoryPoint, error) {
	var out []models.HistoryPoint
	if err := c.do(ctx, http.MethodGet, "/api/portfolio/history", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type priceResponse struct {
	Ticker string          `json:"ticker"`
	Price  decimal.Decimal `json:"price"`
}

func (c *HTTPClient) CurrentPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	var out priceResponse
	err := c.do(ctx, http.MethodGet, "/api/prices/current/"+url.PathEscape(ticker), nil, &out)
	if err != nil {
		// the backend answers 404 for an unresolvable ticker; report that
		// as an absent price, not a transport failure
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return out.Price, nil
}
