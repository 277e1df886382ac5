package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cleartrack/internal/database"
	"cleartrack/internal/models"
	"cleartrack/internal/portfolio"
	"cleartrack/internal/service"
)

const historyWindow = 30 * 24 * time.Hour

type Handler struct {
	repo     *database.Repo
	priceSvc service.PriceProvider
	snapshot *service.SnapshotService
	log      *logrus.Logger
}

func NewHandler(r *database.Repo, p service.PriceProvider, s *service.SnapshotService, log *logrus.Logger) *Handler {
	return &Handler{repo: r, priceSvc: p, snapshot: s, log: log}
}

type createHoldingRequest struct {
	Ticker        string `json:"ticker" binding:"required"`
	Shares        string `json:"shares" binding:"required"`
	PurchasePrice string `json:"purchase_price" binding:"required"`
}

type holdingResponse struct {
	ID            string          `json:"id"`
	Ticker        string          `json:"ticker"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toResponse(h models.Holding) holdingResponse {
	return holdingResponse{
		ID:            h.ID,
		Ticker:        h.Ticker,
		Shares:        h.Shares,
		PurchasePrice: h.PurchasePrice,
		CurrentPrice:  h.CurrentPrice,
		CurrentValue:  h.CurrentValue(),
		TotalCost:     h.TotalCost(),
		CreatedAt:     h.CreatedAt,
	}
}

// priced attaches the latest price to every stored holding.
func (h *Handler) priced(ctx context.Context, holdings []models.Holding) []models.Holding {
	for i := range holdings {
		price, _, err := h.priceSvc.GetPrice(ctx, holdings[i].Ticker)
		if err != nil {
			h.log.Warnf("price for %s failed: %v", holdings[i].Ticker, err)
			continue
		}
		holdings[i].CurrentPrice = price
	}
	return holdings
}

func (h *Handler) GetHoldings(c *gin.Context) {
	holdings, err := h.repo.GetHoldings(c.Request.Context())
	if err != nil {
		h.log.Errorf("get holdings failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	holdings = h.priced(c.Request.Context(), holdings)
	res := make([]holdingResponse, 0, len(holdings))
	for _, e := range holdings {
		res = append(res, toResponse(e))
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateHolding(c *gin.Context) {
	var req createHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid post body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shares, err := decimal.NewFromString(req.Shares)
	if err != nil || shares.Cmp(decimal.Zero) <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "shares must be a positive number"})
		return
	}
	price, err := decimal.NewFromString(req.PurchasePrice)
	if err != nil || price.Cmp(decimal.Zero) <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "purchase_price must be a positive number"})
		return
	}

	ctx := c.Request.Context()
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))

	current, _, err := h.priceSvc.GetPrice(ctx, ticker)
	if err != nil {
		h.log.Errorf("price fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "price fetch failed"})
		return
	}
	if current.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticker symbol"})
		return
	}

	created, err := h.repo.CreateHolding(ctx, ticker, shares, price)
	if err != nil {
		h.log.Errorf("create holding failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	created.CurrentPrice = current
	c.JSON(http.StatusCreated, toResponse(created))
}

func (h *Handler) DeleteHolding(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.repo.DeleteHolding(c.Request.Context(), id)
	if err != nil {
		h.log.Errorf("delete holding failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "holding not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "holding deleted"})
}

func (h *Handler) GetSummary(c *gin.Context) {
	holdings, err := h.repo.GetHoldings(c.Request.Context())
	if err != nil {
		h.log.Errorf("get holdings failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	holdings = h.priced(c.Request.Context(), holdings)

	sum := portfolio.Summarize(holdings)
	pl := decimal.Zero
	plPercent := decimal.Zero
	if m, err := portfolio.SummaryMetrics(sum); err == nil {
		pl = m.ProfitLoss
		plPercent = m.ProfitLossPercent
	}
	c.JSON(http.StatusOK, gin.H{
		"total_invested":      sum.TotalInvested,
		"current_value":       sum.CurrentValue,
		"holdings_count":      sum.HoldingsCount,
		"profit_loss":         pl,
		"profit_loss_percent": plPercent,
	})
}

func (h *Handler) GetHistory(c *gin.Context) {
	since := time.Now().UTC().Add(-historyWindow)
	points, err := h.repo.GetHistory(c.Request.Context(), since)
	if err != nil {
		h.log.Errorf("get history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *Handler) GetCurrentPrice(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	price, _, err := h.priceSvc.GetPrice(c.Request.Context(), ticker)
	if err != nil {
		h.log.Errorf("price fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "price fetch failed"})
		return
	}
	if price.IsZero() {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticker not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker, "price": price})
}

func (h *Handler) TriggerSnapshot(c *gin.Context) {
	if err := h.snapshot.Run(c.Request.Context()); err != nil {
		h.log.Errorf("snapshot failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "snapshot failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "snapshot completed"})
}
