package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/paperdesk/internal/repository/catalog"
	"github.com/mamadbah2/paperdesk/internal/service/ordering"
	"github.com/mamadbah2/paperdesk/internal/service/orchestrator"
	"github.com/mamadbah2/paperdesk/internal/service/projection"
	"github.com/mamadbah2/paperdesk/internal/service/quoting"
)

// APIHandler adapts the core services to HTTP.
type APIHandler struct {
	orchestrator *orchestrator.Service
	projection   *projection.Service
	quoting      *quoting.Service
	ordering     *ordering.Service
	logger       *zap.Logger
}

// NewAPIHandler constructs the HTTP handler adapter.
func NewAPIHandler(orch *orchestrator.Service, proj *projection.Service, quote *quoting.Service, order *ordering.Service, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{
		orchestrator: orch,
		projection:   proj,
		quoting:      quote,
		ordering:     order,
		logger:       logger,
	}
}

type customerRequest struct {
	Request string `json:"request" binding:"required"`
	Date    string `json:"date"`
}

// HandleRequest runs the full natural-language request pipeline.
func (h *APIHandler) HandleRequest(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid request payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date := h.ordering.ParseDate(req.Date)

	response, err := h.orchestrator.HandleRequest(c.Request.Context(), req.Request, date)
	switch {
	case errors.Is(err, orchestrator.ErrNoItemsParsed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"response": response, "error": "request could not be parsed"})
	case errors.Is(err, orchestrator.ErrUnavailableItems):
		c.JSON(http.StatusConflict, gin.H{"response": response, "error": "order rejected"})
	case err != nil:
		h.logger.Error("request pipeline failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
	default:
		c.JSON(http.StatusOK, gin.H{"response": response})
	}
}

// Report returns the point-in-time financial report.
func (h *APIHandler) Report(c *gin.Context) {
	date := h.ordering.ParseDate(c.Query("date"))
	c.JSON(http.StatusOK, h.projection.FinancialReport(c.Request.Context(), date))
}

// Stock returns the net stock level for one item.
func (h *APIHandler) Stock(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item query parameter is required"})
		return
	}

	date := h.ordering.ParseDate(c.Query("date"))
	c.JSON(http.StatusOK, gin.H{
		"item_name":     item,
		"current_stock": h.projection.StockLevel(c.Request.Context(), item, date),
	})
}

// RestockCheck reports whether an item sits below its catalog minimum stock
// level.
func (h *APIHandler) RestockCheck(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item query parameter is required"})
		return
	}

	date := h.ordering.ParseDate(c.Query("date"))

	needed, err := h.projection.NeedsRestock(c.Request.Context(), item, date)
	if errors.Is(err, catalog.ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found in catalog"})
		return
	}
	if err != nil {
		h.logger.Error("restock check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check restock level"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_name":     item,
		"current_stock": h.projection.StockLevel(c.Request.Context(), item, date),
		"needs_restock": needed,
	})
}

// Inventory returns all items with strictly positive stock.
func (h *APIHandler) Inventory(c *gin.Context) {
	date := h.ordering.ParseDate(c.Query("date"))
	c.JSON(http.StatusOK, h.projection.AllStock(c.Request.Context(), date))
}

// QuoteHistory searches the historical quote corpus.
func (h *APIHandler) QuoteHistory(c *gin.Context) {
	var terms []string
	if q := c.Query("q"); q != "" {
		terms = strings.Split(q, ",")
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = parsed
	}

	quotes, err := h.quoting.SearchHistory(c.Request.Context(), terms, limit)
	if err != nil {
		h.logger.Error("quote history search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search quote history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes})
}

type restockRequest struct {
	ItemName string `json:"item_name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Date     string `json:"date"`
}

// Restock places a supplier stock order for one item.
func (h *APIHandler) Restock(c *gin.Context) {
	var req restockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid restock payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	date := h.ordering.ParseDate(req.Date)

	result, err := h.ordering.Restock(c.Request.Context(), req.ItemName, req.Quantity, date)
	switch {
	case errors.Is(err, catalog.ErrItemNotFound):
		c.JSON(http.StatusNotFound, result)
	case errors.Is(err, ordering.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, result)
	case err != nil:
		h.logger.Error("restock failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restock"})
	default:
		c.JSON(http.StatusOK, result)
	}
}
