package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/dto"
	"github.com/tillpoint/cashbook_app/internal/middleware"
)

// summaryHandler handles aggregation reads.
type summaryHandler struct {
	summaryService portssvc.SummarySvcFacade
}

func newSummaryHandler(ss portssvc.SummarySvcFacade) *summaryHandler {
	return &summaryHandler{summaryService: ss}
}

// registerSummaryRoutes registers the summary route.
func registerSummaryRoutes(rg *gin.RouterGroup, summaryService portssvc.SummarySvcFacade) {
	h := newSummaryHandler(summaryService)

	rg.GET("/summary", h.getSummary)
}

// getSummary rebuilds category totals and the running balance from the
// engine's entries in the external system.
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var q dto.SummaryQuery
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		q.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		q.To = t
	}
	switch c.Query("state") {
	case "":
		// both
	case string(domain.EntryDraft):
		q.State = domain.EntryDraft
	case string(domain.EntryPosted):
		q.State = domain.EntryPosted
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be draft or posted"})
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), tenantID, q)
	if err != nil {
		if errors.Is(err, apperrors.ErrLedgerUnavailable) {
			logger.Error("Ledger system unavailable during summary", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
