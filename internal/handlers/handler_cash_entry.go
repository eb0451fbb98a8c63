package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/cashbook_app/internal/apperrors"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/core/services"
	"github.com/tillpoint/cashbook_app/internal/dto"
	"github.com/tillpoint/cashbook_app/internal/middleware"
)

// cashEntryHandler handles batch posting of categorized cash amounts.
type cashEntryHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newCashEntryHandler(ps portssvc.PostingSvcFacade) *cashEntryHandler {
	return &cashEntryHandler{postingService: ps}
}

// registerCashEntryRoutes registers the posting route.
func registerCashEntryRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newCashEntryHandler(postingService)

	rg.POST("/cash-entries", h.createCashEntries)
}

// createCashEntries posts one dated submission. Partial failure is a 200
// with the error list; total failure is a 422.
func (h *cashEntryHandler) createCashEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var req dto.CreateCashEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCashEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	submission, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.postingService.PostSubmission(c.Request.Context(), tenantID, submission)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotConfigured):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoLinesPosted):
			// Nothing was created; hand the per-line reasons back.
			c.JSON(http.StatusUnprocessableEntity, dto.ToPostingResponse(result))
		case errors.Is(err, apperrors.ErrLedgerUnavailable):
			logger.Error("Ledger system unavailable during posting", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post submission", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post cash entries"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(result))
}
