package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/cashbook_app/internal/apperrors"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/dto"
	"github.com/tillpoint/cashbook_app/internal/middleware"
)

// setupHandler handles auto setup and account mapping requests.
type setupHandler struct {
	setupService portssvc.SetupSvcFacade
}

func newSetupHandler(ss portssvc.SetupSvcFacade) *setupHandler {
	return &setupHandler{setupService: ss}
}

// registerSetupRoutes registers setup and mapping routes.
func registerSetupRoutes(rg *gin.RouterGroup, setupService portssvc.SetupSvcFacade) {
	h := newSetupHandler(setupService)

	rg.POST("/setup", h.runSetup)
	mapping := rg.Group("/mapping")
	{
		mapping.GET("", h.getMapping)
		mapping.PUT("", h.updateMapping)
	}
}

// runSetup discovers journals/accounts in the external ledger and persists a
// fresh mapping, overwriting any existing one for the tenant.
func (h *setupHandler) runSetup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	result, err := h.setupService.RunAutoSetup(c.Request.Context(), tenantID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCashJournalNotFound), errors.Is(err, apperrors.ErrCashAccountNotFound):
			logger.Warn("Auto setup could not find required ledger objects", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrLedgerUnavailable):
			logger.Error("Ledger system unavailable during setup", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			logger.Error("Auto setup failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run setup"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// getMapping returns the stored mapping for the tenant.
func (h *setupHandler) getMapping(c *gin.Context) {
	tenantID, ok := middleware.GetTenantFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	mapping, err := h.setupService.GetMapping(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no account mapping configured"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to load mapping", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mapping"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponse(mapping))
}

// updateMapping stores a hand-edited mapping.
func (h *setupHandler) updateMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := middleware.GetTenantFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant not resolved"})
		return
	}

	var req dto.UpdateMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	mapping, err := h.setupService.UpdateMapping(c.Request.Context(), tenantID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update mapping", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mapping"})
		return
	}

	c.JSON(http.StatusOK, dto.ToMappingResponse(mapping))
}
