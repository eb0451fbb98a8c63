package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/dto"
)

// categoryHandler handles HTTP requests for the cash category catalog.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newCategoryHandler(cs portssvc.CategorySvcFacade) *categoryHandler {
	return &categoryHandler{categoryService: cs}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newCategoryHandler(categoryService)

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
	}
}

// listCategories returns the catalog, optionally filtered by direction.
func (h *categoryHandler) listCategories(c *gin.Context) {
	var direction *domain.Direction
	switch c.Query("direction") {
	case "":
		// no filter
	case string(domain.In):
		d := domain.In
		direction = &d
	case string(domain.Out):
		d := domain.Out
		direction = &d
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be IN or OUT"})
		return
	}

	cats := h.categoryService.ListCategories(c.Request.Context(), direction)
	c.JSON(http.StatusOK, dto.ToListCategoriesResponse(cats))
}
