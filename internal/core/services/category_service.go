package services

import (
	"context"
	"fmt"

	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
)

// categoryService exposes the static cash category catalog. Pure lookup,
// no side effects.
type categoryService struct{}

// NewCategoryService creates a new CategoryService.
func NewCategoryService() portssvc.CategorySvcFacade {
	return &categoryService{}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) ListCategories(ctx context.Context, direction *domain.Direction) []domain.CashCategory {
	if direction == nil {
		return domain.AllCategories()
	}
	return domain.CategoriesByDirection(*direction)
}

func (s *categoryService) GetCategory(ctx context.Context, code string) (*domain.CashCategory, error) {
	cat, ok := domain.LookupCategory(code)
	if !ok {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, code)
	}
	return &cat, nil
}
