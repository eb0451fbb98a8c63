package services

import (
	"context"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/dto"
)

// CategorySvcFacade exposes the static cash category catalog.
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, direction *domain.Direction) []domain.CashCategory
	GetCategory(ctx context.Context, code string) (*domain.CashCategory, error)
}

// SetupSvcFacade runs account mapping discovery against the external ledger.
type SetupSvcFacade interface {
	// RunAutoSetup discovers journals/accounts and persists a fresh mapping
	// for the tenant, overwriting any existing one.
	RunAutoSetup(ctx context.Context, tenantID string) (*dto.SetupResult, error)

	// GetMapping returns the stored mapping for the tenant.
	GetMapping(ctx context.Context, tenantID string) (*domain.AccountMapping, error)

	// UpdateMapping stores a hand-edited mapping for the tenant.
	UpdateMapping(ctx context.Context, tenantID string, req dto.UpdateMappingRequest) (*domain.AccountMapping, error)
}

// PostingSvcFacade converts submissions into draft ledger entries.
type PostingSvcFacade interface {
	PostSubmission(ctx context.Context, tenantID string, submission domain.CashEntrySubmission) (*domain.PostingResult, error)
}

// SummarySvcFacade rebuilds cash totals from the engine's posted entries.
type SummarySvcFacade interface {
	Summarize(ctx context.Context, tenantID string, q dto.SummaryQuery) (*domain.CashSummary, error)
}

// ServiceContainer holds instances of all the application services.
// Handlers receive this rather than concrete service types.
type ServiceContainer struct {
	Category CategorySvcFacade
	Setup    SetupSvcFacade
	Posting  PostingSvcFacade
	Summary  SummarySvcFacade
}
