package repositories

import (
	"context"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// MappingReader defines read operations for per-tenant account mappings.
type MappingReader interface {
	// FindMappingByTenant retrieves the mapping for a tenant.
	// Returns apperrors.ErrNotFound when no mapping has been stored yet.
	FindMappingByTenant(ctx context.Context, tenantID string) (*domain.AccountMapping, error)
}

// MappingWriter defines write operations for per-tenant account mappings.
type MappingWriter interface {
	// UpsertMapping stores the mapping, overwriting any existing one for the
	// tenant. Last write wins on concurrent setup calls.
	UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error
}

// MappingRepositoryFacade combines all mapping repository interfaces.
type MappingRepositoryFacade interface {
	MappingReader
	MappingWriter
}
