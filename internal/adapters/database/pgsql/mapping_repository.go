package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	portsrepo "github.com/tillpoint/cashbook_app/internal/core/ports/repositories"
)

type PgxMappingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxMappingRepository creates a new repository for per-tenant account
// mapping configuration.
func NewPgxMappingRepository(pool *pgxpool.Pool) portsrepo.MappingRepositoryFacade {
	return &PgxMappingRepository{pool: pool}
}

var _ portsrepo.MappingRepositoryFacade = (*PgxMappingRepository)(nil)

// FindMappingByTenant retrieves the mapping for a tenant.
func (r *PgxMappingRepository) FindMappingByTenant(ctx context.Context, tenantID string) (*domain.AccountMapping, error) {
	query := `
		SELECT tenant_id, cash_journal_id, cash_account_id, bank_account_id_current, bank_account_id_savings, category_to_account, last_updated_at
		FROM account_mappings
		WHERE tenant_id = $1;
	`
	var mapping domain.AccountMapping
	var categoryJSON []byte
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(
		&mapping.TenantID,
		&mapping.CashJournalID,
		&mapping.CashAccountID,
		&mapping.BankAccountIDCurrent,
		&mapping.BankAccountIDSavings,
		&categoryJSON,
		&mapping.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mapping for tenant %s: %w", tenantID, err)
	}

	if err := json.Unmarshal(categoryJSON, &mapping.CategoryToAccount); err != nil {
		return nil, fmt.Errorf("failed to decode category map for tenant %s: %w", tenantID, err)
	}
	return &mapping, nil
}

// UpsertMapping stores the mapping in a single statement, so concurrent
// setup calls leave a complete mapping behind (last write wins).
func (r *PgxMappingRepository) UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error {
	categoryJSON, err := json.Marshal(mapping.CategoryToAccount)
	if err != nil {
		return fmt.Errorf("failed to encode category map: %w", err)
	}

	query := `
		INSERT INTO account_mappings (tenant_id, cash_journal_id, cash_account_id, bank_account_id_current, bank_account_id_savings, category_to_account, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id) DO UPDATE SET
			cash_journal_id = EXCLUDED.cash_journal_id,
			cash_account_id = EXCLUDED.cash_account_id,
			bank_account_id_current = EXCLUDED.bank_account_id_current,
			bank_account_id_savings = EXCLUDED.bank_account_id_savings,
			category_to_account = EXCLUDED.category_to_account,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err = r.pool.Exec(ctx, query,
		mapping.TenantID,
		mapping.CashJournalID,
		mapping.CashAccountID,
		mapping.BankAccountIDCurrent,
		mapping.BankAccountIDSavings,
		categoryJSON,
		mapping.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert mapping for tenant %s: %w", mapping.TenantID, err)
	}
	return nil
}
