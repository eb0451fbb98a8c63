package ports

import (
	"context"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// LedgerClient is the engine's view of the external general-ledger system.
// The engine creates entries only as drafts and never mutates their state;
// everything else here is read-only discovery or querying.
type LedgerClient interface {
	// ListJournals returns every journal visible to the tenant's company.
	ListJournals(ctx context.Context) ([]domain.ExternalJournal, error)

	// ListAccounts returns every account visible to the tenant's company.
	ListAccounts(ctx context.Context) ([]domain.ExternalAccount, error)

	// CreateEntry submits a new draft entry and returns its external ID.
	CreateEntry(ctx context.Context, entry domain.LedgerEntry) (string, error)

	// QueryEntries returns entries matching the filter, including their lines.
	QueryEntries(ctx context.Context, q domain.EntryQuery) ([]domain.LedgerEntry, error)

	// AttachFile uploads a file against an existing entry.
	AttachFile(ctx context.Context, entryID string, filename string, content []byte) error
}
