package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/core/ports"
	portsrepo "github.com/tillpoint/cashbook_app/internal/core/ports/repositories"
)

// --- Mock LedgerClient ---

type MockLedgerClient struct {
	mock.Mock
}

var _ ports.LedgerClient = (*MockLedgerClient)(nil)

func (m *MockLedgerClient) ListJournals(ctx context.Context) ([]domain.ExternalJournal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExternalJournal), args.Error(1)
}

func (m *MockLedgerClient) ListAccounts(ctx context.Context) ([]domain.ExternalAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExternalAccount), args.Error(1)
}

func (m *MockLedgerClient) CreateEntry(ctx context.Context, entry domain.LedgerEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerClient) QueryEntries(ctx context.Context, q domain.EntryQuery) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerClient) AttachFile(ctx context.Context, entryID string, filename string, content []byte) error {
	args := m.Called(ctx, entryID, filename, content)
	return args.Error(0)
}

// --- Mock MappingRepository ---

type MockMappingRepository struct {
	mock.Mock
}

var _ portsrepo.MappingRepositoryFacade = (*MockMappingRepository)(nil)

func (m *MockMappingRepository) FindMappingByTenant(ctx context.Context, tenantID string) (*domain.AccountMapping, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountMapping), args.Error(1)
}

func (m *MockMappingRepository) UpsertMapping(ctx context.Context, mapping domain.AccountMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}
