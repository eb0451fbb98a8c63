package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/core/ports"
	portsrepo "github.com/tillpoint/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/dto"
	"github.com/tillpoint/cashbook_app/internal/middleware"
)

// Keyword lists used to locate the till and bank accounts by name when the
// journal carries no usable default account.
var (
	cashKeywords    = []string{"現金", "小口", "cash", "till", "petty"}
	currentKeywords = []string{"普通預金", "当座", "current", "checking", "ordinary"}
	savingsKeywords = []string{"定期預金", "定期", "savings", "deposit"}
)

// setupService discovers journals and accounts already present in the
// external ledger and derives a best-effort account mapping for the tenant.
type setupService struct {
	ledger      ports.LedgerClient
	mappingRepo portsrepo.MappingRepositoryFacade
}

// NewSetupService creates a new SetupService.
func NewSetupService(ledger ports.LedgerClient, mappingRepo portsrepo.MappingRepositoryFacade) portssvc.SetupSvcFacade {
	return &setupService{ledger: ledger, mappingRepo: mappingRepo}
}

var _ portssvc.SetupSvcFacade = (*setupService)(nil)

// RunAutoSetup builds and persists a fresh mapping, overwriting any existing
// one for the tenant. A missing cash journal or cash account is fatal and
// leaves the stored mapping untouched; missing bank accounts are not fatal
// (TRANSFER categories fail per line at posting time instead).
func (s *setupService) RunAutoSetup(ctx context.Context, tenantID string) (*dto.SetupResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journals, err := s.ledger.ListJournals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}
	accounts, err := s.ledger.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var cashJournal *domain.ExternalJournal
	for i, j := range journals {
		if j.Kind == domain.JournalCash {
			cashJournal = &journals[i]
			break
		}
	}
	if cashJournal == nil {
		return nil, apperrors.ErrCashJournalNotFound
	}

	cashAccountID := cashJournal.DefaultAccountID
	if cashAccountID == "" {
		if acc := findAccountByKeywords(accounts, cashKeywords); acc != nil {
			cashAccountID = acc.ID
		}
	}
	if cashAccountID == "" {
		return nil, apperrors.ErrCashAccountNotFound
	}

	// Bank accounts are best effort: prefer a bank journal's default
	// account whose name matches, fall back to an account name search.
	currentID := findBankAccount(journals, accounts, currentKeywords)
	savingsID := findBankAccount(journals, accounts, savingsKeywords)

	categoryToAccount := make(map[string]string)
	for _, cat := range domain.AllCategories() {
		if cat.Type != domain.Normal {
			continue
		}
		if acc := findAccountByKeywords(accounts, cat.Keywords); acc != nil {
			categoryToAccount[cat.Code] = acc.ID
			continue
		}
		if acc := firstAccountOfKind(accounts, fallbackKind(cat.Direction)); acc != nil {
			categoryToAccount[cat.Code] = acc.ID
		}
	}

	mapping := domain.AccountMapping{
		TenantID:             tenantID,
		CashJournalID:        cashJournal.ID,
		CashAccountID:        cashAccountID,
		BankAccountIDCurrent: currentID,
		BankAccountIDSavings: savingsID,
		CategoryToAccount:    categoryToAccount,
		LastUpdatedAt:        time.Now().UTC(),
	}
	if err := s.mappingRepo.UpsertMapping(ctx, mapping); err != nil {
		return nil, fmt.Errorf("failed to persist account mapping: %w", err)
	}

	logger.Info("Auto setup completed",
		slog.String("tenant_id", tenantID),
		slog.String("cash_journal_id", cashJournal.ID),
		slog.String("cash_account_id", cashAccountID),
		slog.Int("mapped_categories", len(categoryToAccount)))

	return &dto.SetupResult{
		CashJournalID:        cashJournal.ID,
		CashAccountID:        cashAccountID,
		BankAccountIDCurrent: currentID,
		BankAccountIDSavings: savingsID,
		MappedCategories:     len(categoryToAccount),
	}, nil
}

// GetMapping returns the stored mapping for the tenant.
func (s *setupService) GetMapping(ctx context.Context, tenantID string) (*domain.AccountMapping, error) {
	return s.mappingRepo.FindMappingByTenant(ctx, tenantID)
}

// UpdateMapping stores a hand-edited mapping after checking every referenced
// category exists in the catalog.
func (s *setupService) UpdateMapping(ctx context.Context, tenantID string, req dto.UpdateMappingRequest) (*domain.AccountMapping, error) {
	for code := range req.CategoryToAccount {
		if _, ok := domain.LookupCategory(code); !ok {
			return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, code)
		}
	}

	mapping := domain.AccountMapping{
		TenantID:             tenantID,
		CashJournalID:        req.CashJournalID,
		CashAccountID:        req.CashAccountID,
		BankAccountIDCurrent: req.BankAccountIDCurrent,
		BankAccountIDSavings: req.BankAccountIDSavings,
		CategoryToAccount:    req.CategoryToAccount,
		LastUpdatedAt:        time.Now().UTC(),
	}
	if mapping.CategoryToAccount == nil {
		mapping.CategoryToAccount = map[string]string{}
	}
	if err := s.mappingRepo.UpsertMapping(ctx, mapping); err != nil {
		return nil, fmt.Errorf("failed to persist account mapping: %w", err)
	}
	return &mapping, nil
}

func fallbackKind(d domain.Direction) domain.AccountKind {
	if d == domain.In {
		return domain.AccountIncome
	}
	return domain.AccountExpense
}

// findAccountByKeywords returns the first account whose name contains one of
// the keywords, case-insensitively, in account listing order.
func findAccountByKeywords(accounts []domain.ExternalAccount, keywords []string) *domain.ExternalAccount {
	for i, acc := range accounts {
		name := strings.ToLower(acc.Name)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return &accounts[i]
			}
		}
	}
	return nil
}

func firstAccountOfKind(accounts []domain.ExternalAccount, kind domain.AccountKind) *domain.ExternalAccount {
	for i, acc := range accounts {
		if acc.Kind == kind {
			return &accounts[i]
		}
	}
	return nil
}

// findBankAccount resolves a bank account: first a matching bank journal's
// default account, then a plain account name search.
func findBankAccount(journals []domain.ExternalJournal, accounts []domain.ExternalAccount, keywords []string) string {
	for _, j := range journals {
		if j.Kind != domain.JournalBank || j.DefaultAccountID == "" {
			continue
		}
		name := strings.ToLower(j.Name)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return j.DefaultAccountID
			}
		}
	}
	if acc := findAccountByKeywords(accounts, keywords); acc != nil {
		return acc.ID
	}
	return ""
}
