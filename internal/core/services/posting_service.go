package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/core/ports"
	portsrepo "github.com/tillpoint/cashbook_app/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/middleware"
	"github.com/tillpoint/cashbook_app/internal/refcode"
)

// ErrNoLinesPosted is returned when every line of a submission failed and
// nothing was created.
var ErrNoLinesPosted = errors.New("no ledger entries could be created from the submission")

// postingService turns a cash entry submission into balanced draft entries
// in the external ledger. Lines are processed sequentially; a failing line
// never rolls back entries already created.
type postingService struct {
	ledger       ports.LedgerClient
	mappingRepo  portsrepo.MappingRepositoryFacade
	skipExisting bool
}

// PostingServiceOption is a functional option for configuring the posting service.
type PostingServiceOption func(*postingService)

// WithSkipExisting makes the service query the external system for an entry
// carrying the identical reference on the same date before creating one,
// so retried submissions become safe. Default is off: every submission
// creates new entries.
func WithSkipExisting() PostingServiceOption {
	return func(s *postingService) {
		s.skipExisting = true
	}
}

// NewPostingService creates a new PostingService.
func NewPostingService(ledger ports.LedgerClient, mappingRepo portsrepo.MappingRepositoryFacade, options ...PostingServiceOption) portssvc.PostingSvcFacade {
	svc := &postingService{
		ledger:      ledger,
		mappingRepo: mappingRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostSubmission validates the submission, builds one balanced entry per
// usable line and creates each in the external system as a draft.
func (s *postingService) PostSubmission(ctx context.Context, tenantID string, submission domain.CashEntrySubmission) (*domain.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if submission.Date.IsZero() {
		return nil, fmt.Errorf("%w: submission date is required", apperrors.ErrValidation)
	}
	if submission.Empty() {
		return nil, fmt.Errorf("%w: submission has no entries", apperrors.ErrValidation)
	}

	mapping, err := s.mappingRepo.FindMappingByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotConfigured
		}
		return nil, fmt.Errorf("failed to load account mapping: %w", err)
	}

	result := &domain.PostingResult{CreatedIDs: []string{}, Errors: []domain.LineError{}}

	lines := make([]domain.SubmissionLine, 0, len(submission.InEntries)+len(submission.OutEntries))
	lines = append(lines, submission.InEntries...)
	lines = append(lines, submission.OutEntries...)

	for _, line := range lines {
		// Zero and negative amounts are skipped, not rejected; the UI sends
		// the full category grid with blanks as zeros.
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		cat, ok := domain.LookupCategory(line.CategoryCode)
		if !ok {
			result.Errors = append(result.Errors, domain.LineError{CategoryCode: line.CategoryCode, Reason: "unknown category"})
			continue
		}

		entry, lineErr := s.buildEntry(cat, line.Amount, submission.Date, *mapping)
		if lineErr != nil {
			result.Errors = append(result.Errors, *lineErr)
			continue
		}

		if !entry.IsBalanced() {
			// Cannot happen for the two-line entries built above; guard anyway.
			result.Errors = append(result.Errors, domain.LineError{CategoryCode: cat.Code, Reason: "entry does not balance"})
			continue
		}

		if s.skipExisting {
			exists, err := s.entryExists(ctx, entry)
			if err != nil {
				result.Errors = append(result.Errors, domain.LineError{CategoryCode: cat.Code, Reason: fmt.Sprintf("duplicate check failed: %v", err)})
				continue
			}
			if exists {
				logger.Info("Skipping already posted line",
					slog.String("tenant_id", tenantID),
					slog.String("reference", entry.Reference))
				continue
			}
		}

		entryID, err := s.ledger.CreateEntry(ctx, entry)
		if err != nil {
			logger.Error("Failed to create ledger entry",
				slog.String("tenant_id", tenantID),
				slog.String("category", cat.Code),
				slog.String("error", err.Error()))
			result.Errors = append(result.Errors, domain.LineError{CategoryCode: cat.Code, Reason: err.Error()})
			continue
		}

		result.CreatedCount++
		result.CreatedIDs = append(result.CreatedIDs, entryID)

		s.attachFiles(ctx, entryID, cat.Code, submission.Date.Format("2006-01-02"), line.Attachments)
	}

	if result.CreatedCount == 0 && len(result.Errors) > 0 {
		return result, fmt.Errorf("%w: %d line(s) failed", ErrNoLinesPosted, len(result.Errors))
	}

	logger.Info("Submission posted",
		slog.String("tenant_id", tenantID),
		slog.Int("created", result.CreatedCount),
		slog.Int("failed", len(result.Errors)))
	return result, nil
}

// buildEntry constructs the balanced two-line entry for one category/amount.
// The posting rule is the exhaustive NORMAL/TRANSFER x IN/OUT switch.
func (s *postingService) buildEntry(cat domain.CashCategory, amount decimal.Decimal, date time.Time, mapping domain.AccountMapping) (domain.LedgerEntry, *domain.LineError) {
	var debitAccount, creditAccount string

	switch cat.Type {
	case domain.Normal:
		counter, ok := mapping.AccountFor(cat.Code)
		if !ok {
			return domain.LedgerEntry{}, &domain.LineError{CategoryCode: cat.Code, Reason: "no account mapping for category"}
		}
		if cat.Direction == domain.In {
			debitAccount, creditAccount = mapping.CashAccountID, counter
		} else {
			debitAccount, creditAccount = counter, mapping.CashAccountID
		}
	case domain.Transfer:
		bank, ok := mapping.BankAccountFor(cat.BankTarget)
		if !ok {
			return domain.LedgerEntry{}, &domain.LineError{CategoryCode: cat.Code, Reason: "no bank account configured"}
		}
		if cat.Direction == domain.In {
			// Money moves bank -> till.
			debitAccount, creditAccount = mapping.CashAccountID, bank
		} else {
			debitAccount, creditAccount = bank, mapping.CashAccountID
		}
	default:
		return domain.LedgerEntry{}, &domain.LineError{CategoryCode: cat.Code, Reason: fmt.Sprintf("unknown category type %s", cat.Type)}
	}

	return domain.LedgerEntry{
		Date:      date,
		Reference: refcode.Encode(date, cat.Code, cat.Direction),
		State:     domain.EntryDraft,
		Lines: []domain.EntryLine{
			{AccountID: debitAccount, Debit: amount, Label: cat.NameJA},
			{AccountID: creditAccount, Credit: amount, Label: cat.NameJA},
		},
	}, nil
}

// entryExists checks for a previously created entry with the same reference
// on the same date.
func (s *postingService) entryExists(ctx context.Context, entry domain.LedgerEntry) (bool, error) {
	existing, err := s.ledger.QueryEntries(ctx, domain.EntryQuery{
		ReferencePrefix: entry.Reference,
		From:            entry.Date,
		To:              entry.Date,
	})
	if err != nil {
		return false, err
	}
	for _, e := range existing {
		if e.Reference == entry.Reference {
			return true, nil
		}
	}
	return false, nil
}

// attachFiles uploads each submitted file against the created entry. Upload
// failures are logged and do not fail the line; the entry already exists.
func (s *postingService) attachFiles(ctx context.Context, entryID, categoryCode, date string, attachments []domain.Attachment) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, att := range attachments {
		filename := fmt.Sprintf("%s_%s_%s", categoryCode, date, att.Filename)
		if err := s.ledger.AttachFile(ctx, entryID, filename, att.Content); err != nil {
			logger.Warn("Failed to attach file to entry",
				slog.String("entry_id", entryID),
				slog.String("filename", filename),
				slog.String("error", err.Error()))
		}
	}
}
