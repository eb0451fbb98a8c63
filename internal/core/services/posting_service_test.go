package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tillpoint/cashbook_app/internal/apperrors"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/core/services"
	"github.com/tillpoint/cashbook_app/internal/refcode"
)

const testTenant = "tenant-1"

func testMapping() *domain.AccountMapping {
	return &domain.AccountMapping{
		TenantID:             testTenant,
		CashJournalID:        "journal-1",
		CashAccountID:        "1000",
		BankAccountIDCurrent: "1100",
		BankAccountIDSavings: "1200",
		CategoryToAccount: map[string]string{
			domain.CatCashSales: "4000",
			domain.CatRent:      "6400",
		},
	}
}

type PostingServiceTestSuite struct {
	suite.Suite
	ledger      *MockLedgerClient
	mappingRepo *MockMappingRepository
	ctx         context.Context
	date        time.Time
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.ledger = new(MockLedgerClient)
	s.mappingRepo = new(MockMappingRepository)
	s.ctx = context.Background()
	s.date = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
}

func (s *PostingServiceTestSuite) TestNormalInBuildsDebitCashCreditCounter() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)

	var captured domain.LedgerEntry
	s.ledger.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		captured = e
		return true
	})).Return("entry-1", nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	assert.Equal(s.T(), []string{"entry-1"}, result.CreatedIDs)
	assert.Empty(s.T(), result.Errors)

	require.Len(s.T(), captured.Lines, 2)
	assert.Equal(s.T(), "1000", captured.Lines[0].AccountID)
	assert.True(s.T(), captured.Lines[0].Debit.Equal(decimal.NewFromInt(5000)))
	assert.Equal(s.T(), "4000", captured.Lines[1].AccountID)
	assert.True(s.T(), captured.Lines[1].Credit.Equal(decimal.NewFromInt(5000)))
	assert.True(s.T(), captured.IsBalanced())
	assert.Equal(s.T(), domain.EntryDraft, captured.State)

	decoded, ok := refcode.Decode(captured.Reference)
	require.True(s.T(), ok)
	assert.Equal(s.T(), s.date, decoded.Date)
	assert.Equal(s.T(), domain.CatCashSales, decoded.CategoryCode)
	assert.Equal(s.T(), domain.In, decoded.Direction)
}

func (s *PostingServiceTestSuite) TestNormalOutBuildsDebitCounterCreditCash() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)

	var captured domain.LedgerEntry
	s.ledger.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		captured = e
		return true
	})).Return("entry-2", nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	_, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		OutEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatRent, Amount: decimal.NewFromInt(80000)},
		},
	})

	require.NoError(s.T(), err)
	require.Len(s.T(), captured.Lines, 2)
	assert.Equal(s.T(), "6400", captured.Lines[0].AccountID)
	assert.True(s.T(), captured.Lines[0].Debit.Equal(decimal.NewFromInt(80000)))
	assert.Equal(s.T(), "1000", captured.Lines[1].AccountID)
	assert.True(s.T(), captured.Lines[1].Credit.Equal(decimal.NewFromInt(80000)))
	assert.True(s.T(), captured.IsBalanced())
}

func (s *PostingServiceTestSuite) TestTransferInDebitsCashCreditsBank() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)

	var captured domain.LedgerEntry
	s.ledger.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		captured = e
		return true
	})).Return("entry-3", nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	_, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatTransferCurrentIn, Amount: decimal.NewFromInt(10000)},
		},
	})

	require.NoError(s.T(), err)
	require.Len(s.T(), captured.Lines, 2)
	assert.Equal(s.T(), "1000", captured.Lines[0].AccountID)
	assert.True(s.T(), captured.Lines[0].Debit.Equal(decimal.NewFromInt(10000)))
	assert.Equal(s.T(), "1100", captured.Lines[1].AccountID)
	assert.True(s.T(), captured.Lines[1].Credit.Equal(decimal.NewFromInt(10000)))
}

func (s *PostingServiceTestSuite) TestTransferOutDebitsBankCreditsCash() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)

	var captured domain.LedgerEntry
	s.ledger.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		captured = e
		return true
	})).Return("entry-4", nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	_, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		OutEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatTransferSavingsOut, Amount: decimal.NewFromInt(20000)},
		},
	})

	require.NoError(s.T(), err)
	require.Len(s.T(), captured.Lines, 2)
	assert.Equal(s.T(), "1200", captured.Lines[0].AccountID)
	assert.True(s.T(), captured.Lines[0].Debit.Equal(decimal.NewFromInt(20000)))
	assert.Equal(s.T(), "1000", captured.Lines[1].AccountID)
	assert.True(s.T(), captured.Lines[1].Credit.Equal(decimal.NewFromInt(20000)))
}

func (s *PostingServiceTestSuite) TestPartialFailureCreatesMappedLineOnly() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("entry-5", nil).Once()

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		OutEntries: []domain.SubmissionLine{
			// SUPPLIES has no account mapping in the fixture.
			{CategoryCode: domain.CatSupplies, Amount: decimal.NewFromInt(3000)},
			{CategoryCode: domain.CatRent, Amount: decimal.NewFromInt(80000)},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	require.Len(s.T(), result.Errors, 1)
	assert.Equal(s.T(), domain.CatSupplies, result.Errors[0].CategoryCode)
	assert.Equal(s.T(), "no account mapping for category", result.Errors[0].Reason)
	s.ledger.AssertNumberOfCalls(s.T(), "CreateEntry", 1)
}

func (s *PostingServiceTestSuite) TestUnknownCategoryIsPerLineError() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("entry-6", nil).Once()

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: "NOT_A_CATEGORY", Amount: decimal.NewFromInt(100)},
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	require.Len(s.T(), result.Errors, 1)
	assert.Equal(s.T(), "unknown category", result.Errors[0].Reason)
}

func (s *PostingServiceTestSuite) TestMissingBankAccountIsPerLineError() {
	mapping := testMapping()
	mapping.BankAccountIDCurrent = ""
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(mapping, nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatTransferCurrentIn, Amount: decimal.NewFromInt(10000)},
		},
	})

	require.ErrorIs(s.T(), err, services.ErrNoLinesPosted)
	assert.Equal(s.T(), 0, result.CreatedCount)
	require.Len(s.T(), result.Errors, 1)
	assert.Equal(s.T(), "no bank account configured", result.Errors[0].Reason)
	s.ledger.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestZeroAndNegativeAmountsAreSkipped() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("entry-7", nil).Once()

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatCashSales, Amount: decimal.Zero},
			{CategoryCode: domain.CatMiscIncome, Amount: decimal.NewFromInt(-50)},
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	assert.Empty(s.T(), result.Errors)
}

func (s *PostingServiceTestSuite) TestNoMappingReturnsNotConfigured() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(nil, apperrors.ErrNotFound)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	_, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
	})

	assert.ErrorIs(s.T(), err, apperrors.ErrNotConfigured)
}

func (s *PostingServiceTestSuite) TestMissingDateIsValidationError() {
	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	_, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
	s.mappingRepo.AssertNotCalled(s.T(), "FindMappingByTenant", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestCreateFailureDoesNotRollBackEarlierLines() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("entry-8", nil).Once()
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
		OutEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatRent, Amount: decimal.NewFromInt(80000)},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	assert.Equal(s.T(), []string{"entry-8"}, result.CreatedIDs)
	require.Len(s.T(), result.Errors, 1)
	assert.Equal(s.T(), domain.CatRent, result.Errors[0].CategoryCode)
}

func (s *PostingServiceTestSuite) TestSkipExistingSkipsDuplicateReference() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)

	reference := refcode.Encode(s.date, domain.CatCashSales, domain.In)
	s.ledger.On("QueryEntries", mock.Anything, mock.MatchedBy(func(q domain.EntryQuery) bool {
		return q.ReferencePrefix == reference
	})).Return([]domain.LedgerEntry{{ID: "existing", Reference: reference}}, nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo, services.WithSkipExisting())
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{CategoryCode: domain.CatCashSales, Amount: decimal.NewFromInt(5000)},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 0, result.CreatedCount)
	assert.Empty(s.T(), result.Errors)
	s.ledger.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestAttachmentsUploadedWithDeterministicNames() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("entry-9", nil)
	s.ledger.On("AttachFile", mock.Anything, "entry-9", "CASH_SALES_2024-05-01_receipt.jpg", []byte("img")).Return(nil)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{
				CategoryCode: domain.CatCashSales,
				Amount:       decimal.NewFromInt(5000),
				Attachments:  []domain.Attachment{{Filename: "receipt.jpg", Content: []byte("img")}},
			},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	s.ledger.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestAttachmentFailureDoesNotFailLine() {
	s.mappingRepo.On("FindMappingByTenant", mock.Anything, testTenant).Return(testMapping(), nil)
	s.ledger.On("CreateEntry", mock.Anything, mock.Anything).Return("entry-10", nil)
	s.ledger.On("AttachFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := services.NewPostingService(s.ledger, s.mappingRepo)
	result, err := svc.PostSubmission(s.ctx, testTenant, domain.CashEntrySubmission{
		Date: s.date,
		InEntries: []domain.SubmissionLine{
			{
				CategoryCode: domain.CatCashSales,
				Amount:       decimal.NewFromInt(5000),
				Attachments:  []domain.Attachment{{Filename: "receipt.jpg", Content: []byte("img")}},
			},
		},
	})

	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.CreatedCount)
	assert.Empty(s.T(), result.Errors)
}

func TestPostingService(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
