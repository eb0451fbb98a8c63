package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
	"github.com/tillpoint/cashbook_app/internal/core/ports"
	portssvc "github.com/tillpoint/cashbook_app/internal/core/ports/services"
	"github.com/tillpoint/cashbook_app/internal/dto"
	"github.com/tillpoint/cashbook_app/internal/refcode"
)

// summaryService reconstructs category totals and the running cash balance
// purely by re-reading and decoding the engine's own entries out of the
// external system. Nothing is cached between calls, so the result always
// reflects the external system's current contents.
type summaryService struct {
	ledger ports.LedgerClient
	now    func() time.Time
}

// SummaryServiceOption is a functional option for configuring the summary service.
type SummaryServiceOption func(*summaryService)

// WithClock overrides the clock used for the "today" check.
func WithClock(now func() time.Time) SummaryServiceOption {
	return func(s *summaryService) {
		s.now = now
	}
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(ledger ports.LedgerClient, options ...SummaryServiceOption) portssvc.SummarySvcFacade {
	svc := &summaryService{ledger: ledger, now: time.Now}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

// Summarize queries entries tagged with the engine's reference prefix,
// decodes each, and folds them into per-category and per-date totals plus
// the cumulative running balance. Entries whose reference fails to decode
// are foreign and skipped.
func (s *summaryService) Summarize(ctx context.Context, tenantID string, q dto.SummaryQuery) (*domain.CashSummary, error) {
	entries, err := s.ledger.QueryEntries(ctx, domain.EntryQuery{
		ReferencePrefix: refcode.Prefix,
		From:            q.From,
		To:              q.To,
		State:           q.State,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}

	today := s.now().Format("2006-01-02")

	categoryTotals := make(map[string]*domain.CategoryTotal)
	dailyTotals := make(map[string]*domain.DailyTotal)
	summary := &domain.CashSummary{}

	for _, entry := range entries {
		decoded, ok := refcode.Decode(entry.Reference)
		if !ok {
			continue
		}

		amount := entry.Total()

		ct, exists := categoryTotals[decoded.CategoryCode]
		if !exists {
			ct = &domain.CategoryTotal{
				CategoryCode: decoded.CategoryCode,
				Direction:    decoded.Direction,
				Amount:       decimal.Zero,
			}
			categoryTotals[decoded.CategoryCode] = ct
		}
		ct.Amount = ct.Amount.Add(amount)
		ct.Count++

		dateKey := decoded.Date.Format("2006-01-02")
		day, exists := dailyTotals[dateKey]
		if !exists {
			day = &domain.DailyTotal{Date: decoded.Date, InTotal: decimal.Zero, OutTotal: decimal.Zero}
			dailyTotals[dateKey] = day
		}
		if decoded.Direction == domain.In {
			day.InTotal = day.InTotal.Add(amount)
		} else {
			day.OutTotal = day.OutTotal.Add(amount)
		}

		switch entry.State {
		case domain.EntryPosted:
			summary.PostedCount++
		default:
			summary.DraftCount++
		}

		if dateKey == today {
			summary.TodayHasEntries = true
		}
	}

	summary.CategoryTotals = orderCategoryTotals(categoryTotals)
	summary.DailyTotals = orderDailyTotals(dailyTotals)

	balance := decimal.Zero
	for _, day := range summary.DailyTotals {
		balance = balance.Add(day.InTotal).Sub(day.OutTotal)
	}
	summary.RunningBalance = balance

	return summary, nil
}

// orderCategoryTotals returns totals in catalog display order; codes no
// longer in the catalog come last, sorted alphabetically.
func orderCategoryTotals(totals map[string]*domain.CategoryTotal) []domain.CategoryTotal {
	out := make([]domain.CategoryTotal, 0, len(totals))
	for _, cat := range domain.AllCategories() {
		if ct, ok := totals[cat.Code]; ok {
			out = append(out, *ct)
			delete(totals, cat.Code)
		}
	}
	rest := make([]domain.CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		rest = append(rest, *ct)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].CategoryCode < rest[j].CategoryCode })
	return append(out, rest...)
}

func orderDailyTotals(totals map[string]*domain.DailyTotal) []domain.DailyTotal {
	out := make([]domain.DailyTotal, 0, len(totals))
	for _, dt := range totals {
		out = append(out, *dt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
