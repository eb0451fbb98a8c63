package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// SummaryQuery narrows what the summary service reads back. Zero values
// mean no constraint; State empty means both draft and posted.
type SummaryQuery struct {
	From  time.Time
	To    time.Time
	State domain.EntryState
}

// CategoryTotalResponse is the per-category roll-up.
type CategoryTotalResponse struct {
	CategoryCode string          `json:"categoryCode"`
	Direction    string          `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	Count        int             `json:"count"`
}

// DailyTotalResponse is the per-date roll-up.
type DailyTotalResponse struct {
	Date     string          `json:"date"`
	InTotal  decimal.Decimal `json:"inTotal"`
	OutTotal decimal.Decimal `json:"outTotal"`
}

// SummaryResponse defines the aggregation result returned to callers.
type SummaryResponse struct {
	CategoryTotals  []CategoryTotalResponse `json:"categoryTotals"`
	DailyTotals     []DailyTotalResponse    `json:"dailyTotals"`
	RunningBalance  decimal.Decimal         `json:"runningBalance"`
	DraftCount      int                     `json:"draftCount"`
	PostedCount     int                     `json:"postedCount"`
	TodayHasEntries bool                    `json:"todayHasEntries"`
}

// ToSummaryResponse converts a domain.CashSummary to its DTO.
func ToSummaryResponse(s *domain.CashSummary) SummaryResponse {
	resp := SummaryResponse{
		CategoryTotals:  make([]CategoryTotalResponse, len(s.CategoryTotals)),
		DailyTotals:     make([]DailyTotalResponse, len(s.DailyTotals)),
		RunningBalance:  s.RunningBalance,
		DraftCount:      s.DraftCount,
		PostedCount:     s.PostedCount,
		TodayHasEntries: s.TodayHasEntries,
	}
	for i, ct := range s.CategoryTotals {
		resp.CategoryTotals[i] = CategoryTotalResponse{
			CategoryCode: ct.CategoryCode,
			Direction:    string(ct.Direction),
			Amount:       ct.Amount,
			Count:        ct.Count,
		}
	}
	for i, dt := range s.DailyTotals {
		resp.DailyTotals[i] = DailyTotalResponse{
			Date:     dt.Date.Format("2006-01-02"),
			InTotal:  dt.InTotal,
			OutTotal: dt.OutTotal,
		}
	}
	return resp
}
