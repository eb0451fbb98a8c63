package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal accumulates decoded entries for one category.
type CategoryTotal struct {
	CategoryCode string          `json:"categoryCode"`
	Direction    Direction       `json:"direction"`
	Amount       decimal.Decimal `json:"amount"`
	Count        int             `json:"count"`
}

// DailyTotal holds the in/out sums for one calendar date.
type DailyTotal struct {
	Date     time.Time       `json:"date"`
	InTotal  decimal.Decimal `json:"inTotal"`
	OutTotal decimal.Decimal `json:"outTotal"`
}

// CashSummary is rebuilt from scratch on every read by decoding the engine's
// own entries out of the external system. Nothing here is ever stored.
type CashSummary struct {
	CategoryTotals  []CategoryTotal `json:"categoryTotals"`
	DailyTotals     []DailyTotal    `json:"dailyTotals"` // ascending by date
	RunningBalance  decimal.Decimal `json:"runningBalance"`
	DraftCount      int             `json:"draftCount"`
	PostedCount     int             `json:"postedCount"`
	TodayHasEntries bool            `json:"todayHasEntries"`
}
