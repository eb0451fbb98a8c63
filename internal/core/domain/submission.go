package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attachment is a file handed in alongside a submission line, to be attached
// to the created ledger entry. Storage of the bytes is the external system's
// concern.
type Attachment struct {
	Filename string
	Content  []byte
}

// SubmissionLine is one categorized amount within a submission.
type SubmissionLine struct {
	CategoryCode string
	Amount       decimal.Decimal
	Attachments  []Attachment
}

// CashEntrySubmission is the ephemeral payload of one posting call. It is
// never persisted; the ledger entries it produces are the durable record.
type CashEntrySubmission struct {
	Date       time.Time
	InEntries  []SubmissionLine
	OutEntries []SubmissionLine
}

// Empty reports whether the submission carries no lines at all.
func (s CashEntrySubmission) Empty() bool {
	return len(s.InEntries) == 0 && len(s.OutEntries) == 0
}

// LineError describes a single submission line that could not be posted.
// Collected per batch; the remaining lines proceed.
type LineError struct {
	CategoryCode string `json:"categoryCode"`
	Reason       string `json:"reason"`
}

// PostingResult is what one posting call returns: what was created and what
// failed. Created entries are never rolled back on later line failures.
type PostingResult struct {
	CreatedCount int         `json:"createdCount"`
	CreatedIDs   []string    `json:"createdIDs"`
	Errors       []LineError `json:"errors"`
}
