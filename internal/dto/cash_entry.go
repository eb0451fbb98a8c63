package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// AttachmentPayload carries one uploaded file. Content is base64 in JSON.
type AttachmentPayload struct {
	Filename string `json:"filename" binding:"required"`
	Content  []byte `json:"content" binding:"required"`
}

// CashEntryLineRequest is one categorized amount in a submission.
type CashEntryLineRequest struct {
	CategoryCode string              `json:"categoryCode" binding:"required"`
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
	Attachments  []AttachmentPayload `json:"attachments,omitempty"`
}

// CreateCashEntriesRequest is the payload of one posting call.
type CreateCashEntriesRequest struct {
	Date       string                 `json:"date" binding:"required,dateformat"`
	InEntries  []CashEntryLineRequest `json:"inEntries,omitempty"`
	OutEntries []CashEntryLineRequest `json:"outEntries,omitempty"`
}

// ToDomain validates the date and converts the request into a submission.
func (r CreateCashEntriesRequest) ToDomain() (domain.CashEntrySubmission, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return domain.CashEntrySubmission{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", r.Date)
	}
	return domain.CashEntrySubmission{
		Date:       date,
		InEntries:  toSubmissionLines(r.InEntries),
		OutEntries: toSubmissionLines(r.OutEntries),
	}, nil
}

func toSubmissionLines(lines []CashEntryLineRequest) []domain.SubmissionLine {
	out := make([]domain.SubmissionLine, len(lines))
	for i, l := range lines {
		atts := make([]domain.Attachment, len(l.Attachments))
		for j, a := range l.Attachments {
			atts[j] = domain.Attachment{Filename: a.Filename, Content: a.Content}
		}
		out[i] = domain.SubmissionLine{
			CategoryCode: l.CategoryCode,
			Amount:       l.Amount,
			Attachments:  atts,
		}
	}
	return out
}

// PostingResponse defines the data returned for a batch posting call.
type PostingResponse struct {
	CreatedCount int                `json:"createdCount"`
	CreatedIDs   []string           `json:"createdIDs"`
	Errors       []domain.LineError `json:"errors"`
}

// ToPostingResponse converts a domain.PostingResult to its DTO.
func ToPostingResponse(r *domain.PostingResult) PostingResponse {
	return PostingResponse{
		CreatedCount: r.CreatedCount,
		CreatedIDs:   r.CreatedIDs,
		Errors:       r.Errors,
	}
}
