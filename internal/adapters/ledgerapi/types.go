// Package ledgerapi is the HTTP adapter for the external general-ledger
// system. The engine reads journals/accounts/entries through it and writes
// draft entries; it never mutates anything else there.
package ledgerapi

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// wire types for the external API's JSON payloads

type journalPayload struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Kind             string `json:"kind"`
	DefaultAccountID string `json:"default_account_id"`
}

type journalsResponse struct {
	Journals []journalPayload `json:"journals"`
}

type accountPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type accountsResponse struct {
	Accounts []accountPayload `json:"accounts"`
}

type entryLinePayload struct {
	AccountID string          `json:"account_id"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Label     string          `json:"label,omitempty"`
}

type entryPayload struct {
	ID        string             `json:"id,omitempty"`
	IssueDate string             `json:"issue_date"` // YYYY-MM-DD
	Reference string             `json:"reference"`
	State     string             `json:"state,omitempty"`
	Lines     []entryLinePayload `json:"lines"`
}

type createEntryRequest struct {
	CompanyID string       `json:"company_id"`
	Entry     entryPayload `json:"entry"`
}

type createEntryResponse struct {
	Entry entryPayload `json:"entry"`
}

type entriesResponse struct {
	Entries []entryPayload `json:"entries"`
}

type apiErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

const dateLayout = "2006-01-02"

func toDomainEntry(p entryPayload) (domain.LedgerEntry, error) {
	date, err := time.Parse(dateLayout, p.IssueDate)
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	lines := make([]domain.EntryLine, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = domain.EntryLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Label:     l.Label,
		}
	}
	return domain.LedgerEntry{
		ID:        p.ID,
		Date:      date,
		Reference: p.Reference,
		State:     domain.EntryState(p.State),
		Lines:     lines,
	}, nil
}

func fromDomainEntry(e domain.LedgerEntry) entryPayload {
	lines := make([]entryLinePayload, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = entryLinePayload{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Label:     l.Label,
		}
	}
	return entryPayload{
		IssueDate: e.Date.Format(dateLayout),
		Reference: e.Reference,
		Lines:     lines,
	}
}
