package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// The types below mirror records owned by the external general-ledger
// system. The engine reads and writes them through its API but has no
// authority over their lifecycle beyond creating draft entries.

// JournalKind classifies an external journal.
type JournalKind string

const (
	JournalCash JournalKind = "cash"
	JournalBank JournalKind = "bank"
)

// ExternalJournal is a journal as listed by the external system.
type ExternalJournal struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Kind             JournalKind `json:"kind"`
	DefaultAccountID string      `json:"defaultAccountID"` // may be empty
}

// AccountKind classifies an external account.
type AccountKind string

const (
	AccountAsset   AccountKind = "asset"
	AccountIncome  AccountKind = "income"
	AccountExpense AccountKind = "expense"
)

// ExternalAccount is an account as listed by the external system.
type ExternalAccount struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Kind AccountKind `json:"kind"`
}

// EntryState is the lifecycle state of an external ledger entry. The engine
// only ever creates drafts; posting/approval happens in the external system.
type EntryState string

const (
	EntryDraft  EntryState = "draft"
	EntryPosted EntryState = "posted"
)

// EntryLine is one debit or credit line of a ledger entry.
type EntryLine struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Label     string          `json:"label"`
}

// LedgerEntry is a balanced set of lines in the external system. Reference
// is the only freely writable text field; the engine stores its encoded
// category/direction/date tag there.
type LedgerEntry struct {
	ID        string      `json:"id"`
	Date      time.Time   `json:"date"`
	Reference string      `json:"reference"`
	State     EntryState  `json:"state"`
	Lines     []EntryLine `json:"lines"`
}

// IsBalanced reports whether debits equal credits across all lines.
func (e LedgerEntry) IsBalanced() bool {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit.Equal(credit)
}

// Total returns the entry amount, taken as the debit-side sum.
func (e LedgerEntry) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// EntryQuery filters queryEntries calls against the external system.
// Zero values mean "no constraint".
type EntryQuery struct {
	ReferencePrefix string
	From            time.Time
	To              time.Time
	State           EntryState // empty = both draft and posted
}
