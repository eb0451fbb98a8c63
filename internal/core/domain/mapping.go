package domain

import "time"

// AccountMapping is the per-tenant configuration linking the cash catalog to
// identifiers in the external ledger. Created by auto setup, may be
// hand-edited afterwards; read on every posting call.
type AccountMapping struct {
	TenantID             string            `json:"tenantID"`
	CashJournalID        string            `json:"cashJournalID"`
	CashAccountID        string            `json:"cashAccountID"`
	BankAccountIDCurrent string            `json:"bankAccountIDCurrent"` // optional
	BankAccountIDSavings string            `json:"bankAccountIDSavings"` // optional
	CategoryToAccount    map[string]string `json:"categoryToAccount"`    // category code -> external account ID
	LastUpdatedAt        time.Time         `json:"lastUpdatedAt"`
}

// AccountFor resolves the counter account for a NORMAL category code.
func (m AccountMapping) AccountFor(code string) (string, bool) {
	id, ok := m.CategoryToAccount[code]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// BankAccountFor resolves the bank account for a TRANSFER category target.
func (m AccountMapping) BankAccountFor(target BankTarget) (string, bool) {
	switch target {
	case BankCurrent:
		return m.BankAccountIDCurrent, m.BankAccountIDCurrent != ""
	case BankSavings:
		return m.BankAccountIDSavings, m.BankAccountIDSavings != ""
	}
	return "", false
}
