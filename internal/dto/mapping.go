package dto

import (
	"time"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// SetupResult reports what auto setup discovered and persisted.
type SetupResult struct {
	CashJournalID        string `json:"cashJournalID"`
	CashAccountID        string `json:"cashAccountID"`
	BankAccountIDCurrent string `json:"bankAccountIDCurrent,omitempty"`
	BankAccountIDSavings string `json:"bankAccountIDSavings,omitempty"`
	MappedCategories     int    `json:"mappedCategories"`
}

// UpdateMappingRequest carries a hand-edited mapping.
type UpdateMappingRequest struct {
	CashJournalID        string            `json:"cashJournalID" binding:"required"`
	CashAccountID        string            `json:"cashAccountID" binding:"required"`
	BankAccountIDCurrent string            `json:"bankAccountIDCurrent"`
	BankAccountIDSavings string            `json:"bankAccountIDSavings"`
	CategoryToAccount    map[string]string `json:"categoryToAccount"`
}

// MappingResponse defines the data returned for a stored mapping.
type MappingResponse struct {
	CashJournalID        string            `json:"cashJournalID"`
	CashAccountID        string            `json:"cashAccountID"`
	BankAccountIDCurrent string            `json:"bankAccountIDCurrent,omitempty"`
	BankAccountIDSavings string            `json:"bankAccountIDSavings,omitempty"`
	CategoryToAccount    map[string]string `json:"categoryToAccount"`
	LastUpdatedAt        time.Time         `json:"lastUpdatedAt"`
}

// ToMappingResponse converts a domain.AccountMapping to its DTO.
func ToMappingResponse(m *domain.AccountMapping) MappingResponse {
	return MappingResponse{
		CashJournalID:        m.CashJournalID,
		CashAccountID:        m.CashAccountID,
		BankAccountIDCurrent: m.BankAccountIDCurrent,
		BankAccountIDSavings: m.BankAccountIDSavings,
		CategoryToAccount:    m.CategoryToAccount,
		LastUpdatedAt:        m.LastUpdatedAt,
	}
}
