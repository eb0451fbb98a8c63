package dto

import "github.com/tillpoint/cashbook_app/internal/core/domain"

// CategoryResponse defines the data returned for one cash category.
type CategoryResponse struct {
	Code      string `json:"code"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
	NameJA    string `json:"nameJa"`
	NameEN    string `json:"nameEn"`
}

// ListCategoriesResponse wraps the catalog listing.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.CashCategory to its DTO.
func ToCategoryResponse(c domain.CashCategory) CategoryResponse {
	return CategoryResponse{
		Code:      c.Code,
		Direction: string(c.Direction),
		Type:      string(c.Type),
		NameJA:    c.NameJA,
		NameEN:    c.NameEN,
	}
}

// ToListCategoriesResponse converts a slice of categories.
func ToListCategoriesResponse(cats []domain.CashCategory) ListCategoriesResponse {
	resp := ListCategoriesResponse{Categories: make([]CategoryResponse, len(cats))}
	for i, c := range cats {
		resp.Categories[i] = ToCategoryResponse(c)
	}
	return resp
}
