package dto

import (
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
)

// CreateTemplateLineRequest defines one line of a new journal template.
// AccountID left nil marks the line as dynamic: the account is chosen per
// transaction.
type CreateTemplateLineRequest struct {
	AccountID   *string                `json:"accountID" binding:"omitempty,uuid"`
	AccountHint string                 `json:"accountHint" binding:"max=255"`
	Position    domain.JournalPosition `json:"position" binding:"required,oneof=DEBIT CREDIT"`
	Formula     string                 `json:"formula" binding:"max=500,formula"`
	Description string                 `json:"description" binding:"max=255"`
}

// CreateTemplateRequest defines the structure for creating a journal template.
type CreateTemplateRequest struct {
	Name         string                      `json:"name" binding:"required,max=255"`
	Category     string                      `json:"category" binding:"max=100"`
	TemplateType domain.TemplateType         `json:"templateType" binding:"required,oneof=SIMPLE DETAILED"`
	Lines        []CreateTemplateLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// TemplateLineResponse is the API representation of a template line.
type TemplateLineResponse struct {
	LineID      string                 `json:"lineID"`
	AccountID   *string                `json:"accountID,omitempty"`
	AccountHint string                 `json:"accountHint,omitempty"`
	Position    domain.JournalPosition `json:"position"`
	Formula     string                 `json:"formula"`
	LineOrder   int                    `json:"lineOrder"`
	Description string                 `json:"description,omitempty"`
}

// TemplateResponse is the API representation of a journal template.
type TemplateResponse struct {
	TemplateID   string                 `json:"templateID"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category,omitempty"`
	TemplateType domain.TemplateType    `json:"templateType"`
	IsActive     bool                   `json:"isActive"`
	Lines        []TemplateLineResponse `json:"lines,omitempty"`
}

// ToTemplateResponse maps a domain template to its API representation.
func ToTemplateResponse(t *domain.JournalTemplate) TemplateResponse {
	lines := make([]TemplateLineResponse, len(t.Lines))
	for i, line := range t.Lines {
		lines[i] = TemplateLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			AccountHint: line.AccountHint,
			Position:    line.Position,
			Formula:     line.Formula,
			LineOrder:   line.LineOrder,
			Description: line.Description,
		}
	}
	return TemplateResponse{
		TemplateID:   t.TemplateID,
		Name:         t.Name,
		Category:     t.Category,
		TemplateType: t.TemplateType,
		IsActive:     t.IsActive,
		Lines:        lines,
	}
}

// ToTemplateResponses maps a slice of domain templates.
func ToTemplateResponses(templates []domain.JournalTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = ToTemplateResponse(&templates[i])
	}
	return responses
}
