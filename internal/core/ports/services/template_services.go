package services

import (
	"context"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
)

// TemplateReaderSvc defines read operations for journal templates.
type TemplateReaderSvc interface {
	// GetTemplateByID retrieves a template with its ordered lines.
	GetTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error)

	// ListTemplates retrieves a page of templates.
	ListTemplates(ctx context.Context, limit int, offset int) ([]domain.JournalTemplate, error)
}

// TemplateWriterSvc defines write operations for setup flows. Formula syntax
// is checked at save time so broken formulas are rejected before a template
// is ever executed.
type TemplateWriterSvc interface {
	// CreateTemplate persists a new journal template with its lines.
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, creator string) (*domain.JournalTemplate, error)
}

// TemplateSvcFacade combines all template-related service interfaces.
type TemplateSvcFacade interface {
	TemplateReaderSvc
	TemplateWriterSvc
}
