package repositories

import (
	"context"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
)

// TemplateReader defines read operations for journal templates.
type TemplateReader interface {
	// FindTemplateByID retrieves a template with its lines ordered by line order.
	FindTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error)

	// ListTemplates retrieves a page of templates (without lines) ordered by name.
	ListTemplates(ctx context.Context, limit int, offset int) ([]domain.JournalTemplate, error)
}

// TemplateWriter defines write operations used by setup flows.
type TemplateWriter interface {
	// SaveTemplate persists a template and its lines atomically.
	SaveTemplate(ctx context.Context, template domain.JournalTemplate) error
}

// TemplateRepositoryFacade combines all template-related repository interfaces.
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}
