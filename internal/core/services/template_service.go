package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
	"github.com/hendrawijaya/pembukuan_app/internal/middleware"
	"github.com/hendrawijaya/pembukuan_app/internal/utils/formula"
)

type templateService struct {
	templateRepo portsrepo.TemplateRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewTemplateService creates a new template service.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TemplateSvcFacade {
	return &templateService{templateRepo: templateRepo, accountRepo: accountRepo}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// CreateTemplate persists a new journal template. Formula syntax and fixed
// account references are validated here so a template that saves is a
// template that can execute.
func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, creator string) (*domain.JournalTemplate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fixedIDs := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.AccountID != nil {
			fixedIDs = append(fixedIDs, *line.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, fixedIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch line accounts: %w", err)
	}

	for i, line := range req.Lines {
		if err := formula.Validate(line.Formula); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, i+1, err)
		}
		if line.AccountID == nil {
			continue
		}
		account, ok := accounts[*line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: line %d references account %s", apperrors.ErrNotFound, i+1, *line.AccountID)
		}
		if !account.IsPostable() {
			return nil, fmt.Errorf("%w: line %d uses non-postable account %s", apperrors.ErrValidation, i+1, account.AccountCode)
		}
	}

	now := time.Now().UTC()
	template := domain.JournalTemplate{
		TemplateID:   uuid.NewString(),
		Name:         req.Name,
		Category:     req.Category,
		TemplateType: req.TemplateType,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}
	for i, line := range req.Lines {
		template.Lines = append(template.Lines, domain.JournalTemplateLine{
			LineID:      uuid.NewString(),
			TemplateID:  template.TemplateID,
			AccountID:   line.AccountID,
			AccountHint: line.AccountHint,
			Position:    line.Position,
			Formula:     line.Formula,
			LineOrder:   i + 1,
			Description: line.Description,
		})
	}

	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		logger.Error("Failed to save template", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	logger.Info("Template created", slog.String("template_id", template.TemplateID), slog.String("name", template.Name))
	return &template, nil
}

// GetTemplateByID retrieves a template with its ordered lines.
func (s *templateService) GetTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error) {
	return s.templateRepo.FindTemplateByID(ctx, templateID)
}

// ListTemplates retrieves a page of templates.
func (s *templateService) ListTemplates(ctx context.Context, limit int, offset int) ([]domain.JournalTemplate, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.templateRepo.ListTemplates(ctx, limit, offset)
}
