package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTemplateRepository struct {
	pool *pgxpool.Pool
}

// newPgxTemplateRepository creates a new repository for journal templates.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{pool: pool}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

// SaveTemplate persists a template and its lines in one database transaction.
func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.JournalTemplate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin template save: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	templateQuery := `
		INSERT INTO journal_templates (template_id, name, category, template_type, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, templateQuery,
		template.TemplateID,
		template.Name,
		template.Category,
		template.TemplateType,
		template.IsActive,
		template.CreatedAt,
		template.CreatedBy,
		template.LastUpdatedAt,
		template.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: template %q already exists", apperrors.ErrDuplicate, template.Name)
		}
		return fmt.Errorf("failed to save template %s: %w", template.TemplateID, err)
	}

	lineQuery := `
		INSERT INTO journal_template_lines (line_id, template_id, account_id, account_hint, position, formula, line_order, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, line := range template.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.TemplateID,
			line.AccountID,
			line.AccountHint,
			line.Position,
			line.Formula,
			line.LineOrder,
			line.Description,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("failed to save template line %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close template line batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit template save: %w", err)
	}
	return nil
}

// FindTemplateByID retrieves a template with its lines ordered by line order.
func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID string) (*domain.JournalTemplate, error) {
	templateQuery := `
		SELECT template_id, name, category, template_type, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_templates
		WHERE template_id = $1;
	`
	var t domain.JournalTemplate
	err := r.pool.QueryRow(ctx, templateQuery, templateID).Scan(
		&t.TemplateID,
		&t.Name,
		&t.Category,
		&t.TemplateType,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find template by ID %s: %w", templateID, err)
	}

	lineQuery := `
		SELECT line_id, template_id, account_id, account_hint, position, formula, line_order, description
		FROM journal_template_lines
		WHERE template_id = $1
		ORDER BY line_order;
	`
	rows, err := r.pool.Query(ctx, lineQuery, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query template lines for %s: %w", templateID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalTemplateLine
		err := rows.Scan(
			&line.LineID,
			&line.TemplateID,
			&line.AccountID,
			&line.AccountHint,
			&line.Position,
			&line.Formula,
			&line.LineOrder,
			&line.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template line row: %w", err)
		}
		t.Lines = append(t.Lines, line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating template line rows: %w", rows.Err())
	}
	return &t, nil
}

// ListTemplates retrieves a paginated list of templates without their lines.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, limit int, offset int) ([]domain.JournalTemplate, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT template_id, name, category, template_type, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_templates
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}
	defer rows.Close()

	templates := []domain.JournalTemplate{}
	for rows.Next() {
		var t domain.JournalTemplate
		err := rows.Scan(
			&t.TemplateID,
			&t.Name,
			&t.Category,
			&t.TemplateType,
			&t.IsActive,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", rows.Err())
	}
	return templates, nil
}
