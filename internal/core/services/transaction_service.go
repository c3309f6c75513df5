package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hendrawijaya/pembukuan_app/internal/apperrors"
	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
	portsrepo "github.com/hendrawijaya/pembukuan_app/internal/core/ports/repositories"
	portssvc "github.com/hendrawijaya/pembukuan_app/internal/core/ports/services"
	"github.com/hendrawijaya/pembukuan_app/internal/dto"
	"github.com/hendrawijaya/pembukuan_app/internal/middleware"
	"github.com/hendrawijaya/pembukuan_app/internal/utils/accounting"
	"github.com/hendrawijaya/pembukuan_app/internal/utils/formula"
)

// transactionService orchestrates the posting lifecycle: it resolves template
// lines into balanced journal entries and drives the DRAFT -> POSTED -> VOID
// state machine.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryWithTx
	sequenceRepo    portsrepo.SequenceRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	templateRepo    portsrepo.TemplateRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryWithTx,
	sequenceRepo portsrepo.SequenceRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	templateRepo portsrepo.TemplateRepositoryFacade,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		sequenceRepo:    sequenceRepo,
		accountRepo:     accountRepo,
		templateRepo:    templateRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateDraft builds a DRAFT transaction from a template. The transaction
// number stays unassigned until posting so abandoned drafts never burn
// numbers.
func (s *transactionService) CreateDraft(ctx context.Context, req dto.CreateTransactionRequest, creator string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	template, err := s.templateRepo.FindTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", req.TemplateID, err)
	}
	if err := validateTemplate(template); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := validateInputs(template, req.Amount, req.Variables, req.Description); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	mappings, err := s.buildAccountMappings(ctx, template, req.AccountMappings)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TransactionDate: req.TransactionDate,
		TemplateID:      template.TemplateID,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		ProjectID:       req.ProjectID,
		Status:          domain.StatusDraft,
		Version:         1,
		AccountMappings: mappings,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}
	for i := range txn.AccountMappings {
		txn.AccountMappings[i].TransactionID = txn.TransactionID
	}
	for name, value := range req.Variables {
		txn.Variables = append(txn.Variables, domain.TransactionVariable{
			TransactionID: txn.TransactionID,
			Name:          name,
			Value:         value,
		})
	}

	if err := s.transactionRepo.SaveDraft(ctx, txn); err != nil {
		logger.Error("Failed to save draft transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	logger.Info("Draft transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("template_id", template.TemplateID))
	return &txn, nil
}

// Post turns a DRAFT into a POSTED transaction. Every step up to the commit
// is computed in memory; the sequence allocation and the aggregate write
// share one database transaction so a failure anywhere leaves no partial
// state behind.
func (s *transactionService) Post(ctx context.Context, transactionID string, actor string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}
	if !txn.IsDraft() {
		return nil, &IllegalStateTransitionError{Current: txn.Status, Requested: domain.StatusPosted}
	}

	template, err := s.templateRepo.FindTemplateByID(ctx, txn.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", txn.TemplateID, err)
	}

	resolved, lineErrs := s.resolveLines(ctx, template, txn.VariableEnv(), txn.MappedAccountID)
	if len(lineErrs) > 0 {
		return nil, &PostingError{LineErrors: lineErrs}
	}
	if err := accounting.ValidateBalance(resolved); err != nil {
		return nil, err
	}

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin posting: %w", err)
	}
	defer s.transactionRepo.Rollback(ctx, tx)

	now := time.Now().UTC()
	year := now.Year()

	transactionNumber, err := s.sequenceRepo.NextNumber(ctx, tx, domain.SequenceTransaction, year)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate transaction number: %w", err)
	}
	journalNumber, err := s.sequenceRepo.NextNumber(ctx, tx, domain.SequenceJournal, year)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate journal number: %w", err)
	}

	entries := buildJournalEntries(txn, resolved, journalNumber, now, actor)

	posted := *txn
	posted.TransactionNumber = &transactionNumber
	posted.Status = domain.StatusPosted
	posted.PostedAt = &now
	posted.PostedBy = actor
	posted.LastUpdatedAt = now
	posted.LastUpdatedBy = actor

	if err := s.transactionRepo.MarkPosted(ctx, tx, posted, entries); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent posting attempt lost the version race", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting: %w", err)
	}

	posted.Version++
	posted.JournalEntries = entries
	logger.Info("Transaction posted",
		slog.String("transaction_id", transactionID),
		slog.String("transaction_number", transactionNumber),
		slog.Int("entry_count", len(entries)),
	)
	return &posted, nil
}

// Void appends balancing reversal entries to a posted transaction and marks
// it VOID. History is append-only: the original entries stay untouched.
func (s *transactionService) Void(ctx context.Context, transactionID string, reason domain.VoidReason, notes string, actor string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}
	if !txn.IsPosted() {
		return nil, &IllegalStateTransitionError{Current: txn.Status, Requested: domain.StatusVoid}
	}

	originals, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries for %s: %w", transactionID, err)
	}

	tx, err := s.transactionRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin void: %w", err)
	}
	defer s.transactionRepo.Rollback(ctx, tx)

	now := time.Now().UTC()
	reversalNumber, err := s.sequenceRepo.NextNumber(ctx, tx, domain.SequenceJournal, now.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate reversal journal number: %w", err)
	}

	reversals := make([]domain.JournalEntry, len(originals))
	for i, original := range originals {
		entryID := original.EntryID
		reversals[i] = domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			JournalNumber: fmt.Sprintf("%s-%02d", reversalNumber, i+1),
			JournalDate:   original.JournalDate,
			AccountID:     original.AccountID,
			Description:   original.Description,
			DebitAmount:   original.CreditAmount,
			CreditAmount:  original.DebitAmount,
			IsReversal:    true,
			ReversalOf:    &entryID,
			CreatedAt:     now,
			CreatedBy:     actor,
		}
	}

	voided := *txn
	voided.Status = domain.StatusVoid
	voided.VoidReason = reason
	voided.VoidNotes = notes
	voided.VoidedAt = &now
	voided.VoidedBy = actor
	voided.LastUpdatedAt = now
	voided.LastUpdatedBy = actor

	if err := s.transactionRepo.MarkVoided(ctx, tx, voided, reversals); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent void attempt lost the version race", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if err := s.transactionRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit void: %w", err)
	}

	voided.Version++
	voided.JournalEntries = append(originals, reversals...)
	logger.Info("Transaction voided",
		slog.String("transaction_id", transactionID),
		slog.String("reason", string(reason)),
		slog.Int("reversal_count", len(reversals)),
	)
	return &voided, nil
}

// Preview resolves and evaluates a template execution without persisting
// anything or consuming any sequence numbers. Every detected problem is
// reported, not just the first.
func (s *transactionService) Preview(ctx context.Context, req dto.PreviewTransactionRequest) (*dto.PreviewResponse, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", req.TemplateID, err)
	}

	var problems []string
	if err := validateTemplate(template); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validateInputs(template, req.Amount, req.Variables, "-"); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return &dto.PreviewResponse{Valid: false, Errors: problems}, nil
	}

	env := formula.Env{"amount": req.Amount}
	for name, value := range req.Variables {
		env[name] = value
	}
	lookupMapping := func(templateLineID string) (string, bool) {
		accountID, ok := req.AccountMappings[templateLineID]
		return accountID, ok
	}

	resolved, lineErrs := s.resolveLines(ctx, template, env, lookupMapping)
	for _, le := range lineErrs {
		problems = append(problems, le.Error())
	}

	totalDebit, totalCredit := accounting.Totals(resolved)
	if len(lineErrs) == 0 && !totalDebit.Round(2).Equal(totalCredit.Round(2)) {
		unbalanced := &accounting.UnbalancedError{TotalDebit: totalDebit, TotalCredit: totalCredit}
		problems = append(problems, unbalanced.Error())
	}

	lines := make([]dto.PreviewLine, len(resolved))
	for i, line := range resolved {
		preview := dto.PreviewLine{
			LineOrder:   line.LineOrder,
			AccountCode: line.AccountCode,
			AccountName: line.AccountName,
		}
		if line.Position == domain.Debit {
			preview.DebitAmount = line.Amount
		} else {
			preview.CreditAmount = line.Amount
		}
		lines[i] = preview
	}

	return &dto.PreviewResponse{
		Valid:       len(problems) == 0,
		Errors:      problems,
		Lines:       lines,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}

// DeleteDraft removes a draft transaction. Posted and voided transactions
// are part of the audit trail and can never be deleted.
func (s *transactionService) DeleteDraft(ctx context.Context, transactionID string) error {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
	}
	if !txn.IsDraft() {
		return fmt.Errorf("%w: only draft transactions can be deleted (status is %s)", apperrors.ErrValidation, txn.Status)
	}
	return s.transactionRepo.DeleteDraft(ctx, transactionID)
}

// GetTransactionByID retrieves a transaction with its journal entries.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	entries, err := s.transactionRepo.FindEntriesByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries for %s: %w", transactionID, err)
	}
	txn.JournalEntries = entries
	return txn, nil
}

// ListTransactions retrieves a page of transactions.
func (s *transactionService) ListTransactions(ctx context.Context, status *domain.TransactionStatus, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.transactionRepo.ListTransactions(ctx, status, limit, offset)
}

// resolveLines turns template lines into resolved (account, position, amount)
// triples. Account resolution and formula evaluation are independent per
// line, and every line is processed even after a failure so the caller gets
// the complete list of problems.
func (s *transactionService) resolveLines(
	ctx context.Context,
	template *domain.JournalTemplate,
	env formula.Env,
	lookupMapping func(templateLineID string) (string, bool),
) ([]accounting.ResolvedLine, []*LineError) {
	// Collect every account the lines could reference and fetch them in one go.
	accountIDs := make([]string, 0, len(template.Lines))
	for _, line := range template.Lines {
		if line.AccountID != nil {
			accountIDs = append(accountIDs, *line.AccountID)
		} else if mapped, ok := lookupMapping(line.LineID); ok {
			accountIDs = append(accountIDs, mapped)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, []*LineError{{LineOrder: 0, Err: fmt.Errorf("failed to fetch accounts: %w", err)}}
	}

	var resolved []accounting.ResolvedLine
	var lineErrs []*LineError
	for _, line := range template.Lines {
		var lineFailed bool

		accountID := ""
		if line.AccountID != nil {
			accountID = *line.AccountID
		} else if mapped, ok := lookupMapping(line.LineID); ok {
			accountID = mapped
		} else {
			lineErrs = append(lineErrs, &LineError{LineOrder: line.LineOrder, Err: ErrMissingAccountMapping})
			lineFailed = true
		}

		var account domain.Account
		if !lineFailed {
			var found bool
			account, found = accounts[accountID]
			switch {
			case !found:
				lineErrs = append(lineErrs, &LineError{LineOrder: line.LineOrder, Err: fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)})
				lineFailed = true
			case !account.IsPostable():
				lineErrs = append(lineErrs, &LineError{LineOrder: line.LineOrder, Err: fmt.Errorf("%w: %s", ErrAccountNotPostable, account.AccountCode)})
				lineFailed = true
			}
		}

		amount, err := formula.Evaluate(line.Formula, env)
		if err != nil {
			lineErrs = append(lineErrs, &LineError{LineOrder: line.LineOrder, Err: err})
			lineFailed = true
		} else if amount.IsNegative() {
			lineErrs = append(lineErrs, &LineError{LineOrder: line.LineOrder, Err: fmt.Errorf("%w: %s", ErrNegativeLineAmount, amount.StringFixed(2))})
			lineFailed = true
		}

		if lineFailed {
			continue
		}
		resolved = append(resolved, accounting.ResolvedLine{
			LineOrder:   line.LineOrder,
			AccountID:   account.AccountID,
			AccountCode: account.AccountCode,
			AccountName: account.AccountName,
			Position:    line.Position,
			Amount:      amount,
		})
	}
	return resolved, lineErrs
}

// buildJournalEntries constructs the immutable ledger rows for a posting.
// One row per resolved line, numbered with a two-digit line suffix under the
// allocated journal number.
func buildJournalEntries(txn *domain.Transaction, resolved []accounting.ResolvedLine, journalNumber string, now time.Time, actor string) []domain.JournalEntry {
	entries := make([]domain.JournalEntry, len(resolved))
	for i, line := range resolved {
		entry := domain.JournalEntry{
			EntryID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			JournalNumber: fmt.Sprintf("%s-%02d", journalNumber, i+1),
			JournalDate:   txn.TransactionDate,
			AccountID:     line.AccountID,
			Description:   txn.Description,
			CreatedAt:     now,
			CreatedBy:     actor,
		}
		if line.Position == domain.Debit {
			entry.DebitAmount = line.Amount
		} else {
			entry.CreditAmount = line.Amount
		}
		entries[i] = entry
	}
	return entries
}

// buildAccountMappings validates the caller's dynamic-line selections against
// the template and the chart of accounts.
func (s *transactionService) buildAccountMappings(ctx context.Context, template *domain.JournalTemplate, raw map[string]string) ([]domain.TransactionAccountMapping, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	linesByID := make(map[string]domain.JournalTemplateLine, len(template.Lines))
	for _, line := range template.Lines {
		linesByID[line.LineID] = line
	}

	accountIDs := make([]string, 0, len(raw))
	for _, accountID := range raw {
		accountIDs = append(accountIDs, accountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch mapped accounts: %w", err)
	}

	mappings := make([]domain.TransactionAccountMapping, 0, len(raw))
	for lineID, accountID := range raw {
		line, ok := linesByID[lineID]
		if !ok {
			return nil, fmt.Errorf("%w: template line %s does not exist", apperrors.ErrValidation, lineID)
		}
		if !line.IsDynamic() {
			return nil, fmt.Errorf("%w: template line %d has a fixed account", apperrors.ErrValidation, line.LineOrder)
		}
		account, ok := accounts[accountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		if !account.IsPostable() {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotPostable, account.AccountCode)
		}
		mappings = append(mappings, domain.TransactionAccountMapping{
			TemplateLineID: lineID,
			AccountID:      accountID,
		})
	}
	return mappings, nil
}

// validateTemplate rejects templates the engine cannot execute.
func validateTemplate(template *domain.JournalTemplate) error {
	if !template.IsActive {
		return ErrTemplateInactive
	}
	if len(template.Lines) < 2 {
		return ErrTemplateMinLines
	}
	return nil
}

// validateInputs checks the caller-supplied numeric inputs against the
// template type: SIMPLE templates need a positive amount, DETAILED templates
// need at least one positive variable.
func validateInputs(template *domain.JournalTemplate, amount decimal.Decimal, variables map[string]decimal.Decimal, description string) error {
	if description == "" {
		return ErrDescriptionMissing
	}
	if template.TemplateType == domain.TemplateDetailed {
		for _, value := range variables {
			if value.IsPositive() {
				return nil
			}
		}
		return ErrVariableRequired
	}
	if !amount.IsPositive() {
		return ErrAmountRequired
	}
	return nil
}
