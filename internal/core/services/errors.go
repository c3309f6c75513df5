package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hendrawijaya/pembukuan_app/internal/core/domain"
)

var (
	ErrTemplateInactive  = errors.New("template is not active")
	ErrTemplateMinLines  = errors.New("template must have at least two lines")
	ErrAmountRequired    = errors.New("amount must be positive")
	ErrVariableRequired  = errors.New("at least one variable must have a positive value")
	ErrDescriptionMissing = errors.New("description is required")

	// ErrMissingAccountMapping indicates a dynamic template line has no
	// caller-supplied account for this transaction.
	ErrMissingAccountMapping = errors.New("no account mapping for dynamic line")

	// ErrAccountNotPostable indicates the resolved account is inactive or a header node.
	ErrAccountNotPostable = errors.New("account is not postable")

	// ErrNegativeLineAmount indicates a formula produced a negative amount.
	ErrNegativeLineAmount = errors.New("formula produced a negative amount")
)

// IllegalStateTransitionError reports a forbidden lifecycle transition,
// naming the current and the requested state.
type IllegalStateTransitionError struct {
	Current   domain.TransactionStatus
	Requested domain.TransactionStatus
}

func (e *IllegalStateTransitionError) Error() string {
	return fmt.Sprintf("illegal state transition from %s to %s", e.Current, e.Requested)
}

// LineError ties a failure to the template line that caused it so callers
// can correct exactly the offending input.
type LineError struct {
	LineOrder int
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.LineOrder, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// PostingError aggregates every failing line of a posting attempt. All lines
// are always evaluated so the caller sees the full set of problems at once
// instead of fixing them one retry at a time.
type PostingError struct {
	LineErrors []*LineError
}

func (e *PostingError) Error() string {
	msgs := make([]string, len(e.LineErrors))
	for i, le := range e.LineErrors {
		msgs[i] = le.Error()
	}
	return "posting failed: " + strings.Join(msgs, "; ")
}

// Messages returns one human-readable string per failing line.
func (e *PostingError) Messages() []string {
	msgs := make([]string, len(e.LineErrors))
	for i, le := range e.LineErrors {
		msgs[i] = le.Error()
	}
	return msgs
}
