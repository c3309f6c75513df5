package domain

import "fmt"

// Sequence types used by the posting engine. Transaction numbers and journal
// numbers come from distinct counters.
const (
	SequenceTransaction = "TRANSACTION"
	SequenceJournal     = "JOURNAL"
)

// TransactionSequence is the counter state behind document numbering, keyed
// by (sequence type, year). LastNumber is monotonically non-decreasing and a
// number, once issued, is never reused.
type TransactionSequence struct {
	SequenceType string `json:"sequenceType"`
	Year         int    `json:"year"`
	Prefix       string `json:"prefix"`
	LastNumber   int64  `json:"lastNumber"`
}

// DocumentNumber formats the current counter value, e.g. "TRX-2025-0001".
// Numbers beyond four digits simply widen.
func (s *TransactionSequence) DocumentNumber() string {
	return fmt.Sprintf("%s-%d-%04d", s.Prefix, s.Year, s.LastNumber)
}

// SequencePrefix returns the document prefix conventionally used for a
// sequence type.
func SequencePrefix(sequenceType string) string {
	switch sequenceType {
	case SequenceJournal:
		return "JE"
	default:
		return "TRX"
	}
}
