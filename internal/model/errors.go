package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrContractNotFound is returned by stores when a contract id is unknown.
var ErrContractNotFound = errors.New("contract not found")

// ErrContractFinalized is returned by stores asked to finalize a contract
// that already has a committed finalization.
var ErrContractFinalized = errors.New("contract already finalized in store")

// ValidationError reports malformed input to a single operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports a reference to a document or line that does not exist.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Ref)
}

// Problem is one structural defect of a posting. Line is -1 when the
// defect concerns the posting as a whole.
type Problem struct {
	Line   int
	Reason string
}

// StructuralError reports postings that are malformed regardless of balance.
type StructuralError struct {
	Problems []Problem
}

func (e *StructuralError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		if p.Line < 0 {
			msgs[i] = p.Reason
			continue
		}
		msgs[i] = fmt.Sprintf("line %d: %s", p.Line+1, p.Reason)
	}
	return "malformed posting: " + strings.Join(msgs, "; ")
}

// ImbalanceError reports a posting whose debits and credits differ.
type ImbalanceError struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Diff        decimal.Decimal
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("debits (%s) != credits (%s), diff %s",
		e.DebitTotal.StringFixed(2), e.CreditTotal.StringFixed(2), e.Diff.StringFixed(2))
}

// InvariantError reports an edit that would break a structural rule.
type InvariantError struct {
	Rule    string
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// PersistenceError wraps a failure of the external storage collaborator.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
