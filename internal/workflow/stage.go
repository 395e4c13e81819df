package workflow

import (
	"errors"
	"fmt"
)

// Stage is a step of contract capture.
type Stage int

const (
	StageContractCore Stage = iota
	StageDocuments
	StageFreightTerms
	StageClosingNotes
	StageFinalized
)

var stageNames = [...]string{
	StageContractCore: "contract_core",
	StageDocuments:    "documents",
	StageFreightTerms: "freight_terms",
	StageClosingNotes: "closing_notes",
	StageFinalized:    "finalized",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage is the inverse of Stage.String.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q", name)
}

var (
	// ErrOutOfOrder is returned when an operation targets a stage other
	// than the current one.
	ErrOutOfOrder = errors.New("stage out of order")

	// ErrFinalized is returned for any change to a finalized contract.
	ErrFinalized = errors.New("contract already finalized")
)

// StageError reports an operation attempted at the wrong stage.
type StageError struct {
	Current   Stage
	Attempted Stage
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s requested while at %s: %v", e.Attempted, e.Current, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
