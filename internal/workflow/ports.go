package workflow

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/model"
)

//go:generate mockgen -source=ports.go -destination=ports_mock.go -package=workflow

// Store is the persistence collaborator. Reads return the latest committed
// snapshot; finalize writes go through a FinalizeTx so they land together
// or not at all.
type Store interface {
	LoadContract(ctx context.Context, contractID string) (*model.ContractSnapshot, error)
	BeginFinalize(ctx context.Context) (FinalizeTx, error)
}

// FinalizeTx stages the records produced by a finalize.
type FinalizeTx interface {
	SaveContract(ctx context.Context, contract *model.ContractAggregate) error
	SaveObligation(ctx context.Context, obligation *model.PayableObligation) error
	SaveReceipt(ctx context.Context, receipt *model.ReceiptPlaceholder) error
	Commit() error
	Rollback() error
}

// Notifier receives informational events. Delivery is best effort and
// never affects the outcome of the operation that produced the event.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Recorder collects workflow metrics.
type Recorder interface {
	StageSaved(stage string, ok bool)
	Finalized(ok, obligation bool, elapsed time.Duration)
}

// EventKind classifies workflow events.
type EventKind string

const (
	EventStageSaved     EventKind = "stage_saved"
	EventStageFailed    EventKind = "stage_failed"
	EventFinalized      EventKind = "finalized"
	EventFinalizeFailed EventKind = "finalize_failed"
)

// Event describes the outcome of a stage save or finalize.
type Event struct {
	Kind           EventKind
	ContractID     string
	ContractNumber string
	Stage          Stage
	At             time.Time

	// Set on finalize events when an obligation was emitted.
	Obligation bool
	Amount     decimal.Decimal

	// Error message for failure events.
	Detail string
}
