// Package workflow sequences the capture of a freight contract through its
// stages and emits the finalized contract, and when owed, the carrier
// payable.
package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/documents"
	"github.com/haulbook/haulbook/internal/freight"
	"github.com/haulbook/haulbook/internal/id"
	"github.com/haulbook/haulbook/internal/model"
)

// Orchestrator holds the in-progress state of one contract. It is not safe
// for concurrent use; create one per contract being edited.
type Orchestrator struct {
	store Store
	stage Stage

	core   model.ContractCore
	ledger *documents.Ledger
	terms  model.FreightTerms
	notes  model.ClosingNotes

	finalizedAt time.Time
	obligation  *model.PayableObligation
	receipt     *model.ReceiptPlaceholder

	now      func() time.Time
	newID    id.Generator
	notifier Notifier
	recorder Recorder
	log      zerolog.Logger
}

// New starts capture of a new contract.
func New(store Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store: store,
		stage: StageContractCore,
		now:   time.Now,
		newID: id.Random,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.ledger = documents.NewLedgerWithIDs(o.newID)
	return o
}

// Open resumes a contract from its last committed snapshot. A finalized
// contract opens read-only at StageFinalized; anything else restarts at
// StageContractCore with the saved data prefilled.
func Open(ctx context.Context, store Store, contractID string, opts ...Option) (*Orchestrator, error) {
	o := New(store, opts...)

	snap, err := store.LoadContract(ctx, contractID)
	if err != nil {
		if errors.Is(err, model.ErrContractNotFound) {
			return nil, fmt.Errorf("loading contract %s: %w", contractID, err)
		}
		return nil, &model.PersistenceError{Op: "load contract", Err: err}
	}

	ledger, err := documents.Restore(snap.Documents, snap.Links, o.newID)
	if err != nil {
		return nil, fmt.Errorf("restoring documents of %s: %w", contractID, err)
	}

	o.core = snap.Core
	o.ledger = ledger
	o.terms = snap.Terms
	o.notes = snap.Notes
	if snap.Finalized {
		o.stage = StageFinalized
		o.finalizedAt = snap.FinalizedAt
	}
	return o, nil
}

// Stage returns the current stage.
func (o *Orchestrator) Stage() Stage {
	return o.stage
}

// ContractID returns the contract id, empty until the core is saved.
func (o *Orchestrator) ContractID() string {
	return o.core.ID
}

// SaveContractCore validates the core data and advances to StageDocuments.
func (o *Orchestrator) SaveContractCore(ctx context.Context, core model.ContractCore) error {
	err := o.saveContractCore(core)
	o.saved(ctx, StageContractCore, err)
	return err
}

func (o *Orchestrator) saveContractCore(core model.ContractCore) error {
	if err := o.require(StageContractCore); err != nil {
		return err
	}
	core.Number = strings.TrimSpace(core.Number)
	if core.Number == "" {
		return model.NewValidationError("number", "contract number is required")
	}
	if !core.Type.Valid() {
		return model.NewValidationError("type", "unknown contract type "+string(core.Type))
	}
	if core.IssueDate.IsZero() {
		return model.NewValidationError("issue_date", "issue date is required")
	}
	if core.Type == model.ContractThirdParty && strings.TrimSpace(core.Carrier.Name) == "" {
		return model.NewValidationError("carrier", "third-party contracts need a carrier")
	}

	switch {
	case core.ID != "":
	case o.core.ID != "":
		core.ID = o.core.ID
	default:
		core.ID = o.newID().String()
	}
	o.core = core
	o.stage = StageDocuments
	return nil
}

// AddDocument registers a document. Only allowed at StageDocuments.
func (o *Orchestrator) AddDocument(params documents.AddDocumentParams) (model.DocumentID, error) {
	if err := o.require(StageDocuments); err != nil {
		return model.DocumentID{}, err
	}
	return o.ledger.AddDocument(params)
}

// RemoveDocument removes a document and its links. Only allowed at StageDocuments.
func (o *Orchestrator) RemoveDocument(docID model.DocumentID) error {
	if err := o.require(StageDocuments); err != nil {
		return err
	}
	o.ledger.RemoveDocument(docID)
	return nil
}

// LinkGoodsToFreight replaces the goods invoices covered by a freight
// invoice. Only allowed at StageDocuments.
func (o *Orchestrator) LinkGoodsToFreight(freightID model.DocumentID, goodsIDs []model.DocumentID) error {
	if err := o.require(StageDocuments); err != nil {
		return err
	}
	return o.ledger.LinkGoodsToFreight(freightID, goodsIDs)
}

// SaveDocuments closes the document stage and advances to StageFreightTerms.
func (o *Orchestrator) SaveDocuments(ctx context.Context) error {
	err := o.require(StageDocuments)
	if err == nil {
		o.stage = StageFreightTerms
	}
	o.saved(ctx, StageDocuments, err)
	return err
}

// SaveFreightTerms normalizes and validates the terms for the contract type
// and advances to StageClosingNotes.
func (o *Orchestrator) SaveFreightTerms(ctx context.Context, terms model.FreightTerms) error {
	err := o.saveFreightTerms(terms)
	o.saved(ctx, StageFreightTerms, err)
	return err
}

func (o *Orchestrator) saveFreightTerms(terms model.FreightTerms) error {
	if err := o.require(StageFreightTerms); err != nil {
		return err
	}
	terms = freight.Normalize(terms, o.core.Type)
	if err := freight.Validate(terms, o.core.Type); err != nil {
		return err
	}
	o.terms = cloneTerms(terms)
	o.stage = StageClosingNotes
	return nil
}

// Outcome is what a successful finalize emitted.
type Outcome struct {
	Contract   model.ContractAggregate
	Obligation *model.PayableObligation
	Receipt    *model.ReceiptPlaceholder
}

// SaveClosingNotes records the notes and finalizes the contract. The
// contract, and when eligible the payable obligation and its receipt
// placeholder, are written in one store transaction. On any failure the
// orchestrator stays at StageClosingNotes and nothing is emitted.
func (o *Orchestrator) SaveClosingNotes(ctx context.Context, notes model.ClosingNotes) (*Outcome, error) {
	if err := o.require(StageClosingNotes); err != nil {
		o.saved(ctx, StageClosingNotes, err)
		return nil, err
	}

	start := o.now()
	out, err := o.finalize(ctx, notes, start)
	elapsed := o.now().Sub(start)

	if err != nil {
		o.log.Warn().Err(err).Str("contract", o.core.Number).Msg("finalize failed")
		if o.recorder != nil {
			o.recorder.Finalized(false, false, elapsed)
		}
		o.notify(ctx, Event{Kind: EventFinalizeFailed, Stage: StageClosingNotes, Detail: err.Error()})
		return nil, err
	}

	o.notes = notes
	o.finalizedAt = out.Contract.FinalizedAt
	o.obligation = out.Obligation
	o.receipt = out.Receipt
	o.stage = StageFinalized

	ev := Event{Kind: EventFinalized, Stage: StageFinalized}
	logEv := o.log.Info().Str("contract", o.core.Number).Str("balance", out.Contract.BalanceDue.StringFixed(2))
	if out.Obligation != nil {
		ev.Obligation = true
		ev.Amount = out.Obligation.Amount
		logEv = logEv.Str("obligation", out.Obligation.ID.String())
	}
	logEv.Msg("contract finalized")
	if o.recorder != nil {
		o.recorder.Finalized(true, out.Obligation != nil, elapsed)
	}
	o.notify(ctx, ev)
	return out, nil
}

func (o *Orchestrator) finalize(ctx context.Context, notes model.ClosingNotes, now time.Time) (*Outcome, error) {
	balance := freight.ComputeBalance(o.terms)
	out := &Outcome{
		Contract: model.ContractAggregate{
			Core:        o.core,
			Documents:   o.ledger.Documents(),
			Links:       o.ledger.Links(),
			Totals:      o.ledger.Totals(),
			Terms:       cloneTerms(o.terms),
			BalanceDue:  balance,
			Notes:       notes,
			FinalizedAt: now,
		},
	}

	if freight.IsObligationEligible(o.terms, o.core.Type) {
		snapshot, err := json.Marshal(o.core.Carrier.Payment)
		if err != nil {
			return nil, fmt.Errorf("encoding payment snapshot: %w", err)
		}
		out.Obligation = &model.PayableObligation{
			ID:              o.newID(),
			ContractID:      o.core.ID,
			CarrierID:       o.core.Carrier.ID,
			CarrierName:     o.core.Carrier.Name,
			Amount:          balance,
			DueDate:         *o.terms.DueDate,
			PaymentSnapshot: string(snapshot),
			IssuedAt:        now,
		}
		out.Receipt = &model.ReceiptPlaceholder{
			ID:           o.newID(),
			ContractID:   o.core.ID,
			ObligationID: out.Obligation.ID,
			Amount:       balance,
			CreatedAt:    now,
		}
	}

	tx, err := o.store.BeginFinalize(ctx)
	if err != nil {
		return nil, &model.PersistenceError{Op: "begin finalize", Err: err}
	}
	if err := writeFinalize(ctx, tx, out); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, model.ErrContractFinalized) {
			return nil, &StageError{Current: StageClosingNotes, Attempted: StageFinalized, Err: ErrFinalized}
		}
		return nil, err
	}
	return out, nil
}

func writeFinalize(ctx context.Context, tx FinalizeTx, out *Outcome) error {
	if err := tx.SaveContract(ctx, &out.Contract); err != nil {
		return &model.PersistenceError{Op: "save contract", Err: err}
	}
	if out.Obligation != nil {
		if err := tx.SaveObligation(ctx, out.Obligation); err != nil {
			return &model.PersistenceError{Op: "save obligation", Err: err}
		}
		if err := tx.SaveReceipt(ctx, out.Receipt); err != nil {
			return &model.PersistenceError{Op: "save receipt", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &model.PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

// GoBack returns to an earlier stage. Data captured in later stages is
// kept, but each later stage has to be saved again.
func (o *Orchestrator) GoBack(stage Stage) error {
	if o.stage == StageFinalized {
		return &StageError{Current: o.stage, Attempted: stage, Err: ErrFinalized}
	}
	if stage < StageContractCore || stage > o.stage {
		return &StageError{Current: o.stage, Attempted: stage, Err: ErrOutOfOrder}
	}
	o.log.Debug().Stringer("from", o.stage).Stringer("to", stage).Msg("stage rewound")
	o.stage = stage
	return nil
}

// State is a copy of everything captured so far.
type State struct {
	Stage       Stage
	Core        model.ContractCore
	Documents   []model.TransportDocument
	Links       []model.DocumentLink
	Totals      model.Totals
	Terms       model.FreightTerms
	BalanceDue  decimal.Decimal
	Eligible    bool
	Notes       model.ClosingNotes
	FinalizedAt time.Time
	Obligation  *model.PayableObligation
	Receipt     *model.ReceiptPlaceholder
}

// State returns a snapshot that shares no memory with the orchestrator.
func (o *Orchestrator) State() State {
	s := State{
		Stage:       o.stage,
		Core:        o.core,
		Documents:   o.ledger.Documents(),
		Links:       o.ledger.Links(),
		Totals:      o.ledger.Totals(),
		Terms:       cloneTerms(o.terms),
		BalanceDue:  freight.ComputeBalance(o.terms),
		Eligible:    freight.IsObligationEligible(o.terms, o.core.Type),
		Notes:       o.notes,
		FinalizedAt: o.finalizedAt,
	}
	if o.obligation != nil {
		ob := *o.obligation
		s.Obligation = &ob
	}
	if o.receipt != nil {
		rc := *o.receipt
		s.Receipt = &rc
	}
	return s
}

// LinksForGoods returns the freight invoices covering a goods invoice.
func (o *Orchestrator) LinksForGoods(goodsID model.DocumentID) []model.DocumentID {
	return o.ledger.LinksForGoods(goodsID)
}

func (o *Orchestrator) require(stage Stage) error {
	switch {
	case o.stage == StageFinalized:
		return &StageError{Current: o.stage, Attempted: stage, Err: ErrFinalized}
	case o.stage != stage:
		return &StageError{Current: o.stage, Attempted: stage, Err: ErrOutOfOrder}
	}
	return nil
}

func (o *Orchestrator) saved(ctx context.Context, stage Stage, err error) {
	if o.recorder != nil {
		o.recorder.StageSaved(stage.String(), err == nil)
	}
	if err != nil {
		o.log.Debug().Err(err).Stringer("stage", stage).Msg("stage save rejected")
		o.notify(ctx, Event{Kind: EventStageFailed, Stage: stage, Detail: err.Error()})
		return
	}
	o.log.Debug().Stringer("stage", stage).Stringer("next", o.stage).Msg("stage saved")
	o.notify(ctx, Event{Kind: EventStageSaved, Stage: stage})
}

func (o *Orchestrator) notify(ctx context.Context, ev Event) {
	if o.notifier == nil {
		return
	}
	ev.ContractID = o.core.ID
	ev.ContractNumber = o.core.Number
	ev.At = o.now()
	o.notifier.Notify(ctx, ev)
}

func cloneTerms(t model.FreightTerms) model.FreightTerms {
	if t.AdvanceDate != nil {
		d := *t.AdvanceDate
		t.AdvanceDate = &d
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
