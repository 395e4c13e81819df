// Package memory is an in-process contract store for tests and dry runs.
package memory

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/workflow"
)

// ErrTxDone is returned by a finalize transaction used after Commit or Rollback.
var ErrTxDone = errors.New("finalize transaction already closed")

// Store keeps finalized contracts, obligations and receipts in memory. It is
// safe for concurrent use by several orchestrators.
type Store struct {
	mu          sync.RWMutex
	contracts   map[string]model.ContractAggregate
	obligations map[string][]model.PayableObligation
	receipts    map[string][]model.ReceiptPlaceholder
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		contracts:   make(map[string]model.ContractAggregate),
		obligations: make(map[string][]model.PayableObligation),
		receipts:    make(map[string][]model.ReceiptPlaceholder),
	}
}

// LoadContract returns a copy of the committed contract.
func (s *Store) LoadContract(ctx context.Context, contractID string) (*model.ContractSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	agg, ok := s.contracts[contractID]
	if !ok {
		return nil, model.ErrContractNotFound
	}
	return &model.ContractSnapshot{ContractAggregate: clone(agg), Finalized: true}, nil
}

// BeginFinalize starts a transaction whose writes become visible on Commit.
func (s *Store) BeginFinalize(ctx context.Context) (workflow.FinalizeTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &finalizeTx{store: s}, nil
}

// Obligations returns the obligations committed for a contract.
func (s *Store) Obligations(contractID string) []model.PayableObligation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.obligations[contractID])
}

// Receipts returns the receipt placeholders committed for a contract.
func (s *Store) Receipts(contractID string) []model.ReceiptPlaceholder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.receipts[contractID])
}

// ContractIDs lists committed contracts in id order.
func (s *Store) ContractIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.contracts))
	for contractID := range s.contracts {
		ids = append(ids, contractID)
	}
	sort.Strings(ids)
	return ids
}

type finalizeTx struct {
	store *Store
	done  bool

	contracts   []model.ContractAggregate
	obligations []model.PayableObligation
	receipts    []model.ReceiptPlaceholder
}

func (tx *finalizeTx) SaveContract(ctx context.Context, c *model.ContractAggregate) error {
	if tx.done {
		return ErrTxDone
	}
	tx.store.mu.RLock()
	_, finalized := tx.store.contracts[c.Core.ID]
	tx.store.mu.RUnlock()
	if finalized {
		return model.ErrContractFinalized
	}
	tx.contracts = append(tx.contracts, clone(*c))
	return ctx.Err()
}

func (tx *finalizeTx) SaveObligation(ctx context.Context, o *model.PayableObligation) error {
	if tx.done {
		return ErrTxDone
	}
	tx.obligations = append(tx.obligations, *o)
	return ctx.Err()
}

func (tx *finalizeTx) SaveReceipt(ctx context.Context, r *model.ReceiptPlaceholder) error {
	if tx.done {
		return ErrTxDone
	}
	tx.receipts = append(tx.receipts, *r)
	return ctx.Err()
}

// Commit publishes the staged records. It fails with
// model.ErrContractFinalized, publishing nothing, if another transaction
// finalized one of the staged contracts first.
func (tx *finalizeTx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.done = true

	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range tx.contracts {
		if _, ok := s.contracts[c.Core.ID]; ok {
			return model.ErrContractFinalized
		}
	}
	for _, c := range tx.contracts {
		s.contracts[c.Core.ID] = c
	}
	for _, o := range tx.obligations {
		s.obligations[o.ContractID] = append(s.obligations[o.ContractID], o)
	}
	for _, r := range tx.receipts {
		s.receipts[r.ContractID] = append(s.receipts[r.ContractID], r)
	}
	return nil
}

func (tx *finalizeTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	tx.contracts, tx.obligations, tx.receipts = nil, nil, nil
	return nil
}

func clone(c model.ContractAggregate) model.ContractAggregate {
	c.Documents = slices.Clone(c.Documents)
	if c.Links != nil {
		links := make([]model.DocumentLink, len(c.Links))
		for i, l := range c.Links {
			links[i] = model.DocumentLink{FreightID: l.FreightID, GoodsIDs: slices.Clone(l.GoodsIDs)}
		}
		c.Links = links
	}
	if c.Terms.AdvanceDate != nil {
		d := *c.Terms.AdvanceDate
		c.Terms.AdvanceDate = &d
	}
	if c.Terms.DueDate != nil {
		d := *c.Terms.DueDate
		c.Terms.DueDate = &d
	}
	return c
}
