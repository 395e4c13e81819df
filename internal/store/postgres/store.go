// Package postgres persists finalized contracts in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/workflow"
)

// Store implements workflow.Store on a *sql.DB opened with the pgx driver.
type Store struct {
	db *sql.DB
}

// New creates a Store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate applies Schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

const selectContract = `SELECT id, number, contract_type, issue_date,
	carrier_id, carrier_name, carrier_tax_id, carrier_payment,
	driver_name, vehicle_plate, origin, destination,
	contracted_freight, advance_value, advance_date, toll_value, generate_payable, due_date,
	total_freight, total_cargo, balance_due, notes, internal_remarks, finalized_at
	FROM contracts WHERE id = $1`

// LoadContract reads a contract with its documents and links.
func (s *Store) LoadContract(ctx context.Context, contractID string) (*model.ContractSnapshot, error) {
	var (
		c                    model.ContractAggregate
		contractType         string
		payment              []byte
		advanceDate, dueDate sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, selectContract, contractID).Scan(
		&c.Core.ID, &c.Core.Number, &contractType, &c.Core.IssueDate,
		&c.Core.Carrier.ID, &c.Core.Carrier.Name, &c.Core.Carrier.TaxID, &payment,
		&c.Core.DriverName, &c.Core.VehiclePlate, &c.Core.Origin, &c.Core.Destination,
		&c.Terms.ContractedFreightValue, &c.Terms.AdvanceValue, &advanceDate, &c.Terms.TollValue, &c.Terms.GeneratePayable, &dueDate,
		&c.Totals.TotalFreightValue, &c.Totals.TotalCargoValue, &c.BalanceDue, &c.Notes.Notes, &c.Notes.InternalRemarks, &c.FinalizedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrContractNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading contract %s: %w", contractID, err)
	}

	c.Core.Type = model.ContractType(contractType)
	if err := json.Unmarshal(payment, &c.Core.Carrier.Payment); err != nil {
		return nil, fmt.Errorf("decoding carrier payment: %w", err)
	}
	c.Terms.AdvanceDate = timePtr(advanceDate)
	c.Terms.DueDate = timePtr(dueDate)

	if c.Documents, err = s.loadDocuments(ctx, contractID); err != nil {
		return nil, err
	}
	if c.Links, err = s.loadLinks(ctx, contractID); err != nil {
		return nil, err
	}
	return &model.ContractSnapshot{ContractAggregate: c, Finalized: true}, nil
}

func (s *Store) loadDocuments(ctx context.Context, contractID string) ([]model.TransportDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, number, freight_value, cargo_value
		FROM contract_documents WHERE contract_id = $1 ORDER BY position`, contractID)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	var docs []model.TransportDocument
	for rows.Next() {
		var (
			d    model.TransportDocument
			kind string
		)
		if err := rows.Scan(&d.ID, &kind, &d.Number, &d.FreightValue, &d.CargoValue); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		d.Kind = model.DocumentKind(kind)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (s *Store) loadLinks(ctx context.Context, contractID string) ([]model.DocumentLink, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.freight_id, l.goods_id
		FROM document_links l
		JOIN contract_documents f ON f.id = l.freight_id
		WHERE l.contract_id = $1
		ORDER BY f.position, l.position`, contractID)
	if err != nil {
		return nil, fmt.Errorf("loading links: %w", err)
	}
	defer rows.Close()

	var links []model.DocumentLink
	for rows.Next() {
		var freightID, goodsID uuid.UUID
		if err := rows.Scan(&freightID, &goodsID); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		if n := len(links); n > 0 && links[n-1].FreightID == freightID {
			links[n-1].GoodsIDs = append(links[n-1].GoodsIDs, goodsID)
			continue
		}
		links = append(links, model.DocumentLink{FreightID: freightID, GoodsIDs: []uuid.UUID{goodsID}})
	}
	return links, rows.Err()
}

// Obligations lists the obligations issued for a contract.
func (s *Store) Obligations(ctx context.Context, contractID string) ([]model.PayableObligation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, contract_id, carrier_id, carrier_name, amount, due_date, payment_snapshot, issued_at
		FROM payable_obligations WHERE contract_id = $1 ORDER BY issued_at`, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing obligations: %w", err)
	}
	defer rows.Close()

	var out []model.PayableObligation
	for rows.Next() {
		var (
			o        model.PayableObligation
			snapshot []byte
		)
		if err := rows.Scan(&o.ID, &o.ContractID, &o.CarrierID, &o.CarrierName, &o.Amount, &o.DueDate, &snapshot, &o.IssuedAt); err != nil {
			return nil, fmt.Errorf("scanning obligation: %w", err)
		}
		o.PaymentSnapshot = string(snapshot)
		out = append(out, o)
	}
	return out, rows.Err()
}

// BeginFinalize opens a database transaction for a finalize.
func (s *Store) BeginFinalize(ctx context.Context) (workflow.FinalizeTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning finalize tx: %w", err)
	}
	return &finalizeTx{tx: dbTx}, nil
}

type finalizeTx struct {
	tx *sql.Tx
}

func (ftx *finalizeTx) Commit() error { return ftx.tx.Commit() }

// Rollback is a no-op once the transaction has committed.
func (ftx *finalizeTx) Rollback() error {
	if err := ftx.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func contractLockKey(contractID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(contractID))
	return int64(h.Sum64())
}

const insertContract = `INSERT INTO contracts (
	id, number, contract_type, issue_date,
	carrier_id, carrier_name, carrier_tax_id, carrier_payment,
	driver_name, vehicle_plate, origin, destination,
	contracted_freight, advance_value, advance_date, toll_value, generate_payable, due_date,
	total_freight, total_cargo, balance_due, notes, internal_remarks, finalized_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`

// SaveContract inserts the contract with its documents and links. A contract
// that is already finalized is refused with model.ErrContractFinalized;
// concurrent finalizes of one id are serialized so exactly one succeeds.
func (ftx *finalizeTx) SaveContract(ctx context.Context, c *model.ContractAggregate) error {
	if _, err := ftx.tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", contractLockKey(c.Core.ID)); err != nil {
		return fmt.Errorf("acquiring contract lock: %w", err)
	}

	var finalized bool
	err := ftx.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM contracts WHERE id = $1)`, c.Core.ID).Scan(&finalized)
	if err != nil {
		return fmt.Errorf("checking contract %s: %w", c.Core.ID, err)
	}
	if finalized {
		return model.ErrContractFinalized
	}

	payment, err := json.Marshal(c.Core.Carrier.Payment)
	if err != nil {
		return fmt.Errorf("encoding carrier payment: %w", err)
	}

	_, err = ftx.tx.ExecContext(ctx, insertContract,
		c.Core.ID, c.Core.Number, string(c.Core.Type), c.Core.IssueDate,
		c.Core.Carrier.ID, c.Core.Carrier.Name, c.Core.Carrier.TaxID, payment,
		c.Core.DriverName, c.Core.VehiclePlate, c.Core.Origin, c.Core.Destination,
		c.Terms.ContractedFreightValue, c.Terms.AdvanceValue, nullTime(c.Terms.AdvanceDate), c.Terms.TollValue,
		c.Terms.GeneratePayable, nullTime(c.Terms.DueDate),
		c.Totals.TotalFreightValue, c.Totals.TotalCargoValue, c.BalanceDue,
		c.Notes.Notes, c.Notes.InternalRemarks, c.FinalizedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}

	for i, d := range c.Documents {
		_, err := ftx.tx.ExecContext(ctx,
			`INSERT INTO contract_documents (id, contract_id, position, kind, number, freight_value, cargo_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			d.ID, c.Core.ID, i, string(d.Kind), d.Number, d.FreightValue, d.CargoValue)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", d.Number, err)
		}
	}
	for _, l := range c.Links {
		for i, g := range l.GoodsIDs {
			_, err := ftx.tx.ExecContext(ctx,
				`INSERT INTO document_links (contract_id, freight_id, goods_id, position) VALUES ($1, $2, $3, $4)`,
				c.Core.ID, l.FreightID, g, i)
			if err != nil {
				return fmt.Errorf("inserting link: %w", err)
			}
		}
	}
	return nil
}

func (ftx *finalizeTx) SaveObligation(ctx context.Context, o *model.PayableObligation) error {
	_, err := ftx.tx.ExecContext(ctx,
		`INSERT INTO payable_obligations (id, contract_id, carrier_id, carrier_name, amount, due_date, payment_snapshot, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.ContractID, o.CarrierID, o.CarrierName, o.Amount, o.DueDate, o.PaymentSnapshot, o.IssuedAt)
	if err != nil {
		return fmt.Errorf("inserting obligation: %w", err)
	}
	return nil
}

func (ftx *finalizeTx) SaveReceipt(ctx context.Context, r *model.ReceiptPlaceholder) error {
	_, err := ftx.tx.ExecContext(ctx,
		`INSERT INTO receipt_placeholders (id, contract_id, obligation_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		r.ID, r.ContractID, r.ObligationID, r.Amount, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting receipt placeholder: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
