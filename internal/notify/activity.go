// Package notify delivers workflow events to the activity log and the
// application logger.
package notify

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/workflow"
)

// Entry is one row of the activity log.
type Entry struct {
	Timestamp      time.Time
	Event          workflow.EventKind
	ContractID     string
	ContractNumber string
	Stage          string
	Amount         decimal.NullDecimal
	Detail         string
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,event,contract_id,contract_number,stage,amount,detail"

// LogPath is the activity log location relative to a project root.
var LogPath = filepath.Join("logs", "activity-log.csv")

const (
	numFields      = 7
	colTimestamp   = 0
	colEvent       = 1
	colContractID  = 2
	colContractNum = 3
	colStage       = 4
	colAmount      = 5
	colDetail      = 6
)

// EntryFromEvent converts a workflow event to a log row.
func EntryFromEvent(ev workflow.Event) Entry {
	e := Entry{
		Timestamp:      ev.At,
		Event:          ev.Kind,
		ContractID:     ev.ContractID,
		ContractNumber: ev.ContractNumber,
		Stage:          ev.Stage.String(),
		Detail:         ev.Detail,
	}
	if ev.Obligation {
		e.Amount = decimal.NewNullDecimal(ev.Amount)
	}
	return e
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colEvent] = string(e.Event)
	row[colContractID] = e.ContractID
	row[colContractNum] = e.ContractNumber
	row[colStage] = e.Stage
	if e.Amount.Valid {
		row[colAmount] = e.Amount.Decimal.StringFixed(2)
	}
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var amount decimal.NullDecimal
	if record[colAmount] != "" {
		d, err := decimal.NewFromString(record[colAmount])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
		amount = decimal.NewNullDecimal(d)
	}

	return Entry{
		Timestamp:      ts,
		Event:          workflow.EventKind(record[colEvent]),
		ContractID:     record[colContractID],
		ContractNumber: record[colContractNum],
		Stage:          record[colStage],
		Amount:         amount,
		Detail:         record[colDetail],
	}, nil
}

// ActivityLog appends workflow events to <root>/logs/activity-log.csv.
type ActivityLog struct {
	root string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewActivityLog creates an ActivityLog under a project root. Write
// failures are reported to l since notifications cannot fail the workflow.
func NewActivityLog(root string, l zerolog.Logger) *ActivityLog {
	return &ActivityLog{root: root, log: l}
}

// Notify implements workflow.Notifier.
func (a *ActivityLog) Notify(_ context.Context, ev workflow.Event) {
	if err := a.Append([]Entry{EntryFromEvent(ev)}); err != nil {
		a.log.Error().Err(err).Str("event", string(ev.Kind)).Msg("activity log write failed")
	}
}

// Append writes entries, creating the file and header if needed.
func (a *ActivityLog) Append(entries []Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := filepath.Join(a.root, LogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries of the activity log under root, or nothing if
// the log does not exist yet.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(root, LogPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
