package posting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/id"
	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/money"
)

// Header is the CSV header for postings.csv.
const Header = "line_id,date,contract_id,description,side,account,amount,cost_center"

const (
	numFields     = 8
	dateFormat    = "2006-01-02"
	colLineID     = 0
	colDate       = 1
	colContractID = 2
	colDesc       = 3
	colSide       = 4
	colAccount    = 5
	colAmount     = 6
	colCostCenter = 7
)

// ReadPostings reads postings.csv, grouping lines back into postings in
// file order.
func ReadPostings(r io.Reader) ([]model.LedgerPosting, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading postings CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var postings []model.LedgerPosting
	index := make(map[string]int)
	for i, rec := range records[1:] {
		postingID, p, line, err := unmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		at, seen := index[postingID]
		if !seen {
			at = len(postings)
			index[postingID] = at
			postings = append(postings, p)
		}
		postings[at].Lines = append(postings[at].Lines, line)
	}
	return postings, nil
}

// WritePostings writes postings including the header.
func WritePostings(w io.Writer, postings []model.LedgerPosting) error {
	if _, err := fmt.Fprintln(w, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return AppendPostings(w, postings)
}

// AppendPostings writes postings without a header.
func AppendPostings(w io.Writer, postings []model.LedgerPosting) error {
	cw := csv.NewWriter(w)
	for _, p := range postings {
		for i := range p.Lines {
			if err := cw.Write(MarshalLine(p, i)); err != nil {
				return fmt.Errorf("writing %s line %d: %w", p.ID, i+1, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLine converts line i of p to a CSV row.
func MarshalLine(p model.LedgerPosting, i int) []string {
	line := p.Lines[i]
	row := make([]string, numFields)
	row[colLineID] = id.FormatLineID(p.ID, i)
	row[colDate] = p.Date.Format(dateFormat)
	row[colContractID] = p.ContractID
	row[colDesc] = p.Description
	row[colSide] = string(line.Side)
	row[colAccount] = line.Account
	row[colAmount] = money.String(line.Amount)
	row[colCostCenter] = line.CostCenter
	return row
}

func unmarshalLine(record []string) (string, model.LedgerPosting, model.PostingLine, error) {
	var (
		p    model.LedgerPosting
		line model.PostingLine
	)
	if len(record) != numFields {
		return "", p, line, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	postingID := id.PostingGroup(record[colLineID])
	if _, _, _, err := id.ParsePostingID(postingID); err != nil {
		return "", p, line, err
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return "", p, line, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	side := model.Side(strings.ToLower(record[colSide]))
	if !side.Valid() {
		return "", p, line, fmt.Errorf("unknown side %q", record[colSide])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return "", p, line, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	p = model.LedgerPosting{
		ID:          postingID,
		ContractID:  record[colContractID],
		Date:        date,
		Description: record[colDesc],
	}
	line = model.PostingLine{
		Side:       side,
		Account:    record[colAccount],
		Amount:     amount,
		CostCenter: record[colCostCenter],
	}
	return postingID, p, line, nil
}
