package posting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/haulbook/haulbook/internal/id"
	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/money"
)

// MaxLines is the most lines a recorded posting can carry; line ids run
// from "a" to "z".
const MaxLines = 26

// AccountChecker tests whether an account code exists in the chart of accounts.
type AccountChecker interface {
	Exists(code string) bool
}

// Journal records validated postings in monthly CSV files under
// <root>/postings/YYYY/MM/postings.csv.
type Journal struct {
	root     string
	accounts AccountChecker
}

// NewJournal creates a Journal rooted at a project directory.
func NewJournal(root string, accounts AccountChecker) *Journal {
	return &Journal{root: root, accounts: accounts}
}

// Check validates p, resolves its accounts and requires whole-cent amounts,
// without writing anything.
func (j *Journal) Check(p model.LedgerPosting) (Result, error) {
	res, err := Validate(p)
	if err != nil {
		return res, err
	}

	var problems []model.Problem
	for i, line := range p.Lines {
		if !j.accounts.Exists(line.Account) {
			problems = append(problems, model.Problem{Line: i, Reason: fmt.Sprintf("unknown account %s", line.Account)})
		}
		// The journal stores whole cents only.
		if !line.Amount.Equal(money.Round(line.Amount)) {
			problems = append(problems, model.Problem{Line: i, Reason: "amount must have no more than 2 decimal places"})
		}
	}
	if len(problems) > 0 {
		return Result{}, &model.StructuralError{Problems: problems}
	}
	return res, nil
}

// Commit validates p, assigns the next id of its month and appends it to
// the month's postings.csv. Nothing is written when validation fails.
func (j *Journal) Commit(p model.LedgerPosting) (model.LedgerPosting, error) {
	if p.Date.IsZero() {
		return p, model.NewValidationError("date", "posting date is required")
	}
	if len(p.Lines) > MaxLines {
		return p, model.NewValidationError("lines", fmt.Sprintf("at most %d lines per posting", MaxLines))
	}
	if _, err := j.Check(p); err != nil {
		return p, err
	}

	year, month := p.Date.Year(), int(p.Date.Month())
	seq, err := j.NextSeq(year, month)
	if err != nil {
		return p, err
	}
	p.ID = id.FormatPostingID(year, month, seq)

	path := j.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return p, fmt.Errorf("creating postings dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return p, fmt.Errorf("opening postings: %w", err)
	}
	if isNew {
		err = WritePostings(f, []model.LedgerPosting{p})
	} else {
		err = AppendPostings(f, []model.LedgerPosting{p})
	}
	if err != nil {
		f.Close()
		return p, fmt.Errorf("appending posting: %w", err)
	}
	if err := f.Close(); err != nil {
		return p, fmt.Errorf("closing postings: %w", err)
	}
	return p, nil
}

// ReadMonth reads all postings recorded for a month.
func (j *Journal) ReadMonth(year, month int) ([]model.LedgerPosting, error) {
	path := j.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening postings %s: %w", path, err)
	}
	defer f.Close()

	postings, err := ReadPostings(f)
	if err != nil {
		return nil, fmt.Errorf("reading postings %s: %w", path, err)
	}
	return postings, nil
}

// NextSeq returns the next free sequence number for a month.
func (j *Journal) NextSeq(year, month int) (int, error) {
	postings, err := j.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, p := range postings {
		_, _, seq, err := id.ParsePostingID(p.ID)
		if err != nil {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return maxSeq + 1, nil
}

func (j *Journal) monthPath(year, month int) string {
	return filepath.Join(j.root, "postings", fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "postings.csv")
}
