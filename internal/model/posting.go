package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the debit or credit side of a posting line.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// Valid reports whether s is debit or credit.
func (s Side) Valid() bool {
	return s == SideDebit || s == SideCredit
}

// PostingLine is one debit or credit line of a manual posting.
type PostingLine struct {
	Side       Side
	Account    string
	Amount     decimal.Decimal
	CostCenter string
}

// LedgerPosting is a manually entered accounting transaction for a contract.
type LedgerPosting struct {
	ID          string // "YYYY-MM-NNN", assigned on commit
	ContractID  string
	Date        time.Time
	Description string
	Lines       []PostingLine
}

// FirstDebitAccount returns the account of the first debit line, or "".
// It replaces the old single debit-account field for display.
func (p LedgerPosting) FirstDebitAccount() string {
	return p.firstAccount(SideDebit)
}

// FirstCreditAccount returns the account of the first credit line, or "".
func (p LedgerPosting) FirstCreditAccount() string {
	return p.firstAccount(SideCredit)
}

// CountSide returns how many lines sit on the given side.
func (p LedgerPosting) CountSide(side Side) int {
	n := 0
	for _, l := range p.Lines {
		if l.Side == side {
			n++
		}
	}
	return n
}

func (p LedgerPosting) firstAccount(side Side) string {
	for _, l := range p.Lines {
		if l.Side == side {
			return l.Account
		}
	}
	return ""
}
