// Package posting validates and records manual accounting postings.
package posting

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/model"
	"github.com/haulbook/haulbook/internal/money"
)

// Result holds the totals of a posting that passed validation.
type Result struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	// Amount is the transaction amount (the debit total).
	Amount decimal.Decimal
}

// Validate checks that p is well formed and balanced.
//
// Structural problems are reported together as a *model.StructuralError.
// A well-formed posting whose sides differ by a cent or more yields a
// *model.ImbalanceError.
func Validate(p model.LedgerPosting) (Result, error) {
	var problems []model.Problem
	debit, credit := decimal.Zero, decimal.Zero

	for i, line := range p.Lines {
		if !line.Side.Valid() {
			problems = append(problems, model.Problem{Line: i, Reason: "side must be debit or credit"})
			continue
		}
		if strings.TrimSpace(line.Account) == "" {
			problems = append(problems, model.Problem{Line: i, Reason: "account is required"})
		}
		if !line.Amount.IsPositive() {
			problems = append(problems, model.Problem{Line: i, Reason: "amount must be greater than zero"})
		}
		if line.Side == model.SideDebit {
			debit = debit.Add(line.Amount)
		} else {
			credit = credit.Add(line.Amount)
		}
	}

	if p.CountSide(model.SideDebit) == 0 {
		problems = append(problems, model.Problem{Line: -1, Reason: "at least one debit line is required"})
	}
	if p.CountSide(model.SideCredit) == 0 {
		problems = append(problems, model.Problem{Line: -1, Reason: "at least one credit line is required"})
	}
	if len(problems) > 0 {
		return Result{}, &model.StructuralError{Problems: problems}
	}

	if !money.WithinTolerance(debit, credit) {
		return Result{}, &model.ImbalanceError{
			DebitTotal:  debit,
			CreditTotal: credit,
			Diff:        money.Diff(debit, credit),
		}
	}

	return Result{DebitTotal: debit, CreditTotal: credit, Amount: debit}, nil
}
