package posting

import (
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/haulbook/haulbook/internal/model"
)

// AddLine returns a copy of p with one more line. It does not validate.
func AddLine(p model.LedgerPosting, side model.Side, account string, amount decimal.Decimal, costCenter string) model.LedgerPosting {
	p.Lines = append(slices.Clone(p.Lines), model.PostingLine{
		Side:       side,
		Account:    account,
		Amount:     amount,
		CostCenter: costCenter,
	})
	return p
}

// RemoveLine returns a copy of p without the line at index.
// Removing the last line of a side is refused.
func RemoveLine(p model.LedgerPosting, index int) (model.LedgerPosting, error) {
	if index < 0 || index >= len(p.Lines) {
		return p, &model.NotFoundError{Entity: "posting line", Ref: strconv.Itoa(index)}
	}
	side := p.Lines[index].Side
	if side.Valid() && p.CountSide(side) <= 1 {
		return p, &model.InvariantError{
			Rule:    "min-lines-per-side",
			Message: "a posting needs at least one " + string(side) + " line",
		}
	}
	p.Lines = slices.Delete(slices.Clone(p.Lines), index, index+1)
	return p, nil
}
