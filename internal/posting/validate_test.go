package posting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulbook/haulbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func debit(account, amount string) model.PostingLine {
	return model.PostingLine{Side: model.SideDebit, Account: account, Amount: dec(amount)}
}

func credit(account, amount string) model.PostingLine {
	return model.PostingLine{Side: model.SideCredit, Account: account, Amount: dec(amount)}
}

func posting(lines ...model.PostingLine) model.LedgerPosting {
	return model.LedgerPosting{
		ContractID:  "CTR-0001",
		Date:        date(2025, 1, 15),
		Description: "Freight settlement",
		Lines:       lines,
	}
}

func TestValidate_Balanced(t *testing.T) {
	res, err := Validate(posting(debit("3.1.01", "1000.00"), credit("2.1.03", "1000.00")))
	require.NoError(t, err)
	assert.True(t, res.DebitTotal.Equal(dec("1000")))
	assert.True(t, res.CreditTotal.Equal(dec("1000")))
	assert.True(t, res.Amount.Equal(dec("1000")))
}

func TestValidate_SplitDebits(t *testing.T) {
	res, err := Validate(posting(
		debit("3.1.01", "600.00"),
		debit("3.1.02", "400.00"),
		credit("2.1.03", "1000.00"),
	))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(dec("1000")))
}

func TestValidate_Imbalance(t *testing.T) {
	_, err := Validate(posting(debit("3.1.01", "1000.00"), credit("2.1.03", "999.98")))
	var imb *model.ImbalanceError
	require.ErrorAs(t, err, &imb)
	assert.Equal(t, "0.02", imb.Diff.StringFixed(2))
	assert.True(t, imb.DebitTotal.Equal(dec("1000")))
	assert.True(t, imb.CreditTotal.Equal(dec("999.98")))
	assert.Contains(t, err.Error(), "diff 0.02")
}

func TestValidate_Tolerance(t *testing.T) {
	// Below one cent is accepted, exactly one cent is not.
	_, err := Validate(posting(debit("3.1.01", "100.005"), credit("2.1.03", "100.00")))
	require.NoError(t, err)

	_, err = Validate(posting(debit("3.1.01", "100.01"), credit("2.1.03", "100.00")))
	var imb *model.ImbalanceError
	require.ErrorAs(t, err, &imb)
	assert.Equal(t, "0.01", imb.Diff.StringFixed(2))
}

func TestValidate_Structural(t *testing.T) {
	tests := []struct {
		name    string
		posting model.LedgerPosting
		want    []model.Problem
	}{
		{
			name:    "no lines",
			posting: posting(),
			want: []model.Problem{
				{Line: -1, Reason: "at least one debit line is required"},
				{Line: -1, Reason: "at least one credit line is required"},
			},
		},
		{
			name:    "debit only",
			posting: posting(debit("3.1.01", "10")),
			want:    []model.Problem{{Line: -1, Reason: "at least one credit line is required"}},
		},
		{
			name:    "zero amount and blank account",
			posting: posting(debit(" ", "10"), credit("2.1.03", "0")),
			want: []model.Problem{
				{Line: 0, Reason: "account is required"},
				{Line: 1, Reason: "amount must be greater than zero"},
			},
		},
		{
			name:    "unknown side",
			posting: posting(debit("3.1.01", "10"), credit("2.1.03", "10"), model.PostingLine{Side: "both", Account: "1", Amount: dec("1")}),
			want:    []model.Problem{{Line: 2, Reason: "side must be debit or credit"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.posting)
			var serr *model.StructuralError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.want, serr.Problems)
		})
	}
}

func TestValidate_StructuralBeforeBalance(t *testing.T) {
	_, err := Validate(posting(debit("3.1.01", "-5"), credit("2.1.03", "100")))
	var serr *model.StructuralError
	require.ErrorAs(t, err, &serr)
	var imb *model.ImbalanceError
	assert.NotErrorAs(t, err, &imb)
}

func TestAddLine_Copy(t *testing.T) {
	p := posting(debit("3.1.01", "10"))
	q := AddLine(p, model.SideCredit, "2.1.03", dec("10"), "CC-01")

	assert.Len(t, p.Lines, 1, "original untouched")
	require.Len(t, q.Lines, 2)
	assert.Equal(t, model.PostingLine{Side: model.SideCredit, Account: "2.1.03", Amount: dec("10"), CostCenter: "CC-01"}, q.Lines[1])

	// AddLine never validates.
	r := AddLine(q, model.SideDebit, "", decimal.Zero, "")
	assert.Len(t, r.Lines, 3)
}

func TestRemoveLine_MinimumPerSide(t *testing.T) {
	p := posting(debit("3.1.01", "10"), credit("2.1.03", "10"))
	for _, idx := range []int{0, 1} {
		_, err := RemoveLine(p, idx)
		var inv *model.InvariantError
		require.ErrorAs(t, err, &inv, "index %d", idx)
	}
	assert.Len(t, p.Lines, 2)
}

func TestRemoveLine(t *testing.T) {
	p := posting(debit("3.1.01", "600"), debit("3.1.02", "400"), credit("2.1.03", "1000"))

	q, err := RemoveLine(p, 0)
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)
	assert.Equal(t, "3.1.02", q.Lines[0].Account)
	assert.Equal(t, "3.1.01", p.Lines[0].Account, "original untouched")
	assert.Equal(t, "3.1.02", q.FirstDebitAccount())
	assert.Equal(t, "2.1.03", q.FirstCreditAccount())
}

func TestRemoveLine_OutOfRange(t *testing.T) {
	p := posting(debit("3.1.01", "10"), credit("2.1.03", "10"))
	for _, idx := range []int{-1, 2} {
		_, err := RemoveLine(p, idx)
		var nf *model.NotFoundError
		require.ErrorAs(t, err, &nf)
	}
}
