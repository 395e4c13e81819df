package posting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulbook/haulbook/internal/model"
)

type mockAccounts map[string]bool

func (m mockAccounts) Exists(code string) bool {
	return m[code]
}

var defaultAccounts = mockAccounts{"3.1.01": true, "3.1.02": true, "2.1.03": true, "1.1.01": true}

func TestCommit_NewMonth(t *testing.T) {
	dir := t.TempDir()
	j := NewJournal(dir, defaultAccounts)

	p, err := j.Commit(posting(debit("3.1.01", "1500.00"), credit("2.1.03", "1500.00")))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", p.ID)

	_, err = os.Stat(filepath.Join(dir, "postings", "2025", "01", "postings.csv"))
	require.NoError(t, err)

	got, err := j.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-01-001", got[0].ID)
	assert.Equal(t, "CTR-0001", got[0].ContractID)
	require.Len(t, got[0].Lines, 2)
	assert.True(t, got[0].Lines[0].Amount.Equal(dec("1500")))
	assert.Equal(t, model.SideCredit, got[0].Lines[1].Side)
}

func TestCommit_ExistingMonth(t *testing.T) {
	j := NewJournal(t.TempDir(), defaultAccounts)

	_, err := j.Commit(posting(debit("3.1.01", "10.00"), credit("2.1.03", "10.00")))
	require.NoError(t, err)

	p, err := j.Commit(posting(debit("3.1.01", "6.00"), debit("3.1.02", "4.00"), credit("2.1.03", "10.00")))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", p.ID)

	got, err := j.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[1].Lines, 3)

	seq, err := j.NextSeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, seq)
}

func TestCommit_RejectsWithoutWriting(t *testing.T) {
	dir := t.TempDir()
	j := NewJournal(dir, defaultAccounts)

	_, err := j.Commit(posting(debit("3.1.01", "1000.00"), credit("2.1.03", "999.98")))
	var imb *model.ImbalanceError
	require.ErrorAs(t, err, &imb)

	_, err = j.Commit(posting(debit("9.9.99", "10.00"), credit("2.1.03", "10.00")))
	var serr *model.StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []model.Problem{{Line: 0, Reason: "unknown account 9.9.99"}}, serr.Problems)

	undated := posting(debit("3.1.01", "10.00"), credit("2.1.03", "10.00"))
	undated.Date = time.Time{}
	_, err = j.Commit(undated)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = os.Stat(filepath.Join(dir, "postings"))
	assert.True(t, os.IsNotExist(err), "nothing written")
}

func TestCommit_RejectsSubCentAmounts(t *testing.T) {
	dir := t.TempDir()
	j := NewJournal(dir, defaultAccounts)

	// Both balance within tolerance but would not survive storage in cents.
	tests := map[string]struct {
		posting model.LedgerPosting
		want    []model.Problem
	}{
		"rounds up on write": {
			posting: posting(debit("3.1.01", "100.005"), credit("2.1.03", "100.00")),
			want:    []model.Problem{{Line: 0, Reason: "amount must have no more than 2 decimal places"}},
		},
		"rounds to zero on write": {
			posting: posting(debit("3.1.01", "0.004"), debit("3.1.02", "10.00"), credit("2.1.03", "10.00")),
			want:    []model.Problem{{Line: 0, Reason: "amount must have no more than 2 decimal places"}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Validate(tt.posting)
			require.NoError(t, err)

			_, err = j.Commit(tt.posting)
			var serr *model.StructuralError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.want, serr.Problems)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "postings"))
	assert.True(t, os.IsNotExist(err), "nothing written")
}

func TestCommit_StoredPostingRevalidates(t *testing.T) {
	j := NewJournal(t.TempDir(), defaultAccounts)

	_, err := j.Commit(posting(debit("3.1.01", "0.01"), debit("3.1.02", "99.99"), credit("2.1.03", "100.00")))
	require.NoError(t, err)

	got, err := j.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	_, err = j.Check(got[0])
	require.NoError(t, err)
	assert.True(t, got[0].Lines[0].Amount.Equal(dec("0.01")))
}

func TestReadMonth_Missing(t *testing.T) {
	j := NewJournal(t.TempDir(), defaultAccounts)
	got, err := j.ReadMonth(2030, 6)
	require.NoError(t, err)
	assert.Empty(t, got)

	seq, err := j.NextSeq(2030, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)
}
