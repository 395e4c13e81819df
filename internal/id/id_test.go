package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPostingID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "2025-01-001"},
		{2025, 12, 99, "2025-12-099"},
		{2025, 1, 123, "2025-01-123"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPostingID(tt.year, tt.month, tt.seq))
	}
}

func TestFormatLineID(t *testing.T) {
	assert.Equal(t, "2025-01-001a", FormatLineID("2025-01-001", 0))
	assert.Equal(t, "2025-01-001c", FormatLineID("2025-01-001", 2))
}

func TestParsePostingID(t *testing.T) {
	tests := []struct {
		input               string
		wantYear, wantMonth int
		wantSeq             int
	}{
		{"2025-01-001", 2025, 1, 1},
		{"2025-12-099", 2025, 12, 99},
		{"2025-01-001b", 2025, 1, 1},
	}
	for _, tt := range tests {
		year, month, seq, err := ParsePostingID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParsePostingID_Errors(t *testing.T) {
	for _, input := range []string{"", "not-valid", "2025-01", "xxxx-01-001", "2025-13-001"} {
		_, _, _, err := ParsePostingID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestPostingGroup(t *testing.T) {
	assert.Equal(t, "2025-01-001", PostingGroup("2025-01-001a"))
	assert.Equal(t, "2025-01-001", PostingGroup("2025-01-001"))
	assert.Equal(t, "", PostingGroup(""))
}

func TestSequence(t *testing.T) {
	next := Sequence()
	a, b := next(), next()
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", a.String())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", b.String())
	assert.NotEqual(t, Random(), Random())
}
