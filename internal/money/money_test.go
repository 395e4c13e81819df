package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.True(t, Sum(dec("600.00"), dec("400.00")).Equal(dec("1000")))
	assert.True(t, Sum(dec("0.1"), dec("0.2")).Equal(dec("0.3")), "decimal sums are exact")
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1000.00", "1000.00", true},
		{"1000.00", "999.999", true},
		{"1000.00", "999.99", false},
		{"1000.00", "999.98", false},
		{"0.005", "0", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WithinTolerance(dec(tt.a), dec(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}

func TestDiff(t *testing.T) {
	assert.Equal(t, "0.02", String(Diff(dec("1000.00"), dec("999.98"))))
	assert.Equal(t, "0.02", String(Diff(dec("999.98"), dec("1000.00"))))
}

func TestRound(t *testing.T) {
	assert.Equal(t, "10.13", String(Round(dec("10.125"))))
	assert.Equal(t, "10.12", String(Round(dec("10.124"))))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234.56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"R$ 2.000,00", "2000.00"},
		{"-588,74", "-588.74"},
		{" 10 ", "10.00"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, String(got), "input %q", tt.input)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "1,2,3"} {
		_, err := Parse(input)
		assert.Error(t, err, "expected error for %q", input)
	}
}

func TestOptional(t *testing.T) {
	got, err := Optional("")
	require.NoError(t, err)
	assert.False(t, got.Valid)

	got, err = Optional("8.000,00")
	require.NoError(t, err)
	assert.True(t, got.Valid)
	assert.True(t, got.Decimal.Equal(dec("8000")))
}
