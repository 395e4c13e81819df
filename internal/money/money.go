package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places carried by currency amounts.
const Places = 2

var (
	// Cent is the smallest currency unit.
	Cent = decimal.New(1, -Places)

	// Tolerance is the maximum debit/credit difference a posting may carry.
	// A difference equal to or above it is an imbalance.
	Tolerance = Cent
)

// Round rounds an amount to whole cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Sum adds amounts together. Sum of nothing is zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// WithinTolerance reports whether a and b differ by less than Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// Diff returns |a - b| rounded to cents.
func Diff(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b).Abs())
}

// String renders an amount with exactly two decimals ("127.50").
func String(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Parse reads an amount written either as "1234.56" or in the Brazilian
// form "1.234,56". A comma always marks the decimal separator.
func Parse(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("parsing amount: empty value")
	}
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

// Optional parses an amount that may be blank. A blank value yields an
// invalid NullDecimal.
func Optional(s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := Parse(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
