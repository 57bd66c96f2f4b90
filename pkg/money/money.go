// Package money provides amount parsing and formatting helpers for the
// ledger front ends. Parsing is locale-flexible: comma and period are
// both accepted as decimal or thousands separators.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SkipSentinel is the token a user types to leave an optional field empty.
const SkipSentinel = "null"

// IsSkip reports whether the input is the skip sentinel for optional
// fields, case-insensitively.
func IsSkip(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), SkipSentinel)
}

// Parse reads a user-typed amount. "1000", "1000.50", "1000,50",
// "1.000,50" and "1,000.50" all parse; the last two both mean one
// thousand and a half. Commas are first normalized to periods, then any
// period acting as a thousands separator (followed by a three-digit
// group) is dropped.
func Parse(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	normalized := strings.ReplaceAll(trimmed, ",", ".")
	normalized = stripThousandsSeparators(normalized)

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	return d, nil
}

// stripThousandsSeparators removes each period that is followed by
// exactly three digits ending at a word boundary.
func stripThousandsSeparators(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && isThousandsSeparator(s, i) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isThousandsSeparator(s string, i int) bool {
	j := i + 1
	digits := 0
	for j < len(s) && digits < 3 && isDigit(s[j]) {
		j++
		digits++
	}
	if digits != 3 {
		return false
	}
	// Word boundary: end of string or a non-digit follows the group.
	return j == len(s) || !isDigit(s[j])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Format renders an amount for display: two decimals, comma thousands
// separators and a leading dollar sign, e.g. "$1,234.56" or "-$200.00".
func Format(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
