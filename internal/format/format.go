// Package format renders the money, percent, and term strings shared
// by every control surface. The old widgets each formatted their own
// values and drifted; everything routes through here now.
package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money renders a dollar amount with thousands separators: $24,000.00,
// -$1,234.50.
func Money(v float64) string {
	return MoneyWith("$", v)
}

// MoneyWith renders an amount under a configured currency symbol.
func MoneyWith(symbol string, v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + symbol + groupThousands(strconv.FormatFloat(v, 'f', 2, 64))
}

// MoneyDelta renders a signed dollar delta for diff badges: +$1,250.00,
// -$500.00. Zero renders unsigned.
func MoneyDelta(v float64) string {
	if v > 0 {
		return "+" + Money(v)
	}
	return Money(v)
}

// Percent renders an APR-style percentage: 5.99%.
func Percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

// PercentDelta renders a signed percentage delta: +0.25%, -1.00%.
func PercentDelta(v float64) string {
	if v > 0 {
		return "+" + Percent(v)
	}
	return Percent(v)
}

// Months renders a compact term: 60 mo.
func Months(n int) string {
	return fmt.Sprintf("%d mo", n)
}

// MonthsDelta renders a signed term delta: +12 mo, -24 mo.
func MonthsDelta(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d mo", n)
	}
	return fmt.Sprintf("%d mo", n)
}

// ErrNotANumber reports input the editor cannot read as a number.
var ErrNotANumber = errors.New("not a number")

// ParseNumber reads user-typed numeric input, tolerating currency
// symbols, thousands separators, percent signs, and stray whitespace.
func ParseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	for _, sym := range []string{"$", "€", "£", "¥"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrNotANumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// groupThousands inserts commas into the integer part of a plain
// decimal string.
func groupThousands(s string) string {
	integer, decimal, hasDecimal := strings.Cut(s, ".")
	n := len(integer)
	if n > 3 {
		var b strings.Builder
		b.Grow(n + n/3)
		start := n % 3
		if start == 0 {
			start = 3
		}
		b.WriteString(integer[:start])
		for i := start; i < n; i += 3 {
			b.WriteByte(',')
			b.WriteString(integer[i : i+3])
		}
		integer = b.String()
	}
	if hasDecimal {
		return integer + "." + decimal
	}
	return integer
}
