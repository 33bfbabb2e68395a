package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const isoDate = "2006-01-02"

// FormatCurrency renders an amount as US dollars with thousands grouping
// and two decimals, e.g. 1302 → "$1,302.00".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("$")
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(d)
	}
	b.WriteString(".")
	b.WriteString(fracPart)
	return b.String()
}

// FormatDate renders an ISO calendar date ("2006-01-02") as a long US date,
// e.g. "2025-03-09" → "March 9, 2025". Empty input yields an empty string;
// unparseable input is returned unchanged rather than breaking rendering.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006")
}
