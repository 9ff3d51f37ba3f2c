package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
}

// FormatCurrency renders an amount the way the dashboard shows naira values:
// symbol, thousands separators, decimals only when the amount has kobo.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}

	neg := amount < 0
	// Round to kobo first so a fractional carry propagates into the whole
	// part (999.999 renders as 1,000, not 999.00).
	cents := int64(math.Round(math.Abs(amount) * 100))
	whole := cents / 100
	frac := cents % 100

	out := symbol + groupThousands(whole)
	if frac > 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// FormatNaira is shorthand for the default NGN rendering.
func FormatNaira(amount float64) string {
	return FormatCurrency(amount, "NGN")
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatDate renders timestamps as "Jan 2, 2006, 03:04 PM", matching the
// transaction history display.
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006, 03:04 PM")
}
