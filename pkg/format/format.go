package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/sangkips/temple-api/pkg/money"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// PrintDateLayout renders dates as DD/Mon/YYYY on printed documents.
	PrintDateLayout = "02/Jan/2006"
	// LongDateLayout renders dates for on-screen detail views.
	LongDateLayout = "January 2, 2006"

	invalid = "-"
)

var printer = message.NewPrinter(language.English)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Currency formats an amount with two decimals and thousands grouping
// (1,234.56). No currency symbol is added.
func Currency(a money.Amount) string {
	fixed := a.Decimal().StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	whole, cents, _ := strings.Cut(strings.TrimPrefix(fixed, "-"), ".")
	out := groupDigits(whole) + "." + cents
	if neg {
		return "-" + out
	}
	return out
}

// Title turns a snake_case or spaced key into title-cased words:
// "bank_transfer" becomes "Bank Transfer". Letters after the first of each
// word are kept as they are.
func Title(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	return cases.Title(language.English, cases.NoLower).String(strings.Join(words, " "))
}

// groupDigits inserts thousands separators into a string of digits.
func groupDigits(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return printer.Sprintf("%d", n)
	}
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Signed formats a running balance as "<abs> Dr" when non-negative and
// "<abs> Cr" when negative.
func Signed(balance money.Amount) string {
	if balance.IsNegative() {
		return Currency(balance.Abs()) + " Cr"
	}
	return Currency(balance) + " Dr"
}

// PrintDate formats v as DD/Mon/YYYY, or "-" when v is not a valid date.
func PrintDate(v any) string {
	t, ok := ParseDate(v)
	if !ok {
		return invalid
	}
	return t.Format(PrintDateLayout)
}

// LongDate formats v as "January 5, 2025", or "-" when v is not a valid date.
func LongDate(v any) string {
	t, ok := ParseDate(v)
	if !ok {
		return invalid
	}
	return t.Format(LongDateLayout)
}

// ParseDate accepts time.Time, *time.Time and ISO-8601 strings.
func ParseDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, false
		}
		return *x, true
	case string:
		return parseDateString(x)
	case *string:
		if x == nil {
			return time.Time{}, false
		}
		return parseDateString(*x)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
