// Package words spells currency amounts in English for receipts.
package words

import (
	"fmt"
	"strings"

	"github.com/sangkips/temple-api/pkg/money"
	"github.com/shopspring/decimal"
)

// Numbering selects the grouping convention used above one thousand.
type Numbering string

const (
	// ShortScale groups by thousands: Thousand, Million, Billion, Trillion.
	ShortScale Numbering = "short"
	// Indian groups by Thousand, Lakh and Crore.
	Indian Numbering = "indian"
)

// ParseNumbering maps a config value to a Numbering, defaulting to ShortScale.
func ParseNumbering(s string) Numbering {
	if strings.EqualFold(strings.TrimSpace(s), string(Indian)) {
		return Indian
	}
	return ShortScale
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

type scale struct {
	value uint64
	name  string
}

var shortScales = []scale{
	{1_000_000_000_000, "Trillion"},
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

var indianScales = []scale{
	{10_000_000, "Crore"},
	{100_000, "Lakh"},
	{1_000, "Thousand"},
}

// AmountInWords spells amount as e.g. "One Thousand Two Hundred Thirty Four
// Ringgit and 56/100 Only". The sign is ignored.
func AmountInWords(amount money.Amount, currencyName string, numbering Numbering) string {
	d := amount.Abs().Decimal().Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()

	currencyName = strings.TrimSpace(currencyName)
	var b strings.Builder
	if whole.IsZero() {
		b.WriteString("Zero")
	} else {
		b.WriteString(Integer(uint64(whole.IntPart()), numbering))
	}
	if currencyName != "" {
		b.WriteString(" ")
		b.WriteString(currencyName)
	}
	if cents > 0 {
		fmt.Fprintf(&b, " and %02d/100", cents)
	}
	b.WriteString(" Only")
	return b.String()
}

// Integer spells a non-negative integer. Zero yields "Zero".
func Integer(n uint64, numbering Numbering) string {
	if n == 0 {
		return "Zero"
	}
	scales := shortScales
	if numbering == Indian {
		scales = indianScales
	}
	return strings.Join(spell(n, scales), " ")
}

func spell(n uint64, scales []scale) []string {
	var parts []string
	for i, s := range scales {
		if n < s.value {
			continue
		}
		head := n / s.value
		// The largest Indian unit repeats: 100 Crore is "One Hundred Crore".
		if i == 0 {
			parts = append(parts, spell(head, scales)...)
		} else {
			parts = append(parts, belowThousand(head)...)
		}
		parts = append(parts, s.name)
		n %= s.value
	}
	return append(parts, belowThousand(n)...)
}

func belowThousand(n uint64) []string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, ones[n])
	}
	return parts
}
