package money

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value that never carries NaN.
// Missing, null or non-numeric input decodes to zero, so every money field
// read from the backend is normalized once at the JSON boundary.
type Amount struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{}

// New wraps a decimal value.
func New(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// FromFloat converts a float, treating NaN and infinities as zero.
func FromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return Amount{d: decimal.NewFromFloat(f)}
}

// FromCents builds an amount from an integer number of cents.
func FromCents(cents int64) Amount {
	return Amount{d: decimal.New(cents, -2)}
}

// MustParse parses s and panics on error. Intended for tests and constants.
func MustParse(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return Amount{d: d}
}

// Coerce converts an arbitrary value to an Amount, degrading to zero for
// anything that is not a finite number.
func Coerce(v any) Amount {
	switch x := v.(type) {
	case nil:
		return Zero
	case Amount:
		return x
	case *Amount:
		if x == nil {
			return Zero
		}
		return *x
	case decimal.Decimal:
		return Amount{d: x}
	case *decimal.Decimal:
		if x == nil {
			return Zero
		}
		return Amount{d: *x}
	case float64:
		return FromFloat(x)
	case float32:
		return FromFloat(float64(x))
	case int:
		return Amount{d: decimal.NewFromInt(int64(x))}
	case int32:
		return Amount{d: decimal.NewFromInt(int64(x))}
	case int64:
		return Amount{d: decimal.NewFromInt(x)}
	case json.Number:
		return parseString(string(x))
	case string:
		return parseString(x)
	case *string:
		if x == nil {
			return Zero
		}
		return parseString(*x)
	default:
		return Zero
	}
}

func parseString(s string) Amount {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero
	}
	return Amount{d: d}
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Add returns a + b.
func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount { return Amount{d: a.d.Sub(b.d)} }

// Neg returns -a.
func (a Amount) Neg() Amount { return Amount{d: a.d.Neg()} }

// Abs returns |a|.
func (a Amount) Abs() Amount { return Amount{d: a.d.Abs()} }

// Round rounds half away from zero to the given number of places.
func (a Amount) Round(places int32) Amount { return Amount{d: a.d.Round(places)} }

// IsZero reports whether a == 0.
func (a Amount) IsZero() bool { return a.d.IsZero() }

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool { return a.d.IsNegative() }

// Equal reports whether a and b are numerically equal.
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// Cmp compares a and b.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

// Float64 returns the nearest float64 value.
func (a Amount) Float64() float64 { return a.d.InexactFloat64() }

// String returns the amount with two decimals and no grouping.
func (a Amount) String() string { return a.d.StringFixed(2) }

// Sum adds all amounts.
func Sum(amounts ...Amount) Amount {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts numbers, numeric strings and null. Any other value
// decodes to zero instead of failing the whole payload.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Zero
		return nil
	}
	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			*a = Zero
			return nil
		}
		*a = parseString(s)
		return nil
	}
	*a = parseString(string(data))
	return nil
}
