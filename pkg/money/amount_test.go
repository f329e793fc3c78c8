package money

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "0.00"},
		{"float", 12.5, "12.50"},
		{"nan", math.NaN(), "0.00"},
		{"inf", math.Inf(1), "0.00"},
		{"int", 7, "7.00"},
		{"numeric string", "1,234.56", "1234.56"},
		{"blank string", "  ", "0.00"},
		{"garbage", "abc", "0.00"},
		{"json number", json.Number("3.1"), "3.10"},
		{"unsupported", []int{1}, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Coerce(tc.in).String(); got != tc.want {
				t.Fatalf("Coerce(%v) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestUnmarshalJSONNeverFails(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
		D Amount `json:"d"`
	}
	data := []byte(`{"a": 10.5, "b": "20", "c": null, "d": "n/a"}`)
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A.String() != "10.50" || payload.B.String() != "20.00" {
		t.Fatalf("unexpected values %s %s", payload.A, payload.B)
	}
	if !payload.C.IsZero() || !payload.D.IsZero() {
		t.Fatalf("null and garbage should be zero, got %s %s", payload.C, payload.D)
	}
}

func TestMarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Total Amount `json:"total"`
	}{Total: FromCents(500000)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"total":5000.00}` {
		t.Fatalf("got %s", out)
	}
}

func TestSumIsExact(t *testing.T) {
	total := Sum(MustParse("0.1"), MustParse("0.2"), MustParse("0.3"))
	if !total.Equal(MustParse("0.6")) {
		t.Fatalf("Sum = %s, want 0.60", total)
	}
}
