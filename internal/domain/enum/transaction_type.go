package enum

import (
	"encoding/json"
	"strings"
)

// TransactionType distinguishes supplier statement lines
type TransactionType string

const (
	TransactionTypeInvoice TransactionType = "INVOICE"
	TransactionTypePayment TransactionType = "PAYMENT"
)

func (t TransactionType) String() string {
	return string(t)
}

// Label returns the display caption
func (t TransactionType) Label() string {
	switch t {
	case TransactionTypeInvoice:
		return "Invoice"
	case TransactionTypePayment:
		return "Payment"
	default:
		return string(t)
	}
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = TransactionType(strings.ToUpper(strings.TrimSpace(str)))
	return nil
}
