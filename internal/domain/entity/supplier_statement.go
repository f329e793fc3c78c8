package entity

import (
	"github.com/sangkips/temple-api/internal/domain/enum"
	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/ledger"
	"github.com/sangkips/temple-api/pkg/money"
)

// StatementSupplier is the supplier block of a statement
type StatementSupplier struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// StatementPeriod is the requested statement range
type StatementPeriod struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SupplierTransaction is one invoice or payment line
type SupplierTransaction struct {
	Date        string               `json:"date"`
	Type        enum.TransactionType `json:"type"`
	Reference   string               `json:"reference"`
	Description string               `json:"description"`
	Debit       money.Amount         `json:"debit"`
	Credit      money.Amount         `json:"credit"`
	Balance     *money.Amount        `json:"balance,omitempty"`
}

// SupplierStatement is the backend statement payload
type SupplierStatement struct {
	Supplier       StatementSupplier     `json:"supplier"`
	Period         StatementPeriod       `json:"period"`
	OpeningBalance money.Amount          `json:"opening_balance"`
	Transactions   []SupplierTransaction `json:"transactions"`
	TotalInvoices  money.Amount          `json:"total_invoices"`
	TotalPurchases money.Amount          `json:"total_purchases"`
	TotalPayments  money.Amount          `json:"total_payments"`
	ClosingBalance money.Amount          `json:"closing_balance"`
}

// InvoicedTotal returns total_invoices, or total_purchases for backends
// that report it under that name.
func (s *SupplierStatement) InvoicedTotal() money.Amount {
	if !s.TotalInvoices.IsZero() {
		return s.TotalInvoices
	}
	return s.TotalPurchases
}

// LedgerTransactions converts the lines for balance recomputation. Order
// is kept as received.
func (s *SupplierStatement) LedgerTransactions() []ledger.Transaction {
	txns := make([]ledger.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		lt := ledger.Transaction{
			Type:        t.Type.Label(),
			Reference:   t.Reference,
			Description: t.Description,
			Debit:       t.Debit,
			Credit:      t.Credit,
			Balance:     t.Balance,
		}
		if d, ok := format.ParseDate(t.Date); ok {
			lt.Date = &d
		}
		txns = append(txns, lt)
	}
	return txns
}
