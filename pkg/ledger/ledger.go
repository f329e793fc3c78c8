// Package ledger computes running balances for supplier statements.
package ledger

import (
	"time"

	"github.com/sangkips/temple-api/pkg/format"
	"github.com/sangkips/temple-api/pkg/money"
)

// Transaction is one statement line. Debits (invoices) increase the amount
// payable, credits (payments) decrease it.
type Transaction struct {
	Date        *time.Time   `json:"date"`
	Type        string       `json:"type"`
	Reference   string       `json:"reference"`
	Description string       `json:"description"`
	Debit       money.Amount `json:"debit"`
	Credit      money.Amount `json:"credit"`
	// Balance is the balance reported by the backend, if any.
	Balance *money.Amount `json:"reported_balance,omitempty"`
}

// Row is a transaction with its recomputed running balance.
type Row struct {
	Transaction
	RunningBalance money.Amount `json:"balance"`
	BalanceLabel   string       `json:"balance_label"`
}

// Mismatch records a row where the reported balance differs from the
// recomputed one.
type Mismatch struct {
	Index    int          `json:"index"`
	Reported money.Amount `json:"reported"`
	Computed money.Amount `json:"computed"`
}

// Ledger is a rendered statement.
type Ledger struct {
	Opening      money.Amount `json:"opening_balance"`
	OpeningLabel string       `json:"opening_label"`
	Rows         []Row        `json:"rows"`
	TotalDebit   money.Amount `json:"total_debit"`
	TotalCredit  money.Amount `json:"total_credit"`
	Closing      money.Amount `json:"closing_balance"`
	ClosingLabel string       `json:"closing_label"`
}

// Build walks txns in the given order starting from opening. txns must
// already be sorted by date ascending.
func Build(opening money.Amount, txns []Transaction) Ledger {
	l := Ledger{
		Opening:      opening,
		OpeningLabel: format.Signed(opening),
		Rows:         make([]Row, 0, len(txns)),
	}
	balance := opening
	for _, t := range txns {
		balance = balance.Add(t.Debit).Sub(t.Credit)
		l.TotalDebit = l.TotalDebit.Add(t.Debit)
		l.TotalCredit = l.TotalCredit.Add(t.Credit)
		l.Rows = append(l.Rows, Row{
			Transaction:    t,
			RunningBalance: balance,
			BalanceLabel:   format.Signed(balance),
		})
	}
	l.Closing = balance
	l.ClosingLabel = format.Signed(balance)
	return l
}

// Mismatches returns the rows whose backend-reported balance disagrees with
// the recomputed running balance.
func (l Ledger) Mismatches() []Mismatch {
	var out []Mismatch
	for i, r := range l.Rows {
		if r.Balance == nil {
			continue
		}
		if !r.Balance.Round(2).Equal(r.RunningBalance.Round(2)) {
			out = append(out, Mismatch{Index: i, Reported: *r.Balance, Computed: r.RunningBalance})
		}
	}
	return out
}
