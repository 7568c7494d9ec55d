package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single posted ledger entry as supplied by the caller.
// Amount follows the sign convention: inflows (deposits) are negative,
// outflows (debits) are positive.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Merchant    string          `json:"merchant,omitempty"`
	Description string          `json:"description,omitempty"`
	// Category is an ordered path, e.g. ["Income", "Payroll"].
	Category   []string `json:"category,omitempty"`
	CategoryID string   `json:"categoryId,omitempty"`
}

// IsInflow reports whether the transaction is a credit to the account.
func (t Transaction) IsInflow() bool {
	return t.Amount.IsNegative()
}

// IsOutflow reports whether the transaction is a debit from the account.
func (t Transaction) IsOutflow() bool {
	return t.Amount.IsPositive()
}

// DailyBalance is the end-of-day balance for a single calendar day.
type DailyBalance struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// ReportContext carries the reference date and optional current balance
// the engine scores against.
type ReportContext struct {
	ReferenceDate  time.Time        `json:"referenceDate"`
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
}

// LatestBalance returns the most recent balance in a series ordered
// oldest-first, or nil if the series is empty. Callers use this to populate
// ReportContext.CurrentBalance from the same daily-balance feed the engine
// scores against.
func LatestBalance(balances []DailyBalance) *decimal.Decimal {
	if len(balances) == 0 {
		return nil
	}
	b := balances[len(balances)-1].Balance
	return &b
}

// Overrides is a map from transaction id to a caller-supplied correction of
// the tagger's automatic classification. A missing key means "no override";
// overriding an id absent from the input transaction set is a no-op.
type Overrides map[string]Override

// Override holds optional boolean corrections for a single transaction.
// A nil field means "leave the automatic classification in place".
type Override struct {
	IsPayroll *bool `json:"isPayroll,omitempty"`
	IsLoanPay *bool `json:"isLoanPay,omitempty"`
}
