package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a simple single-sided transaction.
type TransactionType string

const (
	TxnIncome  TransactionType = "INCOME"
	TxnExpense TransactionType = "EXPENSE"
)

// Transaction is a simple single-sided movement against one account, the
// legacy entry form that predates journals. On balance-sheet accounts Income
// lands as a debit and Expense as a credit; on profit-and-loss accounts the
// matching type accrues on the account's natural side instead.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary key (UUID)
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"` // Positive
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	AuditFields
}
