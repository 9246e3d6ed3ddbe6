package domain

// AccountType defines the fundamental accounting type of a ledger account.
// The type fixes the sign convention for all balance math and never changes
// meaning mid-history.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// DebitNormal reports whether the account type accrues on the debit side.
// Asset and Expense balances grow with debits; Liability, Equity and Income
// balances grow with credits.
func (t AccountType) DebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account: a named bucket accumulating monetary
// movements. Parent references form a tree; edits must not introduce cycles.
type Account struct {
	AccountID       string      `json:"accountID"`     // Primary key (UUID)
	AccountNumber   string      `json:"accountNumber"` // User-facing number, unique
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID string      `json:"parentAccountID"` // Empty when root
	Description     string      `json:"description"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
