package accounting

import (
	"fmt"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDelta applies the sign convention for an account type to a
// debit/credit pair. This is used in both the balance calculator and the
// register walk to keep the accounting logic consistent.
// DEBIT on ASSET/EXPENSE -> positive; CREDIT on ASSET/EXPENSE -> negative.
// DEBIT on LIABILITY/EQUITY/INCOME -> negative; CREDIT -> positive.
func SignedDelta(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	if accountType.DebitNormal() {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// MirroredPair builds the two lines of a self-balancing adjustment journal.
// The primary line carries the stated debit/credit; the offset line swaps
// them. The pair balances by construction, not by validation.
func MirroredPair(journalID, primaryAccountID, offsetAccountID string, debit, credit decimal.Decimal, primaryLineID, offsetLineID, description string) []domain.JournalLine {
	return []domain.JournalLine{
		{
			LineID:      primaryLineID,
			JournalID:   journalID,
			AccountID:   primaryAccountID,
			Debit:       debit,
			Credit:      credit,
			LineOrder:   1,
			Description: description,
		},
		{
			LineID:      offsetLineID,
			JournalID:   journalID,
			AccountID:   offsetAccountID,
			Debit:       credit,
			Credit:      debit,
			LineOrder:   2,
			Description: description,
		},
	}
}

// ValidateAdjustmentAmounts enforces the mutual-exclusion rule on an
// adjustment's amounts: exactly one of debit/credit must be positive, never
// both and never neither, and neither may be negative.
func ValidateAdjustmentAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("amounts must not be negative")
	}
	debitSet := debit.IsPositive()
	creditSet := credit.IsPositive()
	if debitSet && creditSet {
		return fmt.Errorf("provide either a debit amount or a credit amount, not both")
	}
	if !debitSet && !creditSet {
		return fmt.Errorf("an adjustment requires a positive debit or credit amount")
	}
	return nil
}

// ValidateJournalBalance checks that a journal's lines balance: the sum of
// debits must equal the sum of credits across all lines.
func ValidateJournalBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines")
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %s has a negative amount", line.LineID)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("journal lines do not balance: debits %s, credits %s", totalDebit, totalCredit)
	}
	return nil
}

// NormalizeTransaction maps a simple single-sided transaction onto the
// debit/credit axis for its account type. Balance-sheet accounts take the
// cash reading: income debits them, expense credits them. Profit-and-loss
// accounts accrue the matching type on their natural side: expense debits an
// expense account, income credits an income account, and the opposite type
// reverses the accrual. Unknown account types fall back to the cash reading
// (income as debit), matching rows whose account can no longer be resolved.
//
// The movementUnion query in the pgsql movement repository encodes this same
// mapping as a SQL CASE; the two must stay in lockstep, and the mirror test
// in this package walks every combination against the SQL predicate.
func NormalizeTransaction(txnType domain.TransactionType, accountType domain.AccountType, amount decimal.Decimal) (debit, credit decimal.Decimal) {
	debitSide := txnType == domain.TxnIncome
	if accountType == domain.Income || accountType == domain.Expense {
		debitSide = txnType == domain.TxnExpense
	}
	if debitSide {
		return amount, decimal.Zero
	}
	return decimal.Zero, amount
}
