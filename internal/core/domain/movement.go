package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementSource identifies which physical store a register row came from.
type MovementSource string

const (
	SourceTransaction MovementSource = "transaction"
	SourceJournal     MovementSource = "journal"
)

// Movement is the normalized shape shared by transaction-sourced and
// journal-sourced rows in the register. RunningBalance is ephemeral: it is
// recomputed per request and never persisted.
type Movement struct {
	EntryID        string          `json:"entryID"` // Source row ID (txn or journal line)
	EntryDate      time.Time       `json:"entryDate"`
	AccountID      string          `json:"accountID"` // Empty when unresolvable
	AccountName    string          `json:"accountName"`
	AccountNumber  string          `json:"accountNumber"`
	AccountType    AccountType     `json:"accountType"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Source         MovementSource  `json:"source"`
	Memo           string          `json:"memo"`
	Reference      string          `json:"reference"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// RegisterGroup buckets register rows for tabular display:
// category (account type) -> account -> chronological rows. RowCount carries
// the rowspan for table rendering. An empty register is represented by a
// single placeholder group with no account and zero rows.
type RegisterGroup struct {
	Category AccountType     `json:"category"`
	Accounts []AccountBucket `json:"accounts"`
	RowCount int             `json:"rowCount"`
}

// AccountBucket groups the rows of one account within a category bucket.
type AccountBucket struct {
	AccountID     string     `json:"accountID"`
	AccountName   string     `json:"accountName"`
	AccountNumber string     `json:"accountNumber"`
	Rows          []Movement `json:"rows"`
}

// RegisterResult is the aggregator output for one register request.
type RegisterResult struct {
	Rows        []Movement      `json:"rows"`
	Groups      []RegisterGroup `json:"groups"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}
