package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents a dated, balanced set of debit/credit lines describing
// one compound accounting event.
type Journal struct {
	JournalID   string    `json:"journalID"` // Primary key (UUID)
	JournalDate time.Time `json:"journalDate"`
	Memo        string    `json:"memo"`
	Source      string    `json:"source"` // Origin tag, e.g. "adjustment"
	RefNo       string    `json:"refNo"`  // Generated reference, e.g. ADJ-<ts>-<hex>
	AuditFields
}

// JournalLine is a single debit or credit row under a journal header.
// Exactly one of Debit/Credit is positive on any well-formed line.
type JournalLine struct {
	LineID      string          `json:"lineID"` // Primary key (UUID)
	JournalID   string          `json:"journalID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`  // >= 0
	Credit      decimal.Decimal `json:"credit"` // >= 0
	LineOrder   int             `json:"lineOrder"`
	Description string          `json:"description"`
}
