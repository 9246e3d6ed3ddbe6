package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustmentAudit is an append-only trail row recorded alongside every posted
// adjustment. It is advisory, not authoritative: a failed audit insert never
// invalidates the journal it describes.
type AdjustmentAudit struct {
	AuditID          string          `json:"auditID"` // Primary key (UUID)
	JournalID        string          `json:"journalID"`
	PrimaryAccountID string          `json:"primaryAccountID"`
	OffsetAccountID  string          `json:"offsetAccountID"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Reason           string          `json:"reason"`
	EntryReference   string          `json:"entryReference"`
	EntrySource      string          `json:"entrySource"`
	EntryMemo        string          `json:"entryMemo"`
	CreatedBy        string          `json:"createdBy"`
	IPAddress        string          `json:"ipAddress"`
	CreatedAt        time.Time       `json:"createdAt"`
}
