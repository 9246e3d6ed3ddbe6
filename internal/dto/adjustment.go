package dto

import (
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostAdjustmentRequest is the body for posting a balancing adjustment pair.
// Exactly one of DebitAmount/CreditAmount must be positive; the offset line
// mirrors whichever side is stated. AdjustDate is an RFC3339 timestamp.
type PostAdjustmentRequest struct {
	AccountID       string          `json:"accountID" binding:"required"`
	OffsetAccountID string          `json:"offsetAccountID" binding:"required"`
	AdjustDate      time.Time       `json:"adjustDate" binding:"required"`
	Memo            string          `json:"memo" binding:"required"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	EntryReference  string          `json:"entryReference"`
	EntrySource     string          `json:"entrySource"`
	EntryMemo       string          `json:"entryMemo"`
}

// AdjustmentResponse reports the posted journal.
type AdjustmentResponse struct {
	JournalID string    `json:"journalID"`
	RefNo     string    `json:"refNo"`
	Date      time.Time `json:"date"`
}

// ToAdjustmentResponse converts a posted journal to its response DTO.
func ToAdjustmentResponse(j *domain.Journal) AdjustmentResponse {
	return AdjustmentResponse{
		JournalID: j.JournalID,
		RefNo:     j.RefNo,
		Date:      j.JournalDate,
	}
}

// JournalLineResponse mirrors domain.JournalLine for API output.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	LineOrder   int             `json:"lineOrder"`
	Description string          `json:"description"`
}

// JournalResponse is a journal header with its lines.
type JournalResponse struct {
	JournalID   string                `json:"journalID"`
	JournalDate time.Time             `json:"journalDate"`
	Memo        string                `json:"memo"`
	Source      string                `json:"source"`
	RefNo       string                `json:"refNo"`
	Lines       []JournalLineResponse `json:"lines"`
}

// ToJournalResponse converts a journal and its lines to the response DTO.
func ToJournalResponse(j *domain.Journal, lines []domain.JournalLine) JournalResponse {
	lineDTOs := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		lineDTOs[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			LineOrder:   l.LineOrder,
			Description: l.Description,
		}
	}
	return JournalResponse{
		JournalID:   j.JournalID,
		JournalDate: j.JournalDate,
		Memo:        j.Memo,
		Source:      j.Source,
		RefNo:       j.RefNo,
		Lines:       lineDTOs,
	}
}
