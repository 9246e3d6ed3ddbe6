package dto

import (
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a simple single-sided movement. Date is an
// RFC3339 timestamp.
type CreateTransactionRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
}

// TransactionResponse mirrors domain.Transaction for API output.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Date:          t.Date,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
		CreatedBy:     t.CreatedBy,
	}
}
