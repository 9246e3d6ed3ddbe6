package dto

import (
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new ledger account.
type CreateAccountRequest struct {
	AccountNumber   string             `json:"accountNumber" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	AccountType     domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	ParentAccountID *string            `json:"parentAccountID"` // Optional, use pointer for nullability
	Description     string             `json:"description"`     // Optional
}

// UpdateAccountRequest defines the fields allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	IsActive        *bool   `json:"isActive"`
	ParentAccountID *string `json:"parentAccountID"` // Empty string clears the parent
}

// AccountResponse mirrors domain.Account for API output.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	AccountNumber   string             `json:"accountNumber"`
	Name            string             `json:"name"`
	AccountType     domain.AccountType `json:"accountType"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string if null in DB
	Description     string             `json:"description"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		AccountNumber:   acc.AccountNumber,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		ParentAccountID: acc.ParentAccountID,
		Description:     acc.Description,
		IsActive:        acc.IsActive,
		CreatedAt:       acc.CreatedAt,
		CreatedBy:       acc.CreatedBy,
		LastUpdatedAt:   acc.LastUpdatedAt,
		LastUpdatedBy:   acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for the list/hierarchy view.
type ListAccountsParams struct {
	AccountType string `form:"account_type" binding:"omitempty,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Search      string `form:"search"`
}

// ListAccountsResponse wraps the account list.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse is the output of a balance query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
}

// SetupChartResponse reports the outcome of a standard chart bootstrap.
type SetupChartResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
