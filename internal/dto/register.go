package dto

import (
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterParams are the query parameters accepted by the register endpoint.
// Dates use YYYY-MM-DD. When Preset is set it overrides DateFrom/DateTo.
type RegisterParams struct {
	AccountID string    `form:"account_id"`
	DateFrom  time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo    time.Time `form:"date_to" time_format:"2006-01-02"`
	Source    string    `form:"source,default=all" binding:"omitempty,oneof=all transactions journal"`
	Search    string    `form:"search"`
	MinAmount string    `form:"min_amount"`
	MaxAmount string    `form:"max_amount"`
	Preset    string    `form:"preset" binding:"omitempty,oneof=today week month last_month quarter ytd"`
	Export    bool      `form:"export"`
}

// RegisterResponse wraps the aggregator output for JSON rendering.
type RegisterResponse struct {
	Rows        []domain.Movement      `json:"rows"`
	Groups      []domain.RegisterGroup `json:"groups"`
	TotalDebit  decimal.Decimal        `json:"totalDebit"`
	TotalCredit decimal.Decimal        `json:"totalCredit"`
}

// ToRegisterResponse converts the aggregator result to its response DTO.
func ToRegisterResponse(res *domain.RegisterResult) RegisterResponse {
	return RegisterResponse{
		Rows:        res.Rows,
		Groups:      res.Groups,
		TotalDebit:  res.TotalDebit,
		TotalCredit: res.TotalCredit,
	}
}
