package dto

import (
	"time"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register an account in the chart.
type CreateAccountRequest struct {
	Code        string                 `json:"code" binding:"required,max=32"`
	Name        string                 `json:"name" binding:"required,max=255"`
	AccountType domain.AccountType     `json:"accountType" binding:"required,accounttype"`
	Level       int                    `json:"level" binding:"omitempty,min=1,max=10"`
	Category    domain.AccountCategory `json:"category" binding:"required,oneof=POSTING CONTROL"`
	Role        domain.AccountRole     `json:"role" binding:"omitempty,oneof=BANK CASH"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string                 `json:"accountID"`
	Code          string                 `json:"code"`
	Name          string                 `json:"name"`
	AccountType   domain.AccountType     `json:"accountType"`
	Level         int                    `json:"level"`
	Category      domain.AccountCategory `json:"category"`
	IsPostable    bool                   `json:"isPostable"`
	IsActive      bool                   `json:"isActive"`
	Role          domain.AccountRole     `json:"role,omitempty"`
	Balance       decimal.Decimal        `json:"balance"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ListAccountsParams holds pagination for account listings.
type ListAccountsParams struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Level:         acc.Level,
		Category:      acc.Category,
		IsPostable:    acc.IsPostable,
		IsActive:      acc.IsActive,
		Role:          acc.Role,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	resp := make([]AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
