package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID   string          `db:"account_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	Level       int             `db:"level"`
	Category    string          `db:"category"`
	IsPostable  bool            `db:"is_postable"`
	IsActive    bool            `db:"is_active"`
	Role        string          `db:"role"` // Empty when the account has no bank/cash role
	AuditFields                 // Embed common audit fields
	Balance     decimal.Decimal `db:"balance"` // Persisted account balance
}
