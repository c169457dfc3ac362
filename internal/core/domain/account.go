package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountCategory separates leaf posting accounts from summary control accounts.
type AccountCategory string

const (
	CategoryPosting AccountCategory = "POSTING"
	CategoryControl AccountCategory = "CONTROL"
)

// AccountRole marks the accounts that may act as the primary account of a
// single-sided voucher.
type AccountRole string

const (
	RoleNone AccountRole = ""
	RoleBank AccountRole = "BANK"
	RoleCash AccountRole = "CASH"
)

// Account represents a chart-of-accounts entry as seen by the voucher engine.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Code        string          `json:"code"`        // Hierarchical code, e.g. "111201"
	Name        string          `json:"name"`        // Display name
	AccountType AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	Level       int             `json:"level"`       // Depth in the chart; leaf accounts are level 5
	Category    AccountCategory `json:"category"`    // POSTING or CONTROL
	IsPostable  bool            `json:"isPostable"`  // Only postable accounts may receive voucher lines
	IsActive    bool            `json:"isActive"`
	Role        AccountRole     `json:"role"` // BANK, CASH or empty
	AuditFields
	Balance decimal.Decimal `json:"balance"` // Persisted running balance, changed only by posting
}

// CanReceiveLines reports whether voucher lines may reference the account.
func (a Account) CanReceiveLines() bool {
	return a.IsPostable && a.IsActive && a.Category == CategoryPosting
}
