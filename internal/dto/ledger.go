package dto

import (
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListLedgerParams holds token pagination for an account ledger.
type ListLedgerParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// LedgerResponse is one page of an account ledger.
type LedgerResponse struct {
	AccountID string               `json:"accountID"`
	Balance   decimal.Decimal      `json:"balance"`
	Entries   []domain.LedgerEntry `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}
