package services

import (
	"context"

	"github.com/SscSPs/voucher_engine/internal/dto"
)

// LedgerSvc exposes running-balance ledgers built from posted vouchers.
type LedgerSvc interface {
	// GetAccountLedger retrieves a page of posted lines for an account.
	GetAccountLedger(ctx context.Context, accountID string, params dto.ListLedgerParams) (*dto.LedgerResponse, error)
}
