package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
)

const defaultLedgerPageSize = 100

// ledgerService builds account ledgers from posted voucher lines. Generated
// lines are treated like any other line once posted.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader) portssvc.LedgerSvc {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *ledgerService) GetAccountLedger(ctx context.Context, accountID string, params dto.ListLedgerParams) (*dto.LedgerResponse, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLedgerPageSize
	}

	entries, nextToken, err := s.ledgerRepo.ListLedgerEntries(ctx, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &dto.LedgerResponse{
		AccountID: account.AccountID,
		Balance:   account.Balance,
		Entries:   entries,
		NextToken: nextToken,
	}, nil
}
