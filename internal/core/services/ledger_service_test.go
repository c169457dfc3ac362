package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/core/services"
	"github.com/SscSPs/voucher_engine/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAccountLedger(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	voucherRepo := new(MockVoucherRepository)
	svc := services.NewLedgerService(accountRepo, voucherRepo)

	bank := postingAccount("bank", domain.Asset, domain.RoleBank)
	bank.Balance = d("-1500")
	accountRepo.On("FindAccountByID", ctx, "bank").Return(&bank, nil).Once()

	next := "cursor"
	entries := []domain.LedgerEntry{
		{LineID: "l2", VoucherNumber: "BPV-202510-0001", AccountID: "bank", Credit: d("1500"), RunningBalance: d("-1500")},
	}
	voucherRepo.On("ListLedgerEntries", ctx, "bank", 100, (*string)(nil)).Return(entries, &next, nil).Once()

	resp, err := svc.GetAccountLedger(ctx, "bank", dto.ListLedgerParams{})

	require.NoError(t, err)
	assert.Equal(t, "bank", resp.AccountID)
	assert.True(t, d("-1500").Equal(resp.Balance))
	assert.Len(t, resp.Entries, 1)
	assert.Equal(t, &next, resp.NextToken)
	voucherRepo.AssertExpectations(t)
}

func TestGetAccountLedger_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	voucherRepo := new(MockVoucherRepository)
	accountRepo.On("FindAccountByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := services.NewLedgerService(accountRepo, voucherRepo).GetAccountLedger(ctx, "ghost", dto.ListLedgerParams{Limit: 10})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	voucherRepo.AssertNotCalled(t, "ListLedgerEntries")
}
