package services

import (
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CalculateVoucherAmount computes the persisted amount of a voucher from its
// full line set.
func CalculateVoucherAmount(t domain.VoucherType, lines []domain.VoucherLine) (decimal.Decimal, error) {
	var user []domain.VoucherLine
	for _, l := range lines {
		if !l.IsSystemGenerated {
			user = append(user, l)
		}
	}

	switch t {
	case domain.BankPayment, domain.CashPayment:
		return accounting.SumDebits(user), nil
	case domain.BankReceipt, domain.CashReceipt:
		return accounting.SumCredits(user), nil
	case domain.JournalEntry:
		return accounting.SumDebits(lines), nil
	default:
		return decimal.Zero, domain.ErrVoucherTypeInvalid
	}
}
