package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/SscSPs/voucher_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// GenerateSystemLine returns the user lines of v followed by exactly one
// counter-entry on the primary account. Previously generated lines are dropped
// first, so calling it again on its own output yields the same line set.
// Journal vouchers get their user lines back unchanged.
func GenerateSystemLine(v domain.Voucher) ([]domain.VoucherLine, error) {
	rule, ok := domain.RuleFor(v.Type)
	if !ok {
		return nil, domain.ErrVoucherTypeInvalid
	}

	lines := v.UserLines()
	if rule.SystemSide == domain.SideNone {
		return lines, nil
	}

	line := domain.VoucherLine{
		VoucherID:         v.VoucherID,
		LineNo:            len(lines) + 1,
		AccountID:         v.AccountID,
		Debit:             decimal.Zero,
		Credit:            decimal.Zero,
		Description:       systemLineDescription(v, rule),
		IsSystemGenerated: true,
		Origin:            domain.OriginCounterEntry,
	}
	switch rule.SystemSide {
	case domain.SideCredit:
		line.Credit = accounting.SumDebits(lines)
	case domain.SideDebit:
		line.Debit = accounting.SumCredits(lines)
	}
	return append(lines, line), nil
}

func systemLineDescription(v domain.Voucher, rule domain.VoucherTypeRule) string {
	desc := strings.TrimSpace(v.Description)
	if desc == "" {
		desc = rule.Name
	}
	return domain.SystemLineTag + " " + desc
}

// VerifySystemLines checks the generated line invariants of a stored voucher:
// single-sided types carry exactly one generated line, on the primary account,
// and every voucher balances.
func VerifySystemLines(v domain.Voucher) error {
	rule, ok := domain.RuleFor(v.Type)
	if !ok {
		return domain.ErrVoucherTypeInvalid
	}

	generated := 0
	for _, l := range v.Lines {
		if l.IsSystemGenerated {
			generated++
		}
	}
	onPrimary := len(v.SystemLines())

	want := 0
	if rule.SystemSide != domain.SideNone {
		want = 1
	}
	if generated != want || onPrimary != want {
		return fmt.Errorf("%w: voucher %s has %d system lines, expected %d", apperrors.ErrInternal, v.VoucherID, generated, want)
	}
	if !accounting.IsBalanced(v.Lines) {
		return fmt.Errorf("%w: voucher %s does not balance", apperrors.ErrInternal, v.VoucherID)
	}
	return nil
}
