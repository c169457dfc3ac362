package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	"github.com/SscSPs/voucher_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ValidateVoucherRules runs the storage-free voucher checks in a fixed order:
// header, system account lines, direction, balance and line count. The first
// failing rule is returned. v.Lines must hold user-submitted lines only.
func ValidateVoucherRules(v domain.Voucher) error {
	rule, ok := domain.RuleFor(v.Type)
	if !ok {
		return domain.ErrVoucherTypeInvalid
	}
	if err := validateHeader(v, rule); err != nil {
		return err
	}

	for _, line := range v.Lines {
		if line.IsSystemGenerated {
			return domain.ErrSystemAccountLine
		}
		if rule.SystemSide != domain.SideNone && line.AccountID == v.AccountID {
			return domain.ErrSystemAccountLine
		}
	}

	for _, line := range v.Lines {
		switch rule.ManualSide {
		case domain.SideDebit:
			if line.Credit.IsPositive() {
				return domain.ErrManualCredit
			}
		case domain.SideCredit:
			if line.Debit.IsPositive() {
				return domain.ErrManualDebit
			}
		}
	}

	for i, line := range v.Lines {
		if strings.TrimSpace(line.AccountID) == "" {
			return fmt.Errorf("%w (line %d)", domain.ErrLineAccountMissing, i+1)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() || line.Debit.IsPositive() == line.Credit.IsPositive() {
			return fmt.Errorf("%w (line %d)", domain.ErrLineAmountInvalid, i+1)
		}
		if !hasMoneyScale(line.Debit) || !hasMoneyScale(line.Credit) {
			return fmt.Errorf("%w (line %d)", domain.ErrLineAmountScale, i+1)
		}
	}

	switch rule.BalanceMode {
	case domain.BalanceByCounterEntry:
		if len(v.Lines) < rule.MinManualLines {
			return domain.ErrVoucherNoLines
		}
	case domain.BalanceByUserLines:
		if !accounting.IsBalanced(v.Lines) {
			return domain.ErrJournalUnbalanced
		}
		if len(v.Lines) < rule.MinManualLines {
			return domain.ErrJournalMinLines
		}
	}
	return nil
}

// hasMoneyScale reports whether amount has at most two decimal places.
func hasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

func validateHeader(v domain.Voucher, rule domain.VoucherTypeRule) error {
	if v.Date.IsZero() {
		return domain.ErrVoucherDateMissing
	}
	if rule.RequiresPayment && strings.TrimSpace(string(v.PaymentMethod)) == "" {
		return domain.ErrPaymentMethodMissing
	}
	if strings.TrimSpace(v.AccountID) == "" {
		return domain.ErrPrimaryAccountMissing
	}
	if v.PaymentMethod.RequiresReference() && strings.TrimSpace(v.ReferenceNumber) == "" {
		return domain.ErrReferenceRequired
	}
	return nil
}

// VoucherValidator adds the account registry checks to ValidateVoucherRules.
type VoucherValidator struct {
	accounts portsrepo.AccountReader
}

// NewVoucherValidator creates a validator backed by the account registry.
func NewVoucherValidator(accounts portsrepo.AccountReader) *VoucherValidator {
	return &VoucherValidator{accounts: accounts}
}

// Validate runs every rule against v, whose Lines must be the user lines.
// On success it returns the referenced accounts keyed by ID.
func (val *VoucherValidator) Validate(ctx context.Context, v domain.Voucher) (map[string]domain.Account, error) {
	if err := ValidateVoucherRules(v); err != nil {
		return nil, err
	}
	return val.ValidateAccounts(ctx, v)
}

// ValidateAccounts checks that the primary account and every line account
// exist and can receive lines, and that the primary account carries the role
// required by the voucher type.
func (val *VoucherValidator) ValidateAccounts(ctx context.Context, v domain.Voucher) (map[string]domain.Account, error) {
	ids := referencedAccountIDs(v)
	accounts, err := val.accounts.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load voucher accounts: %w", err)
	}

	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
		if !acc.CanReceiveLines() {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrAccountNotPostable, acc.Code, acc.Name)
		}
	}

	rule, _ := domain.RuleFor(v.Type)
	if rule.SystemRole != domain.RoleNone {
		primary := accounts[v.AccountID]
		if primary.Role != rule.SystemRole {
			return nil, fmt.Errorf("%w: %s requires a %s account", domain.ErrAccountRoleMismatch, v.Type, rule.SystemRole)
		}
	}
	return accounts, nil
}

// referencedAccountIDs returns the primary account followed by the distinct
// line accounts in line order.
func referencedAccountIDs(v domain.Voucher) []string {
	seen := map[string]bool{v.AccountID: true}
	ids := []string{v.AccountID}
	for _, line := range v.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			ids = append(ids, line.AccountID)
		}
	}
	return ids
}
