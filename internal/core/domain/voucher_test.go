package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/SscSPs/voucher_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleFor_Table(t *testing.T) {
	tests := []struct {
		voucherType domain.VoucherType
		manual      domain.Side
		system      domain.Side
		role        domain.AccountRole
		minLines    int
	}{
		{domain.BankPayment, domain.SideDebit, domain.SideCredit, domain.RoleBank, 1},
		{domain.CashPayment, domain.SideDebit, domain.SideCredit, domain.RoleCash, 1},
		{domain.BankReceipt, domain.SideCredit, domain.SideDebit, domain.RoleBank, 1},
		{domain.CashReceipt, domain.SideCredit, domain.SideDebit, domain.RoleCash, 1},
		{domain.JournalEntry, domain.SideBoth, domain.SideNone, domain.RoleNone, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.voucherType), func(t *testing.T) {
			rule, ok := domain.RuleFor(tt.voucherType)
			require.True(t, ok)
			assert.Equal(t, tt.manual, rule.ManualSide)
			assert.Equal(t, tt.system, rule.SystemSide)
			assert.Equal(t, tt.role, rule.SystemRole)
			assert.Equal(t, tt.minLines, rule.MinManualLines)
			assert.Equal(t, tt.system != domain.SideNone, tt.voucherType.HasSystemLine())
		})
	}

	_, ok := domain.RuleFor("XYZ")
	assert.False(t, ok)
	assert.False(t, domain.VoucherType("XYZ").IsValid())
	assert.Len(t, domain.VoucherTypes(), 5)
}

func TestVoucherStatus_Transition(t *testing.T) {
	next, err := domain.StatusDraft.Transition(domain.ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, next)

	next, err = next.Transition(domain.ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, next)

	next, err = next.Transition(domain.ActionPost)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPosted, next)
	assert.True(t, next.IsTerminal())

	outOfOrder := []struct {
		name   string
		status domain.VoucherStatus
		action domain.VoucherAction
	}{
		{"post a draft", domain.StatusDraft, domain.ActionPost},
		{"approve a draft", domain.StatusDraft, domain.ActionApprove},
		{"submit twice", domain.StatusSubmitted, domain.ActionSubmit},
		{"post a submitted voucher", domain.StatusSubmitted, domain.ActionPost},
		{"post twice", domain.StatusPosted, domain.ActionPost},
		{"approve a posted voucher", domain.StatusPosted, domain.ActionApprove},
		{"edit is not a transition", domain.StatusDraft, domain.ActionEdit},
	}
	for _, tt := range outOfOrder {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.status.Transition(tt.action)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.ErrorIs(t, err, apperrors.ErrConflict)
			assert.Equal(t, tt.status, got)
		})
	}
}

func TestVoucherStatus_EnsureEditable(t *testing.T) {
	assert.NoError(t, domain.StatusDraft.EnsureEditable())

	for _, s := range []domain.VoucherStatus{domain.StatusSubmitted, domain.StatusApproved} {
		err := s.EnsureEditable()
		assert.ErrorIs(t, err, domain.ErrVoucherNotEditable)
	}

	err := domain.StatusPosted.EnsureEditable()
	assert.ErrorIs(t, err, domain.ErrPostedVoucherLocked)
	assert.Contains(t, err.Error(), "reversal voucher")
	assert.False(t, errors.Is(err, domain.ErrVoucherNotEditable))

	assert.NoError(t, domain.StatusPosted.EnsureReversible())
	assert.ErrorIs(t, domain.StatusApproved.EnsureReversible(), domain.ErrReversalNotAllowed)
}

func TestPaymentMethod_RequiresReference(t *testing.T) {
	assert.True(t, domain.PaymentCheque.RequiresReference())
	assert.True(t, domain.PaymentTransfer.RequiresReference())
	assert.True(t, domain.PaymentMethod(" transfer ").RequiresReference())
	assert.True(t, domain.PaymentOnline.RequiresReference())
	assert.False(t, domain.PaymentCash.RequiresReference())
	assert.False(t, domain.PaymentMethod("").RequiresReference())
}

func TestFormatVoucherNumber(t *testing.T) {
	date := time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "BPV-202510-0007", domain.FormatVoucherNumber(domain.BankPayment, date, 7))
	assert.Equal(t, "JV-202510-12345", domain.FormatVoucherNumber(domain.JournalEntry, date, 12345))
	assert.Equal(t, "202510", domain.VoucherPeriod(date))
}

func TestCalendarDate(t *testing.T) {
	lateEvening := time.Date(2025, 10, 31, 23, 0, 0, 0, time.FixedZone("EST", -5*60*60))
	got := domain.CalendarDate(lateEvening)

	assert.Equal(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, "BPV-202510-0001", domain.FormatVoucherNumber(domain.BankPayment, got, 1))
	assert.True(t, domain.CalendarDate(time.Time{}).IsZero())
}

func TestVoucher_LineViews(t *testing.T) {
	v := domain.Voucher{
		AccountID: "bank",
		Lines: []domain.VoucherLine{
			{AccountID: "rent", Debit: decimal.NewFromInt(1000)},
			{AccountID: "fuel", Debit: decimal.NewFromInt(500)},
			{AccountID: "bank", Credit: decimal.NewFromInt(1500), IsSystemGenerated: true},
		},
	}

	assert.Len(t, v.UserLines(), 2)
	assert.Len(t, v.SystemLines(), 1)
	debit, credit := v.Totals()
	assert.True(t, debit.Equal(credit))
	assert.True(t, debit.Equal(decimal.NewFromInt(1500)))
	assert.False(t, v.IsReversal())

	empty := ""
	v.ReversalOfID = &empty
	assert.False(t, v.IsReversal())
}

func TestAccount_CanReceiveLines(t *testing.T) {
	leaf := domain.Account{IsPostable: true, IsActive: true, Category: domain.CategoryPosting}
	assert.True(t, leaf.CanReceiveLines())

	control := leaf
	control.Category = domain.CategoryControl
	assert.False(t, control.CanReceiveLines())

	inactive := leaf
	inactive.IsActive = false
	assert.False(t, inactive.CanReceiveLines())

	assert.True(t, domain.Revenue.IsValid())
	assert.False(t, domain.AccountType("INCOME").IsValid())
}
