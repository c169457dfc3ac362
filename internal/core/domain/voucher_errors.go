package domain

import "github.com/SscSPs/voucher_engine/internal/apperrors"

// Voucher rule failures. The messages are part of the API contract: callers
// branch on them to correct input, redirect to a reversal or report a
// permission problem.
var (
	ErrVoucherTypeInvalid    = apperrors.NewRuleError(apperrors.KindHeader, "Voucher type is invalid")
	ErrVoucherDateMissing    = apperrors.NewRuleError(apperrors.KindHeader, "Voucher date is required")
	ErrPaymentMethodMissing  = apperrors.NewRuleError(apperrors.KindHeader, "Payment method is required")
	ErrPrimaryAccountMissing = apperrors.NewRuleError(apperrors.KindHeader, "Account is required")
	ErrReferenceRequired     = apperrors.NewRuleError(apperrors.KindHeader, "Reference number is required")

	ErrSystemAccountLine  = apperrors.NewRuleError(apperrors.KindPolicy, "System account lines cannot be submitted from UI")
	ErrManualCredit       = apperrors.NewRuleError(apperrors.KindPolicy, "Manual credit entries are not allowed")
	ErrManualDebit        = apperrors.NewRuleError(apperrors.KindPolicy, "Manual debit entries are not allowed")
	ErrLineAmountInvalid  = apperrors.NewRuleError(apperrors.KindPolicy, "Each line must have either a debit or a credit amount")
	ErrLineAccountMissing = apperrors.NewRuleError(apperrors.KindPolicy, "Line account is required")
	ErrLineAmountScale    = apperrors.NewRuleError(apperrors.KindPolicy, "Amounts cannot have more than 2 decimal places")
	ErrVoucherNoLines     = apperrors.NewRuleError(apperrors.KindPolicy, "Voucher must have at least 1 line")
	ErrJournalUnbalanced  = apperrors.NewRuleError(apperrors.KindPolicy, "Journal Voucher must balance (debits = credits)")
	ErrJournalMinLines    = apperrors.NewRuleError(apperrors.KindPolicy, "Journal entry must have at least 2 lines")

	ErrAccountNotFound     = apperrors.NewRuleError(apperrors.KindReference, "Account not found")
	ErrAccountNotPostable  = apperrors.NewRuleError(apperrors.KindReference, "Account is not a postable account")
	ErrAccountRoleMismatch = apperrors.NewRuleError(apperrors.KindReference, "Account role does not match voucher type")

	ErrVoucherNotEditable  = apperrors.NewRuleError(apperrors.KindLifecycle, "Only draft vouchers can be edited")
	ErrPostedVoucherLocked = apperrors.NewRuleError(apperrors.KindLifecycle, "Posted vouchers cannot be edited; create a reversal voucher instead")
	ErrInvalidTransition   = apperrors.NewRuleError(apperrors.KindLifecycle, "Invalid voucher status transition")
	ErrReversalNotAllowed  = apperrors.NewRuleError(apperrors.KindLifecycle, "Only posted vouchers that are not reversals can be reversed")
	ErrAlreadyReversed     = apperrors.NewRuleError(apperrors.KindLifecycle, "Voucher has already been reversed")
	ErrReversalLocked      = apperrors.NewRuleError(apperrors.KindLifecycle, "Reversal vouchers cannot be edited")

	ErrSelfApproval = apperrors.NewRuleError(apperrors.KindPermission, "Voucher must be approved by a different user than the submitter")
)
