package domain

import "fmt"

// VoucherStatus indicates where a voucher is in its lifecycle.
type VoucherStatus string

const (
	StatusDraft     VoucherStatus = "DRAFT"
	StatusSubmitted VoucherStatus = "SUBMITTED"
	StatusApproved  VoucherStatus = "APPROVED"
	StatusPosted    VoucherStatus = "POSTED"
)

// VoucherAction is an operation that depends on the voucher status.
type VoucherAction string

const (
	ActionEdit    VoucherAction = "edit"
	ActionSubmit  VoucherAction = "submit"
	ActionApprove VoucherAction = "approve"
	ActionPost    VoucherAction = "post"
	ActionReverse VoucherAction = "reverse"
)

// transitions holds the only allowed forward step for each action.
var transitions = map[VoucherAction]struct{ from, to VoucherStatus }{
	ActionSubmit:  {from: StatusDraft, to: StatusSubmitted},
	ActionApprove: {from: StatusSubmitted, to: StatusApproved},
	ActionPost:    {from: StatusApproved, to: StatusPosted},
}

// IsValid reports whether s is a known status.
func (s VoucherStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusPosted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s VoucherStatus) IsTerminal() bool {
	return s == StatusPosted
}

// Transition returns the status a voucher in status s moves to under action,
// or a lifecycle error when the action is out of order.
func (s VoucherStatus) Transition(action VoucherAction) (VoucherStatus, error) {
	step, ok := transitions[action]
	if !ok {
		return s, fmt.Errorf("%w: %s is not a status transition", ErrInvalidTransition, action)
	}
	if s != step.from {
		return s, fmt.Errorf("%w: cannot %s a voucher in %s status (expected %s)", ErrInvalidTransition, action, s, step.from)
	}
	return step.to, nil
}

// EnsureEditable fails unless a voucher in status s may have its header and
// lines replaced.
func (s VoucherStatus) EnsureEditable() error {
	switch s {
	case StatusDraft:
		return nil
	case StatusPosted:
		return ErrPostedVoucherLocked
	default:
		return fmt.Errorf("%w (current status %s)", ErrVoucherNotEditable, s)
	}
}

// EnsureReversible fails unless a voucher in status s may be reversed.
func (s VoucherStatus) EnsureReversible() error {
	if s != StatusPosted {
		return fmt.Errorf("%w (current status %s)", ErrReversalNotAllowed, s)
	}
	return nil
}
