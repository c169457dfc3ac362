package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/voucher_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestRuleError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		name       string
		kind       apperrors.Kind
		validation bool
		conflict   bool
		forbidden  bool
	}{
		{name: "header", kind: apperrors.KindHeader, validation: true},
		{name: "policy", kind: apperrors.KindPolicy, validation: true},
		{name: "reference", kind: apperrors.KindReference, validation: true},
		{name: "lifecycle", kind: apperrors.KindLifecycle, conflict: true},
		{name: "permission", kind: apperrors.KindPermission, forbidden: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", apperrors.NewRuleError(tt.kind, "boom"))
			assert.Equal(t, tt.validation, errors.Is(err, apperrors.ErrValidation))
			assert.Equal(t, tt.conflict, errors.Is(err, apperrors.ErrConflict))
			assert.Equal(t, tt.forbidden, errors.Is(err, apperrors.ErrForbidden))
			assert.False(t, errors.Is(err, apperrors.ErrNotFound))

			kind, ok := apperrors.KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestRuleError_IdentityAndMessage(t *testing.T) {
	sentinel := apperrors.NewRuleError(apperrors.KindPolicy, "Manual credit entries are not allowed")
	err := fmt.Errorf("%w: line 2", sentinel)

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "Manual credit entries are not allowed: line 2", err.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(500, "failed to insert voucher", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to insert voucher: connection reset", err.Error())
	assert.Equal(t, "no cause", apperrors.NewAppError(400, "no cause", nil).Error())

	_, ok := apperrors.KindOf(err)
	assert.False(t, ok)
}
