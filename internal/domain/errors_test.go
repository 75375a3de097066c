package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		msg    string
	}{
		{
			name:   "validation",
			err:    &ValidationError{Field: "name", Reason: "is required"},
			target: ErrValidation,
			msg:    "invalid name: is required",
		},
		{
			name:   "not found",
			err:    &NotFoundError{Entity: EntityStreet, ID: 9},
			target: ErrNotFound,
			msg:    "street 9 not found",
		},
		{
			name:   "duplicate",
			err:    &DuplicateError{Entity: EntityCity},
			target: ErrDuplicate,
			msg:    "duplicate city",
		},
		{
			name:   "unattributed duplicate",
			err:    &DuplicateError{},
			target: ErrDuplicate,
			msg:    "duplicate entity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.target)
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}

func TestErrorsDoNotCrossMatch(t *testing.T) {
	err := &NotFoundError{Entity: EntityCity, ID: 1}
	assert.False(t, errors.Is(err, ErrDuplicate))
	assert.False(t, errors.Is(err, ErrValidation))
}
