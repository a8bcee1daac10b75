package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("approve: %w", TransitionErr("op-1", "APPROVED", "APPROVED"))
	assert.True(t, Is(InvalidTransition, err))
	assert.False(t, Is(TerminalState, err))
	assert.Equal(t, InvalidTransition, KindOf(err))
}

func TestTerminalStateIsInvalidTransition(t *testing.T) {
	err := TerminalErr("op-1", "COMPLETED")
	assert.True(t, Is(TerminalState, err))
	assert.True(t, Is(InvalidTransition, err))
	assert.False(t, Is(MissingReason, err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Other, KindOf(stderrors.New("boom")))
	assert.False(t, Is(Other, nil))
}

func TestErrorMessage(t *testing.T) {
	err := E(Transport, "list operations", stderrors.New("timeout"))
	assert.Equal(t, "transport failure: list operations: timeout", err.Error())
	assert.Equal(t, "missing reason: comment is required when rejecting", MissingReasonErr("comment").Error())
}

func TestValidationErrs(t *testing.T) {
	ve := ValidationErrs()
	assert.NoError(t, ve.Err())

	ve.Add("b", "cannot be empty")
	ve.Add("a", "too long")
	ve.Add("a", "bad chars")
	assert.Equal(t, 2, ve.Len())
	assert.EqualError(t, ve.Err(), "a: too long, bad chars; b: cannot be empty")

	err := EmptyParamErr("username")
	assert.Equal(t, Invalid, KindOf(err))
	assert.Contains(t, err.Error(), "username: cannot be empty")
}
