package errors_test

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
)

func TestPlatformTooOldError(t *testing.T) {
	err := &errors.PlatformTooOldError{Version: 21, MinVersion: 23}
	assert.Contains(t, err.Error(), "21")
	assert.Contains(t, err.Error(), "23")
	assert.True(t, errors.IsPlatformTooOld(err))
	assert.True(t, errors.IsPlatformTooOld(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, errors.IsContractViolation(err))
}

func TestContractViolationError(t *testing.T) {
	err := &errors.ContractViolationError{Op: "Reconcile", Reason: "surface with ForcedGrant"}
	assert.Contains(t, err.Error(), "Reconcile")
	assert.True(t, errors.IsContractViolation(err))
	assert.True(t, errors.IsContractViolation(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, errors.IsPlatformTooOld(err))
}

func TestInvalidImportanceError(t *testing.T) {
	err := &errors.InvalidImportanceError{ChannelID: "fg", Importance: -1000}
	assert.Contains(t, err.Error(), "fg")
	assert.True(t, errors.IsInvalidImportance(err))
	assert.True(t, errors.IsInvalidImportance(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, errors.IsInvalidImportance(stdErrors.New("other")))
	assert.False(t, errors.IsInvalidImportance(nil))
}

func TestErrPermissionDenied(t *testing.T) {
	wrapped := fmt.Errorf("force grant of CAMERA: %w", errors.ErrPermissionDenied)
	assert.True(t, stdErrors.Is(wrapped, errors.ErrPermissionDenied))
}
