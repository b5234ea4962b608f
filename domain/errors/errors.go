// Package errors provides the engine's domain-specific error types.
// All types support unwrapping via errors.As() and errors.Is().
//
// Anticipated platform failures (grant denials, invalid channel
// importance) are absorbed into counters or one-shot fallbacks by the
// engine and never propagate to callers; the types here cover the cases
// that do: structural platform mismatch and caller contract violations.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrPermissionDenied is the sentinel adapters wrap when the privileged
// grant primitive refuses a call and the refusal must travel as an error
// (outside the reconciler's counting path).
var ErrPermissionDenied = stdErrors.New("permission denied by platform")

// PlatformTooOldError reports that the running platform predates runtime
// permission grants. Only returned to callers that explicitly require the
// reconciler to run; the normal path short-circuits with a zero outcome
// instead, because pre-runtime-grant platforms grant everything at install.
type PlatformTooOldError struct {
	Version    int
	MinVersion int
}

func (e *PlatformTooOldError) Error() string {
	return fmt.Sprintf("platform version %d predates runtime permission grants (minimum %d)",
		e.Version, e.MinVersion)
}

// ContractViolationError signals caller misuse - a programming error
// upstream, fatal to the call and not recoverable.
type ContractViolationError struct {
	Op     string
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Reason)
}

// InvalidImportanceError reports that the notification subsystem rejected
// the requested channel importance level. Recovered by the supervisor with
// exactly one retry at the minimum valid level.
type InvalidImportanceError struct {
	ChannelID  string
	Importance int
}

func (e *InvalidImportanceError) Error() string {
	return fmt.Sprintf("invalid importance level %d for notification channel %q",
		e.Importance, e.ChannelID)
}

// IsContractViolation reports whether err is a caller contract violation.
func IsContractViolation(err error) bool {
	var cv *ContractViolationError
	return stdErrors.As(err, &cv)
}

// IsPlatformTooOld reports whether err is the structural platform mismatch.
func IsPlatformTooOld(err error) bool {
	var pe *PlatformTooOldError
	return stdErrors.As(err, &pe)
}

// IsInvalidImportance reports whether err is an importance-level rejection.
func IsInvalidImportance(err error) bool {
	var ie *InvalidImportanceError
	return stdErrors.As(err, &ie)
}
