package ports

import (
	"context"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
)

// GrantChecker is the platform's grant-state provider. State is never
// cached by the engine: external actors (the user, the OS) can change it
// between any two calls, so every reconciliation pass re-queries it.
type GrantChecker interface {
	// CheckGranted returns the current grant state of one permission.
	CheckGranted(ctx context.Context, name string) entities.GrantState
}

// GrantResult is the explicit result variant of a privileged grant call.
// Denials are counted by the reconciler, never raised as errors.
type GrantResult int

const (
	// GrantAccepted means the privileged primitive accepted the grant.
	// The authoritative state still comes from a fresh CheckGranted query;
	// the platform can accept the call and refuse the grant anyway.
	GrantAccepted GrantResult = iota

	// GrantDenied means the privileged primitive refused the call, for
	// example because the installation lacks the required signature-level
	// privilege.
	GrantDenied
)

// ForcedGranter is the privileged grant primitive, available only to
// trusted installations. Calls take several milliseconds; do not invoke at
// high frequency.
type ForcedGranter interface {
	// ForceGrant attempts a synchronous, non-interactive grant.
	ForceGrant(ctx context.Context, name string) GrantResult
}

// RequestSurface is the interactive request primitive. One batched request
// is submitted per reconciliation pass; the user's decision arrives
// out-of-band, so the call is fire-and-forget from the engine's perspective.
type RequestSurface interface {
	// RequestBatch queues one user-facing request for all named
	// permissions. It must not block the engine on the user's decision.
	RequestBatch(ctx context.Context, names []string) error
}

// DenialHandler is called when a privileged grant attempt is refused.
// Implementations can log, collect metrics, or take other actions.
type DenialHandler interface {
	// OnDenial is called once per refused permission.
	OnDenial(name string, reason string)
}

// InstallOracle reports the privilege level of the hosting installation.
type InstallOracle interface {
	// PrivilegedInstallation returns true if the app is installed
	// pre-installed/system-level and may use the forced grant primitive.
	PrivilegedInstallation(ctx context.Context) (bool, error)
}
