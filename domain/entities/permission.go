package entities

// GrantState is the current state of one runtime permission, as reported
// by the platform's grant-state provider.
type GrantState int

const (
	// NotGranted means the permission has not been approved.
	NotGranted GrantState = iota

	// Granted means the permission has been approved, either by the user
	// or by a privileged actor.
	Granted
)

// String returns the human-readable name of the grant state.
func (s GrantState) String() string {
	switch s {
	case Granted:
		return "granted"
	case NotGranted:
		return "not-granted"
	default:
		return "unknown"
	}
}

// Mode selects the escalation strategy of a reconciliation pass.
type Mode int

const (
	// CheckOnly counts missing grants without mutating any state.
	CheckOnly Mode = iota

	// InteractiveRequest queues one batched user-facing request through an
	// interaction surface. The user's decision arrives out-of-band and is
	// only observable by a later CheckOnly pass.
	InteractiveRequest

	// ForcedGrant attempts a privileged, non-interactive grant for every
	// missing permission. Only useful under a privileged installation.
	ForcedGrant
)

// String returns the human-readable name of the mode.
func (m Mode) String() string {
	switch m {
	case CheckOnly:
		return "check-only"
	case InteractiveRequest:
		return "interactive-request"
	case ForcedGrant:
		return "forced-grant"
	default:
		return "unknown"
	}
}

// PermissionEntry declares one runtime permission the application requires,
// together with the platform version the permission first exists on.
// Entries whose MinVersion exceeds the running platform version are excluded
// from all reconciliation counting.
type PermissionEntry struct {
	Name       string `json:"name" yaml:"name" validate:"required" jsonschema:"required"`
	MinVersion int    `json:"min_version" yaml:"min_version" validate:"required,min=1" jsonschema:"required"`
}

// Manifest is the ordered declaration of every runtime permission the
// application requires. Uniqueness of names is assumed, not enforced.
type Manifest []PermissionEntry

// Applicable reports whether the entry exists on the given platform version.
func (e PermissionEntry) Applicable(platformVersion int) bool {
	return e.MinVersion <= platformVersion
}

// CountApplicable returns the number of entries that exist on the given
// platform version. This is the single definition of "total required" used
// by every reconciliation path.
func (m Manifest) CountApplicable(platformVersion int) int {
	n := 0
	for _, e := range m {
		if e.Applicable(platformVersion) {
			n++
		}
	}
	return n
}

// Outcome summarizes one reconciliation pass.
type Outcome struct {
	// TotalRequired is the number of manifest entries applicable to the
	// running platform version.
	TotalRequired int `json:"total_required"`

	// NotGranted is the number of applicable entries still missing after
	// the pass. Always computed from a fresh grant-state query, never from
	// a grant call's own return value.
	NotGranted int `json:"not_granted"`

	// ForcedGrantErrors is the number of privileged grant attempts the
	// platform refused during a ForcedGrant pass. Zero for every other mode.
	ForcedGrantErrors int `json:"forced_grant_errors"`
}

// AllGranted reports whether no applicable permission is missing.
func (o Outcome) AllGranted() bool {
	return o.NotGranted == 0
}

// GrantAction is what the reconciler decided to do for one manifest entry.
type GrantAction int

const (
	// ActionNone means no escalation was needed or possible for the entry.
	ActionNone GrantAction = iota

	// ActionForced means a privileged synchronous grant was attempted.
	ActionForced

	// ActionQueued means the entry was added to the interactive request batch.
	ActionQueued
)

// EntryDecision is the per-entry record produced by a reconciliation pass.
// The outcome counters are folded from these records, so the forced and
// interactive paths can never drift apart in how they count.
type EntryDecision struct {
	Name        string
	Applicable  bool
	State       GrantState
	Action      GrantAction
	ForcedError bool
}
