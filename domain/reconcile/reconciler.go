// Package reconcile implements the permission reconciliation engine: it
// walks the declared permission manifest, classifies each entry by
// platform-version applicability, applies the selected escalation strategy
// and folds the per-entry decisions into an outcome summary.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// reconcilerConfig holds configuration for the Reconciler.
type reconcilerConfig struct {
	logger               *slog.Logger
	denialHandler        ports.DenialHandler
	requireRuntimeGrants bool
}

func defaultReconcilerConfig() reconcilerConfig {
	return reconcilerConfig{
		logger:        slog.Default(),
		denialHandler: &StderrDenialHandler{},
	}
}

// Option configures the Reconciler.
type Option func(*reconcilerConfig)

// WithLogger sets the logger used for non-fatal engine events.
func WithLogger(l *slog.Logger) Option {
	return func(c *reconcilerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDenialHandler sets the handler invoked when a privileged grant
// attempt is refused.
func WithDenialHandler(h ports.DenialHandler) Option {
	return func(c *reconcilerConfig) {
		if h != nil {
			c.denialHandler = h
		}
	}
}

// WithRequireRuntimeGrants makes Reconcile fail with PlatformTooOldError
// on platforms without runtime permission grants, instead of the normal
// zero-outcome short-circuit. For callers that structurally require the
// engine to run.
func WithRequireRuntimeGrants() Option {
	return func(c *reconcilerConfig) {
		c.requireRuntimeGrants = true
	}
}

// Reconciler is a stateless decision engine over (manifest, grant state,
// mode). It holds no mutable state between entries or passes; concurrent
// passes are safe and converge to the same observed outcome.
type Reconciler struct {
	platform entities.Platform
	checker  ports.GrantChecker
	granter  ports.ForcedGranter
	config   reconcilerConfig
}

// New creates a Reconciler for the given platform. granter may be nil when
// the caller never uses ForcedGrant mode.
func New(platform entities.Platform, checker ports.GrantChecker, granter ports.ForcedGranter, opts ...Option) *Reconciler {
	cfg := defaultReconcilerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Reconciler{
		platform: platform,
		checker:  checker,
		granter:  granter,
		config:   cfg,
	}
}

// Reconcile runs one pass over the manifest with the selected mode.
//
// CheckOnly never mutates state. InteractiveRequest submits at most one
// batched request through surface and returns a pre-request estimate; the
// true post-decision state is only observable by a later CheckOnly pass.
// ForcedGrant attempts a privileged synchronous grant per missing entry
// and must be called with a nil surface.
//
// On platforms without runtime grants the pass returns a zero outcome:
// every permission is implicitly granted at install time there.
func (r *Reconciler) Reconcile(ctx context.Context, manifest entities.Manifest, mode entities.Mode, surface ports.RequestSurface) (entities.Outcome, error) {
	if err := r.checkContract(manifest, mode, surface); err != nil {
		return entities.Outcome{}, err
	}

	if !r.platform.HasRuntimeGrants() {
		if r.config.requireRuntimeGrants {
			return entities.Outcome{}, &errors.PlatformTooOldError{
				Version:    r.platform.Version,
				MinVersion: entities.MinVersionRuntimeGrants,
			}
		}
		return entities.Outcome{}, nil
	}

	decisions := r.decide(ctx, manifest, mode)

	if mode == entities.InteractiveRequest {
		r.submitBatch(ctx, decisions, surface)
	}

	return fold(decisions), nil
}

// checkContract rejects caller misuse before any state is touched.
func (r *Reconciler) checkContract(manifest entities.Manifest, mode entities.Mode, surface ports.RequestSurface) error {
	switch mode {
	case entities.ForcedGrant:
		// Forced grant is precisely the no-UI path.
		if surface != nil {
			return &errors.ContractViolationError{
				Op:     "Reconcile",
				Reason: "interaction surface provided with ForcedGrant mode",
			}
		}
		if r.granter == nil {
			return &errors.ContractViolationError{
				Op:     "Reconcile",
				Reason: "ForcedGrant mode without a forced granter",
			}
		}
	case entities.InteractiveRequest:
		if surface == nil {
			return &errors.ContractViolationError{
				Op:     "Reconcile",
				Reason: "InteractiveRequest mode without an interaction surface",
			}
		}
	}

	for i, e := range manifest {
		if e.Name == "" {
			return &errors.ContractViolationError{
				Op:     "Reconcile",
				Reason: fmt.Sprintf("manifest entry %d has an empty name", i),
			}
		}
		if e.MinVersion < 1 {
			return &errors.ContractViolationError{
				Op:     "Reconcile",
				Reason: fmt.Sprintf("manifest entry %q has invalid minimum version %d", e.Name, e.MinVersion),
			}
		}
	}
	return nil
}

// decide produces one decision record per manifest entry. A single pass
// serves every mode, so the forced and check paths can never drift in how
// they count.
func (r *Reconciler) decide(ctx context.Context, manifest entities.Manifest, mode entities.Mode) []entities.EntryDecision {
	decisions := make([]entities.EntryDecision, 0, len(manifest))

	for _, entry := range manifest {
		d := entities.EntryDecision{Name: entry.Name}
		if !entry.Applicable(r.platform.Version) {
			decisions = append(decisions, d)
			continue
		}
		d.Applicable = true
		d.State = r.checker.CheckGranted(ctx, entry.Name)

		if d.State == entities.Granted {
			decisions = append(decisions, d)
			continue
		}

		switch mode {
		case entities.ForcedGrant:
			d.Action = entities.ActionForced
			if r.granter.ForceGrant(ctx, entry.Name) == ports.GrantDenied {
				d.ForcedError = true
				r.config.denialHandler.OnDenial(entry.Name, "privileged grant refused")
			}
			// The grant call's return value is not authoritative: the
			// platform can accept the call and still refuse the grant.
			d.State = r.checker.CheckGranted(ctx, entry.Name)
		case entities.InteractiveRequest:
			d.Action = entities.ActionQueued
		}

		decisions = append(decisions, d)
	}

	return decisions
}

// submitBatch sends the single batched interactive request. Errors from the
// surface are logged, never propagated: the engine's contract is to always
// return an outcome, and the decision arrives out-of-band regardless.
func (r *Reconciler) submitBatch(ctx context.Context, decisions []entities.EntryDecision, surface ports.RequestSurface) {
	var names []string
	for _, d := range decisions {
		if d.Action == entities.ActionQueued {
			names = append(names, d.Name)
		}
	}
	if len(names) == 0 {
		return
	}
	if err := surface.RequestBatch(ctx, names); err != nil {
		r.config.logger.WarnContext(ctx, "interactive permission request failed",
			"permissions", len(names), "error", err)
	}
}

// fold aggregates decision records into the outcome counters.
func fold(decisions []entities.EntryDecision) entities.Outcome {
	var out entities.Outcome
	for _, d := range decisions {
		if !d.Applicable {
			continue
		}
		out.TotalRequired++
		if d.State == entities.NotGranted {
			out.NotGranted++
		}
		if d.ForcedError {
			out.ForcedGrantErrors++
		}
	}
	return out
}
