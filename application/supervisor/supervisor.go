// Package supervisor implements the service supervision engine: liveness
// queries, start/stop/restart escalation and the startup composition that
// force-grants permissions before bringing up the main service.
//
// The supervisor holds no service state of its own; liveness is re-derived
// from the process registry on every call.
package supervisor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/reconcile"
)

// supervisorConfig holds the optional wiring of a Supervisor.
type supervisorConfig struct {
	logger        *slog.Logger
	notifier      ports.Notifier
	reconciler    *reconcile.Reconciler
	manifest      entities.Manifest
	mainService   entities.ServiceIdentity
	installOracle ports.InstallOracle
}

func defaultSupervisorConfig() supervisorConfig {
	return supervisorConfig{
		logger: slog.Default(),
	}
}

// Option configures the Supervisor.
type Option func(*supervisorConfig)

// WithLogger sets the logger used for non-fatal supervision events.
func WithLogger(l *slog.Logger) Option {
	return func(c *supervisorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNotifier wires the platform notification subsystem, required by
// GetNotification.
func WithNotifier(n ports.Notifier) Option {
	return func(c *supervisorConfig) {
		c.notifier = n
	}
}

// WithReconciler wires the permission reconciler and the manifest it runs
// over, required by EnsureMainServiceRunning.
func WithReconciler(r *reconcile.Reconciler, manifest entities.Manifest) Option {
	return func(c *supervisorConfig) {
		c.reconciler = r
		c.manifest = manifest
	}
}

// WithMainService sets the identity of the main service, required by
// EnsureMainServiceRunning.
func WithMainService(id entities.ServiceIdentity) Option {
	return func(c *supervisorConfig) {
		c.mainService = id
	}
}

// WithInstallOracle wires the installation-privilege oracle consulted when
// EnsureMainServiceRunning is asked to verify the installation type.
func WithInstallOracle(o ports.InstallOracle) Option {
	return func(c *supervisorConfig) {
		c.installOracle = o
	}
}

// Supervisor supervises the lifecycle of the application's services.
type Supervisor struct {
	platform entities.Platform
	registry ports.ProcessRegistry
	launcher ports.Launcher
	config   supervisorConfig

	// Channels already ensured this process lifetime, keyed by channel ID.
	channelsMu sync.Mutex
	channels   map[string]struct{}
}

// New creates a Supervisor over the given process registry and launcher.
func New(platform entities.Platform, registry ports.ProcessRegistry, launcher ports.Launcher, opts ...Option) *Supervisor {
	cfg := defaultSupervisorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Supervisor{
		platform: platform,
		registry: registry,
		launcher: launcher,
		config:   cfg,
		channels: make(map[string]struct{}),
	}
}

// IsRunning reports whether the given service is currently running.
//
// Called many times from liveness polls, so it stays at one registry
// enumeration and a linear scan. Registry failures degrade to false.
func (s *Supervisor) IsRunning(ctx context.Context, id entities.ServiceIdentity) bool {
	running, err := s.registry.ListRunningServices(ctx)
	if err != nil {
		s.config.logger.WarnContext(ctx, "running-services enumeration failed",
			"service", id, "error", err)
		return false
	}
	for _, r := range running {
		if r == id {
			return true
		}
	}
	return false
}

// Start starts the service in case it is not already running.
//
// The already-running guard is deliberate: re-invoking start on a live
// service would re-trigger its one-time initialization, which is unsafe to
// repeat. When foreground is true and the platform distinguishes foreground
// starts, a foreground-capable start is issued.
func (s *Supervisor) Start(ctx context.Context, id entities.ServiceIdentity, foreground bool) error {
	if s.IsRunning(ctx, id) {
		return nil
	}

	if foreground && s.platform.SupportsForegroundStart() {
		return s.launcher.StartForeground(ctx, id)
	}

	// Do NOT call this in high frequency. Starts take several
	// milliseconds to process.
	return s.launcher.StartBackground(ctx, id)
}

// Stop issues a graceful stop request. It does not wait for termination;
// callers needing confirmation must poll IsRunning.
func (s *Supervisor) Stop(ctx context.Context, id entities.ServiceIdentity) error {
	return s.launcher.StopRequest(ctx, id)
}

// Restart restarts the service and leaves it running in the foreground.
//
// With force true the hosting process is terminated directly, bypassing
// graceful shutdown - the escalation when a caller already knows the
// service ignores or delays stop requests. Otherwise a graceful stop is
// issued first. Failures on the teardown side are logged and not fatal:
// the service may simply not have been running.
func (s *Supervisor) Restart(ctx context.Context, id entities.ServiceIdentity, force bool) error {
	if force {
		pid, err := s.registry.ResolveProcessID(ctx, id)
		if err != nil {
			s.config.logger.WarnContext(ctx, "process id resolution failed",
				"service", id, "error", err)
		} else if err := s.registry.Kill(ctx, pid); err != nil {
			s.config.logger.WarnContext(ctx, "process kill failed",
				"service", id, "pid", pid, "error", err)
		}
	} else {
		if err := s.Stop(ctx, id); err != nil {
			s.config.logger.WarnContext(ctx, "graceful stop request failed",
				"service", id, "error", err)
		}
	}

	return s.Start(ctx, id, true)
}

// EnsureMainServiceRunning attempts to force-grant every declared
// permission without user interaction and then starts the main service in
// the foreground. The reconciliation outcome is returned for diagnostic
// reporting.
//
// With verifyInstall true the installation-privilege oracle is consulted
// first and the forced grant pass is skipped entirely under a
// non-privileged installation - those privileged calls are guaranteed to
// fail there. The service start proceeds regardless, with a zero outcome.
func (s *Supervisor) EnsureMainServiceRunning(ctx context.Context, verifyInstall bool) (entities.Outcome, error) {
	if s.config.reconciler == nil || s.config.mainService == "" {
		return entities.Outcome{}, &errors.ContractViolationError{
			Op:     "EnsureMainServiceRunning",
			Reason: "supervisor built without a reconciler or a main service identity",
		}
	}

	reconcileAllowed := true
	if verifyInstall {
		if s.config.installOracle == nil {
			return entities.Outcome{}, &errors.ContractViolationError{
				Op:     "EnsureMainServiceRunning",
				Reason: "installation verification requested without an install oracle",
			}
		}
		privileged, err := s.config.installOracle.PrivilegedInstallation(ctx)
		if err != nil {
			s.config.logger.WarnContext(ctx, "installation type lookup failed", "error", err)
			privileged = false
		}
		reconcileAllowed = privileged
	}

	var outcome entities.Outcome
	if reconcileAllowed {
		var err error
		outcome, err = s.config.reconciler.Reconcile(ctx, s.config.manifest, entities.ForcedGrant, nil)
		if err != nil {
			return outcome, err
		}
	}

	if err := s.Start(ctx, s.config.mainService, true); err != nil {
		return outcome, err
	}
	return outcome, nil
}
