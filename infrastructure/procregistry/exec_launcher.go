package procregistry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// ForegroundEnvVar marks a service process as started foreground-capable.
// Services read it during their own initialization.
const ForegroundEnvVar = "VISOR_SERVICE_FOREGROUND"

// launcherConfig holds configuration for the ExecLauncher.
type launcherConfig struct {
	logger *slog.Logger
}

func defaultLauncherConfig() launcherConfig {
	return launcherConfig{logger: slog.Default()}
}

// LauncherOption configures an ExecLauncher instance.
type LauncherOption func(*launcherConfig)

// WithLauncherLogger sets the logger for launch events.
func WithLauncherLogger(l *slog.Logger) LauncherOption {
	return func(c *launcherConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ExecLauncher implements ports.Launcher by spawning service executables as
// host processes. Graceful stops are delivered as a terminate signal; the
// service decides when (and whether) to honor it.
type ExecLauncher struct {
	registry *Registry
	commands map[entities.ServiceIdentity][]string // identity -> argv
	config   launcherConfig
}

var _ ports.Launcher = (*ExecLauncher)(nil)

// NewExecLauncher creates an ExecLauncher. commands maps each service
// identity to the argv used to start it; registry resolves PIDs for stop
// requests.
func NewExecLauncher(registry *Registry, commands map[entities.ServiceIdentity][]string, opts ...LauncherOption) *ExecLauncher {
	cfg := defaultLauncherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cmds := make(map[entities.ServiceIdentity][]string, len(commands))
	for id, argv := range commands {
		cmds[id] = append([]string(nil), argv...)
	}
	return &ExecLauncher{registry: registry, commands: cmds, config: cfg}
}

// StartForeground starts the service with the foreground marker set.
func (l *ExecLauncher) StartForeground(ctx context.Context, id entities.ServiceIdentity) error {
	return l.start(ctx, id, true)
}

// StartBackground starts the service without the foreground marker.
func (l *ExecLauncher) StartBackground(ctx context.Context, id entities.ServiceIdentity) error {
	return l.start(ctx, id, false)
}

func (l *ExecLauncher) start(ctx context.Context, id entities.ServiceIdentity, foreground bool) error {
	argv, ok := l.commands[id]
	if !ok || len(argv) == 0 {
		return fmt.Errorf("no launch command registered for service %q", id)
	}

	// Deliberately not CommandContext: the service outlives the caller's
	// context.
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	if foreground {
		cmd.Env = append(cmd.Env, ForegroundEnvVar+"=1")
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start service %q: %w", id, err)
	}
	l.config.logger.InfoContext(ctx, "service started",
		"service", id, "pid", cmd.Process.Pid, "foreground", foreground)

	// Reap the child when it exits.
	go func() {
		if err := cmd.Wait(); err != nil {
			l.config.logger.Warn("service exited abnormally", "service", id, "error", err)
		}
	}()
	return nil
}

// StopRequest sends a terminate signal to the process hosting the service.
// It does not wait for the process to exit.
func (l *ExecLauncher) StopRequest(ctx context.Context, id entities.ServiceIdentity) error {
	pid, err := l.registry.ResolveProcessID(ctx, id)
	if err != nil {
		return err
	}
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("failed to request stop of service %q: %w", id, err)
	}
	return nil
}
