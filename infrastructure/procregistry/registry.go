// Package procregistry provides the process registry and launcher adapters
// backed by the host process table. Service identities are mapped to
// executable names; liveness is one process-table enumeration.
package procregistry

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// processInfo is the slice of the process table the registry needs.
type processInfo struct {
	PID  int
	Name string
}

// processLister enumerates host processes. The default implementation uses
// gopsutil; tests inject a fake.
type processLister interface {
	Processes(ctx context.Context) ([]processInfo, error)
}

type gopsutilLister struct{}

func (gopsutilLister) Processes(ctx context.Context) ([]processInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate processes: %w", err)
	}
	infos := make([]processInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Processes can exit between enumeration and inspection.
			continue
		}
		infos = append(infos, processInfo{PID: int(p.Pid), Name: name})
	}
	return infos, nil
}

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	lister processLister
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{lister: gopsutilLister{}}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithProcessLister overrides the process-table source. Useful for tests.
func WithProcessLister(l processLister) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.lister = l
		}
	}
}

// Registry implements ports.ProcessRegistry over the host process table.
type Registry struct {
	services map[entities.ServiceIdentity]string // identity -> executable name
	config   registryConfig
}

var _ ports.ProcessRegistry = (*Registry)(nil)

// NewRegistry creates a Registry from a mapping of service identity to the
// executable name hosting it.
func NewRegistry(services map[entities.ServiceIdentity]string, opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	svcs := make(map[entities.ServiceIdentity]string, len(services))
	for id, name := range services {
		svcs[id] = name
	}
	return &Registry{services: svcs, config: cfg}
}

// ListRunningServices returns the identities whose executable currently
// appears in the process table.
func (r *Registry) ListRunningServices(ctx context.Context) ([]entities.ServiceIdentity, error) {
	infos, err := r.config.lister.Processes(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		byName[info.Name] = struct{}{}
	}

	var running []entities.ServiceIdentity
	for id, exe := range r.services {
		if _, ok := byName[exe]; ok {
			running = append(running, id)
		}
	}
	return running, nil
}

// ResolveProcessID returns the PID of the process hosting the service.
func (r *Registry) ResolveProcessID(ctx context.Context, id entities.ServiceIdentity) (int, error) {
	exe, ok := r.services[id]
	if !ok {
		return 0, fmt.Errorf("unknown service %q", id)
	}

	infos, err := r.config.lister.Processes(ctx)
	if err != nil {
		return 0, err
	}
	for _, info := range infos {
		if info.Name == exe {
			return info.PID, nil
		}
	}
	return 0, fmt.Errorf("service %q is not running", id)
}

// Kill terminates the process directly, bypassing graceful shutdown.
func (r *Registry) Kill(ctx context.Context, pid int) error {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	if err := p.KillWithContext(ctx); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return nil
}
