// Package testutil provides scriptable fakes for the engine's ports,
// shared by the reconciler and supervisor test suites.
package testutil

import (
	"context"
	"sync"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	derrors "github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// FakeGrantService implements both the grant-state provider and the
// privileged grant primitive with scriptable behavior per permission.
type FakeGrantService struct {
	mu sync.Mutex

	// State is the current grant state per permission. Missing entries
	// read as NotGranted.
	State map[string]entities.GrantState

	// DenyForce lists permissions whose forced grant is refused outright.
	DenyForce map[string]bool

	// AcceptButRefuse lists permissions whose forced grant call reports
	// acceptance while the state stays not granted - the "call succeeded,
	// OS refused anyway" case.
	AcceptButRefuse map[string]bool

	CheckCalls int
	ForceCalls []string
}

var (
	_ ports.GrantChecker  = (*FakeGrantService)(nil)
	_ ports.ForcedGranter = (*FakeGrantService)(nil)
)

// NewFakeGrantService creates a FakeGrantService with no grants.
func NewFakeGrantService() *FakeGrantService {
	return &FakeGrantService{
		State:           map[string]entities.GrantState{},
		DenyForce:       map[string]bool{},
		AcceptButRefuse: map[string]bool{},
	}
}

func (f *FakeGrantService) CheckGranted(ctx context.Context, name string) entities.GrantState {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CheckCalls++
	return f.State[name]
}

func (f *FakeGrantService) ForceGrant(ctx context.Context, name string) ports.GrantResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForceCalls = append(f.ForceCalls, name)
	if f.DenyForce[name] {
		return ports.GrantDenied
	}
	if f.AcceptButRefuse[name] {
		return ports.GrantAccepted
	}
	f.State[name] = entities.Granted
	return ports.GrantAccepted
}

// FakeSurface records interactive request batches.
type FakeSurface struct {
	Batches [][]string
	Err     error
}

var _ ports.RequestSurface = (*FakeSurface)(nil)

func (f *FakeSurface) RequestBatch(ctx context.Context, names []string) error {
	f.Batches = append(f.Batches, append([]string(nil), names...))
	return f.Err
}

// FakeDenialHandler records denial callbacks.
type FakeDenialHandler struct {
	Denied []string
}

var _ ports.DenialHandler = (*FakeDenialHandler)(nil)

func (f *FakeDenialHandler) OnDenial(name string, reason string) {
	f.Denied = append(f.Denied, name)
}

// FakeRegistry implements ports.ProcessRegistry over an in-memory process
// table.
type FakeRegistry struct {
	mu sync.Mutex

	Running map[entities.ServiceIdentity]bool
	PIDs    map[entities.ServiceIdentity]int
	Killed  []int

	ListErr    error
	ResolveErr error
	KillErr    error
	ListCalls  int
}

var _ ports.ProcessRegistry = (*FakeRegistry)(nil)

// NewFakeRegistry creates an empty FakeRegistry.
func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{
		Running: map[entities.ServiceIdentity]bool{},
		PIDs:    map[entities.ServiceIdentity]int{},
	}
}

func (f *FakeRegistry) ListRunningServices(ctx context.Context) ([]entities.ServiceIdentity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var out []entities.ServiceIdentity
	for id, running := range f.Running {
		if running {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *FakeRegistry) ResolveProcessID(ctx context.Context, id entities.ServiceIdentity) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ResolveErr != nil {
		return 0, f.ResolveErr
	}
	return f.PIDs[id], nil
}

func (f *FakeRegistry) Kill(ctx context.Context, pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.KillErr != nil {
		return f.KillErr
	}
	f.Killed = append(f.Killed, pid)
	for id, p := range f.PIDs {
		if p == pid {
			f.Running[id] = false
		}
	}
	return nil
}

// SetRunning marks a service running with the given PID.
func (f *FakeRegistry) SetRunning(id entities.ServiceIdentity, pid int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Running[id] = true
	f.PIDs[id] = pid
}

// StartRecord is one recorded launcher start.
type StartRecord struct {
	ID         entities.ServiceIdentity
	Foreground bool
}

// FakeLauncher implements ports.Launcher and reflects starts and stops
// into the linked FakeRegistry so liveness queries observe them.
type FakeLauncher struct {
	mu sync.Mutex

	Registry *FakeRegistry
	Started  []StartRecord
	Stopped  []entities.ServiceIdentity

	StartErr error
	StopErr  error

	nextPID int
}

var _ ports.Launcher = (*FakeLauncher)(nil)

// NewFakeLauncher creates a FakeLauncher wired to the given registry.
func NewFakeLauncher(registry *FakeRegistry) *FakeLauncher {
	return &FakeLauncher{Registry: registry, nextPID: 1000}
}

func (f *FakeLauncher) start(id entities.ServiceIdentity, foreground bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return f.StartErr
	}
	f.Started = append(f.Started, StartRecord{ID: id, Foreground: foreground})
	f.nextPID++
	if f.Registry != nil {
		f.Registry.SetRunning(id, f.nextPID)
	}
	return nil
}

func (f *FakeLauncher) StartForeground(ctx context.Context, id entities.ServiceIdentity) error {
	return f.start(id, true)
}

func (f *FakeLauncher) StartBackground(ctx context.Context, id entities.ServiceIdentity) error {
	return f.start(id, false)
}

func (f *FakeLauncher) StopRequest(ctx context.Context, id entities.ServiceIdentity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StopErr != nil {
		return f.StopErr
	}
	f.Stopped = append(f.Stopped, id)
	if f.Registry != nil {
		f.Registry.mu.Lock()
		f.Registry.Running[id] = false
		f.Registry.mu.Unlock()
	}
	return nil
}

// EnsureCall is one recorded EnsureChannel invocation.
type EnsureCall struct {
	ChannelID   string
	DisplayName string
	Importance  entities.Importance
}

// FakeNotifier implements ports.Notifier with scriptable importance
// rejection.
type FakeNotifier struct {
	mu sync.Mutex

	// RejectImportance lists importance levels EnsureChannel refuses.
	RejectImportance map[entities.Importance]bool

	EnsureCalls []EnsureCall
	Built       []entities.Notification
	EnsureErr   error
}

var _ ports.Notifier = (*FakeNotifier)(nil)

// NewFakeNotifier creates a FakeNotifier accepting every importance level.
func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{RejectImportance: map[entities.Importance]bool{}}
}

func (f *FakeNotifier) EnsureChannel(ctx context.Context, spec entities.ChannelSpec, importance entities.Importance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EnsureCalls = append(f.EnsureCalls, EnsureCall{
		ChannelID:   spec.ChannelID,
		DisplayName: spec.DisplayName,
		Importance:  importance,
	})
	if f.EnsureErr != nil {
		return f.EnsureErr
	}
	if f.RejectImportance[importance] {
		return &derrors.InvalidImportanceError{ChannelID: spec.ChannelID, Importance: int(importance)}
	}
	return nil
}

type fakeHandle string

func (h fakeHandle) ID() string { return string(h) }

func (f *FakeNotifier) Build(ctx context.Context, n entities.Notification) (ports.NotificationHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Built = append(f.Built, n)
	return fakeHandle(n.ChannelID + "/" + n.Title), nil
}

// FakeOracle implements ports.InstallOracle.
type FakeOracle struct {
	Privileged bool
	Err        error
	Calls      int
}

var _ ports.InstallOracle = (*FakeOracle)(nil)

func (f *FakeOracle) PrivilegedInstallation(ctx context.Context) (bool, error) {
	f.Calls++
	return f.Privileged, f.Err
}
