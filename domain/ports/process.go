package ports

import (
	"context"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
)

// ProcessRegistry enumerates and terminates the processes hosting
// supervisable services.
type ProcessRegistry interface {
	// ListRunningServices returns the identities of all currently running
	// services. Called frequently from liveness polls; implementations
	// must keep it to one cheap enumeration.
	ListRunningServices(ctx context.Context) ([]entities.ServiceIdentity, error)

	// ResolveProcessID returns the OS process identifier currently hosting
	// the service.
	ResolveProcessID(ctx context.Context, id entities.ServiceIdentity) (int, error)

	// Kill terminates a process directly, bypassing graceful shutdown.
	// Synchronous from the caller's perspective.
	Kill(ctx context.Context, pid int) error
}

// Launcher starts and stops supervised services.
type Launcher interface {
	// StartForeground issues a foreground-capable start.
	StartForeground(ctx context.Context, id entities.ServiceIdentity) error

	// StartBackground issues a standard start.
	StartBackground(ctx context.Context, id entities.ServiceIdentity) error

	// StopRequest asks the service to stop gracefully. It does not wait
	// for termination; a misbehaving service may ignore or delay it.
	StopRequest(ctx context.Context, id entities.ServiceIdentity) error
}
