package ports

import (
	"context"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
)

// NotificationHandle is the platform's opaque handle to a built
// notification, ready to be presented.
type NotificationHandle interface {
	// ID returns the platform identifier of the notification.
	ID() string
}

// Notifier is the platform notification subsystem.
type Notifier interface {
	// EnsureChannel creates the channel if it does not exist yet.
	// Idempotent at the platform level. Returns an error satisfying
	// errors.As with *errors.InvalidImportanceError when the requested
	// importance level is rejected.
	EnsureChannel(ctx context.Context, spec entities.ChannelSpec, importance entities.Importance) error

	// Build turns a notification description into a presentable handle.
	Build(ctx context.Context, n entities.Notification) (NotificationHandle, error)
}
