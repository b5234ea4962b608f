package supervisor

import (
	"context"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// GetNotification builds a presentable notification on the channel
// described by spec, creating the channel first on platforms that require
// one. Channel creation happens at most once per channel ID per process
// lifetime; the platform treats repeats as no-ops anyway.
//
// Every notification is hidden from the lock-screen summary. Foreground
// notifications are additionally ongoing (non-dismissible) and displayed at
// minimum priority: a foreground-service indicator is informational, not
// attention-seeking.
func (s *Supervisor) GetNotification(ctx context.Context, spec entities.ChannelSpec, title, body, contentAction string) (ports.NotificationHandle, error) {
	if s.config.notifier == nil {
		return nil, &errors.ContractViolationError{
			Op:     "GetNotification",
			Reason: "supervisor built without a notifier",
		}
	}

	if s.platform.RequiresChannels() {
		if err := s.ensureChannel(ctx, spec); err != nil {
			return nil, err
		}
	}

	n := entities.Notification{
		ChannelID:     spec.ChannelID,
		Title:         title,
		Body:          body,
		ContentAction: contentAction,
		Visibility:    entities.VisibilitySecret,
		Priority:      entities.PriorityDefault,
	}
	if spec.Category == entities.ChannelForeground {
		n.Ongoing = true
		n.Priority = entities.PriorityMin
	}

	return s.config.notifier.Build(ctx, n)
}

// ensureChannel creates the channel once per process lifetime. If the
// platform rejects the requested importance level, the creation is retried
// exactly once at the minimum valid level - a defined fallback, not a
// crash path.
func (s *Supervisor) ensureChannel(ctx context.Context, spec entities.ChannelSpec) error {
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()

	if _, done := s.channels[spec.ChannelID]; done {
		return nil
	}

	if spec.DisplayName == "" {
		// An empty display name is rejected by the platform. A space works.
		spec.DisplayName = " "
	}

	err := s.config.notifier.EnsureChannel(ctx, spec, spec.DefaultImportance())
	if errors.IsInvalidImportance(err) {
		err = s.config.notifier.EnsureChannel(ctx, spec, entities.ImportanceMin)
	}
	if err != nil {
		return err
	}

	s.channels[spec.ChannelID] = struct{}{}
	return nil
}
