// Package notify provides a logging notification adapter for headless
// hosts. Channels are tracked in memory; notifications are written to the
// structured log instead of a display surface.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/errors"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// notifierConfig holds configuration for the LogNotifier.
type notifierConfig struct {
	logger *slog.Logger

	// Valid importance range accepted by EnsureChannel. Mirrors platform
	// builds that reject ImportanceUnspecified as invalid, so the
	// supervisor's one-shot fallback path is exercised for real.
	minImportance entities.Importance
	maxImportance entities.Importance
}

func defaultNotifierConfig() notifierConfig {
	return notifierConfig{
		logger:        slog.Default(),
		minImportance: entities.ImportanceMin,
		maxImportance: entities.ImportanceDefault,
	}
}

// NotifierOption configures a LogNotifier instance.
type NotifierOption func(*notifierConfig)

// WithNotifierLogger sets the logger notifications are written to.
func WithNotifierLogger(l *slog.Logger) NotifierOption {
	return func(c *notifierConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithImportanceRange sets the importance levels EnsureChannel accepts.
func WithImportanceRange(min, max entities.Importance) NotifierOption {
	return func(c *notifierConfig) {
		c.minImportance = min
		c.maxImportance = max
	}
}

// LogNotifier implements ports.Notifier against the structured log.
type LogNotifier struct {
	config notifierConfig

	mu       sync.Mutex
	channels map[string]entities.Importance
}

var _ ports.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier with the given options.
func NewLogNotifier(opts ...NotifierOption) *LogNotifier {
	cfg := defaultNotifierConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &LogNotifier{
		config:   cfg,
		channels: make(map[string]entities.Importance),
	}
}

// EnsureChannel registers the channel if absent. Idempotent: repeated
// creation with the same ID keeps the first importance, like the platform
// does. Out-of-range importance is rejected with InvalidImportanceError.
func (n *LogNotifier) EnsureChannel(ctx context.Context, spec entities.ChannelSpec, importance entities.Importance) error {
	if importance < n.config.minImportance || importance > n.config.maxImportance {
		return &errors.InvalidImportanceError{
			ChannelID:  spec.ChannelID,
			Importance: int(importance),
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.channels[spec.ChannelID]; ok {
		return nil
	}
	n.channels[spec.ChannelID] = importance
	n.config.logger.InfoContext(ctx, "notification channel created",
		"channel", spec.ChannelID, "name", spec.DisplayName,
		"category", spec.Category.String(), "importance", int(importance))
	return nil
}

// ChannelImportance returns the importance a channel was created with.
func (n *LogNotifier) ChannelImportance(channelID string) (entities.Importance, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	imp, ok := n.channels[channelID]
	return imp, ok
}

// handle is the notifier's opaque notification handle.
type handle struct {
	id string
}

func (h handle) ID() string {
	return h.id
}

// Build writes the notification to the log and returns its handle.
func (n *LogNotifier) Build(ctx context.Context, notif entities.Notification) (ports.NotificationHandle, error) {
	n.config.logger.InfoContext(ctx, "notification built",
		"channel", notif.ChannelID, "title", notif.Title,
		"ongoing", notif.Ongoing, "priority", int(notif.Priority))
	return handle{id: notif.ChannelID + "/" + notif.Title}, nil
}
