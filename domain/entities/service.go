package entities

// ServiceIdentity is the opaque handle identifying one supervisable service.
// It is the key for liveness queries and the target of start/stop/kill.
type ServiceIdentity string

// String returns the identity as a plain string.
func (s ServiceIdentity) String() string {
	return string(s)
}

// ChannelCategory selects how notifications of a channel are presented.
type ChannelCategory int

const (
	// ChannelStandard is a regular notification channel.
	ChannelStandard ChannelCategory = iota

	// ChannelForeground is the channel backing a foreground service's
	// persistent indicator. Its notifications are ongoing and minimally
	// intrusive.
	ChannelForeground
)

// String returns the human-readable name of the category.
func (c ChannelCategory) String() string {
	switch c {
	case ChannelForeground:
		return "foreground"
	case ChannelStandard:
		return "standard"
	default:
		return "unknown"
	}
}

// Importance is the presentation importance of a notification channel.
// The concrete values mirror the platform's importance levels.
type Importance int

const (
	// ImportanceUnspecified lets the platform pick. Some platform builds
	// reject it as invalid, which triggers the one-shot ImportanceMin
	// fallback.
	ImportanceUnspecified Importance = -1000

	// ImportanceMin is the lowest valid importance. The defined fallback
	// when channel creation rejects the requested level.
	ImportanceMin Importance = 1

	// ImportanceLow shows the notification without sound.
	ImportanceLow Importance = 2

	// ImportanceDefault is the platform default.
	ImportanceDefault Importance = 3
)

// ChannelSpec declares one notification channel. Channels are created
// lazily, at most once per ChannelID per process lifetime, on platforms
// that require them.
type ChannelSpec struct {
	ChannelID   string          `json:"channel_id" yaml:"channel_id" validate:"required"`
	DisplayName string          `json:"display_name" yaml:"display_name"`
	Description string          `json:"description" yaml:"description"`
	Category    ChannelCategory `json:"category" yaml:"category"`
}

// DefaultImportance returns the importance level requested for the
// channel's category. Foreground channels ask for Unspecified so the
// persistent indicator stays as quiet as the platform allows.
func (s ChannelSpec) DefaultImportance() Importance {
	if s.Category == ChannelForeground {
		return ImportanceUnspecified
	}
	return ImportanceDefault
}

// Visibility controls how much of a notification appears on the lock screen.
type Visibility int

const (
	// VisibilitySecret hides the notification from the lock-screen summary.
	// The engine fixes every notification it builds to this policy.
	VisibilitySecret Visibility = -1
)

// Priority is the display priority of a single notification.
type Priority int

const (
	// PriorityMin is used for foreground-service notifications; they are
	// informational, not attention-seeking.
	PriorityMin Priority = -2

	// PriorityDefault is the platform default for standard notifications.
	PriorityDefault Priority = 0
)

// Notification is the description of one notification to present, built by
// the supervisor and handed to the platform's notification subsystem.
type Notification struct {
	ChannelID     string
	Title         string
	Body          string
	ContentAction string
	Visibility    Visibility
	Priority      Priority

	// Ongoing marks the notification non-dismissible. Set only for
	// foreground-service notifications.
	Ongoing bool
}
