package entities

// Platform version gates, mirroring the versions at which the relevant
// platform features appeared.
const (
	// MinVersionRuntimeGrants is the first platform version with runtime
	// permission grants. Below it every declared permission is implicitly
	// granted at install time.
	MinVersionRuntimeGrants = 23

	// MinVersionChannels is the first platform version that requires a
	// notification channel before a notification can be presented.
	MinVersionChannels = 26

	// MinVersionForegroundStart is the first platform version that
	// distinguishes foreground service starts from background ones.
	MinVersionForegroundStart = 26
)

// Platform describes the running platform version. It is passed explicitly
// into every operation that needs it; the engine never reads ambient
// process-wide state.
type Platform struct {
	Version int
}

// HasRuntimeGrants reports whether runtime permission grants exist on this
// platform at all.
func (p Platform) HasRuntimeGrants() bool {
	return p.Version >= MinVersionRuntimeGrants
}

// RequiresChannels reports whether notifications must be attached to a
// pre-created channel on this platform.
func (p Platform) RequiresChannels() bool {
	return p.Version >= MinVersionChannels
}

// SupportsForegroundStart reports whether the platform distinguishes
// foreground-capable service starts.
func (p Platform) SupportsForegroundStart() bool {
	return p.Version >= MinVersionForegroundStart
}
