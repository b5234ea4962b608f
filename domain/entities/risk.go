package entities

import "github.com/bmatcuk/doublestar/v4"

// RiskLevel represents how sensitive a runtime permission is.
type RiskLevel int

const (
	RiskLevelLow    RiskLevel = iota // Narrow, app-local capabilities
	RiskLevelMedium                  // Reads of user data, device state
	RiskLevelHigh                    // Recording, location, contacts, storage writes
)

// String returns the human-readable name of the risk level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLevelLow:
		return "Low"
	case RiskLevelMedium:
		return "Medium"
	case RiskLevelHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Permission name patterns per risk class. Names are matched against the
// last dot-separated segment style used by platform permission constants
// (e.g. "android.permission.RECORD_AUDIO").
var (
	// HighRiskPatterns cover capabilities that observe the user directly.
	HighRiskPatterns = []string{
		"*.CAMERA", "*.RECORD_AUDIO", "*.CAPTURE_AUDIO_OUTPUT",
		"*.ACCESS_FINE_LOCATION", "*.ACCESS_BACKGROUND_LOCATION",
		"*.READ_CONTACTS", "*.WRITE_CONTACTS",
		"*.READ_SMS", "*.SEND_SMS", "*.RECEIVE_SMS",
		"*.READ_CALL_LOG", "*.WRITE_CALL_LOG", "*.PROCESS_OUTGOING_CALLS",
		"*.WRITE_EXTERNAL_STORAGE", "*.MANAGE_EXTERNAL_STORAGE",
	}

	// MediumRiskPatterns cover reads of device or account state.
	MediumRiskPatterns = []string{
		"*.ACCESS_COARSE_LOCATION", "*.READ_PHONE_STATE",
		"*.READ_EXTERNAL_STORAGE", "*.GET_ACCOUNTS",
		"*.ANSWER_PHONE_CALLS", "*.CALL_PHONE",
		"*.BODY_SENSORS", "*.ACTIVITY_RECOGNITION",
	}
)

// riskAssessorConfig holds configuration for the RiskAssessor.
type riskAssessorConfig struct {
	extraHigh   []string
	extraMedium []string
}

func defaultRiskAssessorConfig() riskAssessorConfig {
	return riskAssessorConfig{}
}

// RiskAssessorOption configures a RiskAssessor instance.
type RiskAssessorOption func(*riskAssessorConfig)

// WithHighRiskPatterns adds patterns classified as high risk.
func WithHighRiskPatterns(patterns ...string) RiskAssessorOption {
	return func(c *riskAssessorConfig) {
		c.extraHigh = append(c.extraHigh, patterns...)
	}
}

// WithMediumRiskPatterns adds patterns classified as medium risk.
func WithMediumRiskPatterns(patterns ...string) RiskAssessorOption {
	return func(c *riskAssessorConfig) {
		c.extraMedium = append(c.extraMedium, patterns...)
	}
}

// RiskAssessor classifies permission names by sensitivity. Used by
// interactive surfaces to annotate request batches before the user decides.
type RiskAssessor struct {
	config riskAssessorConfig
}

// NewRiskAssessor creates a RiskAssessor with the given options.
func NewRiskAssessor(opts ...RiskAssessorOption) *RiskAssessor {
	cfg := defaultRiskAssessorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &RiskAssessor{config: cfg}
}

// Assess returns the risk level of a single permission name.
func (a *RiskAssessor) Assess(name string) RiskLevel {
	if matchAny(a.config.extraHigh, name) || matchAny(HighRiskPatterns, name) {
		return RiskLevelHigh
	}
	if matchAny(a.config.extraMedium, name) || matchAny(MediumRiskPatterns, name) {
		return RiskLevelMedium
	}
	return RiskLevelLow
}

// AssessManifest returns the highest risk level over all manifest entries.
func (a *RiskAssessor) AssessManifest(m Manifest) RiskLevel {
	highest := RiskLevelLow
	for _, e := range m {
		if lvl := a.Assess(e.Name); lvl > highest {
			highest = lvl
		}
	}
	return highest
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if matched, _ := doublestar.Match(p, name); matched {
			return true
		}
	}
	return false
}
