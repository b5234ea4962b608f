package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
)

func TestManifest_CountApplicable(t *testing.T) {
	manifest := entities.Manifest{
		{Name: "android.permission.CAMERA", MinVersion: 21},
		{Name: "android.permission.ACCESS_FINE_LOCATION", MinVersion: 29},
		{Name: "android.permission.POST_NOTIFICATIONS", MinVersion: 33},
	}

	tests := []struct {
		name    string
		version int
		want    int
	}{
		{"below every entry", 20, 0},
		{"only the oldest entry", 28, 1},
		{"two entries", 30, 2},
		{"exactly at the newest entry", 33, 3},
		{"above every entry", 34, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, manifest.CountApplicable(tt.version))
		})
	}
}

func TestManifest_CountApplicable_Empty(t *testing.T) {
	assert.Zero(t, entities.Manifest{}.CountApplicable(34))
	assert.Zero(t, entities.Manifest(nil).CountApplicable(34))
}

func TestPermissionEntry_Applicable(t *testing.T) {
	e := entities.PermissionEntry{Name: "android.permission.CAMERA", MinVersion: 21}
	assert.True(t, e.Applicable(21))
	assert.True(t, e.Applicable(30))
	assert.False(t, e.Applicable(20))
}

func TestOutcome_AllGranted(t *testing.T) {
	assert.True(t, entities.Outcome{TotalRequired: 3}.AllGranted())
	assert.True(t, entities.Outcome{}.AllGranted())
	assert.False(t, entities.Outcome{TotalRequired: 3, NotGranted: 1}.AllGranted())
}

func TestPlatform_FeatureGates(t *testing.T) {
	old := entities.Platform{Version: 22}
	assert.False(t, old.HasRuntimeGrants())
	assert.False(t, old.RequiresChannels())
	assert.False(t, old.SupportsForegroundStart())

	mid := entities.Platform{Version: 23}
	assert.True(t, mid.HasRuntimeGrants())
	assert.False(t, mid.RequiresChannels())

	modern := entities.Platform{Version: 26}
	assert.True(t, modern.RequiresChannels())
	assert.True(t, modern.SupportsForegroundStart())
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "granted", entities.Granted.String())
	assert.Equal(t, "not-granted", entities.NotGranted.String())
	assert.Equal(t, "check-only", entities.CheckOnly.String())
	assert.Equal(t, "interactive-request", entities.InteractiveRequest.String())
	assert.Equal(t, "forced-grant", entities.ForcedGrant.String())
	assert.Equal(t, "foreground", entities.ChannelForeground.String())
	assert.Equal(t, "standard", entities.ChannelStandard.String())
}

func TestChannelSpec_DefaultImportance(t *testing.T) {
	fg := entities.ChannelSpec{ChannelID: "fg", Category: entities.ChannelForeground}
	assert.Equal(t, entities.ImportanceUnspecified, fg.DefaultImportance())

	std := entities.ChannelSpec{ChannelID: "std", Category: entities.ChannelStandard}
	assert.Equal(t, entities.ImportanceDefault, std.DefaultImportance())
}
