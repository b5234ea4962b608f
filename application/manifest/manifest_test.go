package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DADi590/VISOR---A-better-Android-assistant/application/manifest"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
)

const validManifest = `
permissions:
  - name: android.permission.CAMERA
    min_version: 21
  - name: android.permission.ACCESS_FINE_LOCATION
    min_version: 29
`

func TestLoad_Valid(t *testing.T) {
	m, err := manifest.Load([]byte(validManifest))
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, entities.PermissionEntry{Name: "android.permission.CAMERA", MinVersion: 21}, m[0])
	assert.Equal(t, entities.PermissionEntry{Name: "android.permission.ACCESS_FINE_LOCATION", MinVersion: 29}, m[1])
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing permission name",
			data: "permissions:\n  - min_version: 21\n",
		},
		{
			name: "zero minimum version",
			data: "permissions:\n  - name: android.permission.CAMERA\n    min_version: 0\n",
		},
		{
			name: "missing minimum version",
			data: "permissions:\n  - name: android.permission.CAMERA\n",
		},
		{
			name: "wrong type for minimum version",
			data: "permissions:\n  - name: android.permission.CAMERA\n    min_version: twenty-one\n",
		},
		{
			name: "no permissions key",
			data: "something_else: true\n",
		},
		{
			name: "empty permission list",
			data: "permissions: []\n",
		},
		{
			name: "not YAML at all",
			data: "{{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Load([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_DoesNotValidate(t *testing.T) {
	doc, err := manifest.Parse([]byte("permissions:\n  - name: x\n    min_version: 0\n"))
	require.NoError(t, err)
	assert.Error(t, doc.Validate(), "validation is a separate step and must catch the bad version")
}

func TestValidateSchema_ShapeErrors(t *testing.T) {
	err := manifest.ValidateSchema([]byte("permissions: \"not a list\"\n"))
	assert.Error(t, err)
}
