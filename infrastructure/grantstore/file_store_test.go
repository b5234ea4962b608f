package grantstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
	"github.com/DADi590/VISOR---A-better-Android-assistant/infrastructure/grantstore"
)

func newTestStore(t *testing.T) *grantstore.FileStore {
	t.Helper()
	return grantstore.NewFileStore(
		grantstore.WithPath(filepath.Join(t.TempDir(), "grants.yaml")),
	)
}

func TestFileStore_MissingFileReadsAsNotGranted(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, entities.NotGranted, s.CheckGranted(context.Background(), "android.permission.CAMERA"))
}

func TestFileStore_GrantRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Grant(ctx, "android.permission.CAMERA"))
	assert.Equal(t, entities.Granted, s.CheckGranted(ctx, "android.permission.CAMERA"))
	assert.Equal(t, entities.NotGranted, s.CheckGranted(ctx, "android.permission.RECORD_AUDIO"))

	require.NoError(t, s.Revoke(ctx, "android.permission.CAMERA"))
	assert.Equal(t, entities.NotGranted, s.CheckGranted(ctx, "android.permission.CAMERA"))
}

func TestFileStore_ForceGrant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.Equal(t, ports.GrantAccepted, s.ForceGrant(ctx, "android.permission.CAMERA"))
	assert.Equal(t, entities.Granted, s.CheckGranted(ctx, "android.permission.CAMERA"))
}

func TestFileStore_ForceGrantDeniedOnUnwritableStore(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	s := grantstore.NewFileStore(grantstore.WithPath(filepath.Join(dir, "grants.yaml")))
	assert.Equal(t, ports.GrantDenied, s.ForceGrant(context.Background(), "android.permission.CAMERA"))
}

func TestFileStore_ExternalEditsAreObserved(t *testing.T) {
	// The engine never caches grant state; a concurrent writer must be
	// visible on the next query.
	path := filepath.Join(t.TempDir(), "grants.yaml")
	s := grantstore.NewFileStore(grantstore.WithPath(path))
	ctx := context.Background()

	require.NoError(t, os.WriteFile(path, []byte("android.permission.CAMERA: true\n"), 0o600))
	assert.Equal(t, entities.Granted, s.CheckGranted(ctx, "android.permission.CAMERA"))

	require.NoError(t, os.WriteFile(path, []byte("android.permission.CAMERA: false\n"), 0o600))
	assert.Equal(t, entities.NotGranted, s.CheckGranted(ctx, "android.permission.CAMERA"))
}

func TestFileStore_ConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.yaml")
	s := grantstore.NewFileStore(grantstore.WithPath(path))
	assert.Equal(t, path, s.ConfigPath())
}
