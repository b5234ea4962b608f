// Package grantstore provides a file-backed grant-state adapter for hosts
// where the engine itself is the grant authority (development hosts,
// tests). On the real platform the grant state lives in the OS and this
// package is not used.
package grantstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// fileStoreConfig holds configuration for the FileStore.
type fileStoreConfig struct {
	path     string      // Path to the grants file
	dirPerm  os.FileMode // Permission for created directories
	filePerm os.FileMode // Permission for the grants file
}

func defaultFileStoreConfig() fileStoreConfig {
	return fileStoreConfig{
		path:     filepath.Join(os.Getenv("HOME"), ".visor", "grants.yaml"),
		dirPerm:  0o755,
		filePerm: 0o600, // User-only read/write
	}
}

// FileStoreOption configures a FileStore instance.
type FileStoreOption func(*fileStoreConfig)

// WithPath sets the path to the grants file.
func WithPath(path string) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.path = path
	}
}

// WithFilePermissions sets the file permissions for the grants file.
// Default is 0o600 (user-only). Use with caution.
func WithFilePermissions(perm os.FileMode) FileStoreOption {
	return func(c *fileStoreConfig) {
		c.filePerm = perm
	}
}

// FileStore persists grant state as a YAML map of permission name to
// granted flag. It implements both the grant-state provider and the
// privileged grant primitive. State is re-read from disk on every query so
// concurrent writers (another process, the user editing the file) are
// observed, matching the engine's no-caching rule.
type FileStore struct {
	config fileStoreConfig
}

var (
	_ ports.GrantChecker  = (*FileStore)(nil)
	_ ports.ForcedGranter = (*FileStore)(nil)
)

// NewFileStore creates a FileStore with the given options.
func NewFileStore(opts ...FileStoreOption) *FileStore {
	cfg := defaultFileStoreConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &FileStore{config: cfg}
}

// CheckGranted returns the current grant state of one permission. A
// missing or unreadable file reads as nothing granted.
func (s *FileStore) CheckGranted(ctx context.Context, name string) entities.GrantState {
	grants, err := s.load()
	if err != nil {
		return entities.NotGranted
	}
	if grants[name] {
		return entities.Granted
	}
	return entities.NotGranted
}

// ForceGrant marks the permission granted and persists immediately. A
// persistence failure reports the denial result variant; it is counted by
// the reconciler, not raised.
func (s *FileStore) ForceGrant(ctx context.Context, name string) ports.GrantResult {
	if err := s.Grant(ctx, name); err != nil {
		return ports.GrantDenied
	}
	return ports.GrantAccepted
}

// Grant marks the permission granted and persists the store.
func (s *FileStore) Grant(ctx context.Context, name string) error {
	grants, err := s.load()
	if err != nil {
		return err
	}
	grants[name] = true
	return s.save(grants)
}

// Revoke removes the permission's grant and persists the store.
func (s *FileStore) Revoke(ctx context.Context, name string) error {
	grants, err := s.load()
	if err != nil {
		return err
	}
	delete(grants, name)
	return s.save(grants)
}

// ConfigPath returns the path to the backing store (for user messaging).
func (s *FileStore) ConfigPath() string {
	return s.config.path
}

func (s *FileStore) load() (map[string]bool, error) {
	data, err := os.ReadFile(s.config.path)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read grant store: %w", err)
	}

	grants := map[string]bool{}
	if err := yaml.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("failed to parse grant store: %w", err)
	}
	return grants, nil
}

func (s *FileStore) save(grants map[string]bool) error {
	data, err := yaml.Marshal(grants)
	if err != nil {
		return fmt.Errorf("failed to marshal grants: %w", err)
	}

	dir := filepath.Dir(s.config.path)
	if err := os.MkdirAll(dir, s.config.dirPerm); err != nil {
		return fmt.Errorf("failed to create grant store directory: %w", err)
	}

	if err := os.WriteFile(s.config.path, data, s.config.filePerm); err != nil {
		return fmt.Errorf("failed to write grant store: %w", err)
	}
	return nil
}
