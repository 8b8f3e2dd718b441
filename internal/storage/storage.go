// Package storage provides the durable catalog entry kept under a .menu/
// directory.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// menuDir is the name of the menu directory.
	menuDir = ".menu"
	// configFile is the name of the config file within .menu/.
	configFile = "config.yaml"
	// catalogYAMLFile holds the catalog for the yaml backend.
	catalogYAMLFile = "catalog.yaml"
	// catalogBoltFile holds the catalog for the bolt backend.
	catalogBoltFile = "catalog.db"
)

// BackendKind selects how the catalog entry is stored.
type BackendKind string

const (
	BackendYAML BackendKind = "yaml"
	BackendBolt BackendKind = "bolt"
)

// ErrNotExist is returned by Backend.Read when no catalog has been saved yet.
var ErrNotExist = errors.New("catalog entry does not exist")

// Backend is the single durable slot holding the serialized catalog.
// Writes always replace the whole entry.
type Backend interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}

// StorageConfig contains settings stored in .menu/config.yaml.
type StorageConfig struct {
	Version int         `yaml:"version"`
	Backend BackendKind `yaml:"backend"`
}

// Storage provides access to a .menu/ directory.
type Storage struct {
	root string // path to directory containing .menu/
	cfg  StorageConfig
}

// Open returns a Storage for the given directory.
// Returns error if .menu/ does not exist.
func Open(dir string) (*Storage, error) {
	menuPath := filepath.Join(dir, menuDir)
	info, err := os.Stat(menuPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".menu/ directory not found in %s (run `menu init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .menu/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".menu is not a directory")
	}

	s := &Storage{root: dir, cfg: StorageConfig{Version: 1, Backend: BackendYAML}}

	data, err := os.ReadFile(filepath.Join(menuPath, configFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .menu/%s: %w", configFile, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &s.cfg); err != nil {
			return nil, fmt.Errorf("failed to parse .menu/%s: %w", configFile, err)
		}
	}
	if err := validateBackend(s.cfg.Backend); err != nil {
		return nil, err
	}

	return s, nil
}

// Init creates the .menu/ directory configured for the given backend.
// Returns error if .menu/ already exists.
func Init(dir string, backend BackendKind) (*Storage, error) {
	menuPath := filepath.Join(dir, menuDir)

	// Check if .menu/ already exists
	if _, err := os.Stat(menuPath); err == nil {
		return nil, fmt.Errorf(".menu/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .menu/: %w", err)
	}

	if backend == "" {
		backend = BackendYAML
	}
	if err := validateBackend(backend); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(menuPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .menu/: %w", err)
	}

	cfg := StorageConfig{Version: 1, Backend: backend}
	cfgData, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(menuPath, configFile), cfgData, 0644); err != nil {
		os.RemoveAll(menuPath)
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	return &Storage{root: dir, cfg: cfg}, nil
}

func validateBackend(kind BackendKind) error {
	switch kind {
	case BackendYAML, BackendBolt:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q (expected %s or %s)", kind, BackendYAML, BackendBolt)
}

// Root returns the root directory containing .menu/.
func (s *Storage) Root() string {
	return s.root
}

// MenuPath returns the path to the .menu/ directory.
func (s *Storage) MenuPath() string {
	return filepath.Join(s.root, menuDir)
}

// BackendKind returns the configured backend.
func (s *Storage) BackendKind() BackendKind {
	return s.cfg.Backend
}

// CatalogPath returns the path of the file holding the catalog entry.
func (s *Storage) CatalogPath() string {
	if s.cfg.Backend == BackendBolt {
		return filepath.Join(s.MenuPath(), catalogBoltFile)
	}
	return filepath.Join(s.MenuPath(), catalogYAMLFile)
}

// OpenBackend opens the configured backend. The caller must Close it.
func (s *Storage) OpenBackend() (Backend, error) {
	switch s.cfg.Backend {
	case BackendBolt:
		return OpenBolt(s.CatalogPath())
	default:
		return NewFile(s.CatalogPath()), nil
	}
}
