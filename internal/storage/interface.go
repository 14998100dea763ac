package storage

import (
	"fmt"

	"github.com/julianstephens/mooded/internal/migration"
)

// Provider is a key-value store of JSON blobs. Each domain store persists
// its whole collection under one well-known key.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Versioned is implemented by providers with a migrated SQL schema.
type Versioned interface {
	SchemaVersions() (current, latest int, err error)
}

func schemaVersions(runner *migration.Runner) (int, int, error) {
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}
