// Package keyring keeps the remote database DSN (Postgres or Redis) out of
// config files by storing it in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/mooded/internal/constants"
)

var (
	ErrNotFound           = errors.New("no mooded database connection string in the OS keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// probeAccount is read by Check; it is never written.
const probeAccount = "availability-probe"

// Status describes what Check found.
type Status struct {
	Available bool
	Stored    bool
}

func GetConnectionString() (string, error) {
	dsn, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return dsn, nil
}

// SetConnectionString stores dsn, trimmed. Validation of the DSN itself is
// the caller's job.
func SetConnectionString(dsn string) error {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, dsn); err != nil {
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return nil
}

// Check probes the keyring and reports whether a DSN is stored.
func Check() Status {
	if _, err := keyring.Get(constants.AppName, probeAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return Status{}
	}
	_, err := GetConnectionString()
	return Status{Available: true, Stored: err == nil}
}
