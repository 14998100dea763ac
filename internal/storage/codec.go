package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON decodes the blob stored under key into v.
// It returns false without error when the key is absent.
func LoadJSON(p Provider, key string, v any) (bool, error) {
	data, err := p.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key. Failures are returned as *PersistenceError.
func SaveJSON(p Provider, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := p.Set(key, data); err != nil {
		return &PersistenceError{Op: "write", Key: key, Err: err}
	}
	return nil
}
