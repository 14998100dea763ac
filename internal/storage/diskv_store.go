package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps one file per blob under a base directory
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{basePath: basePath}
}

func (s *DiskvStore) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if s.d == nil {
		s.open()
	}
	return nil
}

func (s *DiskvStore) Load() error {
	if s.d != nil {
		return nil
	}
	if _, err := os.Stat(s.basePath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotInitialized, s.basePath)
	}
	s.open()
	return nil
}

func (s *DiskvStore) Close() error {
	s.d = nil
	return nil
}

func (s *DiskvStore) Get(key string) ([]byte, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return val, nil
}

func (s *DiskvStore) Set(key string, value []byte) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write blob: %w", err)
	}
	return nil
}

func (s *DiskvStore) Delete(key string) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to erase blob: %w", err)
	}
	return nil
}

func (s *DiskvStore) Keys() ([]string, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var keys []string
	for key := range s.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}
