// Package mood owns the append-only list of mood entries.
package mood

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/storage"
)

// Store keeps mood entries in memory and mirrors them to the key-value store
// under constants.MoodsKey.
type Store struct {
	provider storage.Provider
	now      func() time.Time
	entries  []models.MoodEntry
}

// NewStore loads the saved entries. A missing or unreadable blob starts an
// empty list. now defaults to time.Now.
func NewStore(provider storage.Provider, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &Store{provider: provider, now: now}
	s.load()
	return s
}

func (s *Store) load() {
	var entries []models.MoodEntry
	if _, err := storage.LoadJSON(s.provider, constants.MoodsKey, &entries); err != nil {
		logger.Warn("Mood history unreadable, starting empty", "error", err)
		entries = nil
	}
	s.entries = entries
}

func (s *Store) save() error {
	entries := s.entries
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	if err := storage.SaveJSON(s.provider, constants.MoodsKey, entries); err != nil {
		logger.Warn("Mood history kept in memory only", "error", err)
		return err
	}
	return nil
}

// Add records rating at the current time. The rating is not validated here.
// The entry is kept even when the returned error is a *storage.PersistenceError.
func (s *Store) Add(rating int) (models.MoodEntry, error) {
	entry := models.MoodEntry{
		ID:        uuid.New().String(),
		Rating:    rating,
		Timestamp: s.now(),
	}
	s.entries = append(s.entries, entry)
	return entry, s.save()
}

// All returns the entries in insertion order.
func (s *Store) All() []models.MoodEntry {
	out := make([]models.MoodEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Clear() error {
	s.entries = nil
	return s.save()
}

func (s *Store) Count() int {
	return len(s.entries)
}

// Latest returns the most recent entry, if any.
func (s *Store) Latest() (models.MoodEntry, bool) {
	if len(s.entries) == 0 {
		return models.MoodEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}
