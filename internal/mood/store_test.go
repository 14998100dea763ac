package mood

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/storage"
)

func fixedClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(time.Minute)
		return t
	}
}

func TestAddAndAll(t *testing.T) {
	provider := storage.NewMemoryStore()
	start := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	s := NewStore(provider, fixedClock(start))

	for _, r := range []int{3, 5, 1} {
		if _, err := s.Add(r); err != nil {
			t.Fatalf("Add(%d) failed: %v", r, err)
		}
	}

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i, want := range []int{3, 5, 1} {
		if all[i].Rating != want {
			t.Errorf("entry %d rating = %d, want %d", i, all[i].Rating, want)
		}
		if !all[i].Timestamp.Equal(start.Add(time.Duration(i) * time.Minute)) {
			t.Errorf("entry %d timestamp = %v", i, all[i].Timestamp)
		}
	}
	if all[0].ID == "" || all[0].ID == all[1].ID {
		t.Error("entries should have unique non-empty ids")
	}

	latest, ok := s.Latest()
	if !ok || latest.Rating != 1 {
		t.Errorf("Latest = %+v, %v", latest, ok)
	}

	reloaded := NewStore(provider, nil)
	if reloaded.Count() != 3 {
		t.Errorf("reloaded count = %d, want 3", reloaded.Count())
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := NewStore(storage.NewMemoryStore(), nil)
	s.Add(2)

	all := s.All()
	all[0].Rating = 5

	if s.All()[0].Rating != 2 {
		t.Error("mutating All() result changed the store")
	}
}

func TestClear(t *testing.T) {
	provider := storage.NewMemoryStore()
	s := NewStore(provider, nil)
	s.Add(4)
	s.Add(2)

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if len(s.All()) != 0 {
		t.Errorf("expected empty store, got %d", len(s.All()))
	}
	if _, ok := s.Latest(); ok {
		t.Error("Latest should report no entry after Clear")
	}
	if NewStore(provider, nil).Count() != 0 {
		t.Error("cleared state was not persisted")
	}
}

func TestPersistenceFailureKeepsMemory(t *testing.T) {
	provider := storage.NewMemoryStore()
	provider.FailWrites = errors.New("read-only")
	s := NewStore(provider, nil)

	_, err := s.Add(3)
	if !storage.IsPersistenceError(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("in-memory entry lost, count = %d", s.Count())
	}

	provider.FailWrites = nil
	if NewStore(provider, nil).Count() != 0 {
		t.Error("failed write should not have persisted anything")
	}
}

func TestCorruptBlobLoadsEmpty(t *testing.T) {
	provider := storage.NewMemoryStore()
	provider.Set(constants.MoodsKey, []byte("not json"))

	s := NewStore(provider, nil)
	if s.Count() != 0 {
		t.Errorf("expected empty store, got %d", s.Count())
	}
	if _, err := s.Add(5); err != nil {
		t.Fatalf("Add after corrupt load failed: %v", err)
	}
	if NewStore(provider, nil).Count() != 1 {
		t.Error("store should recover by overwriting the corrupt blob")
	}
}
