package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/reminder"
	"github.com/julianstephens/mooded/internal/scheduler"
	"github.com/julianstephens/mooded/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, *storage.MemoryStore, *reminder.Registry) {
	t.Helper()
	provider := storage.NewMemoryStore()
	registry := reminder.NewRegistry(provider)
	s := NewStore(provider, scheduler.NewHabitReminders(registry), time.UTC)
	return s, provider, registry
}

func mustAdd(t *testing.T, s *Store, name string) models.Habit {
	t.Helper()
	h, err := s.AddHabit(models.Habit{Name: name, IsEnabled: true})
	if err != nil {
		t.Fatalf("AddHabit(%q) failed: %v", name, err)
	}
	return h
}

func pendingIDs(t *testing.T, r *reminder.Registry) map[string]bool {
	t.Helper()
	pending, err := r.Pending()
	if err != nil {
		t.Fatal(err)
	}
	ids := map[string]bool{}
	for _, p := range pending {
		ids[p.ID] = true
	}
	return ids
}

func TestAddHabitValidation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantName string
	}{
		{"plain", "Walk", false, "Walk"},
		{"trimmed", "  Read  ", false, "Read"},
		{"empty", "", true, ""},
		{"whitespace only", "   ", true, ""},
		{"tabs and newlines", "\t\n", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := setupTestStore(t)
			h, err := s.AddHabit(models.Habit{Name: tt.input})
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidHabitName) {
					t.Errorf("expected ErrInvalidHabitName, got %v", err)
				}
				if len(s.Habits()) != 0 {
					t.Error("rejected habit was added")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.Name != tt.wantName || h.ID == "" {
				t.Errorf("got %+v", h)
			}
		})
	}
}

func TestUpdateHabit(t *testing.T) {
	s, provider, registry := setupTestStore(t)
	h := mustAdd(t, s, "Walk")

	at := models.NewTimeOfDay(7, 30)
	h.Name = "Morning walk"
	h.NotificationTime = &at
	if err := s.UpdateHabit(h); err != nil {
		t.Fatalf("UpdateHabit failed: %v", err)
	}
	if got, _ := s.Find(h.ID); got.Name != "Morning walk" {
		t.Errorf("name = %q", got.Name)
	}
	if !pendingIDs(t, registry)["habit_"+h.ID] {
		t.Error("update with a time should register a reminder")
	}

	invalid := h
	invalid.Name = "  "
	if err := s.UpdateHabit(invalid); !errors.Is(err, models.ErrInvalidHabitName) {
		t.Errorf("expected ErrInvalidHabitName, got %v", err)
	}
	if got, _ := s.Find(h.ID); got.Name != "Morning walk" {
		t.Error("rejected update changed the habit")
	}

	if err := s.UpdateHabit(models.Habit{ID: "missing", Name: "Ghost"}); err != nil {
		t.Errorf("update of unknown id should be a no-op, got %v", err)
	}
	if len(s.Habits()) != 1 {
		t.Error("update of unknown id added a habit")
	}

	reloaded := NewStore(provider, scheduler.NewHabitReminders(registry), time.UTC)
	if got, ok := reloaded.Find(h.ID); !ok || got.NotificationTime == nil || *got.NotificationTime != at {
		t.Errorf("reloaded habit = %+v", got)
	}
}

func TestToggleParity(t *testing.T) {
	s, _, _ := setupTestStore(t)
	h := mustAdd(t, s, "Meditate")
	day := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		// different instants on the same calendar day
		at := day.Add(time.Duration(i) * time.Hour)
		done, err := s.ToggleCompletion(h.ID, at)
		if err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		wantDone := i%2 == 1
		if done != wantDone || s.IsCompleted(h.ID, day) != wantDone {
			t.Errorf("after %d toggles: done=%v IsCompleted=%v, want %v", i, done, s.IsCompleted(h.ID, day), wantDone)
		}

		count := 0
		for _, c := range s.Completions() {
			if c.HabitID == h.ID {
				count++
			}
		}
		if count > 1 {
			t.Fatalf("more than one completion for the same day: %d", count)
		}
	}
}

func TestIsCompletedOnceAndTwice(t *testing.T) {
	s, _, _ := setupTestStore(t)
	h := mustAdd(t, s, "Read")
	d := time.Date(2024, 6, 2, 21, 0, 0, 0, time.UTC)

	s.ToggleCompletion(h.ID, d)
	if !s.IsCompleted(h.ID, d) {
		t.Error("expected completed after one toggle")
	}
	if s.IsCompleted(h.ID, d.AddDate(0, 0, 1)) {
		t.Error("completion leaked into the next day")
	}

	s.ToggleCompletion(h.ID, d)
	if s.IsCompleted(h.ID, d) {
		t.Error("expected not completed after two toggles")
	}
}

func TestToggleUsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	provider := storage.NewMemoryStore()
	s := NewStore(provider, scheduler.NewHabitReminders(reminder.NewRegistry(provider)), loc)
	h := mustAdd(t, s, "Walk")

	// 02:00 UTC on the 2nd is 21:00 on the 1st in loc
	s.ToggleCompletion(h.ID, time.Date(2024, 6, 2, 2, 0, 0, 0, time.UTC))
	if !s.IsCompleted(h.ID, time.Date(2024, 6, 1, 12, 0, 0, 0, loc)) {
		t.Error("completion should fall on June 1st in the configured location")
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	s, _, _ := setupTestStore(t)

	_, err := s.ToggleCompletion("nope", time.Now())
	if !errors.Is(err, ErrUnknownHabit) {
		t.Errorf("expected ErrUnknownHabit, got %v", err)
	}
	if len(s.Completions()) != 0 {
		t.Error("orphaned completion was created")
	}
}

func TestRemoveHabitCascades(t *testing.T) {
	s, provider, registry := setupTestStore(t)
	at := models.NewTimeOfDay(9, 0)
	walk, _ := s.AddHabit(models.Habit{Name: "Walk", IsEnabled: true, NotificationTime: &at})
	read, _ := s.AddHabit(models.Habit{Name: "Read", IsEnabled: true, NotificationTime: &at})

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.ToggleCompletion(walk.ID, base.AddDate(0, 0, i))
		s.ToggleCompletion(read.ID, base.AddDate(0, 0, i))
	}

	if err := s.RemoveHabit(walk.ID); err != nil {
		t.Fatalf("RemoveHabit failed: %v", err)
	}

	if _, ok := s.Find(walk.ID); ok {
		t.Error("habit still present")
	}
	for _, c := range s.Completions() {
		if c.HabitID == walk.ID {
			t.Error("completion of removed habit survived")
		}
	}
	if len(s.Completions()) != 3 {
		t.Errorf("unrelated completions changed: %d", len(s.Completions()))
	}

	ids := pendingIDs(t, registry)
	if ids["habit_"+walk.ID] || !ids["habit_"+read.ID] {
		t.Errorf("unexpected reminders after remove: %v", ids)
	}

	reloaded := NewStore(provider, scheduler.NewHabitReminders(registry), time.UTC)
	if len(reloaded.Habits()) != 1 || len(reloaded.Completions()) != 3 {
		t.Error("cascade was not persisted")
	}
}

func TestClearAll(t *testing.T) {
	s, provider, registry := setupTestStore(t)
	at := models.NewTimeOfDay(18, 0)
	h, _ := s.AddHabit(models.Habit{Name: "Stretch", IsEnabled: true, NotificationTime: &at})
	s.ToggleCompletion(h.ID, time.Now())
	registry.ScheduleDaily("mood_0900", models.NewTimeOfDay(9, 0), "Mood Check", "body")

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if len(s.Habits()) != 0 || len(s.Completions()) != 0 {
		t.Error("collections not empty after ClearAll")
	}

	ids := pendingIDs(t, registry)
	if ids["habit_"+h.ID] {
		t.Error("habit reminder survived ClearAll")
	}
	if !ids["mood_0900"] {
		t.Error("ClearAll must not cancel mood-check reminders")
	}

	reloaded := NewStore(provider, scheduler.NewHabitReminders(registry), time.UTC)
	if len(reloaded.Habits()) != 0 || len(reloaded.Completions()) != 0 {
		t.Error("ClearAll was not persisted")
	}
}

func TestFind(t *testing.T) {
	s, _, _ := setupTestStore(t)
	h := mustAdd(t, s, "Drink Water")

	tests := []struct {
		query string
		found bool
	}{
		{h.ID, true},
		{"Drink Water", true},
		{"drink water", true},
		{"  DRINK WATER ", true},
		{"water", false},
	}
	for _, tt := range tests {
		if _, ok := s.Find(tt.query); ok != tt.found {
			t.Errorf("Find(%q) found=%v, want %v", tt.query, ok, tt.found)
		}
	}
}

func TestPersistenceFailureKeepsMemory(t *testing.T) {
	s, provider, _ := setupTestStore(t)
	provider.FailWrites = errors.New("disk full")

	h, err := s.AddHabit(models.Habit{Name: "Walk"})
	if !storage.IsPersistenceError(err) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if _, ok := s.Find(h.ID); !ok {
		t.Error("habit should be kept in memory")
	}
}

func TestSyncReminders(t *testing.T) {
	s, _, registry := setupTestStore(t)
	at := models.NewTimeOfDay(7, 30)
	h, err := s.AddHabit(models.Habit{Name: "Stretch", IsEnabled: true, NotificationTime: &at})
	if err != nil {
		t.Fatal(err)
	}

	if err := registry.CancelAll(); err != nil {
		t.Fatal(err)
	}
	s.SyncReminders()

	if !pendingIDs(t, registry)[scheduler.HabitReminderID(h.ID)] {
		t.Error("expected habit reminder to be re-registered")
	}
}
