// Package habits owns habit definitions and their per-day completions.
package habits

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/storage"
	"github.com/julianstephens/mooded/internal/utils"
)

// ErrUnknownHabit is returned when toggling a habit id that does not exist
var ErrUnknownHabit = errors.New("unknown habit")

// Reminders is the per-habit reminder domain
type Reminders interface {
	Reconcile(h models.Habit)
	Remove(habitID string)
	RemoveAll()
}

// Store keeps habits and completions in memory and mirrors each collection
// to its own key. Completions are created and removed only by ToggleCompletion,
// which keeps at most one per habit and calendar day.
type Store struct {
	provider    storage.Provider
	reminders   Reminders
	loc         *time.Location
	habits      []models.Habit
	completions []models.HabitCompletion
}

// NewStore loads saved habits and completions. Unreadable blobs start empty.
// loc defines calendar days and defaults to time.Local.
func NewStore(provider storage.Provider, reminders Reminders, loc *time.Location) *Store {
	if loc == nil {
		loc = time.Local
	}
	s := &Store{provider: provider, reminders: reminders, loc: loc}
	s.load()
	return s
}

func (s *Store) load() {
	if _, err := storage.LoadJSON(s.provider, constants.HabitsKey, &s.habits); err != nil {
		logger.Warn("Habits unreadable, starting empty", "error", err)
		s.habits = nil
	}
	if _, err := storage.LoadJSON(s.provider, constants.CompletionsKey, &s.completions); err != nil {
		logger.Warn("Habit completions unreadable, starting empty", "error", err)
		s.completions = nil
	}
}

func (s *Store) saveHabits() error {
	habits := s.habits
	if habits == nil {
		habits = []models.Habit{}
	}
	if err := storage.SaveJSON(s.provider, constants.HabitsKey, habits); err != nil {
		logger.Warn("Habits kept in memory only", "error", err)
		return err
	}
	return nil
}

func (s *Store) saveCompletions() error {
	completions := s.completions
	if completions == nil {
		completions = []models.HabitCompletion{}
	}
	if err := storage.SaveJSON(s.provider, constants.CompletionsKey, completions); err != nil {
		logger.Warn("Habit completions kept in memory only", "error", err)
		return err
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// AddHabit validates and appends h, assigning an id when it has none.
// An invalid name leaves the store unchanged.
func (s *Store) AddHabit(h models.Habit) (models.Habit, error) {
	if err := h.Validate(); err != nil {
		return models.Habit{}, err
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if s.indexOf(h.ID) >= 0 {
		return models.Habit{}, fmt.Errorf("habit %s already exists", h.ID)
	}

	s.habits = append(s.habits, h)
	err := s.saveHabits()
	s.reminders.Reconcile(h)
	return h, err
}

// UpdateHabit replaces the habit with the same id. Unknown ids are a no-op.
func (s *Store) UpdateHabit(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}
	i := s.indexOf(h.ID)
	if i < 0 {
		return nil
	}

	s.habits[i] = h
	err := s.saveHabits()
	s.reminders.Reconcile(h)
	return err
}

// RemoveHabit deletes the habit, every completion that references it, and its reminder.
func (s *Store) RemoveHabit(id string) error {
	i := s.indexOf(id)
	if i >= 0 {
		s.habits = append(s.habits[:i:i], s.habits[i+1:]...)
	}

	kept := make([]models.HabitCompletion, 0, len(s.completions))
	for _, c := range s.completions {
		if c.HabitID != id {
			kept = append(kept, c)
		}
	}
	s.completions = kept

	err := errors.Join(s.saveHabits(), s.saveCompletions())
	s.reminders.Remove(id)
	return err
}

// ToggleCompletion marks the habit done on the calendar day of date, or
// undoes it if it was already done that day. It reports whether the habit
// is completed afterwards.
func (s *Store) ToggleCompletion(habitID string, date time.Time) (bool, error) {
	if s.indexOf(habitID) < 0 {
		return false, fmt.Errorf("%w: %s", ErrUnknownHabit, habitID)
	}

	for i, c := range s.completions {
		if c.HabitID == habitID && utils.SameDay(c.Date, date, s.loc) {
			s.completions = append(s.completions[:i:i], s.completions[i+1:]...)
			return false, s.saveCompletions()
		}
	}

	s.completions = append(s.completions, models.HabitCompletion{
		ID:      uuid.New().String(),
		HabitID: habitID,
		Date:    date,
	})
	return true, s.saveCompletions()
}

// IsCompleted reports whether the habit was done on the calendar day of date.
func (s *Store) IsCompleted(habitID string, date time.Time) bool {
	for _, c := range s.completions {
		if c.HabitID == habitID && utils.SameDay(c.Date, date, s.loc) {
			return true
		}
	}
	return false
}

// ClearAll removes every habit and completion and cancels all habit reminders.
// Mood-check reminders are left scheduled; they belong to the settings store.
func (s *Store) ClearAll() error {
	s.habits = nil
	s.completions = nil
	err := errors.Join(s.saveHabits(), s.saveCompletions())
	s.reminders.RemoveAll()
	return err
}

// SyncReminders reconciles the reminder of every habit.
func (s *Store) SyncReminders() {
	for _, h := range s.habits {
		s.reminders.Reconcile(h)
	}
}

func (s *Store) Habits() []models.Habit {
	out := make([]models.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

func (s *Store) Completions() []models.HabitCompletion {
	out := make([]models.HabitCompletion, len(s.completions))
	copy(out, s.completions)
	return out
}

// Find looks a habit up by exact id, then by case-insensitive name.
func (s *Store) Find(idOrName string) (models.Habit, bool) {
	if i := s.indexOf(idOrName); i >= 0 {
		return s.habits[i], true
	}
	name := strings.TrimSpace(idOrName)
	for _, h := range s.habits {
		if strings.EqualFold(h.Name, name) {
			return h, true
		}
	}
	return models.Habit{}, false
}
