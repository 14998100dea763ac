// Package settings owns the notification schedule and keeps the mood-check
// reminders in step with it.
package settings

import (
	"errors"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/storage"
)

// Reconciler installs the reminders for a schedule
type Reconciler interface {
	Reconcile(schedule models.NotificationSchedule)
}

// Store holds the current NotificationSchedule. Every mutation persists the
// schedule and then reconciles the mood-check reminders.
type Store struct {
	provider  storage.Provider
	scheduler Reconciler
	schedule  models.NotificationSchedule
}

// NewStore loads the saved schedule, migrating older shapes to the current
// one and writing the result back. A missing or unreadable blob yields the
// default schedule.
func NewStore(provider storage.Provider, scheduler Reconciler) *Store {
	s := &Store{provider: provider, scheduler: scheduler}
	s.load()
	return s
}

func (s *Store) load() {
	s.schedule = models.DefaultNotificationSchedule()

	data, err := s.provider.Get(constants.NotificationKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Notification settings unreadable, using defaults", "error", err)
		}
		return
	}

	schedule, migrated, err := models.DecodeNotificationSchedule(data)
	if err != nil {
		logger.Warn("Notification settings unreadable, using defaults", "error", err)
		return
	}
	s.schedule = schedule

	if migrated {
		logger.Info("Migrated notification settings", "version", models.ScheduleVersion, "times", len(schedule.ScheduledTimes))
		if err := s.save(); err != nil {
			logger.Warn("Migrated notification settings kept in memory only", "error", err)
		}
	}
}

func (s *Store) save() error {
	if s.schedule.ScheduledTimes == nil {
		s.schedule.ScheduledTimes = []models.TimeOfDay{}
	}
	return storage.SaveJSON(s.provider, constants.NotificationKey, s.schedule)
}

func (s *Store) commit() error {
	err := s.save()
	if err != nil {
		logger.Warn("Notification settings kept in memory only", "error", err)
	}
	s.scheduler.Reconcile(s.schedule)
	return err
}

// Schedule returns a copy of the current schedule.
func (s *Store) Schedule() models.NotificationSchedule {
	out := s.schedule
	out.ScheduledTimes = append([]models.TimeOfDay{}, s.schedule.ScheduledTimes...)
	return out
}

func (s *Store) SetEnabled(enabled bool) error {
	s.schedule.IsEnabled = enabled
	return s.commit()
}

// AddTime adds a reminder slot. It reports false when the slot already existed.
func (s *Store) AddTime(t models.TimeOfDay) (bool, error) {
	added := s.schedule.AddTime(t)
	return added, s.commit()
}

// RemoveTime removes a reminder slot. It reports false when the slot was not set.
func (s *Store) RemoveTime(t models.TimeOfDay) (bool, error) {
	removed := s.schedule.RemoveTime(t)
	return removed, s.commit()
}

// SetWindow replaces the slots with count evenly spaced times from start to end.
func (s *Store) SetWindow(start, end models.TimeOfDay, count int) ([]models.TimeOfDay, error) {
	s.schedule.ScheduledTimes = models.SortTimes(models.SpacedTimes(start, end, count))
	return s.Schedule().ScheduledTimes, s.commit()
}

// Sync reconciles the reminders with the stored schedule without changing it.
func (s *Store) Sync() {
	s.scheduler.Reconcile(s.schedule)
}
