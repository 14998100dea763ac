package scheduler

import (
	"fmt"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/reminder"
)

// Scheduler installs the mood-check reminders for a notification schedule.
type Scheduler struct {
	platform reminder.Platform
}

func New(platform reminder.Platform) *Scheduler {
	return &Scheduler{platform: platform}
}

// MoodReminderID returns the reminder id for a mood-check slot, e.g. mood_0900
func MoodReminderID(t models.TimeOfDay) string {
	return fmt.Sprintf("%s%02d%02d", constants.MoodReminderPrefix, t.Hour, t.Minute)
}

// Reconcile replaces every mood-check reminder with one per effective time of
// schedule. Habit reminders are left alone. Platform failures are logged and
// not returned.
func (s *Scheduler) Reconcile(schedule models.NotificationSchedule) {
	pending, err := s.platform.Pending()
	if err != nil {
		logger.Warn("Failed to list pending reminders", "error", err)
	}

	if stale := reminder.WithPrefix(pending, constants.MoodReminderPrefix); len(stale) > 0 {
		if err := s.platform.Cancel(stale...); err != nil {
			logger.Warn("Failed to cancel mood reminders", "count", len(stale), "error", err)
		}
	}

	for _, t := range schedule.EffectiveTimes() {
		id := MoodReminderID(t)
		if err := s.platform.ScheduleDaily(id, t, constants.MoodReminderTitle, constants.MoodReminderBody); err != nil {
			logger.Warn("Failed to register mood reminder", "id", id, "error", err)
			continue
		}
		logger.Debug("Mood reminder registered", "id", id, "at", t.String())
	}
}
