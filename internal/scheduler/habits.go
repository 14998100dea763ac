package scheduler

import (
	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/reminder"
)

// HabitReminders keeps one daily reminder per habit, keyed by habit id.
type HabitReminders struct {
	platform reminder.Platform
}

func NewHabitReminders(platform reminder.Platform) *HabitReminders {
	return &HabitReminders{platform: platform}
}

// HabitReminderID returns the reminder id for a habit
func HabitReminderID(habitID string) string {
	return constants.HabitReminderPrefix + habitID
}

// Reconcile registers the habit's reminder when it is enabled with a time,
// and cancels it otherwise.
func (r *HabitReminders) Reconcile(h models.Habit) {
	id := HabitReminderID(h.ID)
	if !h.WantsReminder() {
		r.cancel(id)
		return
	}

	if err := r.platform.ScheduleDaily(id, *h.NotificationTime, constants.HabitReminderTitle, h.Name); err != nil {
		logger.Warn("Failed to register habit reminder", "id", id, "error", err)
		return
	}
	logger.Debug("Habit reminder registered", "id", id, "at", h.NotificationTime.String())
}

// Remove cancels the reminder of a single habit.
func (r *HabitReminders) Remove(habitID string) {
	r.cancel(HabitReminderID(habitID))
}

// RemoveAll cancels every habit reminder. Mood-check reminders are kept.
func (r *HabitReminders) RemoveAll() {
	pending, err := r.platform.Pending()
	if err != nil {
		logger.Warn("Failed to list pending reminders", "error", err)
		return
	}
	r.cancel(reminder.WithPrefix(pending, constants.HabitReminderPrefix)...)
}

func (r *HabitReminders) cancel(ids ...string) {
	if len(ids) == 0 {
		return
	}
	if err := r.platform.Cancel(ids...); err != nil {
		logger.Warn("Failed to cancel habit reminders", "ids", ids, "error", err)
	}
}
