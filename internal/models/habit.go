package models

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidHabitName is returned when a habit name is empty after trimming
var ErrInvalidHabitName = errors.New("habit name cannot be empty")

// Habit represents a recurring daily practice to track
type Habit struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	IsEnabled        bool       `json:"is_enabled"`
	NotificationTime *TimeOfDay `json:"notification_time,omitempty"`
}

// Validate trims the habit name in place and rejects empty names.
func (h *Habit) Validate() error {
	h.Name = strings.TrimSpace(h.Name)
	if h.Name == "" {
		return ErrInvalidHabitName
	}
	return nil
}

// WantsReminder reports whether the habit should have a daily reminder registered.
func (h Habit) WantsReminder() bool {
	return h.IsEnabled && h.NotificationTime != nil
}

// HabitCompletion records that a habit was done on the calendar day containing Date
type HabitCompletion struct {
	ID      string    `json:"id"`
	HabitID string    `json:"habit_id"`
	Date    time.Time `json:"date"`
}
