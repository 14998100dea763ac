// Package reminder is the local notification facility: daily reminders
// registered by id and fired when the wall clock reaches their time.
package reminder

import (
	"sort"
	"strings"

	"github.com/julianstephens/mooded/internal/models"
)

// Reminder is a recurring daily alert
type Reminder struct {
	ID    string           `json:"id"`
	At    models.TimeOfDay `json:"at"`
	Title string           `json:"title"`
	Body  string           `json:"body"`
}

// Platform registers and cancels daily reminders by id.
type Platform interface {
	ScheduleDaily(id string, at models.TimeOfDay, title, body string) error
	Cancel(ids ...string) error
	CancelAll() error
	Pending() ([]Reminder, error)
}

// WithPrefix returns the ids of reminders whose id starts with prefix
func WithPrefix(reminders []Reminder, prefix string) []string {
	var ids []string
	for _, r := range reminders {
		if strings.HasPrefix(r.ID, prefix) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func sortReminders(reminders []Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].At.Minutes() != reminders[j].At.Minutes() {
			return reminders[i].At.Minutes() < reminders[j].At.Minutes()
		}
		return reminders[i].ID < reminders[j].ID
	})
}
