package reminder

import (
	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/storage"
)

// Registry is a Platform that keeps pending reminders in the key-value store
// so a later `mooded notify` run can fire them.
type Registry struct {
	store storage.Provider
}

func NewRegistry(store storage.Provider) *Registry {
	return &Registry{store: store}
}

func (r *Registry) load() map[string]Reminder {
	var list []Reminder
	if _, err := storage.LoadJSON(r.store, constants.PendingRemindersKey, &list); err != nil {
		logger.Warn("Discarding unreadable pending reminders", "error", err)
		list = nil
	}

	byID := make(map[string]Reminder, len(list))
	for _, rem := range list {
		byID[rem.ID] = rem
	}
	return byID
}

func (r *Registry) save(byID map[string]Reminder) error {
	list := make([]Reminder, 0, len(byID))
	for _, rem := range byID {
		list = append(list, rem)
	}
	sortReminders(list)
	return storage.SaveJSON(r.store, constants.PendingRemindersKey, list)
}

// ScheduleDaily registers a reminder, replacing any existing one with the same id.
func (r *Registry) ScheduleDaily(id string, at models.TimeOfDay, title, body string) error {
	byID := r.load()
	byID[id] = Reminder{ID: id, At: at, Title: title, Body: body}
	return r.save(byID)
}

// Cancel removes the given ids. Unknown ids are ignored.
func (r *Registry) Cancel(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	byID := r.load()
	for _, id := range ids {
		delete(byID, id)
	}
	return r.save(byID)
}

func (r *Registry) CancelAll() error {
	return r.save(map[string]Reminder{})
}

// Pending returns registered reminders ordered by time of day.
func (r *Registry) Pending() ([]Reminder, error) {
	byID := r.load()
	list := make([]Reminder, 0, len(byID))
	for _, rem := range byID {
		list = append(list, rem)
	}
	sortReminders(list)
	return list, nil
}
