package reminder

import (
	"context"
	"time"

	"github.com/julianstephens/mooded/internal/logger"
)

// Notifier delivers a single alert to the user
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Dispatcher fires due reminders through a Notifier.
type Dispatcher struct {
	platform Platform
	notifier Notifier
}

func NewDispatcher(platform Platform, notifier Notifier) *Dispatcher {
	return &Dispatcher{platform: platform, notifier: notifier}
}

// Due returns the reminders whose time of day matches the minute of now.
func (d *Dispatcher) Due(now time.Time) ([]Reminder, error) {
	pending, err := d.platform.Pending()
	if err != nil {
		return nil, err
	}

	var due []Reminder
	for _, r := range pending {
		if r.At.Matches(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

// Dispatch sends every due reminder and returns how many were delivered.
// Delivery failures are logged and not retried.
func (d *Dispatcher) Dispatch(ctx context.Context, now time.Time) (int, error) {
	due, err := d.Due(now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, r := range due {
		if err := d.notifier.Notify(ctx, r.Title, r.Body); err != nil {
			logger.Warn("Failed to deliver reminder", "id", r.ID, "error", err)
			continue
		}
		logger.Debug("Reminder delivered", "id", r.ID, "at", r.At.String())
		sent++
	}
	return sent, nil
}
