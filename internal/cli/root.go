package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mooded/internal/backup"
	"github.com/julianstephens/mooded/internal/config"
	"github.com/julianstephens/mooded/internal/habits"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/mood"
	"github.com/julianstephens/mooded/internal/reminder"
	"github.com/julianstephens/mooded/internal/scheduler"
	"github.com/julianstephens/mooded/internal/settings"
	"github.com/julianstephens/mooded/internal/storage"
	"github.com/julianstephens/mooded/internal/utils"
)

// Context is shared by every command. Domain stores are built on first use,
// after the provider has been loaded.
type Context struct {
	Store    storage.Provider
	Config   config.Config
	Location *time.Location
	Notifier reminder.Notifier

	// Now and Out default to time.Now and os.Stdout.
	Now func() time.Time
	Out io.Writer
	// Confirm asks a yes/no question; defaults to a huh prompt.
	Confirm func(title, description string) (bool, error)

	registry *reminder.Registry
	moods    *mood.Store
	habits   *habits.Store
	settings *settings.Store
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Context) loc() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

func (c *Context) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) confirm(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	ok := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// Registry is the pending-reminder platform backed by the store
func (c *Context) Registry() *reminder.Registry {
	if c.registry == nil {
		c.registry = reminder.NewRegistry(c.Store)
	}
	return c.registry
}

func (c *Context) Moods() *mood.Store {
	if c.moods == nil {
		c.moods = mood.NewStore(c.Store, c.Now)
	}
	return c.moods
}

func (c *Context) Habits() *habits.Store {
	if c.habits == nil {
		c.habits = habits.NewStore(c.Store, scheduler.NewHabitReminders(c.Registry()), c.loc())
	}
	return c.habits
}

func (c *Context) Settings() *settings.Store {
	if c.settings == nil {
		c.settings = settings.NewStore(c.Store, scheduler.New(c.Registry()))
	}
	return c.settings
}

// PerformAutomaticBackup snapshots SQLite databases before destructive
// commands. Failures are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// warnPersistence reports a save failure without failing the command; the
// change still applies for the rest of this run.
func (c *Context) warnPersistence(err error) error {
	if err == nil {
		return nil
	}
	if storage.IsPersistenceError(err) {
		logger.Warn("Change not saved", "error", err)
		c.println(warnStyle.Render("⚠ Change could not be saved: " + err.Error()))
		return nil
	}
	return err
}

func parseTime(s string) (models.TimeOfDay, error) {
	t, err := models.ParseTimeOfDay(s)
	if err != nil {
		return models.TimeOfDay{}, fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return t, nil
}

// parseDate accepts YYYY-MM-DD, "today" or "yesterday"; empty means today.
func (c *Context) parseDate(s string) (time.Time, error) {
	now := c.now()
	switch s {
	case "", "today":
		return now, nil
	case "yesterday":
		return utils.StartOfDay(now, c.loc()).AddDate(0, 0, -1), nil
	}
	d, err := utils.ParseDateInLocation(s, c.loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today or yesterday)", s)
	}
	return d, nil
}
