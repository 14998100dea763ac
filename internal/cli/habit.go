package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Remove HabitRemoveCmd `cmd:"" help:"Remove a habit and its history."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done (or undone) for a day."`
	Clear  HabitClearCmd  `cmd:"" help:"Delete every habit and completion."`
}

func (c *Context) findHabit(ref string) (models.Habit, error) {
	h, ok := c.Habits().Find(ref)
	if !ok {
		return models.Habit{}, fmt.Errorf("habit not found: %s", ref)
	}
	return h, nil
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	At       string `help:"Daily reminder time (HH:MM)."`
	Disabled bool   `help:"Create the habit disabled."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	h := models.Habit{Name: c.Name, IsEnabled: !c.Disabled}
	if c.At != "" {
		t, err := parseTime(c.At)
		if err != nil {
			return err
		}
		h.NotificationTime = &t
	}

	added, err := ctx.Habits().AddHabit(h)
	if errors.Is(err, models.ErrInvalidHabitName) {
		return err
	}
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	ctx.printf("✓ Added habit %q (%s)\n", added.Name, added.ID)
	return nil
}

type HabitEditCmd struct {
	Habit      string `arg:"" help:"Habit id or name."`
	Name       string `help:"New name."`
	At         string `help:"New reminder time (HH:MM)."`
	NoReminder bool   `help:"Remove the reminder time."`
	Enable     bool   `help:"Enable the habit." xor:"state"`
	Disable    bool   `help:"Disable the habit." xor:"state"`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}

	if c.Name != "" {
		h.Name = c.Name
	}
	switch {
	case c.NoReminder:
		h.NotificationTime = nil
	case c.At != "":
		t, err := parseTime(c.At)
		if err != nil {
			return err
		}
		h.NotificationTime = &t
	}
	if c.Enable {
		h.IsEnabled = true
	}
	if c.Disable {
		h.IsEnabled = false
	}

	err = ctx.Habits().UpdateHabit(h)
	if errors.Is(err, models.ErrInvalidHabitName) {
		return err
	}
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	ctx.printf("✓ Updated habit %q\n", h.Name)
	return nil
}

type HabitRemoveCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitRemoveCmd) Run(ctx *Context) error {
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.warnPersistence(ctx.Habits().RemoveHabit(h.ID)); err != nil {
		return err
	}
	ctx.printf("✓ Removed habit %q\n", h.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	list := ctx.Habits().Habits()
	if len(list) == 0 {
		ctx.println("No habits yet. Add one with 'mooded habit add <name>'.")
		return nil
	}

	today := ctx.now()
	tbl := newTable("Name", "Status", "Reminder", "Today", "ID")
	for _, h := range list {
		status := okStyle.Render("enabled")
		if !h.IsEnabled {
			status = dimStyle.Render("disabled")
		}
		at := "-"
		if h.NotificationTime != nil {
			at = h.NotificationTime.String()
		}
		done := " "
		if ctx.Habits().IsCompleted(h.ID, today) {
			done = okStyle.Render("✓")
		}
		tbl.AddRow(h.Name, status, at, done, dimStyle.Render(h.ID))
	}
	ctx.println(tbl)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Day to toggle (YYYY-MM-DD, today, yesterday)." default:"today"`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	h, err := ctx.findHabit(c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.parseDate(c.Date)
	if err != nil {
		return err
	}

	done, err := ctx.Habits().ToggleCompletion(h.ID, date)
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	day := date.In(ctx.loc()).Format(constants.DateFormat)
	if done {
		ctx.printf("✓ %s done for %s\n", h.Name, day)
	} else {
		ctx.printf("○ %s not done for %s\n", h.Name, day)
	}
	return nil
}

type HabitClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitClearCmd) Run(ctx *Context) error {
	if !c.Yes {
		ok, err := ctx.confirm("Delete all habits?",
			"Every habit, completion and habit reminder will be removed.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.warnPersistence(ctx.Habits().ClearAll()); err != nil {
		return err
	}
	ctx.println("✓ Cleared all habits")
	return nil
}
