package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mooded/internal/models"
)

type RemindersCmd struct {
	Show    RemindersShowCmd    `cmd:"" help:"Show the mood-check schedule." default:"1"`
	Enable  RemindersEnableCmd  `cmd:"" help:"Turn mood-check reminders on."`
	Disable RemindersDisableCmd `cmd:"" help:"Turn mood-check reminders off."`
	Add     RemindersAddCmd     `cmd:"" help:"Add a reminder time."`
	Remove  RemindersRemoveCmd  `cmd:"" help:"Remove a reminder time."`
	Window  RemindersWindowCmd  `cmd:"" help:"Spread reminders evenly across a time window."`
	Pending RemindersPendingCmd `cmd:"" help:"List every registered reminder, including habit reminders."`
	Sync    RemindersSyncCmd    `cmd:"" help:"Re-register reminders from the saved schedule."`
}

func formatTimes(times []models.TimeOfDay) string {
	if len(times) == 0 {
		return "none"
	}
	parts := make([]string, len(times))
	for i, t := range times {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

type RemindersShowCmd struct{}

func (c *RemindersShowCmd) Run(ctx *Context) error {
	schedule := ctx.Settings().Schedule()
	state := okStyle.Render("enabled")
	if !schedule.IsEnabled {
		state = dimStyle.Render("disabled")
	}
	ctx.printf("Mood-check reminders: %s\n", state)
	ctx.printf("Times: %s\n", formatTimes(models.SortTimes(schedule.ScheduledTimes)))
	return nil
}

type RemindersEnableCmd struct{}

func (c *RemindersEnableCmd) Run(ctx *Context) error {
	if err := ctx.warnPersistence(ctx.Settings().SetEnabled(true)); err != nil {
		return err
	}
	ctx.printf("✓ Reminders enabled at %s\n", formatTimes(ctx.Settings().Schedule().EffectiveTimes()))
	return nil
}

type RemindersDisableCmd struct{}

func (c *RemindersDisableCmd) Run(ctx *Context) error {
	if err := ctx.warnPersistence(ctx.Settings().SetEnabled(false)); err != nil {
		return err
	}
	ctx.println("✓ Reminders disabled")
	return nil
}

type RemindersAddCmd struct {
	Time string `arg:"" help:"Time of day (HH:MM)."`
}

func (c *RemindersAddCmd) Run(ctx *Context) error {
	t, err := parseTime(c.Time)
	if err != nil {
		return err
	}
	added, err := ctx.Settings().AddTime(t)
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	if !added {
		ctx.printf("%s is already scheduled\n", t)
		return nil
	}
	ctx.printf("✓ Added reminder at %s\n", t)
	return nil
}

type RemindersRemoveCmd struct {
	Time string `arg:"" help:"Time of day (HH:MM)."`
}

func (c *RemindersRemoveCmd) Run(ctx *Context) error {
	t, err := parseTime(c.Time)
	if err != nil {
		return err
	}
	removed, err := ctx.Settings().RemoveTime(t)
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	if !removed {
		ctx.printf("No reminder at %s\n", t)
		return nil
	}
	ctx.printf("✓ Removed reminder at %s\n", t)
	return nil
}

type RemindersWindowCmd struct {
	Start string `required:"" help:"First reminder (HH:MM)."`
	End   string `required:"" help:"End of the window (HH:MM)."`
	Count int    `required:"" help:"Number of reminders."`
}

func (c *RemindersWindowCmd) Run(ctx *Context) error {
	start, err := parseTime(c.Start)
	if err != nil {
		return err
	}
	end, err := parseTime(c.End)
	if err != nil {
		return err
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}

	times, err := ctx.Settings().SetWindow(start, end, c.Count)
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	ctx.printf("✓ Reminders set to %s\n", formatTimes(times))
	return nil
}

type RemindersPendingCmd struct{}

func (c *RemindersPendingCmd) Run(ctx *Context) error {
	pending, err := ctx.Registry().Pending()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		ctx.println("No reminders registered.")
		return nil
	}

	tbl := newTable("Time", "ID", "Title", "Body")
	for _, r := range pending {
		tbl.AddRow(r.At.String(), dimStyle.Render(r.ID), r.Title, r.Body)
	}
	ctx.println(tbl)
	return nil
}

type RemindersSyncCmd struct{}

func (c *RemindersSyncCmd) Run(ctx *Context) error {
	ctx.Settings().Sync()
	ctx.Habits().SyncReminders()
	ctx.println("✓ Reminders re-registered")
	return nil
}
