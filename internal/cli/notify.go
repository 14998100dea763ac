package cli

import (
	"context"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/reminder"
)

// NotifyCmd fires the reminders due this minute. It is meant to run from
// cron or a systemd timer once a minute.
type NotifyCmd struct {
	DryRun bool `help:"Print due reminders instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	now := ctx.now().In(ctx.loc())

	if c.DryRun {
		due, err := reminder.NewDispatcher(ctx.Registry(), ctx.Notifier).Due(now)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			ctx.printf("Nothing due at %s.\n", now.Format(constants.TimeFormat))
			return nil
		}
		for _, r := range due {
			ctx.printf("[%s] %s: %s\n", r.At, r.Title, r.Body)
		}
		return nil
	}

	if ctx.Notifier == nil {
		return nil
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.NotifyRequestTimeout)
	defer cancel()

	_, err := reminder.NewDispatcher(ctx.Registry(), ctx.Notifier).Dispatch(reqCtx, now)
	return err
}
