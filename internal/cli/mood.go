package cli

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/export"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/validation"
)

type MoodCmd struct {
	Add    MoodAddCmd    `cmd:"" help:"Record how you feel (1-5)."`
	List   MoodListCmd   `cmd:"" help:"List recorded moods."`
	Clear  MoodClearCmd  `cmd:"" help:"Delete every mood record."`
	Export MoodExportCmd `cmd:"" help:"Export mood history as CSV."`
}

type MoodAddCmd struct {
	Rating int `arg:"" help:"Rating from 1 (heavy rain) to 5 (sunny)."`
}

func (c *MoodAddCmd) Run(ctx *Context) error {
	if err := validation.ValidateRating(c.Rating); err != nil {
		return err
	}
	entry, err := ctx.Moods().Add(c.Rating)
	if err := ctx.warnPersistence(err); err != nil {
		return err
	}
	ctx.printf("✓ Recorded mood %d (%s) at %s\n",
		entry.Rating, models.MoodLabel(entry.Rating), entry.Timestamp.In(ctx.loc()).Format(constants.TimeFormat))
	return nil
}

type MoodListCmd struct {
	Limit int `help:"Show only the most recent N entries (0 for all)." default:"0"`
}

func (c *MoodListCmd) Run(ctx *Context) error {
	entries := ctx.Moods().All()
	if len(entries) == 0 {
		ctx.println("No moods recorded yet.")
		return nil
	}
	if c.Limit > 0 && c.Limit < len(entries) {
		entries = entries[len(entries)-c.Limit:]
	}

	tbl := newTable("Date", "Time", "Rating", "", "Mood")
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		ts := e.Timestamp.In(ctx.loc())
		tbl.AddRow(ts.Format(constants.DateFormat), ts.Format(constants.TimeFormat),
			strconv.Itoa(e.Rating), ratingBar(float64(e.Rating), constants.MaxRating), models.MoodLabel(e.Rating))
	}
	ctx.println(tbl)
	return nil
}

type MoodClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *MoodClearCmd) Run(ctx *Context) error {
	count := ctx.Moods().Count()
	if count == 0 {
		ctx.println("No moods to clear.")
		return nil
	}
	if !c.Yes {
		ok, err := ctx.confirm("Delete all mood records?",
			fmt.Sprintf("%d entries will be removed. This cannot be undone.", count))
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.warnPersistence(ctx.Moods().Clear()); err != nil {
		return err
	}
	ctx.printf("✓ Cleared %d mood records\n", count)
	return nil
}

type MoodExportCmd struct {
	Out string `help:"File or directory to write (defaults to the configured export dir)." type:"path"`
}

func (c *MoodExportCmd) Run(ctx *Context) error {
	path := c.Out
	if path == "" {
		path = ctx.Config.ExportDir
	}
	written, err := export.WriteFile(path, ctx.Moods().All(), ctx.loc())
	if err != nil {
		return err
	}
	ctx.printf("✓ Exported %d moods to %s\n", ctx.Moods().Count(), written)
	return nil
}
