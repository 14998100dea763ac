package cli

import (
	"fmt"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/history"
)

type HistoryCmd struct {
	Range    string `short:"r" help:"Time range: week, month, year or all." enum:"week,month,year,all" default:"week"`
	Trend    bool   `help:"Show the per-day (or per-month) trend."`
	Activity bool   `help:"Show the merged mood and habit log."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	r, err := history.ParseRange(c.Range)
	if err != nil {
		return err
	}

	in := history.Input{
		Moods:       ctx.Moods().All(),
		Habits:      ctx.Habits().Habits(),
		Completions: ctx.Habits().Completions(),
	}
	now := ctx.now()
	summary := history.Summarize(in, r, now, ctx.loc())

	ctx.println(headerStyle.Render(fmt.Sprintf("History (%s)", r)))
	if summary.CheckInCount == 0 {
		ctx.println("Average mood: -")
	} else {
		ctx.printf("Average mood: %.1f %s\n", summary.AverageMood, ratingBar(summary.AverageMood, constants.MaxRating))
	}
	ctx.printf("Check-ins:    %d\n", summary.CheckInCount)
	ctx.printf("Streak:       %d day(s)\n", summary.CurrentStreak)

	if len(summary.HabitRates) > 0 {
		ctx.println()
		tbl := newTable("Habit", "Done", "Rate")
		for _, hr := range summary.HabitRates {
			tbl.AddRow(hr.Name, hr.Completed, fmt.Sprintf("%.0f%%", hr.Rate))
		}
		ctx.println(tbl)
	}

	if c.Trend {
		ctx.println()
		layout := constants.DateFormat
		if r.Monthly() {
			layout = "2006-01"
		}
		tbl := newTable("Period", "Mood", "", "Check-ins", "Habits done")
		for _, b := range summary.Trend {
			avg := "-"
			bar := ""
			if b.MoodCount > 0 {
				avg = fmt.Sprintf("%.1f", b.AverageMood)
				bar = ratingBar(b.AverageMood, constants.MaxRating)
			}
			tbl.AddRow(b.Start.In(ctx.loc()).Format(layout), avg, bar, b.MoodCount, b.Completions)
		}
		ctx.println(tbl)
	}

	if c.Activity {
		ctx.println()
		activities := history.Activities(in, r, now, ctx.loc())
		if len(activities) == 0 {
			ctx.println("No activity in this range.")
			return nil
		}
		tbl := newTable("When", "", "What")
		for _, a := range activities {
			tbl.AddRow(a.Time.In(ctx.loc()).Format(constants.DateFormat+" "+constants.TimeFormat), string(a.Kind), a.Description)
		}
		ctx.println(tbl)
	}
	return nil
}
