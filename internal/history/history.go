// Package history derives time-windowed summaries from moods, habits and
// completions. Everything is recomputed from the inputs on each call.
package history

import (
	"sort"
	"time"

	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/utils"
)

// Input is a read-only snapshot of the stores
type Input struct {
	Moods       []models.MoodEntry
	Habits      []models.Habit
	Completions []models.HabitCompletion
}

// HabitRate is a habit's completion percentage over the range. It can exceed
// 100 if stored data holds more than one completion per day.
type HabitRate struct {
	HabitID   string
	Name      string
	Completed int
	Rate      float64
}

// Bucket is one day or one month of the trend
type Bucket struct {
	Start       time.Time
	AverageMood float64
	MoodCount   int
	Completions int
}

type Summary struct {
	Range         Range
	Start         time.Time
	AverageMood   float64
	CheckInCount  int
	CurrentStreak int
	HabitRates    []HabitRate
	Trend         []Bucket
}

// Summarize computes every derived value for r as of now.
func Summarize(in Input, r Range, now time.Time, loc *time.Location) Summary {
	start := FilterStart(r, now, loc)
	moods := moodsSince(in.Moods, start)
	completions := knownCompletionsSince(in, start)

	sum := 0
	for _, m := range moods {
		sum += m.Rating
	}

	s := Summary{
		Range:         r,
		Start:         start,
		CheckInCount:  len(moods),
		CurrentStreak: CurrentStreak(in.Moods, now, loc),
	}
	if len(moods) > 0 {
		s.AverageMood = float64(sum) / float64(len(moods))
	}

	spanStart := start
	if r == RangeAll {
		spanStart = earliestDay(in, now, loc)
	}
	s.HabitRates = habitRates(in.Habits, completions, spanStart, now, loc)
	s.Trend = trend(r, moods, completions, spanStart, now, loc)
	return s
}

// CurrentStreak counts consecutive days with at least one mood entry,
// walking back from today. A day without an entry ends the streak, so no
// entry today means 0.
func CurrentStreak(moods []models.MoodEntry, now time.Time, loc *time.Location) int {
	days := make(map[string]bool, len(moods))
	for _, m := range moods {
		days[utils.DayKey(m.Timestamp, loc)] = true
	}

	today := utils.StartOfDay(now, loc)
	streak := 0
	for {
		day := time.Date(today.Year(), today.Month(), today.Day()-streak, 0, 0, 0, 0, loc)
		if !days[utils.DayKey(day, loc)] {
			return streak
		}
		streak++
	}
}

func moodsSince(moods []models.MoodEntry, start time.Time) []models.MoodEntry {
	var out []models.MoodEntry
	for _, m := range moods {
		if !m.Timestamp.Before(start) {
			out = append(out, m)
		}
	}
	return out
}

// knownCompletionsSince drops completions that point at a deleted habit
func knownCompletionsSince(in Input, start time.Time) []models.HabitCompletion {
	known := make(map[string]bool, len(in.Habits))
	for _, h := range in.Habits {
		known[h.ID] = true
	}

	var out []models.HabitCompletion
	for _, c := range in.Completions {
		if known[c.HabitID] && !c.Date.Before(start) {
			out = append(out, c)
		}
	}
	return out
}

// earliestDay is the first calendar day with any record, or today
func earliestDay(in Input, now time.Time, loc *time.Location) time.Time {
	earliest := now
	for _, m := range in.Moods {
		if m.Timestamp.Before(earliest) {
			earliest = m.Timestamp
		}
	}
	for _, c := range in.Completions {
		if c.Date.Before(earliest) {
			earliest = c.Date
		}
	}
	return utils.StartOfDay(earliest, loc)
}

func habitRates(habits []models.Habit, completions []models.HabitCompletion, start, now time.Time, loc *time.Location) []HabitRate {
	totalDays := utils.DaysBetween(start, now, loc)
	if totalDays < 1 {
		totalDays = 1
	}

	counts := make(map[string]int, len(habits))
	for _, c := range completions {
		counts[c.HabitID]++
	}

	rates := make([]HabitRate, 0, len(habits))
	for _, h := range habits {
		rates = append(rates, HabitRate{
			HabitID:   h.ID,
			Name:      h.Name,
			Completed: counts[h.ID],
			Rate:      float64(counts[h.ID]) / float64(totalDays) * 100,
		})
	}

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Rate > rates[j].Rate
	})
	return rates
}
