package history

import (
	"time"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/utils"
)

type accumulator struct {
	ratingSum   int
	moodCount   int
	completions int
}

// trend buckets by day for week and month, and by month for year and all.
// Monthly completion counts are averaged per covered day and truncated.
func trend(r Range, moods []models.MoodEntry, completions []models.HabitCompletion, start, now time.Time, loc *time.Location) []Bucket {
	keyOf := func(t time.Time) time.Time { return utils.StartOfDay(t, loc) }
	if r.Monthly() {
		keyOf = func(t time.Time) time.Time { return utils.StartOfMonth(t, loc) }
	}

	acc := make(map[string]*accumulator)
	get := func(k time.Time) *accumulator {
		key := k.Format(constants.DateFormat)
		a, ok := acc[key]
		if !ok {
			a = &accumulator{}
			acc[key] = a
		}
		return a
	}
	for _, m := range moods {
		a := get(keyOf(m.Timestamp))
		a.ratingSum += m.Rating
		a.moodCount++
	}
	for _, c := range completions {
		get(keyOf(c.Date)).completions++
	}

	today := utils.StartOfDay(now, loc)
	first := keyOf(start)
	var buckets []Bucket

	for i := 0; ; i++ {
		var bucketStart time.Time
		if r.Monthly() {
			bucketStart = time.Date(first.Year(), first.Month()+time.Month(i), 1, 0, 0, 0, 0, loc)
		} else {
			bucketStart = time.Date(first.Year(), first.Month(), first.Day()+i, 0, 0, 0, 0, loc)
		}
		if bucketStart.After(today) {
			break
		}

		b := Bucket{Start: bucketStart}
		if a, ok := acc[bucketStart.Format(constants.DateFormat)]; ok {
			b.MoodCount = a.moodCount
			if a.moodCount > 0 {
				b.AverageMood = float64(a.ratingSum) / float64(a.moodCount)
			}
			b.Completions = a.completions
			if r.Monthly() {
				b.Completions = a.completions / coveredDays(bucketStart, start, today, loc)
			}
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// coveredDays counts the days of the month starting at monthStart that fall
// within [start, today].
func coveredDays(monthStart, start, today time.Time, loc *time.Location) int {
	from := monthStart
	if startDay := utils.StartOfDay(start, loc); startDay.After(from) {
		from = startDay
	}
	to := time.Date(monthStart.Year(), monthStart.Month()+1, 0, 0, 0, 0, 0, loc)
	if today.Before(to) {
		to = today
	}

	days := utils.DaysBetween(from, to, loc) + 1
	if days < 1 {
		return 1
	}
	return days
}
