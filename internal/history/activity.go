package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/mooded/internal/models"
)

type ActivityKind string

const (
	ActivityMood  ActivityKind = "mood"
	ActivityHabit ActivityKind = "habit"
)

// Activity is one line of the merged mood and habit log
type Activity struct {
	Kind        ActivityKind
	Time        time.Time
	Description string
}

// Activities returns moods and completions of known habits within the range, newest first.
func Activities(in Input, r Range, now time.Time, loc *time.Location) []Activity {
	start := FilterStart(r, now, loc)

	var out []Activity
	for _, m := range moodsSince(in.Moods, start) {
		out = append(out, Activity{
			Kind:        ActivityMood,
			Time:        m.Timestamp,
			Description: fmt.Sprintf("Mood %d (%s)", m.Rating, models.MoodLabel(m.Rating)),
		})
	}

	names := make(map[string]string, len(in.Habits))
	for _, h := range in.Habits {
		names[h.ID] = h.Name
	}
	for _, c := range knownCompletionsSince(in, start) {
		out = append(out, Activity{
			Kind:        ActivityHabit,
			Time:        c.Date,
			Description: "Completed " + names[c.HabitID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	return out
}
