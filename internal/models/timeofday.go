package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/mooded/internal/constants"
)

const minutesPerDay = 24 * 60

// TimeOfDay is an hour and minute with no date component.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay builds a TimeOfDay, normalizing minutes into a single day.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return FromMinutes(hour*60 + minute)
}

// FromMinutes converts minutes since midnight into a TimeOfDay, wrapping around midnight.
func FromMinutes(m int) TimeOfDay {
	m %= minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// ParseTimeOfDay parses a time string in the standard format (HH:MM).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeOfDayOf extracts the hour and minute of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// Minutes returns the number of minutes from midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on the calendar day of day in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, loc)
}

// Matches reports whether the wall clock of now falls in this minute.
func (t TimeOfDay) Matches(now time.Time) bool {
	return now.Hour() == t.Hour && now.Minute() == t.Minute
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// LegacyLocation is the zone whose wall clock legacy RFC3339 reminder times
// are read in. The CLI sets it to the configured timezone at startup.
var LegacyLocation = time.Local

// UnmarshalJSON accepts "HH:MM" as well as full RFC3339 timestamps, which older
// data used to store reminder times as dates.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	if parsed, err := ParseTimeOfDay(s); err == nil {
		*t = parsed
		return nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid time of day %q", s)
	}
	*t = TimeOfDayOf(ts.In(LegacyLocation))
	return nil
}

// SortTimes returns a sorted copy of times with duplicates removed.
func SortTimes(times []TimeOfDay) []TimeOfDay {
	seen := make(map[int]bool, len(times))
	out := make([]TimeOfDay, 0, len(times))
	for _, t := range times {
		t = FromMinutes(t.Minutes())
		if seen[t.Minutes()] {
			continue
		}
		seen[t.Minutes()] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Minutes() < out[j].Minutes()
	})
	return out
}

// SpacedTimes splits the window from start to end into count evenly spaced checks.
//
// The step is floor((end-start)/(count-1)) minutes, so the last time can fall short
// of end when the window does not divide evenly.
func SpacedTimes(start, end TimeOfDay, count int) []TimeOfDay {
	if count <= 0 {
		return []TimeOfDay{}
	}
	if count == 1 {
		return []TimeOfDay{start}
	}

	span := end.Minutes() - start.Minutes()
	step := floorDiv(span, count-1)

	times := make([]TimeOfDay, 0, count)
	for i := 0; i < count; i++ {
		times = append(times, FromMinutes(start.Minutes()+i*step))
	}
	return times
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
