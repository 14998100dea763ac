package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/mooded/internal/constants"
)

// ScheduleVersion is the current shape of the persisted notification settings.
//
//	1: {isEnabled, frequency}
//	2: {isEnabled, startTime, endTime, numberOfChecks}
//	3: {version, is_enabled, scheduled_times}
const ScheduleVersion = 3

// NotificationSchedule is the set of daily mood-check reminder slots.
type NotificationSchedule struct {
	Version        int         `json:"version"`
	IsEnabled      bool        `json:"is_enabled"`
	ScheduledTimes []TimeOfDay `json:"scheduled_times"`
}

// DefaultNotificationSchedule is used when nothing has been saved yet.
func DefaultNotificationSchedule() NotificationSchedule {
	return NotificationSchedule{
		Version:        ScheduleVersion,
		IsEnabled:      true,
		ScheduledTimes: []TimeOfDay{{Hour: constants.DefaultReminderHour, Minute: constants.DefaultReminderMinute}},
	}
}

// EffectiveTimes returns the slots that should have reminders: none when disabled.
func (s NotificationSchedule) EffectiveTimes() []TimeOfDay {
	if !s.IsEnabled {
		return []TimeOfDay{}
	}
	return SortTimes(s.ScheduledTimes)
}

// AddTime adds a slot. It returns false if the slot was already present.
func (s *NotificationSchedule) AddTime(t TimeOfDay) bool {
	for _, existing := range s.ScheduledTimes {
		if existing.Minutes() == t.Minutes() {
			return false
		}
	}
	s.ScheduledTimes = SortTimes(append(s.ScheduledTimes, t))
	return true
}

// RemoveTime removes a slot. It returns false if the slot was not present.
func (s *NotificationSchedule) RemoveTime(t TimeOfDay) bool {
	kept := make([]TimeOfDay, 0, len(s.ScheduledTimes))
	removed := false
	for _, existing := range s.ScheduledTimes {
		if existing.Minutes() == t.Minutes() {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	s.ScheduledTimes = kept
	return removed
}

// rawSchedule accepts every shape the settings blob has had.
type rawSchedule struct {
	Version              int         `json:"version"`
	IsEnabled            *bool       `json:"is_enabled"`
	ScheduledTimes       []TimeOfDay `json:"scheduled_times"`
	LegacyIsEnabled      *bool       `json:"isEnabled"`
	LegacyScheduledTimes []TimeOfDay `json:"scheduledTimes"`
	Frequency            string      `json:"frequency"`
	StartTime            *TimeOfDay  `json:"startTime"`
	EndTime              *TimeOfDay  `json:"endTime"`
	NumberOfChecks       *int        `json:"numberOfChecks"`
}

// DecodeNotificationSchedule decodes any known settings shape into the current
// one. migrated reports whether an older shape was converted.
func DecodeNotificationSchedule(data []byte) (schedule NotificationSchedule, migrated bool, err error) {
	var raw rawSchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return NotificationSchedule{}, false, fmt.Errorf("failed to parse notification settings: %w", err)
	}

	enabled := true
	switch {
	case raw.IsEnabled != nil:
		enabled = *raw.IsEnabled
	case raw.LegacyIsEnabled != nil:
		enabled = *raw.LegacyIsEnabled
	}

	schedule = NotificationSchedule{Version: ScheduleVersion, IsEnabled: enabled}

	switch {
	case raw.Version == ScheduleVersion || raw.ScheduledTimes != nil:
		schedule.ScheduledTimes = SortTimes(raw.ScheduledTimes)
		return schedule, raw.Version != ScheduleVersion, nil
	case raw.LegacyScheduledTimes != nil:
		schedule.ScheduledTimes = SortTimes(raw.LegacyScheduledTimes)
		return schedule, true, nil
	case raw.StartTime != nil && raw.EndTime != nil && raw.NumberOfChecks != nil:
		schedule.ScheduledTimes = SortTimes(SpacedTimes(*raw.StartTime, *raw.EndTime, *raw.NumberOfChecks))
		return schedule, true, nil
	case raw.Frequency != "":
		times, err := FrequencyTimes(raw.Frequency)
		if err != nil {
			return NotificationSchedule{}, false, err
		}
		schedule.ScheduledTimes = times
		return schedule, true, nil
	}

	return NotificationSchedule{}, false, fmt.Errorf("unrecognized notification settings shape")
}

// FrequencyTimes converts a fixed reminder frequency ("6 hours", "12 hours",
// "24 hours") into daily slots anchored at the default reminder time.
func FrequencyTimes(frequency string) ([]TimeOfDay, error) {
	fields := strings.Fields(frequency)
	if len(fields) != 2 || fields[1] != "hours" {
		return nil, fmt.Errorf("invalid reminder frequency %q", frequency)
	}
	hours, err := strconv.Atoi(fields[0])
	if err != nil || hours <= 0 || 24%hours != 0 {
		return nil, fmt.Errorf("invalid reminder frequency %q", frequency)
	}

	anchor := NewTimeOfDay(constants.DefaultReminderHour, constants.DefaultReminderMinute)
	times := make([]TimeOfDay, 0, 24/hours)
	for i := 0; i < 24/hours; i++ {
		times = append(times, FromMinutes(anchor.Minutes()+i*hours*60))
	}
	return SortTimes(times), nil
}
