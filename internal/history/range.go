package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mooded/internal/utils"
)

// Range selects how far back a summary looks
type Range string

const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
	RangeAll   Range = "all"
)

// Ranges lists the supported ranges in display order
var Ranges = []Range{RangeWeek, RangeMonth, RangeYear, RangeAll}

func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid range %q (expected week, month, year or all)", s)
}

// FilterStart returns midnight today minus the range length. Month and year
// steps clamp to the end of a shorter target month. RangeAll returns the zero
// time.
func FilterStart(r Range, now time.Time, loc *time.Location) time.Time {
	today := utils.StartOfDay(now, loc)
	switch r {
	case RangeWeek:
		return today.AddDate(0, 0, -7)
	case RangeMonth:
		return utils.AddMonthsClamped(today, -1, loc)
	case RangeYear:
		return utils.AddMonthsClamped(today, -12, loc)
	default:
		return time.Time{}
	}
}

// Monthly reports whether trend buckets are calendar months
func (r Range) Monthly() bool {
	return r == RangeYear || r == RangeAll
}
