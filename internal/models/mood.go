package models

import (
	"errors"
	"time"
)

// ErrInvalidRating is returned for ratings outside 1-5
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// MoodEntry is a single mood rating. Entries are immutable once created.
type MoodEntry struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// MoodLabel returns the weather-style label shown next to a rating.
func MoodLabel(rating int) string {
	switch rating {
	case 1:
		return "heavy rain"
	case 2:
		return "drizzle"
	case 3:
		return "cloudy"
	case 4:
		return "partly sunny"
	case 5:
		return "sunny"
	default:
		return "cloudy"
	}
}
