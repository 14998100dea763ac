// Package export renders mood history as CSV.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/models"
)

const header = "Date,Time,Rating"

// CSV renders moods in the given order, one line per entry, with dates and
// times in loc. Lines are joined with "\n" and there is no trailing newline.
// Fields are never quoted; none of them can contain a comma.
func CSV(moods []models.MoodEntry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	lines := make([]string, 0, len(moods)+1)
	lines = append(lines, header)
	for _, m := range moods {
		ts := m.Timestamp.In(loc)
		lines = append(lines, strings.Join([]string{
			ts.Format(constants.DateFormat),
			ts.Format(constants.ClockFormat),
			strconv.Itoa(m.Rating),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// WriteFile writes the CSV to path. A directory path gets the default file name.
// It returns the path written.
func WriteFile(path string, moods []models.MoodEntry, loc *time.Location) (string, error) {
	if path == "" {
		path = constants.ExportFileName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, constants.ExportFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(CSV(moods, loc)), 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}
