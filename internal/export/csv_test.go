package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/mooded/internal/models"
)

func TestCSV(t *testing.T) {
	loc := time.FixedZone("Local", 3600)

	tests := []struct {
		name  string
		moods []models.MoodEntry
		want  string
	}{
		{
			name: "single entry",
			moods: []models.MoodEntry{
				{ID: "1", Rating: 4, Timestamp: time.Date(2024, 3, 5, 14, 30, 0, 0, loc)},
			},
			want: "Date,Time,Rating\n2024-03-05,14:30:00,4",
		},
		{
			name:  "empty",
			moods: nil,
			want:  "Date,Time,Rating",
		},
		{
			name: "order preserved and converted to loc",
			moods: []models.MoodEntry{
				{ID: "2", Rating: 1, Timestamp: time.Date(2024, 3, 6, 23, 30, 5, 0, time.UTC)},
				{ID: "1", Rating: 5, Timestamp: time.Date(2024, 3, 5, 8, 0, 0, 0, loc)},
			},
			want: "Date,Time,Rating\n2024-03-07,00:30:05,1\n2024-03-05,08:00:00,5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CSV(tt.moods, loc); got != tt.want {
				t.Errorf("CSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	moods := []models.MoodEntry{{ID: "1", Rating: 3, Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}}

	path, err := WriteFile(dir, moods, time.UTC)
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if path != filepath.Join(dir, "MoodHistory.csv") {
		t.Errorf("path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Date,Time,Rating\n2024-01-02,03:04:05,3" {
		t.Errorf("file content = %q", data)
	}

	explicit := filepath.Join(dir, "nested", "out.csv")
	if _, err := WriteFile(explicit, moods, time.UTC); err != nil {
		t.Fatalf("WriteFile to explicit path failed: %v", err)
	}
	if _, err := os.Stat(explicit); err != nil {
		t.Errorf("explicit file missing: %v", err)
	}
}
