package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/mooded/internal/constants"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidRating       ConflictType = "invalid_rating"
	ConflictEmptyHabitName      ConflictType = "empty_habit_name"
	ConflictDuplicateHabitName  ConflictType = "duplicate_habit_name"
	ConflictOrphanedCompletion  ConflictType = "orphaned_completion"
	ConflictDuplicateCompletion ConflictType = "duplicate_completion"
)

// Conflict represents a problem found in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Names involved
	IDs         []string // IDs of records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// ValidateRating rejects ratings outside 1-5.
func ValidateRating(rating int) error {
	if rating < constants.MinRating || rating > constants.MaxRating {
		return fmt.Errorf("%w: got %d", models.ErrInvalidRating, rating)
	}
	return nil
}

// Validator checks stored moods, habits and completions for inconsistencies
type Validator struct {
	loc *time.Location
}

// New creates a Validator that groups completions by calendar day in loc
func New(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{loc: loc}
}

// ValidateMoods reports entries with out-of-range ratings
func (v *Validator) ValidateMoods(moods []models.MoodEntry) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, m := range moods {
		if ValidateRating(m.Rating) != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRating,
				Description: fmt.Sprintf("Mood entry %s has invalid rating %d", m.ID, m.Rating),
				Date:        utils.DayKey(m.Timestamp, v.loc),
				IDs:         []string{m.ID},
			})
		}
	}
	return result
}

// ValidateHabits reports bad names, completions of deleted habits, and more
// than one completion per habit and day.
func (v *Validator) ValidateHabits(habits []models.Habit, completions []models.HabitCompletion) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	names := make(map[string]string, len(habits))
	byName := make(map[string][]string)
	for _, h := range habits {
		names[h.ID] = h.Name
		name := strings.TrimSpace(h.Name)
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyHabitName,
				Description: fmt.Sprintf("Habit %s has an empty name", h.ID),
				IDs:         []string{h.ID},
			})
			continue
		}
		key := strings.ToLower(name)
		byName[key] = append(byName[key], h.ID)
	}

	dupNames := make([]string, 0)
	for key, ids := range byName {
		if len(ids) > 1 {
			dupNames = append(dupNames, key)
		}
	}
	sort.Strings(dupNames)
	for _, key := range dupNames {
		ids := byName[key]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateHabitName,
			Description: fmt.Sprintf("Duplicate habit name: \"%s\" (IDs: %v)", names[ids[0]], ids),
			Items:       []string{names[ids[0]]},
			IDs:         ids,
		})
	}

	seen := make(map[string][]string)
	var order []string
	for _, c := range completions {
		day := utils.DayKey(c.Date, v.loc)
		if _, ok := names[c.HabitID]; !ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedCompletion,
				Description: fmt.Sprintf("Completion %s on %s references missing habit %s", c.ID, day, c.HabitID),
				Date:        day,
				IDs:         []string{c.ID},
			})
			continue
		}

		key := c.HabitID + "|" + day
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], c.ID)
	}

	for _, key := range order {
		ids := seen[key]
		if len(ids) < 2 {
			continue
		}
		habitID, day, _ := strings.Cut(key, "|")
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateCompletion,
			Description: fmt.Sprintf("Habit \"%s\" has %d completions on %s", names[habitID], len(ids), day),
			Date:        day,
			Items:       []string{names[habitID]},
			IDs:         ids,
		})
	}

	return result
}
