package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/mooded/internal/habits"
	"github.com/julianstephens/mooded/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("habit name cannot be empty"), expected: "Error: habit name cannot be empty"},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("save SavedMoods: %w", errors.New("disk full")),
			expected: "Error: save SavedMoods: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("rating must be between %d and %d", 1, 5)
	want := "Error: rating must be between 1 and 5"
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"uninitialized", fmt.Errorf("%w: /tmp/mooded.db", storage.ErrNotInitialized), "mooded init"},
		{"unknown habit", fmt.Errorf("toggle: %w", habits.ErrUnknownHabit), "mooded habit list"},
		{"embedded credentials", storage.ErrEmbeddedCredentials, "keyring set"},
		{"no hint", errors.New("boom"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hint(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Hint() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Hint() = %q, want it to mention %q", got, tt.want)
			}
		})
	}
}

func TestFatalPrintsHint(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_HINT") == "1" {
		Fatal(fmt.Errorf("%w: test.db", storage.ErrNotInitialized))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalPrintsHint$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_HINT=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err == nil {
		t.Fatal("Fatal() did not exit")
	}
	if !strings.Contains(stderr.String(), "Hint: run 'mooded init'") {
		t.Errorf("stderr = %q, want a hint", stderr.String())
	}
}

// TestFatal runs Fatal in a subprocess since it exits
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
