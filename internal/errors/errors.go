package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/mooded/internal/backup"
	"github.com/julianstephens/mooded/internal/habits"
	"github.com/julianstephens/mooded/internal/keyring"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/storage"
)

// hints maps well-known failures to a suggested next step
var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run 'mooded init' to create the database"},
	{storage.ErrEmbeddedCredentials, "store credentials with 'mooded keyring set <conn>' or use a .pgpass file"},
	{keyring.ErrKeyringUnavailable, "pass --db or set MOODED_DB instead of using the keyring"},
	{backup.ErrNotSQLite, "use your database's own backup tooling for Postgres or Redis"},
	{habits.ErrUnknownHabit, "list habits with 'mooded habit list'"},
	{models.ErrInvalidRating, "ratings go from 1 (heavy rain) to 5 (sunny)"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a suggested fix for err, or "" when there is none.
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
