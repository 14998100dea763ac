package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/mooded/internal/backup"
	"github.com/julianstephens/mooded/internal/storage"
)

type DoctorCmd struct{}

// availability is implemented by notifiers that can report whether delivery works
type availability interface {
	Available() error
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	fail := func(name string, err error) {
		ctx.println(failStyle.Render(fmt.Sprintf("❌ %s: FAIL", name)))
		ctx.printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		ctx.println(warnStyle.Render(fmt.Sprintf("⚠ %s: WARNING", name)))
		ctx.printf("   %v\n", err)
	}
	ok := func(name string) {
		ctx.println(okStyle.Render(fmt.Sprintf("✓ %s: OK", name)))
	}

	dbReachable := false
	if err := checkStoreReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		ok("Storage reachable")
		dbReachable = true
	}

	if err := checkSchemaVersion(ctx); err != nil {
		fail("Schema version", err)
	} else {
		ok("Schema version")
	}

	if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ok("Backups present")
	}

	if dbReachable {
		if result := ctx.validate(); result.HasConflicts() {
			fail("Data validation", fmt.Errorf("%d conflict(s), run 'mooded validate' for details", len(result.Conflicts)))
		} else {
			ok("Data validation")
		}
	} else {
		ctx.println(dimStyle.Render("⊘ Data validation: SKIPPED (storage not reachable)"))
	}

	if a, isChecker := ctx.Notifier.(availability); isChecker {
		if err := a.Available(); err != nil {
			warn("Notification delivery", err)
		} else {
			ok("Notification delivery")
		}
	}

	if err := checkClockTimezone(ctx); err != nil {
		fail("Clock/timezone", err)
	} else {
		ok("Clock/timezone")
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	versioned, ok := ctx.Store.(storage.Versioned)
	if !ok {
		return nil
	}
	current, latest, err := versioned.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if errors.Is(err, backup.ErrNotSQLite) {
		return nil
	} else if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'mooded backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.loc() == time.UTC {
		ctx.printf("   Note: timezone is UTC\n")
	}
	return nil
}
