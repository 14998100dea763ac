package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mooded/internal/cli"
	"github.com/julianstephens/mooded/internal/config"
	"github.com/julianstephens/mooded/internal/constants"
	apperrors "github.com/julianstephens/mooded/internal/errors"
	"github.com/julianstephens/mooded/internal/logger"
	"github.com/julianstephens/mooded/internal/models"
	"github.com/julianstephens/mooded/internal/notifier"
	"github.com/julianstephens/mooded/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Config file path." default:"${config_file}"`
	DB       string `help:"SQLite path or postgres://, redis://, dir:// DSN. Overrides the config file and keyring."`
	Debug    bool   `help:"Log debug output to stderr."`
	Timezone string `help:"IANA time zone used for calendar days (default: config or Local)."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize mooded storage."`
	Mood      cli.MoodCmd      `cmd:"" help:"Record and manage moods."`
	Habit     cli.HabitCmd     `cmd:"" help:"Manage habits and daily completions."`
	Reminders cli.RemindersCmd `cmd:"" help:"Manage mood-check reminders."`
	History   cli.HistoryCmd   `cmd:"" help:"Summarize moods and habits over a time range."`
	Backup    cli.BackupCmd    `cmd:"" help:"Manage database backups."`
	Keyring   cli.KeyringCmd   `cmd:"" help:"Manage the connection string stored in the OS keyring."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Run health checks and diagnostics."`
	Validate  cli.ValidateCmd  `cmd:"" help:"Check stored data for inconsistencies."`
	Tools     cli.DebugCmd     `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify    cli.NotifyCmd    `cmd:"" hidden:"" help:"Send due reminders (run every minute from cron)."`
}

// commands that work without loaded storage
var noLoad = []string{"init", "keyring"}

// commands after which the reminder delivery check is worth doing
var interactive = []string{"init", "reminders", "habit add", "habit edit"}

func hasPrefix(command string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(command, p) {
			return true
		}
	}
	return false
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Mood and habit tracker with daily check-in reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if CLI.DB != "" {
		cfg.DB = CLI.DB
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}
	models.LegacyLocation = loc

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		ConfigDir: config.ConfigDir(),
		Location:  loc,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	// Passwords belong in the keyring, not in flags or config files.
	if storage.IsPostgresDSN(cfg.DB) {
		if err := storage.ValidateConnString(cfg.DB); err != nil {
			apperrors.Fatal(fmt.Errorf("invalid database connection string: %w", err))
		}
	}

	dsn := cfg.ResolveDSN()
	logger.With("backend", storage.Backend(dsn))
	store := storage.New(dsn)
	n := notifier.New()

	appCtx := &cli.Context{
		Store:    store,
		Config:   cfg,
		Location: loc,
		Notifier: n,
	}

	command := ctx.Command()
	if !hasPrefix(command, noLoad) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	if hasPrefix(command, interactive) {
		n.RequestAuthorization()
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}
