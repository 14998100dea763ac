package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/mooded/internal/constants"
)

// Logger is the process-wide logger. Nil until Init succeeds; the package
// helpers are no-ops in that case.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Location stamps entries with the user's configured timezone so log
	// lines line up with the calendar days moods are bucketed into.
	Location *time.Location
}

// LogPath is where Init writes the rotating log for configDir.
func LogPath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	path := LogPath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		w = io.MultiWriter(os.Stderr, w)
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		TimeFunction:    func(t time.Time) time.Time { return t.In(loc) },
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// With attaches keyvals to every later entry, e.g. the storage backend once
// the DSN is resolved.
func With(keyvals ...any) {
	if Logger != nil {
		Logger = Logger.With(keyvals...)
	}
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
