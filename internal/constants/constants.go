package constants

import "time"

const (
	AppName            = "mooded"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/mooded"
	DefaultConfigFile  = "~/.config/mooded/config.yml"
	DefaultDBPath      = "~/.config/mooded/mooded.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ClockFormat is the time-of-day format with seconds used by the CSV export (HH:MM:SS)
	ClockFormat = "15:04:05"

	// Storage keys for the persisted blobs
	MoodsKey            = "SavedMoods"
	HabitsKey           = "SavedHabits"
	CompletionsKey      = "HabitCompletions"
	NotificationKey     = "notificationSettingsData"
	PendingRemindersKey = "PendingReminders"

	// Rating bounds
	MinRating = 1
	MaxRating = 5

	// Reminder identifiers and content
	MoodReminderPrefix  = "mood_"
	HabitReminderPrefix = "habit_"
	MoodReminderTitle   = "Mood Check"
	MoodReminderBody    = "How are you feeling right now?"
	HabitReminderTitle  = "Habit Reminder"

	// Default reminder slot used when no schedule has been saved yet
	DefaultReminderHour   = 9
	DefaultReminderMinute = 0

	// Export constants
	ExportFileName = "MoodHistory.csv"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mooded-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "mooded-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.mooded"
	TrayProcessPrefix      = "mooded-tray"
	NotifyRequestTimeout   = 5 * time.Second

	// Redis
	RedisKeyPrefix = "mooded:"
)
