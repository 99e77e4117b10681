package constants

import "time"

const (
	AppName            = "streakly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streakly/streakly.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Document keys for the persistent store
	DocHabits      = "habits"
	DocCompletions = "completions"
	DocRewards     = "rewards"
	DocUser        = "user"

	// CorruptSuffix is appended to a document key when an unreadable document is quarantined
	CorruptSuffix = ".corrupt"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streakly-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportDirName    = "exports"
	ExportFilePrefix = "streakly-backup-"
	ExportFileSuffix = ".json"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "streakly-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.streakly"
	TrayAppExecutable      = "streakly-tray"

	// WeeklyWindowDays is the number of calendar days covered by weekly progress
	WeeklyWindowDays = 7
)
