package constants

const (
	// User settings keys
	SettingSoundEnabled            = "sound_enabled"
	SettingNotificationsEnabled    = "notifications_enabled"
	SettingCheckinRemindersOnly    = "checkin_reminders_only"
	SettingWeeklyProgressReminders = "weekly_progress_reminders"

	// Default user values
	DefaultUserID                  = "default-user"
	DefaultUserName                = "Habit Builder"
	DefaultSoundEnabled            = true
	DefaultNotificationsEnabled    = true
	DefaultCheckinRemindersOnly    = false
	DefaultWeeklyProgressReminders = true
	DefaultTimezone                = "Local" // Use system local timezone by default
)
