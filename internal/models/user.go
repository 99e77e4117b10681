package models

import "time"

// EnergyAccount holds the energy balance of a user.
// TotalEnergy always equals TotalEnergyEarned - TotalEnergySpent.
type EnergyAccount struct {
	TotalEnergy       int `json:"total_energy"`
	TotalEnergyEarned int `json:"total_energy_earned"`
	TotalEnergySpent  int `json:"total_energy_spent"`
}

// UserSettings are preference flags stored with the user but not interpreted by the engine
type UserSettings struct {
	SoundEnabled            bool `json:"sound_enabled"`
	NotificationsEnabled    bool `json:"notifications_enabled"`
	CheckinRemindersOnly    bool `json:"checkin_reminders_only"`
	WeeklyProgressReminders bool `json:"weekly_progress_reminders"`
}

// User is the single profile document
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
	EnergyAccount
	Settings UserSettings `json:"settings"`
}
