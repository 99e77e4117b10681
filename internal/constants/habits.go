package constants

const (
	// Habit bounds
	MinWeeklyDays          = 1
	MaxWeeklyDays          = 7
	MinDailyFrequency      = 1
	MaxDailyFrequency      = 24
	MinEnergyPerCompletion = 1
	MaxEnergyPerCompletion = 3

	// Habit defaults, matching the creation form
	DefaultWeeklyDays          = 7
	DefaultDailyFrequency      = 1
	DefaultEnergyPerCompletion = 2

	// CompletedCountPerEvent is the count recorded by every completion event
	CompletedCountPerEvent = 1
)
