package models

import "time"

// ExportSnapshot bundles every document for backup
type ExportSnapshot struct {
	User        User              `json:"user"`
	Habits      []Habit           `json:"habits"`
	Completions []CompletionEvent `json:"completions"`
	Rewards     []Reward          `json:"rewards"`
	ExportDate  time.Time         `json:"export_date"`
}
