package models

import "time"

// SkippedUser records a stat row excluded from a cycle before computation.
type SkippedUser struct {
	OwnerID string `json:"owner_id"`
	Reason  string `json:"reason"`
}

// FailedUser records a persistence failure for one user. The cycle keeps
// going for everyone else.
type FailedUser struct {
	OwnerID string `json:"owner_id"`
	Error   string `json:"error"`
}

// CycleReport is the observable outcome of one leaderboard cycle. Every user
// loaded at cycle start appears in exactly one of Succeeded, Skipped or
// Failed.
type CycleReport struct {
	Date       string        `json:"date"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Succeeded  []string      `json:"succeeded"`
	Skipped    []SkippedUser `json:"skipped"`
	Failed     []FailedUser  `json:"failed"`
	// Changed counts how many records actually needed a write.
	Changed int `json:"changed"`
}
