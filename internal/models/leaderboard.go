package models

// LeaderboardEntry for leaderboard display
type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	OwnerID string `json:"owner_id"`

	Value float64 `json:"value"` // the metric the board is sorted by

	TimeToday    float64 `json:"time_today"`
	TimeTotal    float64 `json:"time_total"`
	ScoreWeek    int     `json:"score_week"`
	ScoreAlltime int     `json:"score_alltime"`
}

type Leaderboard struct {
	Period     string             `json:"period"`
	Entries    []LeaderboardEntry `json:"entries"`
	TotalUsers int                `json:"total_users"`
}
