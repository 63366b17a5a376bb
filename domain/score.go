package domain

// Score is one leaderboard entry.
type Score struct {
	Player string `json:"player"`
	Points int    `json:"points"`
}

// Standings is the head of the leaderboard with the all-time record.
type Standings struct {
	Scores  []Score `json:"scores"`
	Players int64   `json:"players"` // Players on the leaderboard
	Record  int     `json:"record"`
}
