package models

// RankingEntry is one row of the global ranking. Entries with equal
// points share the same rank.
type RankingEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    int    `json:"player_id"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Tournaments int    `json:"tournaments"`
}

// PlayerProfile aggregates a player's results across tournaments.
type PlayerProfile struct {
	Player      Player         `json:"player"`
	Rank        int            `json:"rank"`
	Points      int            `json:"points"`
	TotalGames  int            `json:"total_games"`
	TotalWins   int            `json:"total_wins"`
	Tournaments []PlayerResult `json:"tournaments"`
}

// PlayerResult is a player's outcome in a single tournament. Games counts
// the three group matches plus every bracket match played; Wins is group
// wins plus bracket wins.
type PlayerResult struct {
	TournamentID   int    `json:"tournament_id"`
	TournamentName string `json:"tournament_name"`
	Games          int    `json:"games"`
	Wins           int    `json:"wins"`
	GroupWins      int    `json:"group_wins"`
	BracketWins    int    `json:"bracket_wins"`
	PhasePoints    int    `json:"phase_points"`
	Finalized      bool   `json:"finalized"`
}
