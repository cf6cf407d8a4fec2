package models

// Participation is one player's record within one tournament. It is
// created when the tournament is drawn, mutated while group and bracket
// results arrive and frozen once the tournament is finalized.
type Participation struct {
	ID           int `json:"id" db:"id"`
	PlayerID     int `json:"player_id" db:"player_id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`

	Wins          int `json:"wins" db:"wins"`
	PointsFor     int `json:"points_for" db:"points_for"`
	PointsAgainst int `json:"points_against" db:"points_against"`
	Net           int `json:"net" db:"net"`
	GroupIndex    int `json:"group_index" db:"group_index"`
	GroupPosition int `json:"group_position" db:"group_position"`

	// PhasePoints is the single ranking value earned in this tournament,
	// assigned at finalization (0, 30, 50, 75 or 125).
	PhasePoints int `json:"phase_points" db:"phase_points"`

	// PlayerName is joined in by the repository for display.
	PlayerName string `json:"player_name,omitempty" db:"-"`
}
