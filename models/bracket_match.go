package models

import "time"

// Phase is an elimination stage.
type Phase string

const (
	PhaseQuarterfinal Phase = "quarterfinal"
	PhaseSemifinal    Phase = "semifinal"
	PhaseFinal        Phase = "final"
)

func (p Phase) Valid() bool {
	switch p {
	case PhaseQuarterfinal, PhaseSemifinal, PhaseFinal:
		return true
	}
	return false
}

// BracketMatch is a single-elimination match, identified by its phase
// and game number within the tournament's bracket.
type BracketMatch struct {
	ID           int   `json:"id" db:"id"`
	TournamentID int   `json:"tournament_id" db:"tournament_id"`
	Phase        Phase `json:"phase" db:"phase"`
	GameNumber   int   `json:"game_number" db:"game_number"`

	PlayerA1ID int `json:"player_a1_id" db:"player_a1_id"`
	PlayerA2ID int `json:"player_a2_id" db:"player_a2_id"`
	PlayerB1ID int `json:"player_b1_id" db:"player_b1_id"`
	PlayerB2ID int `json:"player_b2_id" db:"player_b2_id"`

	ScoreA *int `json:"score_a,omitempty" db:"score_a"`
	ScoreB *int `json:"score_b,omitempty" db:"score_b"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Decided reports whether both scores are present and not equal.
func (m BracketMatch) Decided() bool {
	return m.ScoreA != nil && m.ScoreB != nil && *m.ScoreA != *m.ScoreB
}

// WinnerIDs returns the two player ids of the winning team. It must only
// be called on a decided match.
func (m BracketMatch) WinnerIDs() [2]int {
	if *m.ScoreA > *m.ScoreB {
		return [2]int{m.PlayerA1ID, m.PlayerA2ID}
	}
	return [2]int{m.PlayerB1ID, m.PlayerB2ID}
}

// LoserIDs returns the two player ids of the losing team. It must only
// be called on a decided match.
func (m BracketMatch) LoserIDs() [2]int {
	if *m.ScoreA > *m.ScoreB {
		return [2]int{m.PlayerB1ID, m.PlayerB2ID}
	}
	return [2]int{m.PlayerA1ID, m.PlayerA2ID}
}
