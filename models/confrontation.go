package models

import "time"

// Confrontation is one of the three fixed doubles matches of a group:
// two players against the other two. Scores stay nil until submitted.
type Confrontation struct {
	ID           int `json:"id" db:"id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`

	GroupIndex         int `json:"group_index" db:"group_index"`
	ConfrontationIndex int `json:"confrontation_index" db:"confrontation_index"`

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
func (c Confrontation) Decided() bool {
	return c.ScoreA != nil && c.ScoreB != nil && *c.ScoreA != *c.ScoreB
}

// Pending reports whether at least one score is missing.
func (c Confrontation) Pending() bool {
	return c.ScoreA == nil || c.ScoreB == nil
}

// TeamOf returns 'A' or 'B' for the given player, or 0 when the player
// is not part of this confrontation.
func (c Confrontation) TeamOf(playerID int) byte {
	switch playerID {
	case c.PlayerA1ID, c.PlayerA2ID:
		return 'A'
	case c.PlayerB1ID, c.PlayerB2ID:
		return 'B'
	}
	return 0
}
