package brackets

import "github.com/beachpoint/tournament-system/models"

// Points awarded for the furthest phase a player reached. A later phase
// supersedes an earlier one, never adds to it.
const (
	PointsQuarterfinal = 30
	PointsSemifinal    = 50
	PointsRunnerUp     = 75
	PointsChampion     = 125
)

// PhasePoints computes, per player, the point value of the furthest phase
// reached in the bracket. It requires a decided final; otherwise the
// tournament cannot be accounted yet. Phantom seats earn nothing.
func PhasePoints(bracket *Bracket) (map[int]int, error) {
	final := bracket.Final()
	if final == nil || !final.Decided() || final.Winner() == nil {
		return nil, ErrFinalNotDecided
	}

	points := make(map[int]int)
	award := func(team *Team, value int) {
		if team == nil {
			return
		}
		for _, seat := range team {
			if seat.Phantom || seat.PlayerID == 0 {
				continue
			}
			points[seat.PlayerID] = value
		}
	}

	// Phase order matters: later awards overwrite earlier ones.
	for _, phase := range []models.Phase{models.PhaseQuarterfinal, models.PhaseSemifinal} {
		value := PointsQuarterfinal
		if phase == models.PhaseSemifinal {
			value = PointsSemifinal
		}
		for i := range bracket.Matches {
			if bracket.Matches[i].Phase != phase {
				continue
			}
			award(bracket.Matches[i].TeamA, value)
			award(bracket.Matches[i].TeamB, value)
		}
	}
	award(final.Loser(), PointsRunnerUp)
	award(final.Winner(), PointsChampion)
	return points, nil
}
