package brackets

import (
	"fmt"

	"github.com/beachpoint/tournament-system/models"
)

// Match is one bracket game of the derived view. Teams are nil until the
// match's stage is reachable from the recorded scores.
type Match struct {
	Game   int          `json:"game"`
	Phase  models.Phase `json:"phase"`
	TeamA  *Team        `json:"team_a,omitempty"`
	TeamB  *Team        `json:"team_b,omitempty"`
	ScoreA *int         `json:"score_a,omitempty"`
	ScoreB *int         `json:"score_b,omitempty"`
}

// Decided reports whether both scores are present and not equal.
func (m *Match) Decided() bool {
	return m.ScoreA != nil && m.ScoreB != nil && *m.ScoreA != *m.ScoreB
}

// Winner returns the winning team of a decided match, nil otherwise.
func (m *Match) Winner() *Team {
	if !m.Decided() || m.TeamA == nil || m.TeamB == nil {
		return nil
	}
	if *m.ScoreA > *m.ScoreB {
		return m.TeamA
	}
	return m.TeamB
}

// Loser returns the losing team of a decided match, nil otherwise.
func (m *Match) Loser() *Team {
	if !m.Decided() || m.TeamA == nil || m.TeamB == nil {
		return nil
	}
	if *m.ScoreA > *m.ScoreB {
		return m.TeamB
	}
	return m.TeamA
}

// Bracket is the elimination view of one tournament, fully derived from the
// group rankings and the recorded scores. Rebuilding it from the same
// persisted state always yields the same view.
type Bracket struct {
	Mode    models.TournamentMode `json:"mode"`
	Matches []Match               `json:"matches"`
}

// Match returns the game with the given 1-based number.
func (b *Bracket) Match(game int) (*Match, error) {
	for i := range b.Matches {
		if b.Matches[i].Game == game {
			return &b.Matches[i], nil
		}
	}
	return nil, fmt.Errorf("game %d is not part of the %s bracket", game, b.Mode)
}

// Final returns the final match of the bracket.
func (b *Bracket) Final() *Match {
	for i := range b.Matches {
		if b.Matches[i].Phase == models.PhaseFinal {
			return &b.Matches[i]
		}
	}
	return nil
}

// PhaseDecided reports whether every match of the phase is decided. A phase
// with no matches in this mode counts as decided.
func (b *Bracket) PhaseDecided(phase models.Phase) bool {
	for i := range b.Matches {
		if b.Matches[i].Phase == phase && !b.Matches[i].Decided() {
			return false
		}
	}
	return true
}

// StageReady reports whether the phase's matches may be shown and scored:
// quarterfinals always, semifinals once every quarterfinal is decided, the
// final once every semifinal is decided.
func (b *Bracket) StageReady(phase models.Phase) bool {
	switch phase {
	case models.PhaseQuarterfinal:
		return true
	case models.PhaseSemifinal:
		return b.PhaseDecided(models.PhaseQuarterfinal)
	case models.PhaseFinal:
		return b.PhaseDecided(models.PhaseQuarterfinal) && b.PhaseDecided(models.PhaseSemifinal)
	}
	return false
}

// BuildBracket derives the elimination view for a tournament. firsts and
// seconds are the cross-group rankings of group winners and runners-up
// (RankAcrossGroups order); recorded holds the persisted match scores keyed
// by game number. Fails with ErrInsufficientPlayers when the ranked lists
// are shorter than the mode's template requires; a slot pointing past a
// list after that check is filled with a phantom seat so the bracket stays
// renderable.
func BuildBracket(mode models.TournamentMode, firsts, seconds []*models.Participation, recorded []models.BracketMatch) (*Bracket, error) {
	tpl, err := Templates(mode)
	if err != nil {
		return nil, err
	}
	if len(firsts) < mode.Groups() || len(seconds) < mode.Groups() {
		return nil, fmt.Errorf("%w: mode %s needs %d group winners and runners-up, got %d and %d",
			ErrInsufficientPlayers, mode, mode.Groups(), len(firsts), len(seconds))
	}

	scores := make(map[int]models.BracketMatch, len(recorded))
	for _, m := range recorded {
		scores[m.GameNumber] = m
	}

	bracket := &Bracket{Mode: mode, Matches: make([]Match, len(tpl))}
	for i, t := range tpl {
		match := Match{Game: t.Game, Phase: t.Phase}
		if rec, ok := scores[t.Game]; ok {
			match.ScoreA = rec.ScoreA
			match.ScoreB = rec.ScoreB
		}
		bracket.Matches[i] = match
	}

	// Teams resolve in game order so winner-of references always point at
	// an earlier, already-resolved match.
	for i, t := range tpl {
		bracket.Matches[i].TeamA = resolveTeam(t.TeamA, bracket, firsts, seconds)
		bracket.Matches[i].TeamB = resolveTeam(t.TeamB, bracket, firsts, seconds)
	}

	// Hide teams of stages that are not reachable yet, so an undecided
	// quarterfinal never leaks a semifinal pairing.
	for i := range bracket.Matches {
		if !bracket.StageReady(bracket.Matches[i].Phase) {
			bracket.Matches[i].TeamA = nil
			bracket.Matches[i].TeamB = nil
		}
	}
	return bracket, nil
}

func resolveTeam(spec TeamSpec, bracket *Bracket, firsts, seconds []*models.Participation) *Team {
	if spec.WinnerOf > 0 {
		source, err := bracket.Match(spec.WinnerOf)
		if err != nil {
			return nil
		}
		return source.Winner()
	}
	team := Team{
		resolveSlot(spec.Slots[0], firsts, seconds),
		resolveSlot(spec.Slots[1], firsts, seconds),
	}
	return &team
}
