package brackets

import (
	"fmt"

	"github.com/beachpoint/tournament-system/models"
)

// PhantomName is the display name of the placeholder seat substituted when
// a template slot points past the ranked lists.
const PhantomName = "Phantom Player"

// SlotSource says which ranked list a template slot draws from.
type SlotSource int

const (
	SourceWinner SlotSource = iota
	SourceRunnerUp
)

// SeedSlot addresses one player in the cross-group rankings: the rank-th
// best group winner or runner-up (0-based).
type SeedSlot struct {
	Source SlotSource
	Rank   int
}

// TeamSpec is one team of a templated match. Either both Slots are set, or
// WinnerOf names an earlier game whose winning team fills this one.
type TeamSpec struct {
	Slots    [2]SeedSlot
	WinnerOf int
}

func slots(a, b SeedSlot) TeamSpec { return TeamSpec{Slots: [2]SeedSlot{a, b}} }
func winnerOf(game int) TeamSpec   { return TeamSpec{WinnerOf: game} }
func first(rank int) SeedSlot      { return SeedSlot{Source: SourceWinner, Rank: rank} }
func second(rank int) SeedSlot     { return SeedSlot{Source: SourceRunnerUp, Rank: rank} }

// MatchTemplate is one templated bracket game.
type MatchTemplate struct {
	Game  int
	Phase models.Phase
	TeamA TeamSpec
	TeamB TeamSpec
}

// templates maps a tournament mode to its full bracket layout. Game numbers
// are 1-based and globally ordered across phases. Ranks index the
// cross-group rankings of group winners and runners-up produced by
// RankAcrossGroups.
var templates = map[models.TournamentMode][]MatchTemplate{
	models.Mode16: {
		{Game: 1, Phase: models.PhaseSemifinal, TeamA: slots(first(0), first(1)), TeamB: slots(second(2), second(3))},
		{Game: 2, Phase: models.PhaseSemifinal, TeamA: slots(first(2), first(3)), TeamB: slots(second(0), second(1))},
		{Game: 3, Phase: models.PhaseFinal, TeamA: winnerOf(1), TeamB: winnerOf(2)},
	},
	models.Mode20: {
		{Game: 1, Phase: models.PhaseQuarterfinal, TeamA: slots(second(1), second(2)), TeamB: slots(second(3), second(4))},
		{Game: 2, Phase: models.PhaseSemifinal, TeamA: slots(first(0), first(1)), TeamB: winnerOf(1)},
		{Game: 3, Phase: models.PhaseSemifinal, TeamA: slots(first(2), first(3)), TeamB: slots(first(4), second(0))},
		{Game: 4, Phase: models.PhaseFinal, TeamA: winnerOf(2), TeamB: winnerOf(3)},
	},
	models.Mode24: {
		{Game: 1, Phase: models.PhaseQuarterfinal, TeamA: slots(second(0), second(1)), TeamB: slots(second(2), second(3))},
		{Game: 2, Phase: models.PhaseQuarterfinal, TeamA: slots(first(4), first(5)), TeamB: slots(second(4), second(5))},
		{Game: 3, Phase: models.PhaseSemifinal, TeamA: slots(first(0), first(1)), TeamB: winnerOf(1)},
		{Game: 4, Phase: models.PhaseSemifinal, TeamA: slots(first(2), first(3)), TeamB: winnerOf(2)},
		{Game: 5, Phase: models.PhaseFinal, TeamA: winnerOf(3), TeamB: winnerOf(4)},
	},
	models.Mode28: {
		{Game: 1, Phase: models.PhaseQuarterfinal, TeamA: slots(first(6), second(0)), TeamB: slots(second(1), second(2))},
		{Game: 2, Phase: models.PhaseQuarterfinal, TeamA: slots(first(2), first(3)), TeamB: slots(second(5), second(6))},
		{Game: 3, Phase: models.PhaseQuarterfinal, TeamA: slots(first(4), first(5)), TeamB: slots(second(3), second(4))},
		{Game: 4, Phase: models.PhaseSemifinal, TeamA: slots(first(0), first(1)), TeamB: winnerOf(1)},
		{Game: 5, Phase: models.PhaseSemifinal, TeamA: winnerOf(2), TeamB: winnerOf(3)},
		{Game: 6, Phase: models.PhaseFinal, TeamA: winnerOf(4), TeamB: winnerOf(5)},
	},
	models.Mode32: {
		{Game: 1, Phase: models.PhaseQuarterfinal, TeamA: slots(first(0), first(1)), TeamB: slots(second(6), second(7))},
		{Game: 2, Phase: models.PhaseQuarterfinal, TeamA: slots(first(2), first(3)), TeamB: slots(second(4), second(5))},
		{Game: 3, Phase: models.PhaseQuarterfinal, TeamA: slots(first(4), first(5)), TeamB: slots(second(2), second(3))},
		{Game: 4, Phase: models.PhaseQuarterfinal, TeamA: slots(first(6), first(7)), TeamB: slots(second(0), second(1))},
		{Game: 5, Phase: models.PhaseSemifinal, TeamA: winnerOf(1), TeamB: winnerOf(2)},
		{Game: 6, Phase: models.PhaseSemifinal, TeamA: winnerOf(3), TeamB: winnerOf(4)},
		{Game: 7, Phase: models.PhaseFinal, TeamA: winnerOf(5), TeamB: winnerOf(6)},
	},
}

// Templates returns the bracket layout for a mode.
func Templates(mode models.TournamentMode) ([]MatchTemplate, error) {
	tpl, ok := templates[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	return tpl, nil
}

// DependentGames returns the games whose teams depend on the given game's
// result, directly or through a chain of winner-of references. Templates
// are ordered by game number and winner-of only points backwards, so one
// pass finds the whole closure. Sibling games of the same phase are never
// included.
func DependentGames(mode models.TournamentMode, game int) ([]int, error) {
	tpl, err := Templates(mode)
	if err != nil {
		return nil, err
	}
	affected := map[int]bool{game: true}
	var dependents []int
	for _, t := range tpl {
		if affected[t.TeamA.WinnerOf] || affected[t.TeamB.WinnerOf] {
			affected[t.Game] = true
			dependents = append(dependents, t.Game)
		}
	}
	return dependents, nil
}

// Seat is one player occupying a bracket slot. Phantom seats stand in for
// template slots that point past the ranked lists.
type Seat struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Phantom  bool   `json:"phantom,omitempty"`
}

// Team is a doubles pair.
type Team [2]Seat

func seatFor(ranked []*models.Participation, rank int) Seat {
	if rank < 0 || rank >= len(ranked) {
		return Seat{Name: PhantomName, Phantom: true}
	}
	p := ranked[rank]
	return Seat{PlayerID: p.PlayerID, Name: p.PlayerName}
}

func resolveSlot(slot SeedSlot, firsts, seconds []*models.Participation) Seat {
	switch slot.Source {
	case SourceRunnerUp:
		return seatFor(seconds, slot.Rank)
	default:
		return seatFor(firsts, slot.Rank)
	}
}
