package services

import (
	"context"

	"github.com/beachpoint/tournament-system/brackets"
	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
	"golang.org/x/sync/errgroup"
)

// TournamentContext is the full persisted state of one tournament, loaded
// fresh for every operation. Nothing in it outlives the request: every
// derivation (standings, bracket, points) is recomputed from these slices.
type TournamentContext struct {
	Tournament     *models.Tournament
	Participations []models.Participation
	Confrontations []models.Confrontation
	BracketMatches []models.BracketMatch
}

// loadTournamentContext fetches the tournament and its child records, the
// three child lists concurrently.
func loadTournamentContext(
	ctx context.Context,
	id int,
	tournamentRepo repositories.TournamentRepository,
	participationRepo repositories.ParticipationRepository,
	confrontationRepo repositories.ConfrontationRepository,
	bracketMatchRepo repositories.BracketMatchRepository,
) (*TournamentContext, error) {
	tournament, err := tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tc := &TournamentContext{Tournament: tournament}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tc.Participations, err = participationRepo.ListByTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		tc.Confrontations, err = confrontationRepo.ListByTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		tc.BracketMatches, err = bracketMatchRepo.ListByTournament(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tc, nil
}

// Group returns pointers to the participations of one group, in stored
// order.
func (tc *TournamentContext) Group(groupIndex int) []*models.Participation {
	group := make([]*models.Participation, 0, 4)
	for i := range tc.Participations {
		if tc.Participations[i].GroupIndex == groupIndex {
			group = append(group, &tc.Participations[i])
		}
	}
	return group
}

// GroupConfrontations returns one group's confrontations in stored order.
func (tc *TournamentContext) GroupConfrontations(groupIndex int) []models.Confrontation {
	confrontations := make([]models.Confrontation, 0, 3)
	for _, c := range tc.Confrontations {
		if c.GroupIndex == groupIndex {
			confrontations = append(confrontations, c)
		}
	}
	return confrontations
}

// GroupHasResults reports whether any confrontation of the group has a
// score recorded.
func (tc *TournamentContext) GroupHasResults(groupIndex int) bool {
	for _, c := range tc.Confrontations {
		if c.GroupIndex == groupIndex && (c.ScoreA != nil || c.ScoreB != nil) {
			return true
		}
	}
	return false
}

// firstsAndSeconds collects the group winners and runners-up and ranks each
// list across groups with the standings comparator.
func (tc *TournamentContext) firstsAndSeconds() (firsts, seconds []*models.Participation) {
	for i := range tc.Participations {
		switch tc.Participations[i].GroupPosition {
		case 1:
			firsts = append(firsts, &tc.Participations[i])
		case 2:
			seconds = append(seconds, &tc.Participations[i])
		}
	}
	return brackets.RankAcrossGroups(firsts), brackets.RankAcrossGroups(seconds)
}

// Bracket derives the elimination view from the current state.
func (tc *TournamentContext) Bracket() (*brackets.Bracket, error) {
	firsts, seconds := tc.firstsAndSeconds()
	return brackets.BuildBracket(tc.Tournament.Mode, firsts, seconds, tc.BracketMatches)
}

// Participation returns the player's participation in this tournament.
func (tc *TournamentContext) Participation(playerID int) *models.Participation {
	for i := range tc.Participations {
		if tc.Participations[i].PlayerID == playerID {
			return &tc.Participations[i]
		}
	}
	return nil
}
