package services

import (
	"context"
	"testing"

	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newPlayerService(playerRepo *fakePlayerRepo, participationRepo *fakeParticipationRepo,
	bracketMatchRepo *fakeBracketMatchRepo, rankingRepo *fakeRankingRepo) PlayerService {
	return NewPlayerService(playerRepo, participationRepo, bracketMatchRepo, rankingRepo)
}

func TestSearchRejectsShortQueries(t *testing.T) {
	svc := newPlayerService(newFakePlayerRepo(), &fakeParticipationRepo{}, &fakeBracketMatchRepo{}, &fakeRankingRepo{})

	for _, query := range []string{"", " ", "a", " b "} {
		_, err := svc.Search(context.Background(), query)
		assert.ErrorIs(t, err, ErrSearchTooShort, "query %q", query)
	}
}

func TestSearchMatchesByName(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	for _, name := range []string{"Ana Souza", "Mariana Lima", "Pedro Costa"} {
		_, err := playerRepo.GetOrCreateByName(context.Background(), nil, name)
		require.NoError(t, err)
	}
	svc := newPlayerService(playerRepo, &fakeParticipationRepo{}, &fakeBracketMatchRepo{}, &fakeRankingRepo{})

	found, err := svc.Search(context.Background(), "ana")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search(context.Background(), "costa")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Pedro Costa", found[0].Name)
}

func TestProfileUnknownPlayer(t *testing.T) {
	svc := newPlayerService(newFakePlayerRepo(), &fakeParticipationRepo{}, &fakeBracketMatchRepo{}, &fakeRankingRepo{})

	_, err := svc.Profile(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

// A semifinalist's line counts the three group matches plus the bracket
// matches played, and splits wins between group play and the bracket.
func TestProfileCountsBracketWins(t *testing.T) {
	playerRepo := newFakePlayerRepo()
	ana, err := playerRepo.GetOrCreateByName(context.Background(), nil, "Ana Souza")
	require.NoError(t, err)

	participationRepo := &fakeParticipationRepo{participations: []models.Participation{
		{TournamentID: 1, PlayerID: ana.ID, Wins: 2, GroupIndex: 0, GroupPosition: 1},
	}}
	// Ana wins her quarterfinal and loses the semifinal.
	bracketMatchRepo := &fakeBracketMatchRepo{matches: []models.BracketMatch{
		{TournamentID: 1, Phase: models.PhaseQuarterfinal, GameNumber: 1,
			PlayerA1ID: ana.ID, PlayerA2ID: 7, PlayerB1ID: 8, PlayerB2ID: 9,
			ScoreA: intPtr(6), ScoreB: intPtr(3)},
		{TournamentID: 1, Phase: models.PhaseSemifinal, GameNumber: 2,
			PlayerA1ID: 10, PlayerA2ID: 11, PlayerB1ID: ana.ID, PlayerB2ID: 7,
			ScoreA: intPtr(6), ScoreB: intPtr(4)},
	}}
	rankingRepo := &fakeRankingRepo{
		rows: []repositories.RankingRow{
			{PlayerID: ana.ID, Name: ana.Name, Points: 50, Tournaments: 1},
		},
		results: map[int][]repositories.PlayerResultRow{
			ana.ID: {
				{TournamentID: 1, TournamentName: "Etapa 1", PhasePoints: 50, Finalized: true},
			},
		},
	}
	svc := newPlayerService(playerRepo, participationRepo, bracketMatchRepo, rankingRepo)

	profile, err := svc.Profile(context.Background(), " Ana Souza ")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, profile.Player.ID)
	assert.Equal(t, 1, profile.Rank)
	assert.Equal(t, 50, profile.Points)

	require.Len(t, profile.Tournaments, 1)
	line := profile.Tournaments[0]
	assert.Equal(t, 5, line.Games)
	assert.Equal(t, 3, line.Wins)
	assert.Equal(t, 2, line.GroupWins)
	assert.Equal(t, 1, line.BracketWins)
	assert.Equal(t, 50, line.PhasePoints)
	assert.True(t, line.Finalized)

	assert.Equal(t, 5, profile.TotalGames)
	assert.Equal(t, 3, profile.TotalWins)
}
