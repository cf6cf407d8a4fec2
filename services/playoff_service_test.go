package services

import (
	"context"
	"testing"

	"github.com/beachpoint/tournament-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketViewFromSeededGroups(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	svc := f.playoffService()

	bracket, err := svc.Bracket(context.Background(), f.tournamentID)
	require.NoError(t, err)
	require.Len(t, bracket.Matches, 4)

	quarterfinal, err := bracket.Match(1)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseQuarterfinal, quarterfinal.Phase)
	assert.NotNil(t, quarterfinal.TeamA)
	assert.NotNil(t, quarterfinal.TeamB)
}

func TestRecordBracketTieRejected(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	svc := f.playoffService()

	_, err := svc.RecordResult(context.Background(), f.tournamentID,
		models.PhaseQuarterfinal, 1, BracketResultInput{ScoreA: 4, ScoreB: 4})
	require.ErrorIs(t, err, ErrTieNotAllowed)
	assert.Empty(t, f.bracketMatchRepo.matches)
}

func TestRecordBracketStageNotReady(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	svc := f.playoffService()

	// Semifinal before the quarterfinal is decided.
	_, err := svc.RecordResult(context.Background(), f.tournamentID,
		models.PhaseSemifinal, 2, BracketResultInput{ScoreA: 6, ScoreB: 4})
	assert.ErrorIs(t, err, ErrStageNotReady)
	assert.Empty(t, f.bracketMatchRepo.matches)
}

func TestRecordBracketWrongPhaseForGame(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	svc := f.playoffService()

	_, err := svc.RecordResult(context.Background(), f.tournamentID,
		models.PhaseFinal, 1, BracketResultInput{ScoreA: 6, ScoreB: 4})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordBracketUnknownPhase(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	svc := f.playoffService()

	_, err := svc.RecordResult(context.Background(), f.tournamentID,
		models.Phase("eighthfinal"), 1, BracketResultInput{ScoreA: 6, ScoreB: 4})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFinalizeRequiresDecidedFinal(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	svc := f.playoffService()

	_, err := svc.Finalize(context.Background(), f.tournamentID)
	assert.ErrorIs(t, err, ErrFinalNotDecided)

	tournament, err := f.tournamentRepo.GetByID(context.Background(), f.tournamentID)
	require.NoError(t, err)
	assert.False(t, tournament.Finalized)
}

func TestFinalizeAlreadyFinalized(t *testing.T) {
	f := seedTournament(t, models.Mode20)
	require.NoError(t, f.tournamentRepo.SetFinalized(context.Background(), nil, f.tournamentID))
	svc := f.playoffService()

	_, err := svc.Finalize(context.Background(), f.tournamentID)
	assert.ErrorIs(t, err, ErrTournamentFinalized)
}
