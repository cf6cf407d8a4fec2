package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/beachpoint/tournament-system/brackets"
	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
)

// BracketResultInput is a score submission for one bracket game.
type BracketResultInput struct {
	ScoreA int `json:"score_a"`
	ScoreB int `json:"score_b"`
}

type PlayoffService interface {
	Bracket(ctx context.Context, tournamentID int) (*brackets.Bracket, error)
	RecordResult(ctx context.Context, tournamentID int, phase models.Phase, game int, input BracketResultInput) (*brackets.Bracket, error)
	Finalize(ctx context.Context, tournamentID int) (*TournamentContext, error)
}

type playoffService struct {
	db                *sql.DB
	tournamentRepo    repositories.TournamentRepository
	participationRepo repositories.ParticipationRepository
	confrontationRepo repositories.ConfrontationRepository
	bracketMatchRepo  repositories.BracketMatchRepository
	hub               *brackets.Hub
	logger            *slog.Logger
}

func NewPlayoffService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	participationRepo repositories.ParticipationRepository,
	confrontationRepo repositories.ConfrontationRepository,
	bracketMatchRepo repositories.BracketMatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) PlayoffService {
	return &playoffService{
		db:                db,
		tournamentRepo:    tournamentRepo,
		participationRepo: participationRepo,
		confrontationRepo: confrontationRepo,
		bracketMatchRepo:  bracketMatchRepo,
		hub:               hub,
		logger:            logger,
	}
}

// Bracket derives the elimination view from the stored group results and
// match scores.
func (s *playoffService) Bracket(ctx context.Context, tournamentID int) (*brackets.Bracket, error) {
	tc, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return tc.Bracket()
}

// RecordResult stores a bracket game's score with the teams the template
// resolves for it. Submitting a game whose stage is not reached yet, or
// whose teams depend on an undecided earlier game, is rejected.
// Resubmitting an already decided game resets the games whose pairings
// derive from it first, so downstream results never refer to superseded
// pairings. Games of the same phase that do not depend on it keep their
// results.
func (s *playoffService) RecordResult(ctx context.Context, tournamentID int, phase models.Phase, game int, input BracketResultInput) (*brackets.Bracket, error) {
	if !phase.Valid() {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrValidation, phase)
	}
	if input.ScoreA < 0 || input.ScoreB < 0 {
		return nil, ErrNegativeScore
	}
	if input.ScoreA == input.ScoreB {
		return nil, ErrTieNotAllowed
	}

	tc, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tc.Tournament.Finalized {
		return nil, ErrTournamentFinalized
	}

	bracket, err := tc.Bracket()
	if err != nil {
		return nil, err
	}
	match, err := bracket.Match(game)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchNotFound, err)
	}
	if match.Phase != phase {
		return nil, fmt.Errorf("%w: game %d belongs to the %s phase", ErrValidation, game, match.Phase)
	}
	if !bracket.StageReady(phase) || match.TeamA == nil || match.TeamB == nil {
		return nil, ErrStageNotReady
	}

	hadResult := match.ScoreA != nil || match.ScoreB != nil
	var dependents []int
	if hadResult {
		if dependents, err = brackets.DependentGames(tc.Tournament.Mode, game); err != nil {
			return nil, err
		}
	}
	scoreA, scoreB := input.ScoreA, input.ScoreB
	record := &models.BracketMatch{
		TournamentID: tournamentID,
		Phase:        phase,
		GameNumber:   game,
		PlayerA1ID:   match.TeamA[0].PlayerID,
		PlayerA2ID:   match.TeamA[1].PlayerID,
		PlayerB1ID:   match.TeamB[0].PlayerID,
		PlayerB2ID:   match.TeamB[1].PlayerID,
		ScoreA:       &scoreA,
		ScoreB:       &scoreB,
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.bracketMatchRepo.DeleteGames(ctx, tx, tournamentID, dependents); err != nil {
			return err
		}
		return s.bracketMatchRepo.Upsert(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("bracket result recorded",
		"tournament_id", tournamentID, "phase", string(phase), "game", game,
		"score_a", scoreA, "score_b", scoreB)

	tc, err = s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	bracket, err = tc.Bracket()
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), brackets.EventBracketUpdated, bracket)
	return bracket, nil
}

// Finalize closes the tournament once the final is decided: the finalized
// flag and every bracket player's phase points are written in one
// transaction, after which the tournament is immutable.
func (s *playoffService) Finalize(ctx context.Context, tournamentID int) (*TournamentContext, error) {
	tc, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tc.Tournament.Finalized {
		return nil, ErrTournamentFinalized
	}

	bracket, err := tc.Bracket()
	if err != nil {
		return nil, err
	}
	points, err := brackets.PhasePoints(bracket)
	if err != nil {
		if errors.Is(err, brackets.ErrFinalNotDecided) {
			return nil, ErrFinalNotDecided
		}
		return nil, err
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.tournamentRepo.SetFinalized(ctx, tx, tournamentID); err != nil {
			return err
		}
		for playerID, value := range points {
			if err := s.participationRepo.UpdatePhasePoints(ctx, tx, tournamentID, playerID, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logArgs := []any{"tournament_id", tournamentID, "awarded_players", len(points)}
	for _, m := range tc.BracketMatches {
		if m.Phase == models.PhaseFinal && m.Decided() {
			champions, runnersUp := m.WinnerIDs(), m.LoserIDs()
			logArgs = append(logArgs, "champion_ids", champions[:], "runner_up_ids", runnersUp[:])
			break
		}
	}
	s.logger.Info("tournament finalized", logArgs...)

	tc, err = s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), brackets.EventTournamentFinalized, tc.Tournament)
	return tc, nil
}

func (s *playoffService) load(ctx context.Context, tournamentID int) (*TournamentContext, error) {
	tc, err := loadTournamentContext(ctx, tournamentID,
		s.tournamentRepo, s.participationRepo, s.confrontationRepo, s.bracketMatchRepo)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tc, nil
}
