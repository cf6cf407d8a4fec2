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

// GroupResultInput is one confrontation result submission.
type GroupResultInput struct {
	ConfrontationIndex int `json:"confrontation_index"`
	ScoreA             int `json:"score_a"`
	ScoreB             int `json:"score_b"`
}

// SwapInput exchanges two players between groups before any results exist.
type SwapInput struct {
	PlayerAID int `json:"player_a_id"`
	PlayerBID int `json:"player_b_id"`
}

type GroupService interface {
	RecordResult(ctx context.Context, tournamentID, groupIndex int, input GroupResultInput) (*TournamentContext, error)
	RecordAll(ctx context.Context, tournamentID, groupIndex int, inputs []GroupResultInput) (*TournamentContext, error)
	SwapPlayers(ctx context.Context, tournamentID int, input SwapInput) (*TournamentContext, error)
}

type groupService struct {
	db                *sql.DB
	tournamentRepo    repositories.TournamentRepository
	participationRepo repositories.ParticipationRepository
	confrontationRepo repositories.ConfrontationRepository
	bracketMatchRepo  repositories.BracketMatchRepository
	hub               *brackets.Hub
	logger            *slog.Logger
}

func NewGroupService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	participationRepo repositories.ParticipationRepository,
	confrontationRepo repositories.ConfrontationRepository,
	bracketMatchRepo repositories.BracketMatchRepository,
	hub *brackets.Hub,
	logger *slog.Logger,
) GroupService {
	return &groupService{
		db:                db,
		tournamentRepo:    tournamentRepo,
		participationRepo: participationRepo,
		confrontationRepo: confrontationRepo,
		bracketMatchRepo:  bracketMatchRepo,
		hub:               hub,
		logger:            logger,
	}
}

// RecordResult stores one confrontation score and recomputes the group's
// standings, all inside one transaction. Nothing is written when the
// submission is invalid, so a rejected tie leaves the stored state exactly
// as it was.
func (s *groupService) RecordResult(ctx context.Context, tournamentID, groupIndex int, input GroupResultInput) (*TournamentContext, error) {
	return s.record(ctx, tournamentID, groupIndex, []GroupResultInput{input})
}

// RecordAll stores several confrontation results of one group at once.
// Submitting fewer than three is allowed; standings reflect whatever is
// decided so far.
func (s *groupService) RecordAll(ctx context.Context, tournamentID, groupIndex int, inputs []GroupResultInput) (*TournamentContext, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no results submitted", ErrValidation)
	}
	return s.record(ctx, tournamentID, groupIndex, inputs)
}

func (s *groupService) record(ctx context.Context, tournamentID, groupIndex int, inputs []GroupResultInput) (*TournamentContext, error) {
	tc, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tc.Tournament.Finalized {
		return nil, ErrTournamentFinalized
	}
	if groupIndex < 0 || groupIndex >= tc.Tournament.Mode.Groups() {
		return nil, fmt.Errorf("%w: group %d does not exist", ErrValidation, groupIndex)
	}

	for _, input := range inputs {
		if input.ScoreA < 0 || input.ScoreB < 0 {
			return nil, ErrNegativeScore
		}
		if input.ScoreA == input.ScoreB {
			return nil, ErrTieNotAllowed
		}
	}

	// Resolve every submitted confrontation before touching anything, so a
	// bad index leaves the stored state exactly as it was.
	targets := make([]*models.Confrontation, len(inputs))
	for i, input := range inputs {
		stored, err := s.confrontationRepo.GetByGroupAndIndex(ctx, tournamentID, groupIndex, input.ConfrontationIndex)
		if err != nil {
			if errors.Is(err, repositories.ErrConfrontationNotFound) {
				return nil, fmt.Errorf("%w: confrontation %d of group %d",
					ErrMatchNotFound, input.ConfrontationIndex, groupIndex)
			}
			return nil, err
		}
		targets[i] = stored
	}

	confrontations := tc.GroupConfrontations(groupIndex)
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		for i, input := range inputs {
			scoreA, scoreB := input.ScoreA, input.ScoreB
			if err := s.confrontationRepo.UpdateScores(ctx, tx, targets[i].ID, scoreA, scoreB); err != nil {
				return err
			}
			for j := range confrontations {
				if confrontations[j].ID == targets[i].ID {
					confrontations[j].ScoreA, confrontations[j].ScoreB = &scoreA, &scoreB
				}
			}
		}

		group := tc.Group(groupIndex)
		brackets.ComputeStandings(group, confrontations)
		for _, p := range group {
			if err := s.participationRepo.UpdateStandings(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group results recorded",
		"tournament_id", tournamentID, "group", groupIndex, "results", len(inputs))

	tc, err = s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), brackets.EventStandingsUpdated, tc.Participations)
	return tc, nil
}

// SwapPlayers exchanges two players between their groups. Allowed only
// while neither group has a recorded result, since standings and fixtures
// would otherwise refer to the wrong seats.
func (s *groupService) SwapPlayers(ctx context.Context, tournamentID int, input SwapInput) (*TournamentContext, error) {
	tc, err := s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tc.Tournament.Finalized {
		return nil, ErrTournamentFinalized
	}
	if input.PlayerAID == input.PlayerBID {
		return nil, fmt.Errorf("%w: cannot swap a player with themselves", ErrValidation)
	}

	pa := tc.Participation(input.PlayerAID)
	pb := tc.Participation(input.PlayerBID)
	if pa == nil || pb == nil {
		return nil, ErrPlayerNotFound
	}
	if pa.GroupIndex == pb.GroupIndex {
		return nil, fmt.Errorf("%w: players are in the same group", ErrValidation)
	}
	if tc.GroupHasResults(pa.GroupIndex) || tc.GroupHasResults(pb.GroupIndex) {
		return nil, ErrGroupResultsExist
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.participationRepo.SwapGroups(ctx, tx, tournamentID, input.PlayerAID, input.PlayerBID); err != nil {
			return err
		}
		if err := s.confrontationRepo.ReplacePlayer(ctx, tx, tournamentID, pa.GroupIndex, input.PlayerAID, input.PlayerBID); err != nil {
			return err
		}
		return s.confrontationRepo.ReplacePlayer(ctx, tx, tournamentID, pb.GroupIndex, input.PlayerBID, input.PlayerAID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("players swapped",
		"tournament_id", tournamentID,
		"player_a_id", input.PlayerAID, "player_b_id", input.PlayerBID)

	tc, err = s.load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), brackets.EventStandingsUpdated, tc.Participations)
	return tc, nil
}

func (s *groupService) load(ctx context.Context, tournamentID int) (*TournamentContext, error) {
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
