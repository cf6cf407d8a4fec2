package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/beachpoint/tournament-system/brackets"
	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
)

type RankingService interface {
	GlobalRanking(ctx context.Context) ([]models.RankingEntry, error)
	Top(ctx context.Context, n int) ([]models.RankingEntry, error)
	ApplyTournamentPoints(ctx context.Context, tournamentID int) error
}

type rankingService struct {
	db                *sql.DB
	rankingRepo       repositories.RankingRepository
	tournamentRepo    repositories.TournamentRepository
	participationRepo repositories.ParticipationRepository
	confrontationRepo repositories.ConfrontationRepository
	bracketMatchRepo  repositories.BracketMatchRepository
	logger            *slog.Logger
}

func NewRankingService(
	db *sql.DB,
	rankingRepo repositories.RankingRepository,
	tournamentRepo repositories.TournamentRepository,
	participationRepo repositories.ParticipationRepository,
	confrontationRepo repositories.ConfrontationRepository,
	bracketMatchRepo repositories.BracketMatchRepository,
	logger *slog.Logger,
) RankingService {
	return &rankingService{
		db:                db,
		rankingRepo:       rankingRepo,
		tournamentRepo:    tournamentRepo,
		participationRepo: participationRepo,
		confrontationRepo: confrontationRepo,
		bracketMatchRepo:  bracketMatchRepo,
		logger:            logger,
	}
}

// GlobalRanking sums phase points per player across finalized tournaments
// and assigns shared rank numbers: equal totals share a rank, and the next
// distinct total advances the rank by the actual row offset.
func (s *rankingService) GlobalRanking(ctx context.Context) ([]models.RankingEntry, error) {
	rows, err := s.rankingRepo.AggregatePoints(ctx)
	if err != nil {
		return nil, err
	}
	return assignRanks(rows), nil
}

func (s *rankingService) Top(ctx context.Context, n int) ([]models.RankingEntry, error) {
	ranking, err := s.GlobalRanking(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking, nil
}

// ApplyTournamentPoints recomputes and rewrites one finalized tournament's
// phase points from its bracket. Finalization already writes the points;
// this repairs them when bracket rows were fixed up after the fact.
func (s *rankingService) ApplyTournamentPoints(ctx context.Context, tournamentID int) error {
	tc, err := loadTournamentContext(ctx, tournamentID,
		s.tournamentRepo, s.participationRepo, s.confrontationRepo, s.bracketMatchRepo)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if !tc.Tournament.Finalized {
		return ErrTournamentNotFinalized
	}

	bracket, err := tc.Bracket()
	if err != nil {
		return err
	}
	points, err := brackets.PhasePoints(bracket)
	if err != nil {
		if errors.Is(err, brackets.ErrFinalNotDecided) {
			return ErrFinalNotDecided
		}
		return err
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		for playerID, value := range points {
			if err := s.participationRepo.UpdatePhasePoints(ctx, tx, tournamentID, playerID, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("tournament points reapplied",
		"tournament_id", tournamentID, "awarded_players", len(points))
	return nil
}

func assignRanks(rows []repositories.RankingRow) []models.RankingEntry {
	entries := make([]models.RankingEntry, len(rows))
	for i, row := range rows {
		rank := i + 1
		if i > 0 && row.Points == rows[i-1].Points {
			rank = entries[i-1].Rank
		}
		entries[i] = models.RankingEntry{
			Rank:        rank,
			PlayerID:    row.PlayerID,
			Name:        row.Name,
			Points:      row.Points,
			Tournaments: row.Tournaments,
		}
	}
	return entries
}
