package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/beachpoint/tournament-system/brackets"
	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
	"github.com/beachpoint/tournament-system/storage"
	"github.com/google/uuid"
)

// DrawInput is the request to create a tournament.
type DrawInput struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Seeds   []string `json:"seeds"`
}

type TournamentService interface {
	Draw(ctx context.Context, input DrawInput) (*TournamentContext, error)
	Get(ctx context.Context, id int) (*TournamentContext, error)
	GetInProgress(ctx context.Context) (*TournamentContext, error)
	List(ctx context.Context) ([]models.Tournament, error)
	Cancel(ctx context.Context, id int) error
	UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Tournament, error)
}

type tournamentService struct {
	db                *sql.DB
	tournamentRepo    repositories.TournamentRepository
	playerRepo        repositories.PlayerRepository
	participationRepo repositories.ParticipationRepository
	confrontationRepo repositories.ConfrontationRepository
	bracketMatchRepo  repositories.BracketMatchRepository
	uploader          storage.FileUploader
	logger            *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	participationRepo repositories.ParticipationRepository,
	confrontationRepo repositories.ConfrontationRepository,
	bracketMatchRepo repositories.BracketMatchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:                db,
		tournamentRepo:    tournamentRepo,
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		confrontationRepo: confrontationRepo,
		bracketMatchRepo:  bracketMatchRepo,
		uploader:          uploader,
		logger:            logger,
	}
}

// Draw creates a tournament: validates the single-in-progress rule, splits
// the players into groups and persists players, participations and the
// round-robin fixtures in one transaction.
func (s *tournamentService) Draw(ctx context.Context, input DrawInput) (*TournamentContext, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidation)
	}
	players, err := normalizeNames(input.Players)
	if err != nil {
		return nil, err
	}
	seeds, err := normalizeNames(input.Seeds)
	if err != nil {
		return nil, err
	}

	mode, err := models.ParseTournamentMode(len(players))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if _, err := s.tournamentRepo.GetInProgress(ctx); err == nil {
		return nil, ErrTournamentInProgress
	} else if !errors.Is(err, repositories.ErrNoTournamentInProgress) {
		return nil, err
	}

	groups, err := brackets.ComposeGroups(players, seeds, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	tournament := &models.Tournament{Name: name, Mode: mode}
	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
			if errors.Is(err, repositories.ErrTournamentNameConflict) {
				return fmt.Errorf("%w: tournament %q already exists", ErrValidation, name)
			}
			return err
		}

		var participations []*models.Participation
		var confrontations []*models.Confrontation
		for groupIndex, group := range groups {
			var ids [4]int
			for seat, playerName := range group {
				player, err := s.playerRepo.GetOrCreateByName(ctx, tx, playerName)
				if err != nil {
					return err
				}
				ids[seat] = player.ID
				participations = append(participations, &models.Participation{
					PlayerID:     player.ID,
					TournamentID: tournament.ID,
					GroupIndex:   groupIndex,
				})
			}
			fixtures := brackets.GroupConfrontations(ids)
			for i := range fixtures {
				fixtures[i].TournamentID = tournament.ID
				fixtures[i].GroupIndex = groupIndex
				confrontations = append(confrontations, &fixtures[i])
			}
		}

		if err := s.participationRepo.CreateBatch(ctx, tx, participations); err != nil {
			return err
		}
		return s.confrontationRepo.CreateBatch(ctx, tx, confrontations)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("tournament drawn",
		"tournament_id", tournament.ID, "name", name, "mode", mode.String())
	return s.Get(ctx, tournament.ID)
}

func (s *tournamentService) Get(ctx context.Context, id int) (*TournamentContext, error) {
	tc, err := loadTournamentContext(ctx, id,
		s.tournamentRepo, s.participationRepo, s.confrontationRepo, s.bracketMatchRepo)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	s.populateLogoURL(tc.Tournament)
	return tc, nil
}

func (s *tournamentService) GetInProgress(ctx context.Context) (*TournamentContext, error) {
	tournament, err := s.tournamentRepo.GetInProgress(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoTournamentInProgress) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.Get(ctx, tournament.ID)
}

// List returns every tournament, finalized ones decorated with their
// champions and the final score.
func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	finals, err := s.bracketMatchRepo.ListFinals(ctx)
	if err != nil {
		return nil, err
	}

	finalByTournament := make(map[int]repositories.FinalRow, len(finals))
	for _, f := range finals {
		finalByTournament[f.TournamentID] = f
	}
	for i := range tournaments {
		s.populateLogoURL(&tournaments[i])
		f, ok := finalByTournament[tournaments[i].ID]
		if !ok || f.ScoreA == nil || f.ScoreB == nil || *f.ScoreA == *f.ScoreB {
			continue
		}
		champions, runnersUp := f.TeamA[:], f.TeamB[:]
		scoreHigh, scoreLow := *f.ScoreA, *f.ScoreB
		if *f.ScoreB > *f.ScoreA {
			champions, runnersUp = f.TeamB[:], f.TeamA[:]
			scoreHigh, scoreLow = *f.ScoreB, *f.ScoreA
		}
		finalScore := fmt.Sprintf("%d x %d", scoreHigh, scoreLow)
		tournaments[i].Champions = champions
		tournaments[i].RunnersUp = runnersUp
		tournaments[i].FinalScore = &finalScore
	}
	return tournaments, nil
}

// Cancel deletes a non-finalized tournament with all of its child records.
func (s *tournamentService) Cancel(ctx context.Context, id int) error {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}
	if tournament.Finalized {
		return ErrTournamentFinalized
	}

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.bracketMatchRepo.DeleteByTournament(ctx, tx, id); err != nil {
			return err
		}
		if err := s.confrontationRepo.DeleteByTournament(ctx, tx, id); err != nil {
			return err
		}
		if err := s.participationRepo.DeleteByTournament(ctx, tx, id); err != nil {
			return err
		}
		return s.tournamentRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	if tournament.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *tournament.LogoKey); err != nil {
			s.logger.Warn("failed to delete tournament logo", "tournament_id", id, "error", err)
		}
	}
	s.logger.Info("tournament cancelled", "tournament_id", id, "name", tournament.Name)
	return nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id int, contentType string, file io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: logo storage is not configured", ErrValidation)
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported logo content type %q", ErrValidation, contentType)
	}

	key := fmt.Sprintf("tournaments/%d/logo_%s%s", id, uuid.NewString(), ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	oldKey := tournament.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}
	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous logo", "tournament_id", id, "error", err)
		}
	}

	tournament.LogoKey = &result.Key
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t.LogoKey == nil || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
		t.LogoURL = &url
	}
}

func normalizeNames(names []string) ([]string, error) {
	normalized := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: empty player name", ErrValidation)
		}
		if seen[trimmed] {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrValidation, trimmed)
		}
		seen[trimmed] = true
		normalized = append(normalized, trimmed)
	}
	return normalized, nil
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	}
	return ""
}
