package services

import (
	"context"
	"errors"
	"strings"

	"github.com/beachpoint/tournament-system/models"
	"github.com/beachpoint/tournament-system/repositories"
)

const (
	searchLimit = 20

	// Every participant plays exactly three group matches.
	groupGames = 3
)

type PlayerService interface {
	Search(ctx context.Context, query string) ([]models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Profile(ctx context.Context, name string) (*models.PlayerProfile, error)
}

type playerService struct {
	playerRepo        repositories.PlayerRepository
	participationRepo repositories.ParticipationRepository
	bracketMatchRepo  repositories.BracketMatchRepository
	rankingRepo       repositories.RankingRepository
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	participationRepo repositories.ParticipationRepository,
	bracketMatchRepo repositories.BracketMatchRepository,
	rankingRepo repositories.RankingRepository,
) PlayerService {
	return &playerService{
		playerRepo:        playerRepo,
		participationRepo: participationRepo,
		bracketMatchRepo:  bracketMatchRepo,
		rankingRepo:       rankingRepo,
	}
}

func (s *playerService) Search(ctx context.Context, query string) ([]models.Player, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, ErrSearchTooShort
	}
	return s.playerRepo.SearchByName(ctx, query, searchLimit)
}

func (s *playerService) List(ctx context.Context) ([]models.Player, error) {
	return s.playerRepo.List(ctx)
}

// Profile returns a player's cross-tournament history together with their
// current rank and point total. Each tournament line carries the group
// record plus the bracket matches played and won there.
func (s *playerService) Profile(ctx context.Context, name string) (*models.PlayerProfile, error) {
	player, err := s.playerRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	results, err := s.rankingRepo.PlayerResults(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	participations, err := s.participationRepo.ListByPlayer(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	matches, err := s.bracketMatchRepo.ListByPlayer(ctx, player.ID)
	if err != nil {
		return nil, err
	}

	groupWins := make(map[int]int, len(participations))
	for _, p := range participations {
		groupWins[p.TournamentID] = p.Wins
	}
	bracketGames := make(map[int]int)
	bracketWins := make(map[int]int)
	for _, m := range matches {
		bracketGames[m.TournamentID]++
		if !m.Decided() {
			continue
		}
		winners := m.WinnerIDs()
		if winners[0] == player.ID || winners[1] == player.ID {
			bracketWins[m.TournamentID]++
		}
	}

	profile := &models.PlayerProfile{Player: *player}
	for _, row := range results {
		games := groupGames + bracketGames[row.TournamentID]
		wins := groupWins[row.TournamentID] + bracketWins[row.TournamentID]
		profile.Tournaments = append(profile.Tournaments, models.PlayerResult{
			TournamentID:   row.TournamentID,
			TournamentName: row.TournamentName,
			Games:          games,
			Wins:           wins,
			GroupWins:      groupWins[row.TournamentID],
			BracketWins:    bracketWins[row.TournamentID],
			PhasePoints:    row.PhasePoints,
			Finalized:      row.Finalized,
		})
		profile.TotalGames += games
		profile.TotalWins += wins
	}

	ranking, err := s.rankingRepo.AggregatePoints(ctx)
	if err != nil {
		return nil, err
	}
	for _, entry := range assignRanks(ranking) {
		if entry.PlayerID == player.ID {
			profile.Rank = entry.Rank
			profile.Points = entry.Points
			break
		}
	}
	return profile, nil
}
