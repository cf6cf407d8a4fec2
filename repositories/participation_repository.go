package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beachpoint/tournament-system/models"
	"github.com/lib/pq"
)

var (
	ErrParticipationNotFound = errors.New("participation not found")
	ErrParticipationConflict = errors.New("player already participates in this tournament")
)

type ParticipationRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, participations []*models.Participation) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error)
	ListByPlayer(ctx context.Context, playerID int) ([]models.Participation, error)
	UpdateStandings(ctx context.Context, exec SQLExecutor, p *models.Participation) error
	UpdatePhasePoints(ctx context.Context, exec SQLExecutor, tournamentID, playerID, points int) error
	SwapGroups(ctx context.Context, exec SQLExecutor, tournamentID, playerAID, playerBID int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresParticipationRepository struct {
	db *sql.DB
}

func NewPostgresParticipationRepository(db *sql.DB) ParticipationRepository {
	return &postgresParticipationRepository{db: db}
}

func (r *postgresParticipationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipationRepository) CreateBatch(ctx context.Context, exec SQLExecutor, participations []*models.Participation) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO participations (player_id, tournament_id, group_index)
		VALUES ($1, $2, $3)
		RETURNING id`

	for _, p := range participations {
		err := executor.QueryRowContext(ctx, query, p.PlayerID, p.TournamentID, p.GroupIndex).Scan(&p.ID)
		if err != nil {
			return r.handleParticipationError(err)
		}
	}
	return nil
}

// ListByTournament returns the tournament's participations joined with the
// player names, ordered by group and stored position.
func (r *postgresParticipationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Participation, error) {
	query := `
		SELECT p.id, p.player_id, p.tournament_id, p.wins, p.points_for, p.points_against,
		       p.group_index, p.group_position, p.phase_points, pl.name
		FROM participations p
		JOIN players pl ON pl.id = p.player_id
		WHERE p.tournament_id = $1
		ORDER BY p.group_index ASC, p.group_position ASC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParticipations(rows)
}

func (r *postgresParticipationRepository) ListByPlayer(ctx context.Context, playerID int) ([]models.Participation, error) {
	query := `
		SELECT p.id, p.player_id, p.tournament_id, p.wins, p.points_for, p.points_against,
		       p.group_index, p.group_position, p.phase_points, pl.name
		FROM participations p
		JOIN players pl ON pl.id = p.player_id
		WHERE p.player_id = $1
		ORDER BY p.tournament_id DESC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanParticipations(rows)
}

// UpdateStandings persists the recomputed record and position of one
// participation. Callers update a whole group inside one transaction.
func (r *postgresParticipationRepository) UpdateStandings(ctx context.Context, exec SQLExecutor, p *models.Participation) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE participations
		SET wins = $1, points_for = $2, points_against = $3, group_position = $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query, p.Wins, p.PointsFor, p.PointsAgainst, p.GroupPosition, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update standings for participation %d: %w", p.ID, err)
	}
	return checkAffectedRows(result, ErrParticipationNotFound)
}

func (r *postgresParticipationRepository) UpdatePhasePoints(ctx context.Context, exec SQLExecutor, tournamentID, playerID, points int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE participations
		SET phase_points = $1
		WHERE tournament_id = $2 AND player_id = $3`

	result, err := executor.ExecContext(ctx, query, points, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to update phase points for player %d: %w", playerID, err)
	}
	return checkAffectedRows(result, ErrParticipationNotFound)
}

// SwapGroups exchanges the group assignments of two players of the same
// tournament.
func (r *postgresParticipationRepository) SwapGroups(ctx context.Context, exec SQLExecutor, tournamentID, playerAID, playerBID int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE participations
		SET group_index = CASE player_id
			WHEN $2 THEN (SELECT group_index FROM participations WHERE tournament_id = $1 AND player_id = $3)
			WHEN $3 THEN (SELECT group_index FROM participations WHERE tournament_id = $1 AND player_id = $2)
		END
		WHERE tournament_id = $1 AND player_id IN ($2, $3)`

	result, err := executor.ExecContext(ctx, query, tournamentID, playerAID, playerBID)
	if err != nil {
		return fmt.Errorf("failed to swap players %d and %d: %w", playerAID, playerBID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected != 2 {
		return ErrParticipationNotFound
	}
	return nil
}

func (r *postgresParticipationRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM participations WHERE tournament_id = $1`

	_, err := executor.ExecContext(ctx, query, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete participations of tournament %d: %w", tournamentID, err)
	}
	return nil
}

func scanParticipations(rows *sql.Rows) ([]models.Participation, error) {
	participations := make([]models.Participation, 0)
	for rows.Next() {
		var p models.Participation
		if err := rows.Scan(
			&p.ID, &p.PlayerID, &p.TournamentID, &p.Wins, &p.PointsFor, &p.PointsAgainst,
			&p.GroupIndex, &p.GroupPosition, &p.PhasePoints, &p.PlayerName,
		); err != nil {
			return nil, err
		}
		p.Net = p.PointsFor - p.PointsAgainst
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return participations, nil
}

func (r *postgresParticipationRepository) handleParticipationError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrParticipationConflict
	}
	return err
}
