package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beachpoint/tournament-system/models"
)

var ErrConfrontationNotFound = errors.New("confrontation not found")

type ConfrontationRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, confrontations []*models.Confrontation) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Confrontation, error)
	GetByGroupAndIndex(ctx context.Context, tournamentID, groupIndex, confrontationIndex int) (*models.Confrontation, error)
	UpdateScores(ctx context.Context, exec SQLExecutor, id, scoreA, scoreB int) error
	ReplacePlayer(ctx context.Context, exec SQLExecutor, tournamentID, groupIndex, oldPlayerID, newPlayerID int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresConfrontationRepository struct {
	db *sql.DB
}

func NewPostgresConfrontationRepository(db *sql.DB) ConfrontationRepository {
	return &postgresConfrontationRepository{db: db}
}

func (r *postgresConfrontationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresConfrontationRepository) CreateBatch(ctx context.Context, exec SQLExecutor, confrontations []*models.Confrontation) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO confrontations (
			tournament_id, group_index, confrontation_index,
			player_a1_id, player_a2_id, player_b1_id, player_b2_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	for _, c := range confrontations {
		err := executor.QueryRowContext(ctx, query,
			c.TournamentID, c.GroupIndex, c.ConfrontationIndex,
			c.PlayerA1ID, c.PlayerA2ID, c.PlayerB1ID, c.PlayerB2ID,
		).Scan(&c.ID, &c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create confrontation %d of group %d: %w",
				c.ConfrontationIndex, c.GroupIndex, err)
		}
	}
	return nil
}

func (r *postgresConfrontationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Confrontation, error) {
	query := `
		SELECT id, tournament_id, group_index, confrontation_index,
		       player_a1_id, player_a2_id, player_b1_id, player_b2_id,
		       score_a, score_b, created_at, updated_at
		FROM confrontations
		WHERE tournament_id = $1
		ORDER BY group_index ASC, confrontation_index ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	confrontations := make([]models.Confrontation, 0)
	for rows.Next() {
		var c models.Confrontation
		if err := rows.Scan(
			&c.ID, &c.TournamentID, &c.GroupIndex, &c.ConfrontationIndex,
			&c.PlayerA1ID, &c.PlayerA2ID, &c.PlayerB1ID, &c.PlayerB2ID,
			&c.ScoreA, &c.ScoreB, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		confrontations = append(confrontations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return confrontations, nil
}

func (r *postgresConfrontationRepository) GetByGroupAndIndex(ctx context.Context, tournamentID, groupIndex, confrontationIndex int) (*models.Confrontation, error) {
	query := `
		SELECT id, tournament_id, group_index, confrontation_index,
		       player_a1_id, player_a2_id, player_b1_id, player_b2_id,
		       score_a, score_b, created_at, updated_at
		FROM confrontations
		WHERE tournament_id = $1 AND group_index = $2 AND confrontation_index = $3`

	c := &models.Confrontation{}
	err := r.db.QueryRowContext(ctx, query, tournamentID, groupIndex, confrontationIndex).Scan(
		&c.ID, &c.TournamentID, &c.GroupIndex, &c.ConfrontationIndex,
		&c.PlayerA1ID, &c.PlayerA2ID, &c.PlayerB1ID, &c.PlayerB2ID,
		&c.ScoreA, &c.ScoreB, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfrontationNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresConfrontationRepository) UpdateScores(ctx context.Context, exec SQLExecutor, id, scoreA, scoreB int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE confrontations
		SET score_a = $1, score_b = $2, updated_at = NOW()
		WHERE id = $3`

	result, err := executor.ExecContext(ctx, query, scoreA, scoreB, id)
	if err != nil {
		return fmt.Errorf("failed to update scores of confrontation %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrConfrontationNotFound)
}

// ReplacePlayer rewrites one player's seat in every confrontation of a
// group, used by the pre-results player swap.
func (r *postgresConfrontationRepository) ReplacePlayer(ctx context.Context, exec SQLExecutor, tournamentID, groupIndex, oldPlayerID, newPlayerID int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE confrontations
		SET player_a1_id = CASE WHEN player_a1_id = $3 THEN $4 ELSE player_a1_id END,
		    player_a2_id = CASE WHEN player_a2_id = $3 THEN $4 ELSE player_a2_id END,
		    player_b1_id = CASE WHEN player_b1_id = $3 THEN $4 ELSE player_b1_id END,
		    player_b2_id = CASE WHEN player_b2_id = $3 THEN $4 ELSE player_b2_id END,
		    updated_at = NOW()
		WHERE tournament_id = $1 AND group_index = $2`

	_, err := executor.ExecContext(ctx, query, tournamentID, groupIndex, oldPlayerID, newPlayerID)
	if err != nil {
		return fmt.Errorf("failed to replace player %d in group %d: %w", oldPlayerID, groupIndex, err)
	}
	return nil
}

func (r *postgresConfrontationRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM confrontations WHERE tournament_id = $1`

	_, err := executor.ExecContext(ctx, query, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete confrontations of tournament %d: %w", tournamentID, err)
	}
	return nil
}
