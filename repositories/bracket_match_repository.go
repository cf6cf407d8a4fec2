package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/beachpoint/tournament-system/models"
	"github.com/lib/pq"
)

type BracketMatchRepository interface {
	Upsert(ctx context.Context, exec SQLExecutor, m *models.BracketMatch) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.BracketMatch, error)
	ListByPlayer(ctx context.Context, playerID int) ([]models.BracketMatch, error)
	ListFinals(ctx context.Context) ([]FinalRow, error)
	DeleteGames(ctx context.Context, exec SQLExecutor, tournamentID int, gameNumbers []int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

// FinalRow is a final match joined with the four player names, used to
// decorate tournament listings with champions.
type FinalRow struct {
	TournamentID int
	TeamA        [2]string
	TeamB        [2]string
	ScoreA       *int
	ScoreB       *int
}

type postgresBracketMatchRepository struct {
	db *sql.DB
}

func NewPostgresBracketMatchRepository(db *sql.DB) BracketMatchRepository {
	return &postgresBracketMatchRepository{db: db}
}

func (r *postgresBracketMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// Upsert stores a bracket result keyed by (tournament, game number). A
// resubmitted result overwrites the previous one.
func (r *postgresBracketMatchRepository) Upsert(ctx context.Context, exec SQLExecutor, m *models.BracketMatch) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO bracket_matches (
			tournament_id, phase, game_number,
			player_a1_id, player_a2_id, player_b1_id, player_b2_id,
			score_a, score_b
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tournament_id, game_number) DO UPDATE SET
			phase = EXCLUDED.phase,
			player_a1_id = EXCLUDED.player_a1_id,
			player_a2_id = EXCLUDED.player_a2_id,
			player_b1_id = EXCLUDED.player_b1_id,
			player_b2_id = EXCLUDED.player_b2_id,
			score_a = EXCLUDED.score_a,
			score_b = EXCLUDED.score_b,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		m.TournamentID, string(m.Phase), m.GameNumber,
		m.PlayerA1ID, m.PlayerA2ID, m.PlayerB1ID, m.PlayerB2ID,
		m.ScoreA, m.ScoreB,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert bracket match %d: %w", m.GameNumber, err)
	}
	return nil
}

func (r *postgresBracketMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.BracketMatch, error) {
	query := `
		SELECT id, tournament_id, phase, game_number,
		       player_a1_id, player_a2_id, player_b1_id, player_b2_id,
		       score_a, score_b, created_at, updated_at
		FROM bracket_matches
		WHERE tournament_id = $1
		ORDER BY game_number ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBracketMatches(rows)
}

// ListByPlayer returns every bracket match a player appeared in, newest
// tournament first, for the profile view.
func (r *postgresBracketMatchRepository) ListByPlayer(ctx context.Context, playerID int) ([]models.BracketMatch, error) {
	query := `
		SELECT id, tournament_id, phase, game_number,
		       player_a1_id, player_a2_id, player_b1_id, player_b2_id,
		       score_a, score_b, created_at, updated_at
		FROM bracket_matches
		WHERE $1 IN (player_a1_id, player_a2_id, player_b1_id, player_b2_id)
		ORDER BY tournament_id DESC, game_number ASC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBracketMatches(rows)
}

// ListFinals returns every recorded final with its player names.
func (r *postgresBracketMatchRepository) ListFinals(ctx context.Context) ([]FinalRow, error) {
	query := `
		SELECT m.tournament_id, a1.name, a2.name, b1.name, b2.name, m.score_a, m.score_b
		FROM bracket_matches m
		JOIN players a1 ON a1.id = m.player_a1_id
		JOIN players a2 ON a2.id = m.player_a2_id
		JOIN players b1 ON b1.id = m.player_b1_id
		JOIN players b2 ON b2.id = m.player_b2_id
		WHERE m.phase = 'final'`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	finals := make([]FinalRow, 0)
	for rows.Next() {
		var f FinalRow
		if err := rows.Scan(&f.TournamentID, &f.TeamA[0], &f.TeamA[1], &f.TeamB[0], &f.TeamB[1], &f.ScoreA, &f.ScoreB); err != nil {
			return nil, err
		}
		finals = append(finals, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return finals, nil
}

// DeleteGames removes the recorded results of the listed games, resetting
// the stages that depended on a resubmitted result.
func (r *postgresBracketMatchRepository) DeleteGames(ctx context.Context, exec SQLExecutor, tournamentID int, gameNumbers []int) error {
	if len(gameNumbers) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `DELETE FROM bracket_matches WHERE tournament_id = $1 AND game_number = ANY($2)`

	_, err := executor.ExecContext(ctx, query, tournamentID, pq.Array(gameNumbers))
	if err != nil {
		return fmt.Errorf("failed to reset bracket games %v: %w", gameNumbers, err)
	}
	return nil
}

func (r *postgresBracketMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM bracket_matches WHERE tournament_id = $1`

	_, err := executor.ExecContext(ctx, query, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete bracket matches of tournament %d: %w", tournamentID, err)
	}
	return nil
}

func scanBracketMatches(rows *sql.Rows) ([]models.BracketMatch, error) {
	matches := make([]models.BracketMatch, 0)
	for rows.Next() {
		var m models.BracketMatch
		var phase string
		if err := rows.Scan(
			&m.ID, &m.TournamentID, &phase, &m.GameNumber,
			&m.PlayerA1ID, &m.PlayerA2ID, &m.PlayerB1ID, &m.PlayerB2ID,
			&m.ScoreA, &m.ScoreB, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		m.Phase = models.Phase(phase)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
