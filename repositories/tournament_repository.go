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
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrNoTournamentInProgress = errors.New("no tournament in progress")
)

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetInProgress(ctx context.Context) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	SetFinalized(ctx context.Context, exec SQLExecutor, id int) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (name, mode, finalized)
		VALUES ($1, $2, false)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, t.Name, int(t.Mode)).Scan(&t.ID, &t.CreatedAt)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, mode, finalized, logo_key, created_at
		FROM tournaments
		WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetInProgress returns the single non-finalized tournament, if any.
func (r *postgresTournamentRepository) GetInProgress(ctx context.Context) (*models.Tournament, error) {
	query := `
		SELECT id, name, mode, finalized, logo_key, created_at
		FROM tournaments
		WHERE finalized = false
		ORDER BY created_at DESC
		LIMIT 1`

	t, err := r.scanOne(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, ErrTournamentNotFound) {
		return nil, ErrNoTournamentInProgress
	}
	return t, err
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `
		SELECT id, name, mode, finalized, logo_key, created_at
		FROM tournaments
		ORDER BY created_at DESC`

	return r.queryMany(ctx, query)
}

func (r *postgresTournamentRepository) SetFinalized(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET finalized = true WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to finalize tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE tournaments SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM tournaments WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) scanOne(row *sql.Row) (*models.Tournament, error) {
	t := &models.Tournament{}
	var mode int
	err := row.Scan(&t.ID, &t.Name, &mode, &t.Finalized, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	t.Mode = models.TournamentMode(mode)
	return t, nil
}

func (r *postgresTournamentRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		var mode int
		if err := rows.Scan(&t.ID, &t.Name, &mode, &t.Finalized, &t.LogoKey, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Mode = models.TournamentMode(mode)
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if pqErr.Constraint == "tournaments_name_key" {
			return ErrTournamentNameConflict
		}
	}
	return err
}
