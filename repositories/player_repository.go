package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beachpoint/tournament-system/models"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerRepository interface {
	GetOrCreateByName(ctx context.Context, exec SQLExecutor, name string) (*models.Player, error)
	GetByName(ctx context.Context, name string) (*models.Player, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// GetOrCreateByName returns the player with the given name, inserting the
// row first if it does not exist. The upsert keeps player identity stable
// across tournaments.
func (r *postgresPlayerRepository) GetOrCreateByName(ctx context.Context, exec SQLExecutor, name string) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at`

	p := &models.Player{}
	err := executor.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player %q: %w", name, err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) GetByName(ctx context.Context, name string) (*models.Player, error) {
	query := `SELECT id, name, created_at FROM players WHERE name = $1`

	p := &models.Player{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresPlayerRepository) SearchByName(ctx context.Context, search string, limit int) ([]models.Player, error) {
	query := `
		SELECT id, name, created_at
		FROM players
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, search, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT id, name, created_at FROM players ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}
