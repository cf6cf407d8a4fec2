package repositories

import (
	"context"
	"database/sql"
)

// RankingRepository reads the aggregated point totals the ranking is built
// from. It is read-only: phase points are written through the
// participation repository when a tournament is finalized.
type RankingRepository interface {
	AggregatePoints(ctx context.Context) ([]RankingRow, error)
	PlayerResults(ctx context.Context, playerID int) ([]PlayerResultRow, error)
}

// RankingRow is one unranked aggregation row, ordered by the query.
type RankingRow struct {
	PlayerID    int
	Name        string
	Points      int
	Tournaments int
}

// PlayerResultRow is one tournament line of a player's history.
type PlayerResultRow struct {
	TournamentID   int
	TournamentName string
	PhasePoints    int
	Finalized      bool
}

type postgresRankingRepository struct {
	db *sql.DB
}

func NewPostgresRankingRepository(db *sql.DB) RankingRepository {
	return &postgresRankingRepository{db: db}
}

// AggregatePoints sums phase points per player over finalized tournaments,
// ordered by total descending and name ascending. Rank numbers are assigned
// by the caller.
func (r *postgresRankingRepository) AggregatePoints(ctx context.Context) ([]RankingRow, error) {
	query := `
		SELECT pl.id, pl.name,
		       COALESCE(SUM(p.phase_points), 0) AS points,
		       COUNT(p.id) AS tournaments
		FROM players pl
		JOIN participations p ON p.player_id = pl.id
		JOIN tournaments t ON t.id = p.tournament_id AND t.finalized = true
		GROUP BY pl.id, pl.name
		ORDER BY points DESC, pl.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]RankingRow, 0)
	for rows.Next() {
		var e RankingRow
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.Points, &e.Tournaments); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *postgresRankingRepository) PlayerResults(ctx context.Context, playerID int) ([]PlayerResultRow, error) {
	query := `
		SELECT t.id, t.name, p.phase_points, t.finalized
		FROM participations p
		JOIN tournaments t ON t.id = p.tournament_id
		WHERE p.player_id = $1
		ORDER BY t.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]PlayerResultRow, 0)
	for rows.Next() {
		var row PlayerResultRow
		if err := rows.Scan(&row.TournamentID, &row.TournamentName, &row.PhasePoints, &row.Finalized); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
