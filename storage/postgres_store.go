package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/caawww/data-vis/models"
	"github.com/caawww/data-vis/utils"
)

const (
	gameColumnCount = 20
	batchSize       = 50
)

// PostgresStore persists the cleaned catalog to PostgreSQL and reads it back.
type PostgresStore struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, retries the ping with
// back-off, runs schema migrations and returns a ready-to-use store.
func NewPostgresStore(ctx context.Context, dsn string, retry utils.RetryConfig) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, logger: retry.Logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS games (
			app_id           BIGINT PRIMARY KEY,
			name             TEXT             NOT NULL DEFAULT '',
			release_year     INTEGER,
			positive         DOUBLE PRECISION,
			negative         DOUBLE PRECISION,
			peak_ccu         DOUBLE PRECISION,
			price            NUMERIC(10,2),
			avg_playtime     DOUBLE PRECISION,
			median_playtime  DOUBLE PRECISION,
			achievements     DOUBLE PRECISION,
			required_age     DOUBLE PRECISION,
			dlc_count        DOUBLE PRECISION,
			estimated_owners TEXT             NOT NULL DEFAULT '',
			owner_tier       INTEGER,
			total_reviews    DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_ratio     DOUBLE PRECISION NOT NULL DEFAULT 0,
			categories       TEXT             NOT NULL DEFAULT '',
			genres           TEXT             NOT NULL DEFAULT '',
			tags             TEXT             NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_games_release_year ON games(release_year);
		CREATE INDEX IF NOT EXISTS idx_games_peak_ccu     ON games(peak_ccu);
	`)
	return err
}

// Write replaces the stored catalog with games inside one transaction.
func (ps *PostgresStore) Write(ctx context.Context, games []*models.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM games"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	for i := 0; i < len(games); i += batchSize {
		end := i + batchSize
		if end > len(games) {
			end = len(games)
		}
		query, args := insertBatchQuery(games[i:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	if ps.logger != nil {
		ps.logger.Info("[postgres] Stored %d games", len(games))
	}
	return nil
}

// insertBatchQuery builds one multi-row INSERT for batch.
func insertBatchQuery(batch []*models.Game) (string, []any) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*gameColumnCount)

	for idx, g := range batch {
		base := idx * gameColumnCount
		ph := make([]string, gameColumnCount)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			g.AppID, g.Name, g.ReleaseYear,
			g.Positive, g.Negative, g.PeakCCU, g.Price,
			g.AvgPlaytime, g.MedianPlaytime, g.Achievements, g.RequiredAge, g.DLCCount,
			g.EstimatedOwners, g.OwnerTier, g.TotalReviews, g.ReviewRatio,
			g.Categories, g.Genres, g.Tags, createdAt(g),
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO games (app_id, name, release_year,
			positive, negative, peak_ccu, price,
			avg_playtime, median_playtime, achievements, required_age, dlc_count,
			estimated_owners, owner_tier, total_reviews, review_ratio,
			categories, genres, tags, created_at)
		VALUES %s
		ON CONFLICT (app_id) DO NOTHING
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func createdAt(g *models.Game) time.Time {
	if g.CreatedAt.IsZero() {
		return time.Now()
	}
	return g.CreatedAt
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

// FetchAll retrieves the stored catalog ordered by AppID.
func (ps *PostgresStore) FetchAll(ctx context.Context) ([]*models.Game, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT app_id, name, release_year,
			positive, negative, peak_ccu, price,
			avg_playtime, median_playtime, achievements, required_age, dlc_count,
			estimated_owners, owner_tier, total_reviews, review_ratio,
			categories, genres, tags, created_at
		FROM games
		ORDER BY app_id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		g := &models.Game{}
		if err := rows.Scan(
			&g.AppID, &g.Name, &g.ReleaseYear,
			&g.Positive, &g.Negative, &g.PeakCCU, &g.Price,
			&g.AvgPlaytime, &g.MedianPlaytime, &g.Achievements, &g.RequiredAge, &g.DLCCount,
			&g.EstimatedOwners, &g.OwnerTier, &g.TotalReviews, &g.ReviewRatio,
			&g.Categories, &g.Genres, &g.Tags, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
