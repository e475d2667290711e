package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/retry"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// Postgres table names per dataset.
// Tables mirror the CSV headers using quoted, case-preserving column names.
var pgTables = map[string]string{
	DatasetPlayers:          "players",
	DatasetTeams:            "teams",
	DatasetPlayerStatistics: "player_statistics",
	DatasetTeamStatistics:   "team_statistics",
}

// PostgresStore implements Store over a Postgres database
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection pool and waits for the database to answer
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	policy := retry.NewRetryPolicy(5, 500*time.Millisecond)
	err = policy.Execute(ctx, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromDB wraps an existing pool
func NewPostgresStoreFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Players returns the players table
func (s *PostgresStore) Players(ctx context.Context) (*models.Table, error) {
	return s.selectAll(ctx, DatasetPlayers)
}

// Teams returns the teams table
func (s *PostgresStore) Teams(ctx context.Context) (*models.Table, error) {
	return s.selectAll(ctx, DatasetTeams)
}

// PlayerStatistics returns the per-game player box score lines
func (s *PostgresStore) PlayerStatistics(ctx context.Context) (*models.Table, error) {
	return s.selectAll(ctx, DatasetPlayerStatistics)
}

// TeamStatistics returns the per-game team lines
func (s *PostgresStore) TeamStatistics(ctx context.Context) (*models.Table, error) {
	return s.selectAll(ctx, DatasetTeamStatistics)
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// selectAll reads every row of a dataset table as strings
func (s *PostgresStore) selectAll(ctx context.Context, dataset string) (*models.Table, error) {
	table := pgTables[dataset]
	query := fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "42P01" {
			return nil, fmt.Errorf("%s: %w", table, ErrNotFound)
		}
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}

	result := &models.Table{Columns: columns}
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return result, nil
}
