package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// CSV file names inside the data directory
var csvFiles = map[string]string{
	DatasetPlayers:          "players.csv",
	DatasetTeams:            "teams.csv",
	DatasetPlayerStatistics: "PlayerStatistics.csv",
	DatasetTeamStatistics:   "TeamStatistics.csv",
}

// CSVStore serves datasets read from CSV files in a directory.
// Players and teams are loaded once at open; the statistics files are
// read on each request since they are large and change between seasons.
type CSVStore struct {
	dir string

	mu      sync.RWMutex
	players *models.Table
	teams   *models.Table
}

// NewCSVStore opens a store over dir and loads players and teams
func NewCSVStore(dir string) (*CSVStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", dir)
	}

	s := &CSVStore{dir: dir}

	if s.players, err = s.load(DatasetPlayers); err != nil {
		return nil, err
	}
	// teams.csv is optional: players then carry no team name
	if s.teams, err = s.load(DatasetTeams); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return s, nil
}

// Players returns the players dataset
func (s *CSVStore) Players(ctx context.Context) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.players, nil
}

// Teams returns the teams dataset
func (s *CSVStore) Teams(ctx context.Context) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.teams == nil {
		return nil, ErrNotFound
	}
	return s.teams, nil
}

// PlayerStatistics reads PlayerStatistics.csv
func (s *CSVStore) PlayerStatistics(ctx context.Context) (*models.Table, error) {
	return s.load(DatasetPlayerStatistics)
}

// TeamStatistics reads TeamStatistics.csv
func (s *CSVStore) TeamStatistics(ctx context.Context) (*models.Table, error) {
	return s.load(DatasetTeamStatistics)
}

// Ping checks the data directory is still readable
func (s *CSVStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return fmt.Errorf("data dir unavailable: %w", err)
	}
	return nil
}

// Close is a no-op for CSV files
func (s *CSVStore) Close() error {
	return nil
}

// load reads one dataset file
func (s *CSVStore) load(dataset string) (*models.Table, error) {
	path := filepath.Join(s.dir, csvFiles[dataset])

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", csvFiles[dataset], ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return table, nil
}

// ReadCSV parses a CSV stream whose first line is the header
func ReadCSV(r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return &models.Table{}, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) > 0 {
		// strip a UTF-8 BOM left by spreadsheet exports
		header[0] = trimBOM(header[0])
	}

	table := &models.Table{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(table.Rows)+2, err)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
