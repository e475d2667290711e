package store

import (
	"context"
	"errors"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// Dataset names shared by every Store implementation
const (
	DatasetPlayers          = "players"
	DatasetTeams            = "teams"
	DatasetPlayerStatistics = "player_statistics"
	DatasetTeamStatistics   = "team_statistics"
)

// ErrNotFound is returned when a dataset is not available
var ErrNotFound = errors.New("dataset not found")

// Store defines read access to the raw roster datasets
type Store interface {
	Players(ctx context.Context) (*models.Table, error)
	Teams(ctx context.Context) (*models.Table, error)
	PlayerStatistics(ctx context.Context) (*models.Table, error)
	TeamStatistics(ctx context.Context) (*models.Table, error)
	Ping(ctx context.Context) error
	Close() error
}
