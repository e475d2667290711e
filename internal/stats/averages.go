package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// ErrPlayerNotFound is returned when no box score line matches a player
var ErrPlayerNotFound = errors.New("player not found")

// BoxscoreColumns are the per-game stats averaged for a player, in output order
var BoxscoreColumns = []string{
	"points", "assists", "blocks", "steals",
	"fieldgoalsattempted", "fieldgoalsmade", "fieldgoalspercentage",
	"threepointersattempted", "threepointersmade", "threepointerspercentage",
	"freethrowsattempted", "freethrowsmade", "freethrowspercentage",
	"reboundsdefensive", "reboundsoffensive", "reboundstotal",
	"foulspersonal", "turnovers", "plusminuspoints",
}

// PlayerAverages computes per-game means for name over the box score lines.
// Names match case-insensitively on trimmed "first last". Columns missing from
// the table are skipped; a column with no numeric values averages to null.
func PlayerAverages(lines *models.Table, name string) (models.PlayerAverages, error) {
	firstCol := lines.IndexFold("firstname")
	lastCol := lines.IndexFold("lastname")
	if firstCol < 0 || lastCol < 0 {
		return models.PlayerAverages{}, fmt.Errorf("player statistics lack firstName/lastName columns")
	}

	target := strings.ToLower(strings.TrimSpace(name))

	type column struct {
		key string
		idx int
	}
	cols := make([]column, 0, len(BoxscoreColumns))
	for _, key := range BoxscoreColumns {
		if idx := lines.IndexFold(key); idx >= 0 {
			cols = append(cols, column{key: key, idx: idx})
		}
	}

	sums := make([]mean, len(cols))
	matched := 0
	for _, row := range lines.Rows {
		full := strings.TrimSpace(lines.Cell(row, firstCol)) + " " + strings.TrimSpace(lines.Cell(row, lastCol))
		if strings.ToLower(full) != target {
			continue
		}
		matched++
		for i, c := range cols {
			sums[i].add(lines.Cell(row, c.idx))
		}
	}

	if matched == 0 {
		return models.PlayerAverages{}, ErrPlayerNotFound
	}

	var avg models.PlayerAverages
	for i, c := range cols {
		avg.Set(c.key, sums[i].value(1))
	}
	avg.Set(models.FullNameKey, name)

	return avg, nil
}

// TeamStatColumns are the per-game team stats averaged per franchise, in output order
var TeamStatColumns = []string{
	"assists", "blocks", "steals",
	"fieldGoalsAttempted", "fieldGoalsMade", "fieldGoalsPercentage",
	"threePointersAttempted", "threePointersMade", "threePointersPercentage",
	"freeThrowsAttempted", "freeThrowsMade", "freeThrowsPercentage",
	"reboundsDefensive", "reboundsOffensive", "reboundsTotal",
	"foulsPersonal", "turnovers", "plusMinusPoints",
	"teamScore", "opponentScore",
}

var percentageColumns = map[string]bool{
	"fieldGoalsPercentage":    true,
	"threePointersPercentage": true,
	"freeThrowsPercentage":    true,
}

// TeamAverages computes per-franchise means over team game lines.
// Relocated franchises are folded into their current city and nickname and
// only the current thirty teams are kept. Results are sorted by team.
func TeamAverages(lines *models.Table) ([]models.Record, error) {
	cityCol := lines.Index("teamCity")
	nameCol := lines.Index("teamName")
	if cityCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("team statistics lack teamCity/teamName columns")
	}

	idx := make([]int, len(TeamStatColumns))
	for i, key := range TeamStatColumns {
		idx[i] = lines.Index(key)
	}

	byTeam := make(map[string][]mean)
	for _, row := range lines.Rows {
		team := CurrentFranchise(lines.Cell(row, cityCol), lines.Cell(row, nameCol))
		if !IsModernTeam(team) {
			continue
		}
		sums, ok := byTeam[team]
		if !ok {
			sums = make([]mean, len(TeamStatColumns))
			byTeam[team] = sums
		}
		for i, col := range idx {
			if col >= 0 {
				sums[i].add(lines.Cell(row, col))
			}
		}
	}

	teams := make([]string, 0, len(byTeam))
	for team := range byTeam {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	out := make([]models.Record, 0, len(teams))
	for _, team := range teams {
		rec := models.NewRecord("team", team)
		for i, key := range TeamStatColumns {
			if idx[i] < 0 {
				continue
			}
			v := byTeam[team][i].value(3)
			if f, ok := v.(float64); ok && percentageColumns[key] {
				if f <= 1 {
					f *= 100
				}
				v = Round(f, 1)
			}
			rec.Set(key, v)
		}
		out = append(out, rec)
	}

	return out, nil
}

// Round rounds half to even at the given number of decimals
func Round(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.RoundToEven(f*p) / p
}

// mean accumulates numeric cells, skipping blanks and non-numbers
type mean struct {
	sum   float64
	count int
}

func (m *mean) add(cell string) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return
	}
	m.sum += f
	m.count++
}

// value returns the rounded mean, or nil when nothing was added
func (m *mean) value(decimals int) interface{} {
	if m.count == 0 {
		return nil
	}
	return Round(m.sum/float64(m.count), decimals)
}
