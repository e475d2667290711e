package roster

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// Source columns of players.csv / teams.csv the builder derives fields from
const (
	colFirstName   = "FirstName"
	colLastName    = "LastName"
	colDateOfBirth = "DateOfBirth"
	colTeamID      = "TeamId"
	colTeamKey     = "Id"
	colCity        = "City"
	colNickname    = "Nickname"
	colYearFounded = "YearFounded"
)

// Display keys of derived player fields
const (
	KeyPlayer = "Player"
	KeyTeam   = "Team"
	KeyAge    = "Age"
)

// displayNames renames source columns for the roster table
var displayNames = map[string]string{
	"FirstName":   "First Name",
	"LastName":    "Last Name",
	"DateOfBirth": "Date of Birth",
	"School":      "Last Attended",
}

// PlayerSchema lays out /api/players records for a players table header.
// The name column leads so the view's first cell is always the player,
// followed by team and age, the source columns in header order, and the
// FullName selection key last.
func PlayerSchema(columns []string) models.Schema {
	schema := models.Schema{
		{Key: KeyPlayer},
		{Key: KeyTeam},
		{Key: KeyAge},
	}
	taken := map[string]bool{KeyPlayer: true, KeyTeam: true, KeyAge: true, models.FullNameKey: true}

	for _, col := range columns {
		key := col
		if name, ok := displayNames[col]; ok {
			key = name
		}
		if taken[key] {
			continue
		}
		taken[key] = true
		schema = append(schema, models.FieldDescriptor{Key: key, Source: col})
	}

	return append(schema, models.FieldDescriptor{Key: models.FullNameKey})
}

// Builder turns raw player and team tables into roster records
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a builder that computes ages against the wall clock
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderAt creates a builder with a fixed "today", for reproducible ages
func NewBuilderAt(today time.Time) *Builder {
	return &Builder{now: func() time.Time { return today }}
}

// Players builds one record per player row following PlayerSchema.
// teams may be nil, in which case Team is null.
func (b *Builder) Players(players, teams *models.Table) []models.PlayerRecord {
	schema := PlayerSchema(players.Columns)
	teamNames := teamNamesByID(teams)
	today := b.now()

	firstCol := players.Index(colFirstName)
	lastCol := players.Index(colLastName)
	dobCol := players.Index(colDateOfBirth)
	teamCol := players.Index(colTeamID)

	sources := make([]int, len(schema))
	for i, d := range schema {
		sources[i] = -1
		if d.Source != "" {
			sources[i] = players.Index(d.Source)
		}
	}

	out := make([]models.PlayerRecord, 0, len(players.Rows))
	for _, row := range players.Rows {
		fullName := FullName(players.Cell(row, firstCol), players.Cell(row, lastCol))

		var dob *time.Time
		if dobCol >= 0 {
			dob = parseDate(players.Cell(row, dobCol))
		}

		var rec models.PlayerRecord
		for i, d := range schema {
			switch {
			case d.Key == KeyPlayer || d.Key == models.FullNameKey:
				rec.Set(d.Key, fullName)
			case d.Key == KeyTeam:
				rec.Set(d.Key, lookupTeam(teamNames, players.Cell(row, teamCol)))
			case d.Key == KeyAge:
				rec.Set(d.Key, age(dob, today))
			case d.Source == colDateOfBirth:
				if dob != nil {
					rec.Set(d.Key, dob.Format("2006-01-02"))
				} else {
					rec.Set(d.Key, nil)
				}
			default:
				rec.Set(d.Key, ParseCell(players.Cell(row, sources[i])))
			}
		}
		out = append(out, rec)
	}

	return out
}

// Names returns the sorted, de-duplicated full names of all players
func Names(players *models.Table) []string {
	firstCol := players.Index(colFirstName)
	lastCol := players.Index(colLastName)

	seen := make(map[string]bool, len(players.Rows))
	names := make([]string, 0, len(players.Rows))
	for _, row := range players.Rows {
		name := FullName(players.Cell(row, firstCol), players.Cell(row, lastCol))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Teams builds one record per team row with the derived TeamName
func Teams(teams *models.Table) []models.Record {
	out := make([]models.Record, 0, len(teams.Rows))
	cityCol := teams.Index(colCity)
	nickCol := teams.Index(colNickname)

	for _, row := range teams.Rows {
		var rec models.Record
		for i, col := range teams.Columns {
			key := col
			switch col {
			case colTeamKey:
				key = colTeamID
			case colYearFounded:
				key = "Year Founded"
			}
			rec.Set(key, ParseCell(teams.Cell(row, i)))
		}
		if cityCol >= 0 && nickCol >= 0 {
			rec.Set("TeamName", teams.Cell(row, cityCol)+" "+teams.Cell(row, nickCol))
		}
		out = append(out, rec)
	}

	return out
}

// FullName joins first and last name, dropping blanks
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ParseCell converts a CSV cell to a JSON value: null, integer, float or string
func ParseCell(cell string) interface{} {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	}
	return cell
}

func teamNamesByID(teams *models.Table) map[string]string {
	names := make(map[string]string)
	if teams == nil {
		return names
	}
	idCol := teams.Index(colTeamKey)
	if idCol < 0 {
		idCol = teams.Index(colTeamID)
	}
	cityCol := teams.Index(colCity)
	nickCol := teams.Index(colNickname)
	if idCol < 0 || cityCol < 0 || nickCol < 0 {
		return names
	}

	for _, row := range teams.Rows {
		id := strings.TrimSpace(teams.Cell(row, idCol))
		names[id] = teams.Cell(row, cityCol) + " " + teams.Cell(row, nickCol)
	}
	return names
}

func lookupTeam(names map[string]string, id string) interface{} {
	if name, ok := names[strings.TrimSpace(id)]; ok {
		return name
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
}

// parseDate returns nil for blank or unparseable dates
func parseDate(cell string) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return &t
		}
	}
	return nil
}

// age returns whole years between dob and today, or nil without a birth date
func age(dob *time.Time, today time.Time) interface{} {
	if dob == nil {
		return nil
	}
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return int64(years)
}
