package view

import (
	"context"
	"log"
	"sync"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// Fetcher is the roster backend the controller reads from
type Fetcher interface {
	Players(ctx context.Context) ([]models.PlayerRecord, error)
	PlayerNames(ctx context.Context) ([]string, error)
	PlayerAverages(ctx context.Context, name string) (*models.PlayerAverages, error)
}

// State is the roster loaded for one view session
type State struct {
	Players []models.PlayerRecord
}

// Find returns the first record whose FullName equals name
func (s *State) Find(name string) (models.PlayerRecord, bool) {
	if s == nil {
		return models.PlayerRecord{}, false
	}
	for _, p := range s.Players {
		if p.FullName() == name {
			return p, true
		}
	}
	return models.PlayerRecord{}, false
}

// BoxscoreStatus is the state of the boxscore overlay
type BoxscoreStatus int

const (
	BoxscoreIdle BoxscoreStatus = iota
	BoxscoreLoading
	BoxscoreDisplayedError
	BoxscoreDisplayedStats
)

func (s BoxscoreStatus) String() string {
	switch s {
	case BoxscoreLoading:
		return "loading"
	case BoxscoreDisplayedError:
		return "displayed-error"
	case BoxscoreDisplayedStats:
		return "displayed-stats"
	default:
		return "idle"
	}
}

// Controller drives the roster page for one viewer.
// It owns the loaded State and the Document; all methods are safe for
// concurrent use so boxscore loads may complete on other goroutines.
type Controller struct {
	fetcher Fetcher

	mu          sync.Mutex
	state       *State
	doc         Document
	boxscore    BoxscoreStatus
	boxscoreGen uint64
}

// NewController creates a controller over fetcher with an empty page
func NewController(fetcher Fetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		state:   &State{},
	}
}

// Load fetches the player list, then the name list, fills the selector and
// selects the first name. On any failure the page keeps its previous state.
func (c *Controller) Load(ctx context.Context) error {
	players, err := c.fetcher.Players(ctx)
	if err != nil {
		log.Printf("[roster-view] Error loading players: %v", err)
		return err
	}

	names, err := c.fetcher.PlayerNames(ctx)
	if err != nil {
		log.Printf("[roster-view] Error loading players: %v", err)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = &State{Players: players}
	c.doc.Select.Options = append([]string(nil), names...)

	if len(names) > 0 {
		c.selectLocked(names[0])
	}

	return nil
}

// Select handles a change of the selector value
func (c *Controller) Select(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectLocked(name)
}

func (c *Controller) selectLocked(name string) {
	c.doc.Select.Value = name
	c.doc.TableHead, c.doc.TableBody = SelectionTable(c.state, name)
}

// ShowBoxscore loads averages for name into the modal.
// Each call supersedes earlier ones: a result arriving after a newer call
// was issued is discarded. Returns whether the modal was updated.
func (c *Controller) ShowBoxscore(ctx context.Context, name string) (bool, error) {
	c.mu.Lock()
	c.boxscoreGen++
	gen := c.boxscoreGen
	c.boxscore = BoxscoreLoading
	c.mu.Unlock()

	avg, err := c.fetcher.PlayerAverages(ctx, name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		log.Printf("[roster-view] Error loading player stats: %v", err)
		if gen == c.boxscoreGen {
			c.boxscore = BoxscoreIdle
		}
		return false, err
	}

	if gen != c.boxscoreGen {
		return false, nil
	}

	c.doc.Modal = BoxscoreModal(name, *avg)
	if avg.HasError() {
		c.boxscore = BoxscoreDisplayedError
	} else {
		c.boxscore = BoxscoreDisplayedStats
	}

	return true, nil
}

// ClickPlayerLink activates the player link of the table, if any
func (c *Controller) ClickPlayerLink(ctx context.Context) (bool, error) {
	name, ok := c.PlayerLink()
	if !ok {
		return false, nil
	}
	return c.ShowBoxscore(ctx, name)
}

// PlayerLink returns the name the table's player link points at
func (c *Controller) PlayerLink() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.doc.TableBody) == 0 || len(c.doc.TableBody[0].Cells) == 0 {
		return "", false
	}
	cell := c.doc.TableBody[0].Cells[0]
	if cell.LinkTo == "" {
		return "", false
	}
	return cell.LinkTo, true
}

// HideModal records that the overlay was dismissed
func (c *Controller) HideModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.Modal.Shown = false
}

// Snapshot returns a copy of the current page
func (c *Controller) Snapshot() Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Boxscore returns the state of the boxscore overlay
func (c *Controller) Boxscore() BoxscoreStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.boxscore
}

// SelectionTable renders the header and body for the player named name.
// Without a match the header is cleared and one placeholder row spans the table.
// Otherwise there is one header per field in record order and one data row,
// whose first cell becomes the link to the player's boxscore.
func SelectionTable(state *State, name string) ([]string, []Row) {
	player, ok := state.Find(name)
	if !ok {
		return nil, []Row{{Cells: []Cell{{Text: NoDataText, Colspan: TableColspan}}}}
	}

	head := player.Keys()
	cells := make([]Cell, len(player.Fields))
	for i, f := range player.Fields {
		cells[i] = Cell{Text: models.FormatValue(f.Value)}
	}

	// the first column is assumed to hold the player name
	if len(cells) > 0 {
		cells[0] = Cell{Text: player.FullName(), LinkTo: player.FullName()}
	}

	return head, []Row{{Cells: cells}}
}

// BoxscoreModal renders averages into the overlay.
// An error-flagged response shows a single placeholder under a generic title;
// otherwise every stat but FullName becomes a label/value cell, StatsPerRow per row.
func BoxscoreModal(name string, avg models.PlayerAverages) Modal {
	if avg.HasError() {
		return Modal{
			Title:   StatsTitle,
			Details: []Row{{Cells: []Cell{{Text: NoStatsText, Colspan: StatsColspan}}}},
			Shown:   true,
		}
	}

	entries := avg.Without(models.FullNameKey).Fields
	rows := make([]Row, 0, (len(entries)+StatsPerRow-1)/StatsPerRow)
	for i, f := range entries {
		if i%StatsPerRow == 0 {
			rows = append(rows, Row{Cells: make([]Cell, 0, StatsPerRow)})
		}
		last := &rows[len(rows)-1]
		last.Cells = append(last.Cells, Cell{Label: f.Key, Text: models.FormatValue(f.Value)})
	}

	return Modal{
		Title:   name,
		Details: rows,
		Shown:   true,
	}
}
