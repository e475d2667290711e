package view_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/view"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

// MockFetcher implements view.Fetcher for testing
type MockFetcher struct {
	players   []models.PlayerRecord
	names     []string
	averages  map[string]models.PlayerAverages
	playerErr error
	namesErr  error
	avgErr    error

	// gates, when set, block PlayerAverages for a name until closed
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func (m *MockFetcher) Players(ctx context.Context) ([]models.PlayerRecord, error) {
	if m.playerErr != nil {
		return nil, m.playerErr
	}
	return m.players, nil
}

func (m *MockFetcher) PlayerNames(ctx context.Context) ([]string, error) {
	if m.namesErr != nil {
		return nil, m.namesErr
	}
	return m.names, nil
}

func (m *MockFetcher) PlayerAverages(ctx context.Context, name string) (*models.PlayerAverages, error) {
	m.mu.Lock()
	gate := m.gates[name]
	m.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.avgErr != nil {
		return nil, m.avgErr
	}
	avg, ok := m.averages[name]
	if !ok {
		return &models.PlayerAverages{Record: models.NewRecord("error", "Player not found")}, nil
	}
	return &avg, nil
}

func (m *MockFetcher) block(name string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gates == nil {
		m.gates = make(map[string]chan struct{})
	}
	gate := make(chan struct{})
	m.gates[name] = gate
	return gate
}

func player(pairs ...interface{}) models.PlayerRecord {
	return models.PlayerRecord{Record: models.NewRecord(pairs...)}
}

func newMockFetcher() *MockFetcher {
	return &MockFetcher{
		players: []models.PlayerRecord{player("FullName", "A", "Pts", 10)},
		names:   []string{"A", "B"},
		averages: map[string]models.PlayerAverages{
			"A": {Record: models.NewRecord("points", 10.5, "assists", 3.0, "rebounds", 7.2, "steals", 1.0, "FullName", "A")},
		},
	}
}

func cellTexts(row view.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Text
	}
	return out
}

func TestLoad_SelectsFirstName(t *testing.T) {
	c := view.NewController(newMockFetcher())

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	doc := c.Snapshot()
	if !reflect.DeepEqual(doc.Select.Options, []string{"A", "B"}) {
		t.Errorf("expected options [A B], got %v", doc.Select.Options)
	}
	if doc.Select.Value != "A" {
		t.Errorf("expected first name selected, got %q", doc.Select.Value)
	}
	if !reflect.DeepEqual(doc.TableHead, []string{"FullName", "Pts"}) {
		t.Errorf("expected head [FullName Pts], got %v", doc.TableHead)
	}
	if len(doc.TableBody) != 1 {
		t.Fatalf("expected one row, got %d", len(doc.TableBody))
	}
	if got := cellTexts(doc.TableBody[0]); !reflect.DeepEqual(got, []string{"A", "10"}) {
		t.Errorf("expected row [A 10], got %v", got)
	}
	if link := doc.TableBody[0].Cells[0].LinkTo; link != "A" {
		t.Errorf("expected first cell to link to A, got %q", link)
	}
}

func TestLoad_EmptyNames(t *testing.T) {
	f := newMockFetcher()
	f.names = nil
	c := view.NewController(f)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	doc := c.Snapshot()
	if len(doc.Select.Options) != 0 || doc.Select.Value != "" {
		t.Errorf("expected empty selector, got %+v", doc.Select)
	}
	if len(doc.TableHead) != 0 || len(doc.TableBody) != 0 {
		t.Errorf("expected untouched table, got %v %v", doc.TableHead, doc.TableBody)
	}
}

func TestLoad_FailureKeepsPreviousPage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *MockFetcher)
	}{
		{"players fail", func(f *MockFetcher) { f.playerErr = errors.New("down") }},
		{"names fail", func(f *MockFetcher) { f.namesErr = errors.New("down") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMockFetcher()
			c := view.NewController(f)
			if err := c.Load(context.Background()); err != nil {
				t.Fatalf("first Load: %v", err)
			}
			before := c.Snapshot()

			tt.mutate(f)
			f.names = []string{"Z"}
			if err := c.Load(context.Background()); err == nil {
				t.Fatal("expected error")
			}

			if after := c.Snapshot(); !reflect.DeepEqual(before, after) {
				t.Errorf("page changed on failed load:\nbefore %+v\nafter  %+v", before, after)
			}
		})
	}
}

func TestLoad_FailureOnFreshPage(t *testing.T) {
	f := newMockFetcher()
	f.playerErr = errors.New("down")
	c := view.NewController(f)

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	doc := c.Snapshot()
	if len(doc.Select.Options) != 0 || len(doc.TableBody) != 0 {
		t.Errorf("expected blank page, got %+v", doc)
	}

	// selecting afterwards sees an empty state
	c.Select("A")
	doc = c.Snapshot()
	if len(doc.TableBody) != 1 || doc.TableBody[0].Cells[0].Text != view.NoDataText {
		t.Errorf("expected placeholder, got %+v", doc.TableBody)
	}
}

func TestSelect_NoMatchShowsPlaceholder(t *testing.T) {
	c := view.NewController(newMockFetcher())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.Select("B")
	doc := c.Snapshot()

	if doc.Select.Value != "B" {
		t.Errorf("expected B selected, got %q", doc.Select.Value)
	}
	if len(doc.TableHead) != 0 {
		t.Errorf("expected empty header, got %v", doc.TableHead)
	}
	if len(doc.TableBody) != 1 || len(doc.TableBody[0].Cells) != 1 {
		t.Fatalf("expected one placeholder cell, got %+v", doc.TableBody)
	}
	cell := doc.TableBody[0].Cells[0]
	if cell.Text != view.NoDataText || cell.Colspan != view.TableColspan || cell.LinkTo != "" {
		t.Errorf("unexpected placeholder %+v", cell)
	}
	if _, ok := c.PlayerLink(); ok {
		t.Error("placeholder must not carry a player link")
	}
}

func TestSelect_ReplacesTable(t *testing.T) {
	f := newMockFetcher()
	f.players = append(f.players, player("FullName", "B", "Pts", 4, "Reb", nil))
	c := view.NewController(f)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	c.Select("B")
	c.Select("A")
	c.Select("B")
	doc := c.Snapshot()

	if len(doc.TableBody) != 1 {
		t.Fatalf("expected table replaced, got %d rows", len(doc.TableBody))
	}
	if len(doc.TableHead) != len(doc.TableBody[0].Cells) {
		t.Errorf("header count %d != cell count %d", len(doc.TableHead), len(doc.TableBody[0].Cells))
	}
	if got := cellTexts(doc.TableBody[0]); !reflect.DeepEqual(got, []string{"B", "4", "null"}) {
		t.Errorf("unexpected row %v", got)
	}
}

func TestSelectionTable_FirstMatchWins(t *testing.T) {
	state := &view.State{Players: []models.PlayerRecord{
		player("FullName", "A", "Pts", 1),
		player("FullName", "A", "Pts", 2),
	}}

	_, body := view.SelectionTable(state, "A")
	if body[0].Cells[1].Text != "1" {
		t.Errorf("expected first matching record, got %v", cellTexts(body[0]))
	}
}

func TestSelectionTable_LinkReplacesFirstColumn(t *testing.T) {
	state := &view.State{Players: []models.PlayerRecord{
		player("Player", "Display Name", "Team", "X", "FullName", "A"),
	}}

	head, body := view.SelectionTable(state, "A")
	if !reflect.DeepEqual(head, []string{"Player", "Team", "FullName"}) {
		t.Errorf("unexpected head %v", head)
	}
	first := body[0].Cells[0]
	if first.Text != "A" || first.LinkTo != "A" {
		t.Errorf("expected first cell to be the FullName link, got %+v", first)
	}
}

func TestShowBoxscore_Stats(t *testing.T) {
	c := view.NewController(newMockFetcher())

	applied, err := c.ShowBoxscore(context.Background(), "A")
	if err != nil || !applied {
		t.Fatalf("ShowBoxscore: applied=%v err=%v", applied, err)
	}

	doc := c.Snapshot()
	if doc.Modal.Title != "A" || !doc.Modal.Shown {
		t.Errorf("unexpected modal header %q shown=%v", doc.Modal.Title, doc.Modal.Shown)
	}
	if len(doc.Modal.Details) != 2 {
		t.Fatalf("expected 2 rows for 4 stats, got %d", len(doc.Modal.Details))
	}
	if len(doc.Modal.Details[0].Cells) != 3 || len(doc.Modal.Details[1].Cells) != 1 {
		t.Errorf("expected rows of 3 then 1, got %d and %d",
			len(doc.Modal.Details[0].Cells), len(doc.Modal.Details[1].Cells))
	}
	for _, row := range doc.Modal.Details {
		for _, cell := range row.Cells {
			if cell.Label == models.FullNameKey {
				t.Error("FullName must not be rendered as a stat")
			}
		}
	}
	if first := doc.Modal.Details[0].Cells[0]; first.Label != "points" || first.Text != "10.5" {
		t.Errorf("unexpected first stat %+v", first)
	}
	if c.Boxscore() != view.BoxscoreDisplayedStats {
		t.Errorf("expected displayed-stats, got %s", c.Boxscore())
	}
}

func TestShowBoxscore_ErrorFlag(t *testing.T) {
	c := view.NewController(newMockFetcher())

	applied, err := c.ShowBoxscore(context.Background(), "Nobody")
	if err != nil || !applied {
		t.Fatalf("ShowBoxscore: applied=%v err=%v", applied, err)
	}

	doc := c.Snapshot()
	if doc.Modal.Title != view.StatsTitle {
		t.Errorf("expected generic title, got %q", doc.Modal.Title)
	}
	if len(doc.Modal.Details) != 1 || len(doc.Modal.Details[0].Cells) != 1 {
		t.Fatalf("expected one placeholder, got %+v", doc.Modal.Details)
	}
	if cell := doc.Modal.Details[0].Cells[0]; cell.Text != view.NoStatsText || cell.Colspan != view.StatsColspan {
		t.Errorf("unexpected placeholder %+v", cell)
	}
	if c.Boxscore() != view.BoxscoreDisplayedError {
		t.Errorf("expected displayed-error, got %s", c.Boxscore())
	}
}

func TestBoxscoreModal_ErrorWinsOverStats(t *testing.T) {
	avg := models.PlayerAverages{Record: models.NewRecord("points", 3, "error", "partial")}

	m := view.BoxscoreModal("A", avg)
	if m.Title != view.StatsTitle || len(m.Details) != 1 {
		t.Errorf("expected error rendering, got %+v", m)
	}
}

func TestBoxscoreModal_NoStats(t *testing.T) {
	avg := models.PlayerAverages{Record: models.NewRecord("FullName", "A")}

	m := view.BoxscoreModal("A", avg)
	if m.Title != "A" || len(m.Details) != 0 || !m.Shown {
		t.Errorf("expected empty grid under the player name, got %+v", m)
	}
}

func TestShowBoxscore_FetchErrorLeavesModal(t *testing.T) {
	f := newMockFetcher()
	c := view.NewController(f)
	if _, err := c.ShowBoxscore(context.Background(), "A"); err != nil {
		t.Fatalf("ShowBoxscore: %v", err)
	}
	c.HideModal()
	before := c.Snapshot()

	f.avgErr = errors.New("network down")
	applied, err := c.ShowBoxscore(context.Background(), "A")
	if err == nil || applied {
		t.Fatalf("expected failure, got applied=%v err=%v", applied, err)
	}

	if after := c.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("modal changed on failed fetch")
	}
	if c.Boxscore() != view.BoxscoreIdle {
		t.Errorf("expected idle after failure, got %s", c.Boxscore())
	}
}

func TestShowBoxscore_LastRequestWins(t *testing.T) {
	f := newMockFetcher()
	f.averages["C"] = models.PlayerAverages{Record: models.NewRecord("points", 1.0, "FullName", "C")}
	gate := f.block("A")
	c := view.NewController(f)

	type result struct {
		applied bool
		err     error
	}
	slow := make(chan result, 1)
	go func() {
		applied, err := c.ShowBoxscore(context.Background(), "A")
		slow <- result{applied, err}
	}()

	// wait for the slow request to be in flight
	deadline := time.Now().Add(2 * time.Second)
	for c.Boxscore() != view.BoxscoreLoading {
		if time.Now().After(deadline) {
			t.Fatal("slow request never started")
		}
		time.Sleep(time.Millisecond)
	}

	applied, err := c.ShowBoxscore(context.Background(), "C")
	if err != nil || !applied {
		t.Fatalf("fast request: applied=%v err=%v", applied, err)
	}

	close(gate)
	res := <-slow
	if res.err != nil {
		t.Fatalf("slow request: %v", res.err)
	}
	if res.applied {
		t.Error("stale result must be discarded")
	}

	if title := c.Snapshot().Modal.Title; title != "C" {
		t.Errorf("expected the newest request to be shown, got %q", title)
	}
}

func TestClickPlayerLink(t *testing.T) {
	c := view.NewController(newMockFetcher())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	applied, err := c.ClickPlayerLink(context.Background())
	if err != nil || !applied {
		t.Fatalf("ClickPlayerLink: applied=%v err=%v", applied, err)
	}
	if c.Snapshot().Modal.Title != "A" {
		t.Errorf("expected modal for A")
	}

	c.Select("B")
	if applied, _ := c.ClickPlayerLink(context.Background()); applied {
		t.Error("expected no link on the placeholder table")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	c := view.NewController(newMockFetcher())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	doc := c.Snapshot()
	doc.Select.Options[0] = "mutated"
	doc.TableBody[0].Cells[0].Text = "mutated"

	again := c.Snapshot()
	if again.Select.Options[0] != "A" || again.TableBody[0].Cells[0].Text != "A" {
		t.Error("snapshot shares memory with the controller")
	}
}
