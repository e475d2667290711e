package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/internal/view"
	"github.com/ptv0002/CS521-NBA-Stats-Analyzer/pkg/models"
)

func newRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestRenderer_PageCarriesElementIDs(t *testing.T) {
	r := newRenderer(t)
	c := view.NewController(newMockFetcher())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var buf bytes.Buffer
	err := r.Page(&buf, view.PageData{Title: "NBA Roster", WebSocketPath: "/ws", Doc: c.Snapshot()})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	html := buf.String()
	for _, id := range []string{
		view.IDPlayerSelect, view.IDTableHead, view.IDTableBody,
		view.IDPlayerModal, view.IDPlayerModalLabel, view.IDPlayerDetails, view.IDPlayerLink,
	} {
		if !strings.Contains(html, `id="`+id+`"`) {
			t.Errorf("page is missing element %q", id)
		}
	}
	if !strings.Contains(html, `<option value="A" selected>A</option>`) {
		t.Error("expected first option to be selected")
	}
	if !strings.Contains(html, `data-ws-path="/ws"`) {
		t.Error("expected websocket path on body")
	}
}

func TestRenderer_TableFragments(t *testing.T) {
	r := newRenderer(t)
	c := view.NewController(newMockFetcher())
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	frags, err := r.Fragments(c.Snapshot(), view.TableFragments...)
	if err != nil {
		t.Fatalf("Fragments: %v", err)
	}

	if got := frags[view.IDTableHead]; got != "<th>FullName</th><th>Pts</th>" {
		t.Errorf("unexpected head %q", got)
	}
	want := `<tr><td><a href="#" id="playerLink" data-player="A">A</a></td><td>10</td></tr>`
	if got := frags[view.IDTableBody]; got != want {
		t.Errorf("unexpected body\n got %q\nwant %q", got, want)
	}

	c.Select("B")
	frags, err = r.Fragments(c.Snapshot(), view.IDTableHead, view.IDTableBody)
	if err != nil {
		t.Fatalf("Fragments: %v", err)
	}
	if frags[view.IDTableHead] != "" {
		t.Errorf("expected empty head, got %q", frags[view.IDTableHead])
	}
	if got := frags[view.IDTableBody]; got != `<tr><td colspan="10">No data for this player</td></tr>` {
		t.Errorf("unexpected placeholder %q", got)
	}
}

func TestRenderer_ModalFragments(t *testing.T) {
	r := newRenderer(t)
	c := view.NewController(newMockFetcher())
	if _, err := c.ShowBoxscore(context.Background(), "Nobody"); err != nil {
		t.Fatalf("ShowBoxscore: %v", err)
	}

	frags, err := r.Fragments(c.Snapshot(), view.ModalFragments...)
	if err != nil {
		t.Fatalf("Fragments: %v", err)
	}
	if frags[view.IDPlayerModalLabel] != view.StatsTitle {
		t.Errorf("unexpected title %q", frags[view.IDPlayerModalLabel])
	}
	if got := frags[view.IDPlayerDetails]; got != `<tr><td colspan="3">No stats available</td></tr>` {
		t.Errorf("unexpected details %q", got)
	}
}

func TestRenderer_EscapesValues(t *testing.T) {
	r := newRenderer(t)
	f := newMockFetcher()
	f.players = []models.PlayerRecord{player("FullName", "A", "Note", "<b>x</b>")}
	c := view.NewController(f)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	html, err := r.Fragment(view.IDTableBody, c.Snapshot())
	if err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	if strings.Contains(html, "<b>") || !strings.Contains(html, "&lt;b&gt;") {
		t.Errorf("expected escaped markup, got %q", html)
	}
}
