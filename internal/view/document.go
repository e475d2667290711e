package view

// Element IDs of the roster page markup
const (
	IDPlayerSelect     = "playerSelect"
	IDTableHead        = "tableHead"
	IDTableBody        = "tableBody"
	IDPlayerModal      = "playerModal"
	IDPlayerModalLabel = "playerModalLabel"
	IDPlayerDetails    = "playerDetails"
	IDPlayerLink       = "playerLink"
)

// Placeholder texts and spans
const (
	NoDataText   = "No data for this player"
	NoStatsText  = "No stats available"
	StatsTitle   = "Player Stats"
	TableColspan = 10
	StatsPerRow  = 3
	StatsColspan = StatsPerRow
)

// Cell is one table cell.
// Table cells carry Text; boxscore cells carry a Label/Text pair.
// A non-empty LinkTo turns the cell into the player link.
type Cell struct {
	Text    string
	Label   string
	Colspan int
	LinkTo  string
}

// Row is one table row
type Row struct {
	Cells []Cell
}

// Selector is the player selection control
type Selector struct {
	Options []string
	Value   string
}

// Modal is the boxscore overlay
type Modal struct {
	Title   string
	Details []Row
	Shown   bool
}

// Document is the state of the roster page as the browser would hold it
type Document struct {
	Select    Selector
	TableHead []string
	TableBody []Row
	Modal     Modal
}

// Clone returns a deep copy safe to hand to another goroutine
func (d Document) Clone() Document {
	out := Document{
		Select: Selector{
			Options: append([]string(nil), d.Select.Options...),
			Value:   d.Select.Value,
		},
		TableHead: append([]string(nil), d.TableHead...),
		TableBody: cloneRows(d.TableBody),
		Modal: Modal{
			Title:   d.Modal.Title,
			Details: cloneRows(d.Modal.Details),
			Shown:   d.Modal.Shown,
		},
	}
	return out
}

func cloneRows(rows []Row) []Row {
	if rows == nil {
		return nil
	}
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row{Cells: append([]Cell(nil), r.Cells...)}
	}
	return out
}
