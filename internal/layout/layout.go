// Package layout defines the static venue layout used to build seat grids.
// A layout is immutable for the lifetime of a session: an ordered list of
// rows, each with its own seat count, plus a designated center row that the
// suggestion engine uses as its distance-zero reference.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout is returned when a layout fails validation. Layout
// errors are fatal at initialization time; callers should not attempt to
// build a grid from a layout that did not validate.
var ErrInvalidLayout = errors.New("invalid layout")

// Row describes one row of the venue: its label (e.g. "A") and how many
// seats it holds. Seat numbers within a row run from 1 to Seats.
type Row struct {
	Label string `json:"label"`
	Seats int    `json:"seats"`
}

// Layout is the full venue description. Rows are kept in their original
// layout order; that order is the tie-break for equidistant rows during
// suggestion. CenterRow must name one of the rows.
type Layout struct {
	Name      string `json:"name"`
	Rows      []Row  `json:"rows"`
	CenterRow string `json:"center_row"`
}

// Validate checks structural soundness: at least one row, no duplicate,
// blank or whitespace-padded labels, every row with a positive seat count,
// and a center row label that actually exists. Labels must be in their
// trimmed form because RowIndex and grid construction compare them
// verbatim; ParseJSON normalizes before validating. All violations wrap
// ErrInvalidLayout.
func (l Layout) Validate() error {
	if len(l.Rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidLayout)
	}
	seen := make(map[string]struct{}, len(l.Rows))
	for _, r := range l.Rows {
		if r.Label == "" || r.Label != strings.TrimSpace(r.Label) {
			return fmt.Errorf("%w: bad row label %q", ErrInvalidLayout, r.Label)
		}
		if _, dup := seen[r.Label]; dup {
			return fmt.Errorf("%w: duplicate row label %q", ErrInvalidLayout, r.Label)
		}
		seen[r.Label] = struct{}{}
		if r.Seats < 1 {
			return fmt.Errorf("%w: row %q declares %d seats", ErrInvalidLayout, r.Label, r.Seats)
		}
	}
	if _, ok := seen[l.CenterRow]; !ok {
		return fmt.Errorf("%w: center row %q not present", ErrInvalidLayout, l.CenterRow)
	}
	return nil
}

// RowIndex returns the position of the row with the given label in layout
// order, or -1 when no such row exists.
func (l Layout) RowIndex(label string) int {
	for i, r := range l.Rows {
		if r.Label == label {
			return i
		}
	}
	return -1
}

// CenterIndex returns the layout position of the center row. A validated
// layout always has one.
func (l Layout) CenterIndex() int {
	return l.RowIndex(l.CenterRow)
}

// SeatCount returns the total number of seats across all rows.
func (l Layout) SeatCount() int {
	n := 0
	for _, r := range l.Rows {
		n += r.Seats
	}
	return n
}

// Default returns the built-in venue: eight rows A through H with eight
// seats each and row D as the proximity reference.
func Default() Layout {
	rows := make([]Row, 0, 8)
	for _, lbl := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		rows = append(rows, Row{Label: lbl, Seats: 8})
	}
	return Layout{Name: "main-hall", Rows: rows, CenterRow: "D"}
}

// ParseJSON decodes a layout document, trims whitespace off row labels and
// the center row, and validates the result. The same format is used for
// rows stored in the layout catalog table and for layouts supplied through
// the environment.
func ParseJSON(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	for i := range l.Rows {
		l.Rows[i].Label = strings.TrimSpace(l.Rows[i].Label)
	}
	l.CenterRow = strings.TrimSpace(l.CenterRow)
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
