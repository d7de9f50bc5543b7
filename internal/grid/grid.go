// Package grid models the per-showing seat grid: one seat per (row, number)
// pair of the venue layout, each carrying a mutable status. All operations
// are copy-on-write: they return an updated grid and selection and leave
// the receivers untouched, so a command either fully applies or the caller
// keeps the previous state.
package grid

import (
	"errors"
	"fmt"
	"sort"

	"seatpick/internal/layout"
)

// Status is the lifecycle state of a single seat.
//
// Occupied is terminal: it is assigned at grid build time by the occupancy
// source and no user action can enter or leave it. Suggested is owned by
// the suggestion engine; clicks only ever move a suggested seat to
// selected, never the other way around.
type Status uint8

const (
	StatusAvailable Status = iota // free to select or suggest
	StatusOccupied                // venue-assigned, terminal
	StatusSelected                // chosen by the user, member of the selection
	StatusSuggested               // proposed by the suggestion engine
)

// String returns the lowercase wire name of the status.
func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusOccupied:
		return "occupied"
	case StatusSelected:
		return "selected"
	case StatusSuggested:
		return "suggested"
	}
	return "unknown"
}

// MarshalJSON renders the status by name so grid snapshots are readable.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the wire names produced by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"available"`:
		*s = StatusAvailable
	case `"occupied"`:
		*s = StatusOccupied
	case `"selected"`:
		*s = StatusSelected
	case `"suggested"`:
		*s = StatusSuggested
	default:
		return fmt.Errorf("unknown seat status %s", data)
	}
	return nil
}

// SeatID identifies a physical seat. Identity never changes after the grid
// is built; only the seat's status mutates.
type SeatID struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
}

// String renders the conventional label, e.g. "C4".
func (id SeatID) String() string {
	return fmt.Sprintf("%s%d", id.Row, id.Number)
}

// Selection is the ordered sequence of seats the user has chosen. Order
// matters: reducing the ticket count drops seats from position n onward.
type Selection []SeatID

// Contains reports membership.
func (sel Selection) Contains(id SeatID) bool {
	return sel.index(id) >= 0
}

func (sel Selection) index(id SeatID) int {
	for i, s := range sel {
		if s == id {
			return i
		}
	}
	return -1
}

// clone returns an independent copy so callers never alias the original.
func (sel Selection) clone() Selection {
	out := make(Selection, len(sel))
	copy(out, sel)
	return out
}

// ErrUnknownSeat is returned when a click references a seat identity that
// does not exist in the grid. Callers treat it as a no-op and must not
// surface it to the user.
var ErrUnknownSeat = errors.New("unknown seat")

// ErrSelectionLimit is returned when a click would push the selection past
// the requested ticket count. The click is swallowed; the error exists only
// so callers can log it.
var ErrSelectionLimit = errors.New("selection limit exceeded")

// Grid holds the status of every seat for one showing. Exactly one seat
// exists per (row, number) pair of the layout. The zero Grid is not usable;
// build one with New.
type Grid struct {
	layout layout.Layout
	seats  map[SeatID]Status
}

// New builds the grid for a layout, asking the occupancy source whether
// each seat is taken. Seats are visited in layout order (rows in order,
// numbers ascending) so a seeded source produces the same grid every time.
// The layout is validated first; a bad layout yields layout.ErrInvalidLayout.
func New(l layout.Layout, occ Source) (Grid, error) {
	if err := l.Validate(); err != nil {
		return Grid{}, err
	}
	if occ == nil {
		occ = Fixed()
	}
	seats := make(map[SeatID]Status, l.SeatCount())
	for _, row := range l.Rows {
		for n := 1; n <= row.Seats; n++ {
			id := SeatID{Row: row.Label, Number: n}
			if occ.Occupied(id) {
				seats[id] = StatusOccupied
			} else {
				seats[id] = StatusAvailable
			}
		}
	}
	return Grid{layout: l, seats: seats}, nil
}

// Layout returns the venue layout the grid was built from.
func (g Grid) Layout() layout.Layout {
	return g.layout
}

// Status reports the current status of a seat and whether it exists.
func (g Grid) Status(id SeatID) (Status, bool) {
	st, ok := g.seats[id]
	return st, ok
}

// AvailableByRow returns the sorted seat numbers of all available seats in
// the named row. The suggestion engine scans these for consecutive runs.
func (g Grid) AvailableByRow(label string) []int {
	row := -1
	for i, r := range g.layout.Rows {
		if r.Label == label {
			row = i
			break
		}
	}
	if row < 0 {
		return nil
	}
	nums := make([]int, 0, g.layout.Rows[row].Seats)
	for n := 1; n <= g.layout.Rows[row].Seats; n++ {
		if g.seats[SeatID{Row: label, Number: n}] == StatusAvailable {
			nums = append(nums, n)
		}
	}
	sort.Ints(nums)
	return nums
}

func (g Grid) clone() Grid {
	seats := make(map[SeatID]Status, len(g.seats))
	for id, st := range g.seats {
		seats[id] = st
	}
	return Grid{layout: g.layout, seats: seats}
}

// ApplyClick performs the seat-click state transition:
//
//	available -> selected   while the selection is below the requested count
//	suggested -> selected   same guard; suggestion does not bypass the limit
//	selected  -> available  always (deselect)
//
// Unknown seats return ErrUnknownSeat, a full selection returns
// ErrSelectionLimit, and occupied seats are silently ignored; in every one
// of those cases the returned grid and selection are the originals,
// unchanged.
func (g Grid) ApplyClick(id SeatID, requested int, sel Selection) (Grid, Selection, error) {
	st, ok := g.seats[id]
	if !ok {
		return g, sel, ErrUnknownSeat
	}
	switch st {
	case StatusOccupied:
		// Venue-assigned seats never react to clicks.
		return g, sel, nil
	case StatusSelected:
		out := g.clone()
		out.seats[id] = StatusAvailable
		next := sel.clone()
		if i := next.index(id); i >= 0 {
			next = append(next[:i], next[i+1:]...)
		}
		return out, next, nil
	default: // available or suggested
		if len(sel) >= requested {
			return g, sel, ErrSelectionLimit
		}
		out := g.clone()
		out.seats[id] = StatusSelected
		return out, append(sel.clone(), id), nil
	}
}

// SetTicketCount clamps the requested count to [1, max], deselects any
// trailing excess seats (positions clamped-count onward, in selection
// order) and resets stale suggested seats to available. It returns the
// updated grid, selection and the clamped count.
func (g Grid) SetTicketCount(sel Selection, count, max int) (Grid, Selection, int) {
	if max < 1 {
		max = 1
	}
	if count < 1 {
		count = 1
	}
	if count > max {
		count = max
	}
	out := g.clone()
	next := sel.clone()
	if count < len(next) {
		for _, id := range next[count:] {
			out.seats[id] = StatusAvailable
		}
		next = next[:count]
	}
	out.clearSuggested()
	return out, next, count
}

// ReplaceSelection atomically swaps the whole selection: every seat in old
// returns to available and every seat in ids becomes selected. Each target
// must currently be available or suggested; when one is not, the originals
// are returned unchanged along with an error. Backs the bulk "use
// suggested" command.
func (g Grid) ReplaceSelection(old Selection, ids []SeatID) (Grid, Selection, error) {
	out := g.clone()
	for _, id := range old {
		if out.seats[id] == StatusSelected {
			out.seats[id] = StatusAvailable
		}
	}
	next := make(Selection, 0, len(ids))
	for _, id := range ids {
		st, ok := out.seats[id]
		if !ok {
			return g, old, ErrUnknownSeat
		}
		if st != StatusAvailable && st != StatusSuggested {
			return g, old, fmt.Errorf("seat %s is %s", id, st)
		}
		out.seats[id] = StatusSelected
		next = append(next, id)
	}
	return out, next, nil
}

// MarkSuggested flips the given available seats to suggested. Seats in any
// other state are left alone; the suggestion engine only ever proposes
// available seats, so a mismatch means the grid moved underneath it.
func (g Grid) MarkSuggested(ids []SeatID) Grid {
	out := g.clone()
	for _, id := range ids {
		if out.seats[id] == StatusAvailable {
			out.seats[id] = StatusSuggested
		}
	}
	return out
}

// ClearSuggested resets every suggested seat back to available.
func (g Grid) ClearSuggested() Grid {
	out := g.clone()
	out.clearSuggested()
	return out
}

func (g *Grid) clearSuggested() {
	for id, st := range g.seats {
		if st == StatusSuggested {
			g.seats[id] = StatusAvailable
		}
	}
}

// SeatView is one seat in a rendered row.
type SeatView struct {
	Number int    `json:"number"`
	Status Status `json:"status"`
}

// RowView is one rendered row: its label and every seat in number order.
type RowView struct {
	Label string     `json:"label"`
	Seats []SeatView `json:"seats"`
}

// Rows renders the full grid in layout order for the presentation layer.
func (g Grid) Rows() []RowView {
	out := make([]RowView, 0, len(g.layout.Rows))
	for _, row := range g.layout.Rows {
		rv := RowView{Label: row.Label, Seats: make([]SeatView, 0, row.Seats)}
		for n := 1; n <= row.Seats; n++ {
			rv.Seats = append(rv.Seats, SeatView{
				Number: n,
				Status: g.seats[SeatID{Row: row.Label, Number: n}],
			})
		}
		out = append(out, rv)
	}
	return out
}
