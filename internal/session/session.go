// Package session owns the mutable state of one patron's seat-picking
// session: the grid, the ordered selection, the current suggestion and the
// requested ticket count. Every command is applied under a single-writer
// lock and either fully applies or leaves the session untouched, so two
// commands never interleave and no torn update is observable.
package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"seatpick/internal/grid"
	"seatpick/internal/suggest"
)

// Session is the explicitly owned state object for one patron. Construct
// with New; the zero value is not usable.
type Session struct {
	mu sync.Mutex

	id        string
	layoutID  string
	createdAt time.Time

	grid       grid.Grid
	selection  grid.Selection
	suggestion []grid.SeatID
	tickets    int
	ticketMax  int
}

// Snapshot is the read model handed to the presentation layer: the rendered
// grid, the ordered selection, the current suggestion and the ticket count.
// The derived price total is computed at the transport boundary, not here.
type Snapshot struct {
	ID         string         `json:"session_id"`
	LayoutID   string         `json:"layout_id"`
	Layout     string         `json:"layout"`
	Tickets    int            `json:"tickets"`
	Rows       []grid.RowView `json:"rows"`
	Selection  []grid.SeatID  `json:"selection"`
	Suggestion []grid.SeatID  `json:"suggestion"`
}

// New creates a session over a freshly built grid, clamps the initial
// ticket count to [1, ticketMax] and computes the first suggestion.
// layoutID is the catalog identifier the grid's layout was resolved from,
// distinct from the layout's display name.
func New(id, layoutID string, g grid.Grid, tickets, ticketMax int) *Session {
	if ticketMax < 1 {
		ticketMax = 1
	}
	if tickets < 1 {
		tickets = 1
	}
	if tickets > ticketMax {
		tickets = ticketMax
	}
	s := &Session{
		id:        id,
		layoutID:  layoutID,
		createdAt: time.Now().UTC(),
		grid:      g,
		tickets:   tickets,
		ticketMax: ticketMax,
	}
	s.recomputeSuggestion()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// CreatedAt returns the session creation time. The store uses it to purge
// expired sessions.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// ClickSeat applies the seat-click state transition. Unknown seats,
// occupied seats and clicks past the ticket limit are swallowed no-ops per
// the state machine; limit hits are logged at warn level. Any click that
// does change state supersedes the current suggestion.
func (s *Session) ClickSeat(id grid.SeatID) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, sel, err := s.grid.ApplyClick(id, s.tickets, s.selection)
	switch {
	case errors.Is(err, grid.ErrUnknownSeat):
		log.Printf("session %s: click on unknown seat %s ignored", s.id, id)
		return s.snapshotLocked()
	case errors.Is(err, grid.ErrSelectionLimit):
		log.Printf("session %s: click on %s past ticket count %d ignored", s.id, id, s.tickets)
		return s.snapshotLocked()
	}
	if len(sel) == len(s.selection) {
		// Occupied seat: the click bounced off, nothing moved.
		return s.snapshotLocked()
	}
	// A manual pick or deselect makes the standing suggestion stale.
	s.grid = g.ClearSuggested()
	s.selection = sel
	s.suggestion = nil
	return s.snapshotLocked()
}

// SetTicketCount clamps the count, trims any trailing excess selection and
// recomputes the suggestion against the new count.
func (s *Session) SetTicketCount(count int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, sel, clamped := s.grid.SetTicketCount(s.selection, count, s.ticketMax)
	s.grid = g
	s.selection = sel
	s.tickets = clamped
	s.recomputeSuggestion()
	return s.snapshotLocked()
}

// UseSuggested bulk-applies the current suggestion, replacing any prior
// manual selection. With no standing suggestion it is a no-op. It returns
// the snapshot and whether a suggestion was applied.
func (s *Session) UseSuggested() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.suggestion) == 0 {
		return s.snapshotLocked(), false
	}
	g, sel, err := s.grid.ReplaceSelection(s.selection, s.suggestion)
	if err != nil {
		// Suggested seats are suggested by construction; an error here
		// means the grid drifted underneath the suggestion.
		log.Printf("session %s: stale suggestion not applied: %v", s.id, err)
		return s.snapshotLocked(), false
	}
	s.grid = g
	s.selection = sel
	s.suggestion = nil
	return s.snapshotLocked(), true
}

// Snapshot returns the current read model.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// recomputeSuggestion runs the engine against the current grid and marks
// the proposed seats. Callers hold the lock and have already cleared any
// stale suggested statuses.
func (s *Session) recomputeSuggestion() {
	s.suggestion = suggest.Suggest(s.grid, s.tickets)
	if len(s.suggestion) > 0 {
		s.grid = s.grid.MarkSuggested(s.suggestion)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	sel := make([]grid.SeatID, len(s.selection))
	copy(sel, s.selection)
	sug := make([]grid.SeatID, len(s.suggestion))
	copy(sug, s.suggestion)
	return Snapshot{
		ID:         s.id,
		LayoutID:   s.layoutID,
		Layout:     s.grid.Layout().Name,
		Tickets:    s.tickets,
		Rows:       s.grid.Rows(),
		Selection:  sel,
		Suggestion: sug,
	}
}
