package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatpick/internal/grid"
	"seatpick/internal/layout"
)

func testLayout() layout.Layout {
	return layout.Layout{
		Name: "test",
		Rows: []layout.Row{
			{Label: "A", Seats: 6}, {Label: "B", Seats: 6}, {Label: "C", Seats: 6},
		},
		CenterRow: "B",
	}
}

func newSession(t *testing.T, tickets int, occupied ...grid.SeatID) *Session {
	t.Helper()
	g, err := grid.New(testLayout(), grid.Fixed(occupied...))
	require.NoError(t, err)
	return New("sess-1", "test-hall", g, tickets, 10)
}

// statusOf digs a seat's rendered status out of a snapshot.
func statusOf(t *testing.T, snap Snapshot, id grid.SeatID) grid.Status {
	t.Helper()
	for _, row := range snap.Rows {
		if row.Label != id.Row {
			continue
		}
		for _, s := range row.Seats {
			if s.Number == id.Number {
				return s.Status
			}
		}
	}
	t.Fatalf("seat %s not in snapshot", id)
	return 0
}

// checkConsistency asserts the bidirectional invariant: every selection
// member renders as selected and every selected seat is a selection member.
func checkConsistency(t *testing.T, snap Snapshot) {
	t.Helper()
	inSelection := make(map[grid.SeatID]bool, len(snap.Selection))
	for _, id := range snap.Selection {
		inSelection[id] = true
		assert.Equal(t, grid.StatusSelected, statusOf(t, snap, id))
	}
	for _, row := range snap.Rows {
		for _, s := range row.Seats {
			if s.Status == grid.StatusSelected {
				assert.True(t, inSelection[grid.SeatID{Row: row.Label, Number: s.Number}],
					"selected seat %s%d missing from selection", row.Label, s.Number)
			}
		}
	}
}

func TestNewComputesInitialSuggestion(t *testing.T) {
	s := newSession(t, 2)
	snap := s.Snapshot()
	require.Len(t, snap.Suggestion, 2)
	assert.Equal(t, "B", snap.Suggestion[0].Row)
	for _, id := range snap.Suggestion {
		assert.Equal(t, grid.StatusSuggested, statusOf(t, snap, id))
	}
	checkConsistency(t, snap)
}

// The snapshot carries the catalog id the session was opened with, not
// the layout's display name; downstream events key on the catalog id.
func TestSnapshotCarriesCatalogLayoutID(t *testing.T) {
	s := newSession(t, 2)
	snap := s.Snapshot()
	assert.Equal(t, "test-hall", snap.LayoutID)
	assert.Equal(t, "test", snap.Layout)
}

func TestClickSeatSelectsAndSupersedesSuggestion(t *testing.T) {
	s := newSession(t, 2)
	id := grid.SeatID{Row: "A", Number: 4}
	snap := s.ClickSeat(id)
	assert.Equal(t, []grid.SeatID{id}, snap.Selection)
	assert.Empty(t, snap.Suggestion)
	// previously suggested seats went back to available
	assert.Equal(t, grid.StatusAvailable, statusOf(t, snap, grid.SeatID{Row: "B", Number: 1}))
	checkConsistency(t, snap)
}

func TestClickSeatDeselectAlwaysWorks(t *testing.T) {
	s := newSession(t, 2)
	id := grid.SeatID{Row: "A", Number: 1}
	s.ClickSeat(id)
	s.ClickSeat(grid.SeatID{Row: "A", Number: 2})
	// selection is at the limit; a deselect must still go through
	snap := s.ClickSeat(id)
	assert.Equal(t, []grid.SeatID{{Row: "A", Number: 2}}, snap.Selection)
	assert.Equal(t, grid.StatusAvailable, statusOf(t, snap, id))
	checkConsistency(t, snap)
}

func TestClickSeatSwallowedNoOps(t *testing.T) {
	occ := grid.SeatID{Row: "C", Number: 6}
	s := newSession(t, 1, occ)
	before := s.ClickSeat(grid.SeatID{Row: "A", Number: 1})

	// occupied seat
	snap := s.ClickSeat(occ)
	assert.Equal(t, before.Selection, snap.Selection)
	assert.Equal(t, grid.StatusOccupied, statusOf(t, snap, occ))

	// unknown seat
	snap = s.ClickSeat(grid.SeatID{Row: "Z", Number: 1})
	assert.Equal(t, before.Selection, snap.Selection)

	// past the ticket count
	snap = s.ClickSeat(grid.SeatID{Row: "A", Number: 2})
	assert.Equal(t, before.Selection, snap.Selection)
	checkConsistency(t, snap)
}

func TestSetTicketCountTrimsAndRecomputes(t *testing.T) {
	s := newSession(t, 3)
	s.ClickSeat(grid.SeatID{Row: "A", Number: 1})
	s.ClickSeat(grid.SeatID{Row: "A", Number: 3})
	s.ClickSeat(grid.SeatID{Row: "A", Number: 5})

	snap := s.SetTicketCount(1)
	assert.Equal(t, 1, snap.Tickets)
	assert.Equal(t, []grid.SeatID{{Row: "A", Number: 1}}, snap.Selection)
	for _, n := range []int{3, 5} {
		assert.Equal(t, grid.StatusAvailable, statusOf(t, snap, grid.SeatID{Row: "A", Number: n}))
	}
	// suggestion recomputed against the new count
	require.Len(t, snap.Suggestion, 1)
	assert.Equal(t, "B", snap.Suggestion[0].Row)
	checkConsistency(t, snap)
}

func TestSetTicketCountClamps(t *testing.T) {
	s := newSession(t, 2)
	assert.Equal(t, 10, s.SetTicketCount(25).Tickets)
	assert.Equal(t, 1, s.SetTicketCount(-1).Tickets)
}

func TestUseSuggestedReplacesManualSelection(t *testing.T) {
	s := newSession(t, 2)
	manual := grid.SeatID{Row: "C", Number: 2}
	s.ClickSeat(manual)
	// clicking superseded the suggestion; recompute it via the count
	snap := s.SetTicketCount(2)
	require.NotEmpty(t, snap.Suggestion)
	want := snap.Suggestion

	snap, applied := s.UseSuggested()
	assert.True(t, applied)
	assert.Equal(t, want, snap.Selection)
	assert.Empty(t, snap.Suggestion)
	assert.Equal(t, grid.StatusAvailable, statusOf(t, snap, manual))
	checkConsistency(t, snap)
}

func TestUseSuggestedNoOpWithoutSuggestion(t *testing.T) {
	// occupy everything so no suggestion exists
	var occ []grid.SeatID
	for _, row := range []string{"A", "B", "C"} {
		for n := 1; n <= 6; n++ {
			occ = append(occ, grid.SeatID{Row: row, Number: n})
		}
	}
	s := newSession(t, 2, occ...)
	snap := s.Snapshot()
	require.Empty(t, snap.Suggestion)

	snap, applied := s.UseSuggested()
	assert.False(t, applied)
	assert.Empty(t, snap.Selection)
}

func TestSuggestedClickCountsAgainstLimit(t *testing.T) {
	s := newSession(t, 1)
	snap := s.Snapshot()
	require.Len(t, snap.Suggestion, 1)
	sug := snap.Suggestion[0]

	snap = s.ClickSeat(sug)
	assert.Equal(t, []grid.SeatID{sug}, snap.Selection)
	assert.Equal(t, grid.StatusSelected, statusOf(t, snap, sug))
	checkConsistency(t, snap)
}
