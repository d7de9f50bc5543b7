// Package suggest implements the automatic seat recommendation. Given a
// grid and a requested party size it returns the block of seats the patron
// should be offered, or nothing when no row can fit the party.
package suggest

import (
	"sort"

	"seatpick/internal/grid"
)

// Suggest returns the recommended seats for the requested party size. It is
// a pure function of the grid's available seats and the count: calling it
// again on an unchanged grid returns the same block.
//
// Rows are visited in order of absolute distance from the layout's center
// row, nearest first; equidistant rows keep their original layout order.
// Within a row the available seats are split into consecutive runs (a gap
// in seat numbers starts a new run) and the shortest run that still fits
// the party wins, so large runs are not broken up when a tighter fit
// exists. The first row that yields a qualifying run decides the outcome:
// proximity to the center row always beats run quality in farther rows.
//
// A non-positive count, or a party larger than every run, yields nil.
func Suggest(g grid.Grid, requested int) []grid.SeatID {
	if requested <= 0 {
		return nil
	}
	l := g.Layout()
	center := l.CenterIndex()

	order := make([]int, len(l.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return absDist(order[a], center) < absDist(order[b], center)
	})

	for _, ri := range order {
		label := l.Rows[ri].Label
		run := bestRun(g.AvailableByRow(label), requested)
		if run == nil {
			continue
		}
		out := make([]grid.SeatID, requested)
		for i := 0; i < requested; i++ {
			out[i] = grid.SeatID{Row: label, Number: run[i]}
		}
		return out
	}
	return nil
}

// bestRun scans the sorted seat numbers for consecutive runs and returns
// the earliest run of minimal length that is still at least want long, or
// nil when no run qualifies.
func bestRun(nums []int, want int) []int {
	var best []int
	start := 0
	for i := 1; i <= len(nums); i++ {
		if i < len(nums) && nums[i] == nums[i-1]+1 {
			continue
		}
		run := nums[start:i]
		if len(run) >= want && (best == nil || len(run) < len(best)) {
			best = run
		}
		start = i
	}
	return best
}

func absDist(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
