package engine

import (
	"math"

	"github.com/DavidHearl/boardgen/internal/model"
)

// e1TerminalWidth is the default top bound of the single-long-edge bin
// table. It is extended upward when a group's widest part exceeds it.
const e1TerminalWidth = 1000.0

// BinCount is one computed purchase: how many boards of a given width
// a category needs.
type BinCount struct {
	Width  float64 // mm, purchase width
	Boards int
}

// e1WidthBounds returns the full ascending bound list for the
// single-long-edge bins: the configured table with the terminal bound
// appended. The terminal is the larger of the default and the widest
// part observed in the group.
func e1WidthBounds(bins []float64, maxObserved float64) []float64 {
	bounds := make([]float64, len(bins), len(bins)+1)
	copy(bounds, bins)
	return append(bounds, math.Max(maxObserved, e1TerminalWidth))
}

// CountSingleEdgeBoards buckets the E1 parts into the discrete width
// bins and accumulates each bin independently. A part lands in the
// first bin whose upper bound is at least its width; parts are
// accumulated in input order.
func CountSingleEdgeBoards(parts []model.PartLine, s model.SawSettings) []BinCount {
	if len(parts) == 0 {
		return nil
	}

	maxObserved := 0.0
	for _, p := range parts {
		if p.Width > maxObserved {
			maxObserved = p.Width
		}
	}

	bounds := e1WidthBounds(s.WidthBins, maxObserved)
	binPieces := make([][]LengthQty, len(bounds)-1)
	for _, p := range parts {
		for i := 1; i < len(bounds); i++ {
			if p.Width <= bounds[i] {
				binPieces[i-1] = append(binPieces[i-1], LengthQty{Length: p.Length, Qty: p.Quantity})
				break
			}
		}
	}

	var counts []BinCount
	for i, pieces := range binPieces {
		if boards := AccumulateRips(pieces, s.MaxRipLength); boards > 0 {
			counts = append(counts, BinCount{Width: bounds[i+1], Boards: boards})
		}
	}
	return counts
}

// CountDoubleEdgeBoards groups the E2 parts by literal width (no
// bucketing, distinct widths are distinct purchases) and accumulates
// each group independently. Groups are emitted in first-appearance
// order and accumulate in input order.
func CountDoubleEdgeBoards(parts []model.PartLine, s model.SawSettings) []BinCount {
	var order []float64
	pieces := make(map[float64][]LengthQty)
	for _, p := range parts {
		if _, seen := pieces[p.Width]; !seen {
			order = append(order, p.Width)
		}
		pieces[p.Width] = append(pieces[p.Width], LengthQty{Length: p.Length, Qty: p.Quantity})
	}

	var counts []BinCount
	for _, w := range order {
		if boards := AccumulateRips(pieces[w], s.MaxRipLength); boards > 0 {
			counts = append(counts, BinCount{Width: w, Boards: boards})
		}
	}
	return counts
}
