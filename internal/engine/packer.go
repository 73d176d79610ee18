package engine

import (
	"sort"

	"github.com/DavidHearl/boardgen/internal/model"
)

// Strip is a rip-width lane on a board. Pieces are cut from it end to
// end; LengthUsed never exceeds the rip capacity.
type Strip struct {
	Width      float64 // mm
	LengthUsed float64 // mm
}

// Board is one physical stock sheet, subdivided lengthwise into strips.
// The strip widths never sum past the board width.
type Board struct {
	Strips []Strip
}

// UsedWidth returns the total width taken by the board's strips.
func (b Board) UsedWidth() float64 {
	var total float64
	for _, s := range b.Strips {
		total += s.Width
	}
	return total
}

// unedgedUnit is a single physical piece to be placed.
type unedgedUnit struct {
	length float64
	width  float64
}

// expandUnedged flattens part quantities into individual units. A part
// wider than the stock is seamed from two half-width strips meeting in
// the middle, so its width halves and its quantity doubles; total
// linear length is conserved.
func expandUnedged(parts []model.PartLine, maxBoardWidth float64) []unedgedUnit {
	var units []unedgedUnit
	for _, p := range parts {
		width := p.Width
		qty := p.Quantity
		if width > maxBoardWidth {
			width = p.Width / 2
			qty = p.Quantity * 2
		}
		for i := 0; i < qty; i++ {
			units = append(units, unedgedUnit{length: p.Length, width: width})
		}
	}
	return units
}

// PackUnedged packs the group's unedged parts onto fixed-width stock
// boards with a First-Fit heuristic and returns the boards created.
// Units are placed widest first (stable within equal widths): first
// into an existing strip of the same width with length to spare, then
// as a new strip on a board with width to spare, else onto a new
// board. Greedy, not globally optimal, and deterministic for a fixed
// input order.
func PackUnedged(parts []model.PartLine, s model.SawSettings) []Board {
	units := expandUnedged(parts, s.MaxBoardWidth)
	if len(units) == 0 {
		return nil
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].width > units[j].width
	})

	var boards []Board
	for _, u := range units {
		if placeInStrip(boards, u, s.MaxRipLength) {
			continue
		}
		if placeOnBoard(boards, u, s.MaxBoardWidth) {
			continue
		}
		boards = append(boards, Board{Strips: []Strip{{Width: u.width, LengthUsed: u.length}}})
	}
	return boards
}

// placeInStrip scans every strip on every board for one of the same
// width with enough length remaining.
func placeInStrip(boards []Board, u unedgedUnit, maxRipLength float64) bool {
	for bi := range boards {
		for si := range boards[bi].Strips {
			strip := &boards[bi].Strips[si]
			if strip.Width == u.width && strip.LengthUsed+u.length <= maxRipLength {
				strip.LengthUsed += u.length
				return true
			}
		}
	}
	return false
}

// placeOnBoard scans boards for one with enough spare width to open a
// new strip for the unit.
func placeOnBoard(boards []Board, u unedgedUnit, maxBoardWidth float64) bool {
	for bi := range boards {
		if boards[bi].UsedWidth()+u.width <= maxBoardWidth {
			boards[bi].Strips = append(boards[bi].Strips, Strip{Width: u.width, LengthUsed: u.length})
			return true
		}
	}
	return false
}
