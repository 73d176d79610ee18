package engine

import (
	"strings"

	"github.com/DavidHearl/boardgen/internal/model"
)

// Classified is the partition of one (job, colour) group into the four
// board categories. Input order is preserved within each slice; the
// accumulator paths depend on it.
type Classified struct {
	SingleLongEdge []model.PartLine // one long edge banded (E1)
	DoubleLongEdge []model.PartLine // both long edges banded (E2)
	Unedged        []model.PartLine // raw panel stock
	OtherEdging    []model.PartLine // mixed or width edging, or over-thickness
	Excluded       []model.PartLine // not board-relevant
}

// Classify routes each part of a colour group into exactly one
// category. Parts matching no category land in Excluded: not every BOM
// row is board-relevant, and the caller decides whether to log them.
func Classify(parts []model.PartLine, s model.SawSettings) Classified {
	var c Classified
	for _, p := range parts {
		switch {
		case p.Department != s.Department:
			c.Excluded = append(c.Excluded, p)
		case isSingleBand(p.Edging, '1') && p.Thickness <= s.MaxThickness && !s.ComponentExcluded(p.Component):
			c.SingleLongEdge = append(c.SingleLongEdge, p)
		case isSingleBand(p.Edging, '2') && p.Thickness <= s.MaxThickness && !s.ComponentExcluded(p.Component):
			c.DoubleLongEdge = append(c.DoubleLongEdge, p)
		case isUnedgedDescriptor(p.Edging) && p.Thickness <= s.MaxThickness && !s.ColourExcluded(p.Colour):
			c.Unedged = append(c.Unedged, p)
		case p.Level == 1 && (hasMultipleEdgeTokens(p.Edging) && !isUnedgedDescriptor(p.Edging) || p.Thickness > s.MaxThickness):
			c.OtherEdging = append(c.OtherEdging, p)
		default:
			c.Excluded = append(c.Excluded, p)
		}
	}
	return c
}

// isSingleBand reports whether the descriptor names exactly one banded
// edge count on the long side: it starts with "E1" or "E2" and carries
// no further edge tokens.
func isSingleBand(desc string, n byte) bool {
	d := strings.ToLower(strings.TrimSpace(desc))
	return strings.HasPrefix(d, "e"+string(n)) && strings.Count(d, "e") == 1
}

// hasMultipleEdgeTokens reports whether the descriptor carries two or
// more edge tokens ("E1@2000 E2@500", "all edges", ...).
func hasMultipleEdgeTokens(desc string) bool {
	return strings.Count(strings.ToLower(desc), "e") >= 2
}

// isUnedgedDescriptor reports whether the descriptor means raw panel
// stock with no banding at all.
func isUnedgedDescriptor(desc string) bool {
	switch strings.ToLower(strings.TrimSpace(desc)) {
	case "", "unedged", "panel":
		return true
	}
	return false
}
