// Package engine computes minimal supplier board purchases from a flat
// bill of materials. Parts are classified by edge-banding pattern and
// fed through a one-dimensional rip accumulator or a two-dimensional
// First-Fit strip packer depending on the category.
package engine

import (
	"io"
	"log/slog"

	"github.com/DavidHearl/boardgen/internal/model"
)

// Engine runs the board requirement calculation for one colour group at
// a time. It holds no state between groups.
type Engine struct {
	settings model.SawSettings
	logger   *slog.Logger
}

// New returns an engine with the given settings. A nil logger discards.
func New(settings model.SawSettings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{settings: settings, logger: logger}
}

// Settings returns the configuration the engine was built with.
func (e *Engine) Settings() model.SawSettings {
	return e.settings
}

// GroupResult holds the board order rows computed for one (job, colour)
// group, plus any non-fatal warnings raised on the way. Warnings never
// suppress rows.
type GroupResult struct {
	Rows     []model.BoardRequirement
	Warnings []string
}

// OptimizeGroup computes the board purchases for one (job, colour)
// group. The four categories are processed independently; every
// category contributes zero or more output rows.
func (e *Engine) OptimizeGroup(job int, colour, customer string, parts []model.PartLine) GroupResult {
	c := Classify(parts, e.settings)
	if n := len(c.Excluded); n > 0 {
		e.logger.Debug("parts not board-relevant",
			slog.Int("job", job), slog.String("colour", colour), slog.Int("count", n))
	}

	var res GroupResult

	for _, bc := range CountSingleEdgeBoards(c.SingleLongEdge, e.settings) {
		edges := model.EdgesSingleLong
		if bc.Width == e.narrowestBin() {
			// Rips this narrow come off the saw with both long edges
			// exposed, so both get banded in one pass.
			edges = model.EdgesDoubleLong
		}
		res.Rows = append(res.Rows, e.stockRow(job, colour, customer, bc, edges))
	}

	for _, bc := range CountDoubleEdgeBoards(c.DoubleLongEdge, e.settings) {
		res.Rows = append(res.Rows, e.stockRow(job, colour, customer, bc, model.EdgesDoubleLong))
	}

	if boards := PackUnedged(c.Unedged, e.settings); len(boards) > 0 {
		bc := BinCount{Width: e.settings.MaxBoardWidth, Boards: len(boards)}
		res.Rows = append(res.Rows, e.stockRow(job, colour, customer, bc, model.EdgesDoubleLong))
	}

	groups, warnings := GroupOtherEdged(c.OtherEdging)
	for _, w := range warnings {
		e.logger.Warn(w, slog.Int("job", job), slog.String("colour", colour))
	}
	res.Warnings = append(res.Warnings, warnings...)
	for _, g := range groups {
		res.Rows = append(res.Rows, e.partRow(job, colour, customer, g))
	}

	return res
}

// narrowestBin returns the smallest non-zero width bound of the E1 bin
// table.
func (e *Engine) narrowestBin() float64 {
	for _, b := range e.settings.WidthBins {
		if b > 0 {
			return b
		}
	}
	return 0
}

// stockRow builds the output row for a computed full-length board
// purchase. The packing categories always order stock at the standard
// board thickness.
func (e *Engine) stockRow(job int, colour, customer string, bc BinCount, edges model.EdgeFlags) model.BoardRequirement {
	return model.BoardRequirement{
		Description: "Board",
		Material:    model.MaterialCode(colour, e.settings.MaxThickness),
		Length:      e.settings.StockLength,
		Width:       bc.Width,
		Count:       bc.Boards,
		Thickness:   e.settings.MaxThickness,
		Grain:       model.GrainForColour(colour),
		Edges:       edges,
		Job:         job,
		Customer:    customer,
	}
}

// partRow builds the output row for one complex-edged part group,
// keeping the part's own dimensions and thickness.
func (e *Engine) partRow(job int, colour, customer string, g EdgedGroup) model.BoardRequirement {
	return model.BoardRequirement{
		Description: g.Description,
		Material:    model.MaterialCode(colour, g.Thickness),
		Length:      g.Length,
		Width:       g.Width,
		Count:       g.Quantity,
		Thickness:   g.Thickness,
		Grain:       model.GrainForColour(colour),
		Edges:       g.Flags,
		Job:         job,
		Customer:    customer,
		UnitLabel:   g.UnitLabel,
	}
}
