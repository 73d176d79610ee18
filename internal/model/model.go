package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Contract constants for the supplier board stock. Downstream systems
// (the saw optimiser import) depend on these values, so they must not
// drift silently; SawSettings carries them so a run can be audited.
const (
	StockLength   = 2800.0 // mm, supplier board length
	MaxRipLength  = 2750.0 // mm, usable rip length (50 mm trim allowance)
	MaxBoardWidth = 1000.0 // mm, widest unedged board supplied
)

// PartLine is one validated BOM row: a distinct component/dimension
// combination within a job and colour group. Rows are immutable once
// constructed; all packing state lives elsewhere.
type PartLine struct {
	ID          string  `json:"id"`
	Job         int     `json:"job"`
	Colour      string  `json:"colour"`
	Component   string  `json:"component"`
	Description string  `json:"description,omitempty"`
	Length      float64 `json:"length"`    // mm
	Width       float64 `json:"width"`     // mm
	Thickness   float64 `json:"thickness"` // mm
	Quantity    int     `json:"quantity"`
	Edging      string  `json:"edging"`     // raw edge-banding descriptor
	Department  string  `json:"department"` // board-relevant parts carry "001"
	Level       int     `json:"level"`      // BOM nesting level
	UnitLabel   string  `json:"unit_label,omitempty"`
}

// NewPartLine builds a validated PartLine with a generated ID.
// Malformed rows are rejected here, at the data boundary, rather than
// failing deep inside the packing logic.
func NewPartLine(job int, colour, component string, length, width, thickness float64, qty int, edging string) (PartLine, error) {
	if job <= 0 {
		return PartLine{}, fmt.Errorf("invalid job number %d", job)
	}
	if length <= 0 || width <= 0 || thickness <= 0 {
		return PartLine{}, fmt.Errorf("part %q: dimensions must be positive (got %gx%gx%g)", component, length, width, thickness)
	}
	if qty <= 0 {
		return PartLine{}, fmt.Errorf("part %q: quantity must be positive (got %d)", component, qty)
	}
	return PartLine{
		ID:        uuid.New().String()[:8],
		Job:       job,
		Colour:    colour,
		Component: component,
		Length:    length,
		Width:     width,
		Thickness: thickness,
		Quantity:  qty,
		Edging:    edging,
	}, nil
}

// EdgeFlags marks which of a part's four edges receive banding:
// the two long edges and the two width (short) edges.
type EdgeFlags struct {
	L1 bool `json:"l1"`
	L2 bool `json:"l2"`
	W1 bool `json:"w1"`
	W2 bool `json:"w2"`
}

// Profiles the packing categories stamp on their output rows.
var (
	EdgesNone       = EdgeFlags{}
	EdgesSingleLong = EdgeFlags{L1: true}
	EdgesDoubleLong = EdgeFlags{L1: true, L2: true}
	EdgesAll        = EdgeFlags{L1: true, L2: true, W1: true, W2: true}
)

// HasAny reports whether any edge is banded.
func (f EdgeFlags) HasAny() bool {
	return f.L1 || f.L2 || f.W1 || f.W2
}

// EdgeCount returns the number of banded edges.
func (f EdgeFlags) EdgeCount() int {
	n := 0
	for _, b := range []bool{f.L1, f.L2, f.W1, f.W2} {
		if b {
			n++
		}
	}
	return n
}

func (f EdgeFlags) String() string {
	if !f.HasAny() {
		return "none"
	}
	var parts []string
	if f.L1 {
		parts = append(parts, "L1")
	}
	if f.L2 {
		parts = append(parts, "L2")
	}
	if f.W1 {
		parts = append(parts, "W1")
	}
	if f.W2 {
		parts = append(parts, "W2")
	}
	return strings.Join(parts, "+")
}

// BoardRequirement is one output row of the engine: a supplier board
// purchase (the packing categories) or a pre-cut part order (the
// complex-edging category).
type BoardRequirement struct {
	Description string    `json:"description"` // "Board" for computed purchases
	Material    string    `json:"material"`
	Length      float64   `json:"length"` // mm; stock length for computed purchases
	Width       float64   `json:"width"`  // mm
	Count       int       `json:"count"`
	Thickness   float64   `json:"thickness"` // mm
	Grain       string    `json:"grain"`     // "Y" or "N"
	Edges       EdgeFlags `json:"edges"`
	Job         int       `json:"job"`
	Customer    string    `json:"customer"`
	UnitLabel   string    `json:"unit_label,omitempty"`
}

// MaterialCode builds the supplier sheet code for a colour at the given
// thickness. A colour like "U961 ST2 Graphite Grey" is a decor code, a
// surface texture and a display name; only the first two go into the
// code: SHT_MFC_EGG_U961ST2_18_.
func MaterialCode(colour string, thickness float64) string {
	fields := strings.Fields(colour)
	decor := ""
	texture := ""
	if len(fields) > 0 {
		decor = fields[0]
	}
	if len(fields) > 1 {
		texture = fields[1]
	}
	return "SHT_MFC_EGG_" + decor + texture + "_" + strconv.Itoa(int(math.Round(thickness))) + "_"
}

// GrainForColour returns the grain flag for a colour. The ST9 surface
// texture is plain (no grain); everything else is grained.
func GrainForColour(colour string) string {
	fields := strings.Fields(colour)
	if len(fields) > 1 && fields[1] == "ST9" {
		return "N"
	}
	return "Y"
}

// SawSettings holds the board generation configuration: stock geometry,
// classification gates and the fixed routing parameters stamped on
// every output row.
type SawSettings struct {
	StockLength   float64 `json:"stock_length"`    // mm
	MaxRipLength  float64 `json:"max_rip_length"`  // mm
	MaxBoardWidth float64 `json:"max_board_width"` // mm, unedged stock

	// WidthBins are the discrete upper bounds for the single-long-edge
	// category, leading 0 included. The terminal bound is the larger of
	// 1000 and the group's widest part.
	WidthBins []float64 `json:"width_bins"`

	MaxThickness      float64 `json:"max_thickness"`       // mm, gate for the packing categories
	MaxBoardThickness float64 `json:"max_board_thickness"` // mm, nothing thicker is board-relevant
	Department        string  `json:"department"`          // board-relevant department code

	EdgeProfile     string `json:"edge_profile"` // profile identifier stamped per banded edge
	Routing         string `json:"routing"`
	OptimisingParam string `json:"optimising_param"`
	SawParam        string `json:"saw_param"`

	// Denylists. ExcludedComponents never feed the edge-banded board
	// categories; ExcludedColours are finishes never supplied as raw
	// board stock. ColourScanExcludedComponents is the narrower list
	// used when enumerating a job's colour groups: a drawer front or a
	// back panel still makes its colour board-relevant (its unedged rows
	// order raw stock), so only codes that never order board at all may
	// hide a colour.
	ExcludedComponents           []string `json:"excluded_components"`
	ExcludedComponentPrefix      []string `json:"excluded_component_prefix"`
	ColourScanExcludedComponents []string `json:"colour_scan_excluded_components"`
	ExcludedColours              []string `json:"excluded_colours"`
	ExcludedColourPrefix         []string `json:"excluded_colour_prefix"`
}

func DefaultSettings() SawSettings {
	return SawSettings{
		StockLength:                  StockLength,
		MaxRipLength:                 MaxRipLength,
		MaxBoardWidth:                MaxBoardWidth,
		WidthBins:                    []float64{0, 250, 500, 680, 750},
		MaxThickness:                 18,
		MaxBoardThickness:            36,
		Department:                   "001",
		EdgeProfile:                  "Sliderobe_Edge_08",
		Routing:                      "Saw,Edging,Dispatch",
		OptimisingParam:              "S",
		SawParam:                     "S",
		ExcludedComponents:           []string{"SCOOPFRONT", "ASCARIFRONT", "DRWFRONT", "PTHRTN"},
		ExcludedComponentPrefix:      []string{"BACK"},
		ColourScanExcludedComponents: []string{"SCOOPFRONT", "ASCARIFRONT", "PTHRTN"},
		ExcludedColours: []string{
			"U961 ST2 Graphite Grey",
			"X - Scrap",
			"Richmond",
			"Richmond Open",
			"Tullymore",
			"Tullymore Open",
			"Venice",
			"Aldridge",
		},
		ExcludedColourPrefix: []string{"BM", "Sibu"},
	}
}

// ColourScanExcluded reports whether a component code is ignored when
// enumerating a job's colour groups. Prefix rules deliberately do not
// apply here; a BACK-only colour still orders unedged stock.
func (s SawSettings) ColourScanExcluded(code string) bool {
	for _, c := range s.ColourScanExcludedComponents {
		if code == c {
			return true
		}
	}
	return false
}

// ColourExcluded reports whether a colour is on the never-board denylist.
func (s SawSettings) ColourExcluded(colour string) bool {
	for _, c := range s.ExcludedColours {
		if colour == c {
			return true
		}
	}
	for _, p := range s.ExcludedColourPrefix {
		if strings.HasPrefix(colour, p) {
			return true
		}
	}
	return false
}

// ComponentExcluded reports whether a component code is denied from the
// edge-banded board categories.
func (s SawSettings) ComponentExcluded(code string) bool {
	for _, c := range s.ExcludedComponents {
		if code == c {
			return true
		}
	}
	for _, p := range s.ExcludedComponentPrefix {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}
