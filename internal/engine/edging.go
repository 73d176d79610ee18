package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/DavidHearl/boardgen/internal/model"
)

// ParseEdgeDescriptor derives the four edge flags from a raw edging
// descriptor. "all edges" bands everything and "unedged"/"panel"/empty
// bands nothing; otherwise the descriptor is a run of "E<count>@<size>"
// tokens whose rounded size is matched against the part's rounded
// length or width to decide which sides the count applies to.
// A descriptor that fails to parse returns zero flags and the error.
func ParseEdgeDescriptor(desc string, length, width float64) (model.EdgeFlags, error) {
	switch strings.ToLower(strings.TrimSpace(desc)) {
	case "all edges":
		return model.EdgesAll, nil
	case "", "unedged", "panel":
		return model.EdgesNone, nil
	}

	var flags model.EdgeFlags
	roundedLen := math.Round(length)
	roundedWid := math.Round(width)

	for _, token := range strings.Split(desc, "E")[1:] {
		fields := strings.Split(strings.TrimSpace(token), "@")
		if len(fields) != 2 {
			return model.EdgesNone, fmt.Errorf("malformed edge token %q in %q", token, desc)
		}
		count, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return model.EdgesNone, fmt.Errorf("bad edge count in token %q: %w", token, err)
		}
		size, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return model.EdgesNone, fmt.Errorf("bad edge size in token %q: %w", token, err)
		}

		switch math.Round(size) {
		case roundedLen:
			switch count {
			case 1:
				flags.L1 = true
			case 2:
				flags.L1 = true
				flags.L2 = true
			}
		case roundedWid:
			switch count {
			case 1:
				flags.W1 = true
			case 2:
				flags.W1 = true
				flags.W2 = true
			}
		}
	}
	return flags, nil
}

// EdgedGroup aggregates identical complex-edged parts: same
// description, dimensions and edging string, quantities summed. This
// is the only category that keeps per-part dimensional distinctness.
type EdgedGroup struct {
	Description string
	Length      float64
	Width       float64
	Thickness   float64
	Edging      string
	Quantity    int
	UnitLabel   string
	Flags       model.EdgeFlags
}

type edgedKey struct {
	description string
	length      float64
	width       float64
	thickness   float64
	edging      string
}

// GroupOtherEdged aggregates the complex-edging parts and parses each
// group's edge flags. Parse failures degrade to unbanded flags with a
// warning; the group is still emitted, since a string anomaly must
// never drop a physical part.
func GroupOtherEdged(parts []model.PartLine) ([]EdgedGroup, []string) {
	var order []edgedKey
	byKey := make(map[edgedKey]*EdgedGroup)

	for _, p := range parts {
		desc := p.Description
		if desc == "" {
			desc = p.Component
		}
		key := edgedKey{description: desc, length: p.Length, width: p.Width, thickness: p.Thickness, edging: p.Edging}
		g, ok := byKey[key]
		if !ok {
			g = &EdgedGroup{
				Description: desc,
				Length:      p.Length,
				Width:       p.Width,
				Thickness:   p.Thickness,
				Edging:      p.Edging,
				UnitLabel:   p.UnitLabel,
			}
			byKey[key] = g
			order = append(order, key)
		}
		g.Quantity += p.Quantity
	}

	groups := make([]EdgedGroup, 0, len(order))
	var warnings []string
	for _, key := range order {
		g := byKey[key]
		flags, err := ParseEdgeDescriptor(g.Edging, g.Length, g.Width)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("edging %q on %s (%gx%g): %v", g.Edging, g.Description, g.Length, g.Width, err))
		}
		g.Flags = flags
		groups = append(groups, *g)
	}

	// Cutting-floor order: by unit, then widest first, shortest first.
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].UnitLabel != groups[j].UnitLabel {
			return groups[i].UnitLabel < groups[j].UnitLabel
		}
		if groups[i].Width != groups[j].Width {
			return groups[i].Width > groups[j].Width
		}
		return groups[i].Length < groups[j].Length
	})

	return groups, warnings
}
