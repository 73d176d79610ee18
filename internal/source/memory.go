package source

import (
	"context"
	"fmt"

	"github.com/DavidHearl/boardgen/internal/model"
)

// MemorySource serves part rows already held in memory, typically
// imported from a CSV or Excel BOM file. Insertion order is preserved
// per colour group; the accumulator paths depend on it.
type MemorySource struct {
	settings    model.SawSettings
	customers   map[int]string
	parts       map[int][]model.PartLine
	colourOrder map[int][]string
}

// NewMemorySource returns an empty in-memory BOM source.
func NewMemorySource(settings model.SawSettings) *MemorySource {
	return &MemorySource{
		settings:    settings,
		customers:   make(map[int]string),
		parts:       make(map[int][]model.PartLine),
		colourOrder: make(map[int][]string),
	}
}

// SetCustomer registers a customer label for a job.
func (m *MemorySource) SetCustomer(job int, ref string) {
	m.customers[job] = ref
}

// Add appends part rows, preserving their order within each job.
func (m *MemorySource) Add(parts ...model.PartLine) {
	for _, p := range parts {
		m.parts[p.Job] = append(m.parts[p.Job], p)
		if !contains(m.colourOrder[p.Job], p.Colour) {
			m.colourOrder[p.Job] = append(m.colourOrder[p.Job], p.Colour)
		}
	}
}

// Jobs returns the job numbers with at least one part, in no
// particular order; callers wanting an order should sort.
func (m *MemorySource) Jobs() []int {
	jobs := make([]int, 0, len(m.parts))
	for job := range m.parts {
		jobs = append(jobs, job)
	}
	return jobs
}

// CustomerRef returns the registered label or a placeholder.
func (m *MemorySource) CustomerRef(_ context.Context, job int) (string, error) {
	if ref, ok := m.customers[job]; ok {
		return ref, nil
	}
	return fmt.Sprintf("Unknown_%d", job), nil
}

// Colours lists the job's board-relevant colours in first-seen order,
// applying the same relevance gates as the database source.
func (m *MemorySource) Colours(_ context.Context, job int) ([]string, error) {
	var colours []string
	for _, colour := range m.colourOrder[job] {
		if m.settings.ColourExcluded(colour) {
			continue
		}
		if m.colourRelevant(job, colour) {
			colours = append(colours, colour)
		}
	}
	return colours, nil
}

// Parts returns the job's rows for one colour in insertion order.
func (m *MemorySource) Parts(_ context.Context, job int, colour string) ([]model.PartLine, error) {
	var parts []model.PartLine
	for _, p := range m.parts[job] {
		if p.Colour == colour {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

// colourRelevant mirrors the database colour enumeration: at least one
// part in the board department, within the thickness cap and not on the
// colour-scan denylist. The wider component denylist does not apply
// here; drawer fronts and back panels still order unedged stock.
func (m *MemorySource) colourRelevant(job int, colour string) bool {
	for _, p := range m.parts[job] {
		if p.Colour != colour {
			continue
		}
		if p.Department == m.settings.Department &&
			p.Thickness <= m.settings.MaxBoardThickness &&
			!m.settings.ColourScanExcluded(p.Component) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
