package source

import (
	"context"
	"sort"
	"testing"

	"github.com/DavidHearl/boardgen/internal/engine"
	"github.com/DavidHearl/boardgen/internal/model"
)

func memPart(t *testing.T, job int, colour, component string, thickness float64, dept string) model.PartLine {
	t.Helper()
	p, err := model.NewPartLine(job, colour, component, 2000, 600, thickness, 1, "E1@2000")
	if err != nil {
		t.Fatalf("build part: %v", err)
	}
	p.Department = dept
	return p
}

func TestMemorySourceJobs(t *testing.T) {
	m := NewMemorySource(model.DefaultSettings())
	m.Add(
		memPart(t, 1001, "U775 ST9 White", "SIDE", 18, "001"),
		memPart(t, 1002, "U775 ST9 White", "SIDE", 18, "001"),
	)

	jobs := m.Jobs()
	sort.Ints(jobs)
	if len(jobs) != 2 || jobs[0] != 1001 || jobs[1] != 1002 {
		t.Errorf("jobs = %v", jobs)
	}
}

func TestMemorySourceCustomerPlaceholder(t *testing.T) {
	m := NewMemorySource(model.DefaultSettings())

	ref, err := m.CustomerRef(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != "Unknown_1001" {
		t.Errorf("ref = %q", ref)
	}

	m.SetCustomer(1001, "C100 Smith")
	ref, _ = m.CustomerRef(context.Background(), 1001)
	if ref != "C100 Smith" {
		t.Errorf("ref = %q", ref)
	}
}

func TestMemorySourceColoursFirstSeenOrder(t *testing.T) {
	m := NewMemorySource(model.DefaultSettings())
	m.Add(
		memPart(t, 1001, "U775 ST9 White", "SIDE", 18, "001"),
		memPart(t, 1001, "H1180 ST37 Oak", "SIDE", 18, "001"),
		memPart(t, 1001, "U775 ST9 White", "SHELF", 18, "001"),
	)

	colours, err := m.Colours(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colours) != 2 || colours[0] != "U775 ST9 White" || colours[1] != "H1180 ST37 Oak" {
		t.Errorf("colours = %v", colours)
	}
}

func TestMemorySourceColoursApplyGates(t *testing.T) {
	m := NewMemorySource(model.DefaultSettings())
	m.Add(
		memPart(t, 1001, "X - Scrap", "SIDE", 18, "001"),
		memPart(t, 1001, "U999 ST2 Black", "SIDE", 38, "001"),
		memPart(t, 1001, "F204 ST75 Marble", "LEG", 18, "002"),
		memPart(t, 1001, "U775 ST9 White", "SCOOPFRONT", 18, "001"),
	)

	colours, err := m.Colours(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colours) != 0 {
		t.Errorf("colours = %v, want none", colours)
	}
}

func TestMemorySourceColoursKeepDrawerFrontOnlyGroups(t *testing.T) {
	m := NewMemorySource(model.DefaultSettings())
	m.Add(
		memPart(t, 1001, "U775 ST9 White", "DRWFRONT", 18, "001"),
		memPart(t, 1001, "H1180 ST37 Oak", "BACKPANEL", 18, "001"),
	)

	colours, err := m.Colours(context.Background(), 1001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colours) != 2 {
		t.Errorf("colours = %v, want both groups", colours)
	}
}

func TestDrawerFrontOnlyColourOrdersBoard(t *testing.T) {
	// Drawer fronts never feed the edge-banded categories, but their
	// unedged rows still order raw stock. A colour carried only by
	// drawer fronts must survive enumeration and produce a board row.
	settings := model.DefaultSettings()
	m := NewMemorySource(settings)
	front, err := model.NewPartLine(1001, "U775 ST9 White", "DRWFRONT", 700, 300, 18, 4, "")
	if err != nil {
		t.Fatalf("build part: %v", err)
	}
	front.Department = "001"
	m.Add(front)

	eng := engine.New(settings, nil)
	result, err := eng.Run(context.Background(), m, []int{1001})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("rows = %v, want one board purchase", result.Rows)
	}
	row := result.Rows[0]
	if row.Description != "Board" || row.Count != 1 {
		t.Errorf("row = %+v", row)
	}
	if row.Width != settings.MaxBoardWidth {
		t.Errorf("width = %g, want the unedged stock width", row.Width)
	}
}

func TestMemorySourcePartsInsertionOrder(t *testing.T) {
	m := NewMemorySource(model.DefaultSettings())
	m.Add(
		memPart(t, 1001, "U775 ST9 White", "SIDE-B", 18, "001"),
		memPart(t, 1001, "H1180 ST37 Oak", "SHELF", 18, "001"),
		memPart(t, 1001, "U775 ST9 White", "SIDE-A", 18, "001"),
	)

	parts, err := m.Parts(context.Background(), 1001, "U775 ST9 White")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d parts", len(parts))
	}
	if parts[0].Component != "SIDE-B" || parts[1].Component != "SIDE-A" {
		t.Errorf("order = %q, %q", parts[0].Component, parts[1].Component)
	}
}
