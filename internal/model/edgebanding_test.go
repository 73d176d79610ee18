package model

import (
	"testing"
)

func TestLinearLength(t *testing.T) {
	if got := EdgesSingleLong.LinearLength(2000, 600); got != 2000 {
		t.Errorf("single long = %g", got)
	}
	if got := EdgesDoubleLong.LinearLength(2000, 600); got != 4000 {
		t.Errorf("double long = %g", got)
	}
	if got := EdgesAll.LinearLength(2000, 600); got != 5200 {
		t.Errorf("all edges = %g", got)
	}
	if got := EdgesNone.LinearLength(2000, 600); got != 0 {
		t.Errorf("unedged = %g", got)
	}
}

func TestCalculateEdgeBanding(t *testing.T) {
	rows := []BoardRequirement{
		{Length: 2800, Width: 680, Count: 2, Edges: EdgesSingleLong},
		{Length: 2000, Width: 600, Count: 1, Edges: EdgesAll},
		{Length: 2800, Width: 1000, Count: 3, Edges: EdgesNone},
	}

	summary := CalculateEdgeBanding(rows, 50)

	// 2*2800 + (2*2000 + 2*600) = 5600 + 5200 = 10800
	if summary.TotalLinearMM != 10800 {
		t.Errorf("total = %g", summary.TotalLinearMM)
	}
	if summary.TotalLinearM != 10.8 {
		t.Errorf("total m = %g", summary.TotalLinearM)
	}
	if summary.TotalWithWasteMM != 16200 {
		t.Errorf("with waste = %g", summary.TotalWithWasteMM)
	}
	if summary.RowCount != 2 {
		t.Errorf("row count = %d, unedged rows must not count", summary.RowCount)
	}
	if summary.EdgeCount != 2+4 {
		t.Errorf("edge count = %d", summary.EdgeCount)
	}
}

func TestCalculateEdgeBandingEmpty(t *testing.T) {
	summary := CalculateEdgeBanding(nil, 10)
	if summary.TotalLinearMM != 0 || summary.RowCount != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}
