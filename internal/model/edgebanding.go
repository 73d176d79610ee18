package model

import "math"

// EdgeBandingSummary holds the banding tape requirements derived from a
// set of board order rows.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`     // Total banding length in mm (no waste)
	TotalLinearM     float64 `json:"total_linear_m"`      // Total banding length in meters (no waste)
	WastePercent     float64 `json:"waste_percent"`       // Waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // Total with waste in mm
	TotalWithWasteM  float64 `json:"total_with_waste_m"`  // Total with waste in meters
	RowCount         int     `json:"row_count"`           // Rows with at least one banded edge
	EdgeCount        int     `json:"edge_count"`          // Total number of banded edges across all pieces
}

// LinearLength returns the banding length one piece with these flags
// needs, given its length and width.
func (f EdgeFlags) LinearLength(length, width float64) float64 {
	var total float64
	if f.L1 {
		total += length
	}
	if f.L2 {
		total += length
	}
	if f.W1 {
		total += width
	}
	if f.W2 {
		total += width
	}
	return total
}

// CalculateEdgeBanding computes the total banding tape needed to edge
// the boards and parts in the given order rows. wastePercent is the
// additional percentage to add for waste (e.g. 10 for 10%).
func CalculateEdgeBanding(rows []BoardRequirement, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var rowCount, edgeCount int

	for _, r := range rows {
		if !r.Edges.HasAny() {
			continue
		}
		totalMM += r.Edges.LinearLength(r.Length, r.Width) * float64(r.Count)
		rowCount++
		edgeCount += r.Edges.EdgeCount() * r.Count
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	totalWithWaste := totalMM * wasteFactor

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: math.Ceil(totalWithWaste),
		TotalWithWasteM:  math.Ceil(totalWithWaste) / 1000.0,
		RowCount:         rowCount,
		EdgeCount:        edgeCount,
	}
}
