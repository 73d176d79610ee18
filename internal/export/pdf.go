package export

import (
	"fmt"

	"github.com/DavidHearl/boardgen/internal/model"
	"github.com/go-pdf/fpdf"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	rowHeight    = 6.0
)

// edgeBandingWaste is the allowance applied to linear edging totals in
// the report.
const edgeBandingWaste = 10.0

// WritePDF generates a PDF report of the board order: overall
// statistics, the edge banding estimate and a per-row breakdown table.
func WritePDF(path string, rows []model.BoardRequirement, settings model.SawSettings) error {
	if len(rows) == 0 {
		return fmt.Errorf("no rows to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	y := renderReportHeader(pdf, rows)
	renderBreakdownTable(pdf, rows, y)

	renderFooter(pdf)
	return pdf.OutputFileAndClose(path)
}

// renderReportHeader draws the title and overall statistics, returning
// the y position below them.
func renderReportHeader(pdf *fpdf.Fpdf, rows []model.BoardRequirement) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Board Order Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	boards := 0
	jobs := map[int]bool{}
	for _, r := range rows {
		boards += r.Count
		jobs[r.Job] = true
	}
	banding := model.CalculateEdgeBanding(rows, edgeBandingWaste)

	summaryItems := []struct {
		label string
		value string
	}{
		{"Jobs", fmt.Sprintf("%d", len(jobs))},
		{"Order Lines", fmt.Sprintf("%d", len(rows))},
		{"Boards / Parts", fmt.Sprintf("%d", boards)},
		{"Edge Banding", fmt.Sprintf("%.1f m (+%.0f%% waste: %.1f m)", banding.TotalLinearM, edgeBandingWaste, banding.TotalWithWasteM)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(90, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	return y + 5
}

// renderBreakdownTable draws the per-row table, adding pages as needed.
func renderBreakdownTable(pdf *fpdf.Fpdf, rows []model.BoardRequirement, y float64) float64 {
	colWidths := []float64{18, 42, 38, 46, 22, 22, 14, 20, 14, 24}
	headers := []string{"Job", "Customer", "Description", "Material", "Length", "Width", "Qty", "Thick", "Grain", "Edges"}

	drawHeader := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		return y + rowHeight
	}

	y = drawHeader(y)
	pdf.SetFont("Helvetica", "", 8)

	for i, row := range rows {
		if y > pageHeight-marginBottom-rowHeight {
			pdf.AddPage()
			y = drawHeader(marginTop)
			pdf.SetFont("Helvetica", "", 8)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		cells := []string{
			fmt.Sprintf("%d", row.Job),
			row.Customer,
			row.Description,
			row.Material,
			fmt.Sprintf("%.0f", row.Length),
			fmt.Sprintf("%.0f", row.Width),
			fmt.Sprintf("%d", row.Count),
			fmt.Sprintf("%.0f", row.Thickness),
			row.Grain,
			row.Edges.String(),
		}
		x := marginLeft
		for j, cell := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}

	return y
}

// renderFooter draws the generator line at the bottom of the last page.
func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by boardgen", "", 0, "C", false, 0, "")
}
