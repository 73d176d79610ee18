package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/DavidHearl/boardgen/internal/model"
)

// LabelInfo holds the data encoded into each order-row label's QR code.
// The saw operators scan these to pull the order line at the machine.
type LabelInfo struct {
	Job       int     `json:"job"`
	Customer  string  `json:"customer"`
	Material  string  `json:"material"`
	Length    float64 `json:"length_mm"`
	Width     float64 `json:"width_mm"`
	Count     int     `json:"count"`
	Edges     string  `json:"edges"`
	UnitLabel string  `json:"unit,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// WriteLabels generates a PDF of QR-coded labels, one per order row.
// Labels are laid out on a standard label sheet format (Avery 5160 /
// 3 columns x 10 rows on US Letter).
func WriteLabels(path string, rows []model.BoardRequirement) error {
	labels := CollectLabelInfos(rows)
	if len(labels) == 0 {
		return fmt.Errorf("no rows to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for job %d row %d: %w", label.Job, i+1, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%d_%d", info.Job, idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Material code (bold, larger)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	material := info.Material
	if pdf.GetStringWidth(material) > textW {
		for len(material) > 0 && pdf.GetStringWidth(material+"...") > textW {
			material = material[:len(material)-1]
		}
		material += "..."
	}
	pdf.CellFormat(textW, 4.5, material, "", 1, "L", false, 0, "")

	// Dimensions and count
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f mm  x%d", info.Length, info.Width, info.Count)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Job and customer
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	jobInfo := fmt.Sprintf("Job %d  %s", info.Job, info.Customer)
	pdf.CellFormat(textW, 3, jobInfo, "", 1, "L", false, 0, "")

	// Edge banding indicator
	if info.Edges != "none" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Edged: "+info.Edges, "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from the order rows for
// use in testing or alternative export formats.
func CollectLabelInfos(rows []model.BoardRequirement) []LabelInfo {
	var labels []LabelInfo
	for _, r := range rows {
		labels = append(labels, LabelInfo{
			Job:       r.Job,
			Customer:  r.Customer,
			Material:  r.Material,
			Length:    r.Length,
			Width:     r.Width,
			Count:     r.Count,
			Edges:     r.Edges.String(),
			UnitLabel: r.UnitLabel,
		})
	}
	return labels
}
