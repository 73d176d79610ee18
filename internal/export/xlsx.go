package export

import (
	"fmt"

	"github.com/DavidHearl/boardgen/internal/model"
	"github.com/xuri/excelize/v2"
)

// xlsxHeaders is the column layout of the review spreadsheet. This is a
// human-facing format; the optimiser import file is the PNX writer.
var xlsxHeaders = []string{
	"Job", "Customer", "Description", "Material", "Length (mm)", "Width (mm)",
	"Qty", "Thickness (mm)", "Grain", "Edges", "Unit",
}

// WriteXLSX writes the board requirement rows as a spreadsheet for
// manual review before the optimiser run.
func WriteXLSX(path string, rows []model.BoardRequirement) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Board Order"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), 1)
	f.SetCellStyle(sheet, "A1", endCell, headerStyle)

	for r, row := range rows {
		values := []any{
			row.Job, row.Customer, row.Description, row.Material,
			row.Length, row.Width, row.Count, row.Thickness,
			row.Grain, row.Edges.String(), row.UnitLabel,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "D", 26)

	return f.SaveAs(path)
}
