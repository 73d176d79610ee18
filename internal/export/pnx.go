// Package export writes board requirement results to the formats the
// production flow consumes: the saw optimiser import file, Excel
// summaries, PDF reports and printable labels.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/DavidHearl/boardgen/internal/model"
)

// pnxHeader is the fixed 49-column header of the saw optimiser import
// format. Column positions are part of the contract with the optimiser;
// do not reorder.
var pnxHeader = []string{
	"SPARE", "BARCODE", "MATNAME", "CLENG", "CWIDTH", "CNT", "OVERS", "UNDERS",
	"GRAIN", "QUICKEDGE0", "CUSTOMER", "ORDERNAME", "ARTICLENAME", "PARTDESC",
	"PRFID1", "PRFID3", "PRFID4", "PRFID2", "EDGINGCORNERSPEC", "TOPSURFACE",
	"BOTSURFACE", "BARCODE_1", "PROCESSINGNOTE", "DESTACKING", "UNUSED",
	"FIN LxW", "2NDCUT", "GRAINMATCH", "spare.1", "spare_2", "LabelPrintingMode",
	"LabelTemplateName", "PictureFileName", "spare_3", "spare_4", "OPTIMISINGPARAM",
	"SAWPARAM", "WORKPIECETYPE", "ID", "MAGICUTID", "DRAWINGPATH", "POSNUMBER",
	"2ndCNC", "spare_5", "MPRNAME", "ROUTING", "EDGING_FOR_ROUTING", "PLAN_POS", "Column1",
}

// Column indices into pnxHeader used when populating rows.
const (
	colBarcode     = 1
	colMatName     = 2
	colLength      = 3
	colWidth       = 4
	colCount       = 5
	colGrain       = 8
	colCustomer    = 10
	colOrderName   = 11
	colArticleName = 12
	colPartDesc    = 13
	colProfileL1   = 14
	colProfileL2   = 15
	colProfileW1   = 16
	colProfileW2   = 17
	colCornerSpec  = 18
	colOptimising  = 35
	colSawParam    = 36
	colRouting     = 45
)

// WritePNX writes the board requirement rows as a semicolon-delimited
// optimiser import file.
func WritePNX(w io.Writer, rows []model.BoardRequirement, settings model.SawSettings) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(pnxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(pnxRow(row, settings)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WritePNXFile writes the optimiser import file to disk.
func WritePNXFile(path string, rows []model.BoardRequirement, settings model.SawSettings) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNX(f, rows, settings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pnxRow maps one requirement onto the fixed column layout. Each banded
// edge stamps the configured profile on its own column; everything else
// stays blank.
func pnxRow(row model.BoardRequirement, settings model.SawSettings) []string {
	out := make([]string, len(pnxHeader))

	out[colBarcode] = row.Description
	out[colMatName] = row.Material
	out[colLength] = formatDim(row.Length)
	out[colWidth] = formatDim(row.Width)
	out[colCount] = strconv.Itoa(row.Count)
	out[colGrain] = row.Grain
	out[colCustomer] = row.Customer
	out[colOrderName] = strconv.Itoa(row.Job)
	out[colArticleName] = row.UnitLabel
	out[colPartDesc] = row.Description
	out[colCornerSpec] = ":::"

	if row.Edges.L1 {
		out[colProfileL1] = settings.EdgeProfile
	}
	if row.Edges.L2 {
		out[colProfileL2] = settings.EdgeProfile
	}
	if row.Edges.W1 {
		out[colProfileW1] = settings.EdgeProfile
	}
	if row.Edges.W2 {
		out[colProfileW2] = settings.EdgeProfile
	}

	out[colOptimising] = settings.OptimisingParam
	out[colSawParam] = settings.SawParam
	out[colRouting] = settings.Routing

	return out
}

// formatDim renders a dimension without trailing zeros: 2800, 463.5.
func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
