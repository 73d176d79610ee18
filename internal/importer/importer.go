// Package importer provides CSV and Excel import functionality for BOM
// part lists. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DavidHearl/boardgen/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Parts    []model.PartLine
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Job        int
	Colour     int
	Component  int
	Length     int
	Width      int
	Thickness  int
	Quantity   int
	Edging     int
	Department int
	Level      int
	UnitLabel  int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"job":        {"job", "job number", "order", "system", "system number", "numero"},
	"colour":     {"colour", "color", "material", "finish", "n3"},
	"component":  {"component", "component code", "code", "part", "codcomp"},
	"length":     {"length", "len", "l", "diml"},
	"width":      {"width", "w", "dima"},
	"thickness":  {"thickness", "thick", "t", "dimp"},
	"quantity":   {"quantity", "qty", "count", "num", "pcs", "pieces", "qtacomp"},
	"edging":     {"edging", "edge", "edges", "edging spec", "n6"},
	"department": {"department", "dept", "reparto"},
	"level":      {"level", "nesting level", "livello"},
	"unit":       {"unit", "unit label", "n5"},
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter. It tries comma, semicolon, tab, and pipe. The
// delimiter that produces the most consistent (non-one) column count
// across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected,
// or a default positional mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Job: -1, Colour: -1, Component: -1,
		Length: -1, Width: -1, Thickness: -1,
		Quantity: -1, Edging: -1, Department: -1,
		Level: -1, UnitLabel: -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "job":
			if mapping.Job == -1 {
				mapping.Job = i
			}
		case "colour":
			if mapping.Colour == -1 {
				mapping.Colour = i
			}
		case "component":
			if mapping.Component == -1 {
				mapping.Component = i
			}
		case "length":
			if mapping.Length == -1 {
				mapping.Length = i
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
		case "thickness":
			if mapping.Thickness == -1 {
				mapping.Thickness = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		case "edging":
			if mapping.Edging == -1 {
				mapping.Edging = i
			}
		case "department":
			if mapping.Department == -1 {
				mapping.Department = i
			}
		case "level":
			if mapping.Level == -1 {
				mapping.Level = i
			}
		case "unit":
			if mapping.UnitLabel == -1 {
				mapping.UnitLabel = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping matching the export column
		// order: job, colour, component, length, width, thickness,
		// quantity, edging, department, level, unit.
		return ColumnMapping{
			Job: 0, Colour: 1, Component: 2,
			Length: 3, Width: 4, Thickness: 5,
			Quantity: 6, Edging: 7, Department: 8,
			Level: 9, UnitLabel: 10,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a PartLine from a row using the given column
// mapping. Returns the part, any error message, and any warning.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.PartLine, string, string) {
	jobStr := getCell(row, mapping.Job)
	job, err := strconv.Atoi(jobStr)
	if err != nil {
		return model.PartLine{}, fmt.Sprintf("%s: Invalid job number '%s'", rowLabel, jobStr), ""
	}

	colour := getCell(row, mapping.Colour)
	component := getCell(row, mapping.Component)

	dims := make([]float64, 3)
	for i, role := range []struct {
		name string
		idx  int
	}{
		{"length", mapping.Length},
		{"width", mapping.Width},
		{"thickness", mapping.Thickness},
	} {
		cell := getCell(row, role.idx)
		if cell == "" {
			return model.PartLine{}, fmt.Sprintf("%s: Missing %s value", rowLabel, role.name), ""
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.PartLine{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, role.name, cell), ""
		}
		dims[i] = v
	}

	qtyStr := getCell(row, mapping.Quantity)
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.PartLine{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
	}

	part, err := model.NewPartLine(job, colour, component, dims[0], dims[1], dims[2], qty, getCell(row, mapping.Edging))
	if err != nil {
		return model.PartLine{}, fmt.Sprintf("%s: %v", rowLabel, err), ""
	}

	part.Department = getCell(row, mapping.Department)

	var warning string
	if levelStr := getCell(row, mapping.Level); levelStr != "" {
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			warning = fmt.Sprintf("%s: Unknown nesting level '%s', defaulting to 0", rowLabel, levelStr)
		} else {
			part.Level = level
		}
	}
	part.UnitLabel = getCell(row, mapping.UnitLabel)

	return part, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports part rows from a CSV file. It automatically detects
// the delimiter and maps columns by header names. Supports comma,
// semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports part rows from a CSV reader with a
// specific delimiter. Useful for testing or when the delimiter is
// already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports part rows from an Excel (.xlsx) file. Reads the
// first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel
// data. It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Job == -1 {
			missing = append(missing, "Job")
		}
		if mapping.Colour == -1 {
			missing = append(missing, "Colour")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Thickness == -1 {
			missing = append(missing, "Thickness")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// No recognized header: if the job column is not numeric the
		// first row is probably an unrecognized header. Skip it but
		// keep positional mapping.
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][0])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		part, errMsg, warning := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Parts = append(result.Parts, part)
	}

	return result
}
