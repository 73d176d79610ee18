package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/DavidHearl/boardgen/internal/model"
)

func buildTestRows() []model.BoardRequirement {
	return []model.BoardRequirement{
		{
			Description: "Board",
			Material:    "SHT_MFC_EGG_U775ST9_18_",
			Length:      2800,
			Width:       680,
			Count:       2,
			Thickness:   18,
			Grain:       "N",
			Edges:       model.EdgesSingleLong,
			Job:         1001,
			Customer:    "C100 Smith",
		},
		{
			Description: "Worktop",
			Material:    "SHT_MFC_EGG_U775ST9_36_",
			Length:      2000,
			Width:       600,
			Count:       3,
			Thickness:   36,
			Grain:       "N",
			Edges:       model.EdgesAll,
			Job:         1001,
			Customer:    "C100 Smith",
			UnitLabel:   "U7",
		},
	}
}

func parsePNX(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	return records
}

func TestWritePNX_HeaderShape(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNX(&buf, buildTestRows(), model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := parsePNX(t, buf.Bytes())
	if len(records) != 3 {
		t.Fatalf("got %d records", len(records))
	}

	header := records[0]
	if len(header) != 49 {
		t.Fatalf("header has %d columns", len(header))
	}
	if header[0] != "SPARE" || header[2] != "MATNAME" || header[45] != "ROUTING" || header[48] != "Column1" {
		t.Errorf("unexpected header layout: %v", header)
	}
}

func TestWritePNX_BoardRowColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNX(&buf, buildTestRows(), model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := parsePNX(t, buf.Bytes())[1]

	checks := []struct {
		idx  int
		want string
	}{
		{1, "Board"},
		{2, "SHT_MFC_EGG_U775ST9_18_"},
		{3, "2800"},
		{4, "680"},
		{5, "2"},
		{8, "N"},
		{10, "C100 Smith"},
		{11, "1001"},
		{13, "Board"},
		{14, "Sliderobe_Edge_08"},
		{15, ""},
		{16, ""},
		{17, ""},
		{18, ":::"},
		{35, "S"},
		{36, "S"},
		{45, "Saw,Edging,Dispatch"},
	}
	for _, c := range checks {
		if row[c.idx] != c.want {
			t.Errorf("column %d = %q, want %q", c.idx, row[c.idx], c.want)
		}
	}
}

func TestWritePNX_EdgeProfileColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNX(&buf, buildTestRows(), model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := parsePNX(t, buf.Bytes())[2]

	// All four edges banded: PRFID1, PRFID3, PRFID4, PRFID2 all stamped.
	for _, idx := range []int{14, 15, 16, 17} {
		if row[idx] != "Sliderobe_Edge_08" {
			t.Errorf("column %d = %q, expected profile", idx, row[idx])
		}
	}
	if row[12] != "U7" {
		t.Errorf("ARTICLENAME = %q", row[12])
	}
	if row[13] != "Worktop" {
		t.Errorf("PARTDESC = %q", row[13])
	}
}

func TestWritePNX_EmptyRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNX(&buf, nil, model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := parsePNX(t, buf.Bytes())
	if len(records) != 1 {
		t.Errorf("expected header only, got %d records", len(records))
	}
}

func TestFormatDim(t *testing.T) {
	if got := formatDim(2800); got != "2800" {
		t.Errorf("formatDim(2800) = %q", got)
	}
	if got := formatDim(463.5); got != "463.5" {
		t.Errorf("formatDim(463.5) = %q", got)
	}
}
