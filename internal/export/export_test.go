package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DavidHearl/boardgen/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestWritePNXFile_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.pnx")

	if err := WritePNXFile(path, buildTestRows(), model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.xlsx")

	if err := WriteXLSX(path, buildTestRows()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Board Order")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0] != "Job" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "SHT_MFC_EGG_U775ST9_18_" {
		t.Errorf("material cell = %q", rows[1][3])
	}
}

func TestWritePDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.pdf")

	if err := WritePDF(path, buildTestRows(), model.DefaultSettings()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestWritePDF_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.pdf")
	if err := WritePDF(path, nil, model.DefaultSettings()); err == nil {
		t.Error("expected error for empty export")
	}
}

func TestWriteLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := WriteLabels(path, buildTestRows()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestWriteLabels_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := WriteLabels(path, nil); err == nil {
		t.Error("expected error for empty export")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestRows())

	if len(labels) != 2 {
		t.Fatalf("got %d labels", len(labels))
	}
	if labels[0].Material != "SHT_MFC_EGG_U775ST9_18_" || labels[0].Count != 2 {
		t.Errorf("unexpected label %+v", labels[0])
	}
	if labels[1].Edges != "L1+L2+W1+W2" {
		t.Errorf("edges = %q", labels[1].Edges)
	}
}
