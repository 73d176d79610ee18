package engine

import (
	"testing"

	"github.com/DavidHearl/boardgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unedgedPart(t *testing.T, length, width float64, qty int) model.PartLine {
	t.Helper()
	p, err := model.NewPartLine(1001, "W1000 ST9 White", "PANEL", length, width, 18, qty, "unedged")
	require.NoError(t, err)
	p.Department = "001"
	return p
}

func TestExpandUnedged_OversizeSplitsIntoHalves(t *testing.T) {
	// A 1200mm wide panel cannot come off 1000mm stock in one piece, so
	// it is seamed from two 600mm halves.
	parts := []model.PartLine{unedgedPart(t, 2000, 1200, 1)}
	units := expandUnedged(parts, 1000)

	require.Len(t, units, 2)
	assert.Equal(t, 600.0, units[0].width)
	assert.Equal(t, 600.0, units[1].width)
	assert.Equal(t, 2000.0, units[0].length)
}

func TestExpandUnedged_InRangeKeptWhole(t *testing.T) {
	parts := []model.PartLine{unedgedPart(t, 2000, 900, 3)}
	units := expandUnedged(parts, 1000)

	require.Len(t, units, 3)
	for _, u := range units {
		assert.Equal(t, 900.0, u.width)
	}
}

func TestPackUnedged_TwoStripsShareABoard(t *testing.T) {
	// Two 500mm wide units together use exactly the 1000mm board width,
	// so one board carries both as side-by-side strips.
	parts := []model.PartLine{unedgedPart(t, 1500, 500, 2)}
	boards := PackUnedged(parts, model.DefaultSettings())

	require.Len(t, boards, 1)
	assert.Len(t, boards[0].Strips, 2)
	assert.Equal(t, 1000.0, boards[0].UsedWidth())
}

func TestPackUnedged_SameStripReuse(t *testing.T) {
	// Two short units of the same width stack end-to-end in one strip.
	parts := []model.PartLine{unedgedPart(t, 1000, 500, 2)}
	boards := PackUnedged(parts, model.DefaultSettings())

	require.Len(t, boards, 1)
	require.Len(t, boards[0].Strips, 1)
	assert.Equal(t, 2000.0, boards[0].Strips[0].LengthUsed)
}

func TestPackUnedged_NewBoardWhenWidthExhausted(t *testing.T) {
	// Three 400mm strips fit one board (1200 > 1000 forces the third
	// elsewhere): first two share, third opens board two.
	parts := []model.PartLine{unedgedPart(t, 2700, 400, 3)}
	boards := PackUnedged(parts, model.DefaultSettings())

	require.Len(t, boards, 2)
	assert.Len(t, boards[0].Strips, 2)
	assert.Len(t, boards[1].Strips, 1)
}

func TestPackUnedged_WidthInvariant(t *testing.T) {
	parts := []model.PartLine{
		unedgedPart(t, 1200, 700, 2),
		unedgedPart(t, 800, 450, 3),
		unedgedPart(t, 2000, 1400, 1),
	}
	settings := model.DefaultSettings()
	boards := PackUnedged(parts, settings)

	require.NotEmpty(t, boards)
	for _, b := range boards {
		assert.LessOrEqual(t, b.UsedWidth(), settings.MaxBoardWidth)
		for _, s := range b.Strips {
			assert.LessOrEqual(t, s.LengthUsed, settings.MaxRipLength)
		}
	}
}

func TestPackUnedged_Deterministic(t *testing.T) {
	parts := []model.PartLine{
		unedgedPart(t, 1200, 700, 2),
		unedgedPart(t, 800, 450, 3),
		unedgedPart(t, 2600, 300, 4),
	}
	settings := model.DefaultSettings()

	first := PackUnedged(parts, settings)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, PackUnedged(parts, settings))
	}
}

func TestPackUnedged_Empty(t *testing.T) {
	assert.Nil(t, PackUnedged(nil, model.DefaultSettings()))
}
