package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// scenarioBoard 0,1,-1,1 / 1,2,2,1 / 0,1,-1,1 / 0,0,1,1
func scenarioBoard() Grid {
	return Grid{
		{0, 1, Mine, 1},
		{1, 2, 2, 1},
		{0, 1, Mine, 1},
		{0, 0, 1, 1},
	}
}

func fill(v Cell) Grid {
	var g Grid
	for r := range Size {
		for c := range Size {
			g[r][c] = v
		}
	}
	return g
}

func TestCell_Glyph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cell Cell
		want string
	}{
		{Mine, "*"},
		{Hidden, "-"},
		{Flagged, ">"},
		{0, "0"},
		{3, "3"},
		{8, "8"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cell.Glyph())
	}
}

func TestCell_IsRevealed(t *testing.T) {
	t.Parallel()

	assert.False(t, Hidden.IsRevealed())
	assert.False(t, Flagged.IsRevealed())
	assert.True(t, Mine.IsRevealed())
	assert.True(t, Cell(0).IsRevealed())
}

func TestNewVisible_AllHidden(t *testing.T) {
	t.Parallel()

	vis := NewVisible()
	assert.Equal(t, CellCount, vis.Covered())
	assert.Equal(t, fill(Hidden), vis)
}

func TestInBounds(t *testing.T) {
	t.Parallel()

	assert.True(t, InBounds(0, 0))
	assert.True(t, InBounds(3, 3))
	assert.False(t, InBounds(-1, 0))
	assert.False(t, InBounds(0, 4))
	assert.False(t, InBounds(9, 9))
}

func TestReveal_CopiesReferenceValue(t *testing.T) {
	t.Parallel()

	ref := scenarioBoard()
	vis := NewVisible()

	Reveal(&ref, &vis, 1, 1)

	assert.Equal(t, Cell(2), vis[1][1])
	assert.Equal(t, scenarioBoard(), ref, "reference board must not change")
	assert.Equal(t, CellCount-1, vis.Covered())
}

func TestFlagUnflag_RoundTrip(t *testing.T) {
	t.Parallel()

	for r := range Size {
		for c := range Size {
			vis := NewVisible()
			before := vis

			Flag(&vis, r, c)
			assert.Equal(t, Flagged, vis[r][c])

			Unflag(&vis, r, c)
			assert.Equal(t, before, vis)
		}
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	ref := scenarioBoard()

	t.Run("fresh board continues", func(t *testing.T) {
		t.Parallel()
		vis := NewVisible()
		assert.Equal(t, Continue, Evaluate(&ref, &vis))
	})

	t.Run("safe reveals never lose", func(t *testing.T) {
		t.Parallel()
		vis := NewVisible()
		for r := range Size {
			for c := range Size {
				if ref[r][c] == Mine {
					continue
				}
				Reveal(&ref, &vis, r, c)
				assert.NotEqual(t, Lost, Evaluate(&ref, &vis))
			}
		}
		assert.Equal(t, Won, Evaluate(&ref, &vis))
	})

	t.Run("revealed mine loses", func(t *testing.T) {
		t.Parallel()
		vis := NewVisible()
		Reveal(&ref, &vis, 0, 2)
		assert.Equal(t, Lost, Evaluate(&ref, &vis))
	})

	t.Run("flags left on mines do not block the win", func(t *testing.T) {
		t.Parallel()
		vis := NewVisible()
		for r := range Size {
			for c := range Size {
				if ref[r][c] != Mine {
					Reveal(&ref, &vis, r, c)
				}
			}
		}
		Flag(&vis, 0, 2)
		Flag(&vis, 2, 2)
		assert.Equal(t, Won, Evaluate(&ref, &vis))
	})
}

func TestEvaluate_WinIffCoveredEqualsMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  Grid
	}{
		{"zero mines", fill(1)},
		{"all mines", fill(Mine)},
		{"scenario", scenarioBoard()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref := tt.ref
			vis := NewVisible()
			for r := range Size {
				for c := range Size {
					won := Evaluate(&ref, &vis) == Won
					assert.Equal(t, vis.Covered() == ref.MineCount(), won)
					if ref[r][c] != Mine {
						Reveal(&ref, &vis, r, c)
					}
				}
			}
			assert.Equal(t, Won, Evaluate(&ref, &vis))
		})
	}
}

func TestGrid_String(t *testing.T) {
	t.Parallel()

	vis := NewVisible()
	vis[0][0] = 0
	vis[0][1] = Flagged
	vis[3][3] = Mine

	want := "0\t>\t-\t-\t\n" +
		"-\t-\t-\t-\t\n" +
		"-\t-\t-\t-\t\n" +
		"-\t-\t-\t*\t\n"
	assert.Equal(t, want, vis.String())
}
