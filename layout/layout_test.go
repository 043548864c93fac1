package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapRotations(t *testing.T) {
	phys := Dim{X: 4, Y: 2}
	cases := []struct {
		rot      Rotation
		x, y     int
		col, row int
	}{
		{Rotate0, 0, 0, 0, 0},
		{Rotate0, 3, 1, 3, 1},
		{Rotate90, 0, 0, 3, 0},
		{Rotate90, 1, 3, 0, 1},
		{Rotate180, 0, 0, 3, 1},
		{Rotate180, 3, 1, 0, 0},
		{Rotate270, 0, 0, 0, 1},
		{Rotate270, 1, 3, 3, 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s/%d,%d", c.rot, c.x, c.y), func(t *testing.T) {
			col, row, ok := Map(c.x, c.y, c.rot, phys)
			require.True(t, ok)
			assert.Equal(t, c.col, col)
			assert.Equal(t, c.row, row)
		})
	}
}

func TestMapSquarePanel90(t *testing.T) {
	col, row, ok := Map(0, 0, Rotate90, Dim{X: 8, Y: 8})
	require.True(t, ok)
	assert.Equal(t, 7, col)
	assert.Equal(t, 0, row)
}

func TestMapClosedForm(t *testing.T) {
	phys := Dim{X: 5, Y: 3}
	W, H := phys.X, phys.Y
	for rot := Rotate0; rot <= Rotate270; rot++ {
		vis := rot.Visible(phys)
		for y := 0; y < vis.Y; y++ {
			for x := 0; x < vis.X; x++ {
				col, row, ok := Map(x, y, rot, phys)
				require.True(t, ok)
				var wc, wr int
				switch rot {
				case Rotate0:
					wc, wr = x, y
				case Rotate90:
					wc, wr = W-1-y, x
				case Rotate180:
					wc, wr = W-1-x, H-1-y
				case Rotate270:
					wc, wr = y, H-1-x
				}
				assert.Equal(t, wc, col, "rot %s (%d,%d)", rot, x, y)
				assert.Equal(t, wr, row, "rot %s (%d,%d)", rot, x, y)
			}
		}
	}
}

func TestMapIsBijective(t *testing.T) {
	phys := Dim{X: 4, Y: 3}
	for rot := Rotate0; rot <= Rotate270; rot++ {
		seen := map[int]bool{}
		vis := rot.Visible(phys)
		for y := 0; y < vis.Y; y++ {
			for x := 0; x < vis.X; x++ {
				col, row, ok := Map(x, y, rot, phys)
				require.True(t, ok)
				require.True(t, col >= 0 && col < phys.X && row >= 0 && row < phys.Y)
				seen[Index(nil, col, row, phys)] = true
			}
		}
		assert.Len(t, seen, phys.Count(), "rotation %s", rot)
	}
}

func TestMapRejectsOutOfBounds(t *testing.T) {
	phys := Dim{X: 4, Y: 2}
	for rot := Rotate0; rot <= Rotate270; rot++ {
		vis := rot.Visible(phys)
		for _, p := range [][2]int{{-1, 0}, {0, -1}, {vis.X, 0}, {0, vis.Y}, {-32768, 5}, {1 << 20, 0}} {
			_, _, ok := Map(p[0], p[1], rot, phys)
			assert.False(t, ok, "rotation %s point %v", rot, p)
		}
	}
	// Inside the physical width but outside the rotated visible width.
	_, _, ok := Map(2, 0, Rotate90, phys)
	assert.False(t, ok)
}

func TestMapVisibleUsesCallerExtent(t *testing.T) {
	phys := Dim{X: 8, Y: 8}
	_, _, ok := MapVisible(5, 0, Dim{X: 4, Y: 8}, Rotate0, phys)
	assert.False(t, ok)
	col, row, ok := MapVisible(3, 0, Dim{X: 4, Y: 8}, Rotate180, phys)
	assert.True(t, ok)
	assert.Equal(t, 4, col)
	assert.Equal(t, 7, row)
}

func TestRotationFromDegrees(t *testing.T) {
	for deg, want := range map[int]Rotation{0: Rotate0, 90: Rotate90, 180: Rotate180, 270: Rotate270, 360: Rotate0, -90: Rotate270} {
		got, err := RotationFromDegrees(deg)
		require.NoError(t, err)
		assert.Equal(t, want, got, "%d", deg)
	}
	_, err := RotationFromDegrees(45)
	assert.Error(t, err)
	assert.Equal(t, "270", Rotate270.String())
}

func TestIndexDefaultIsRowMajor(t *testing.T) {
	phys := Dim{X: 5, Y: 4}
	for row := 0; row < phys.Y; row++ {
		for col := 0; col < phys.X; col++ {
			assert.Equal(t, row*5+col, Index(nil, col, row, phys))
			assert.Equal(t, Index(nil, col, row, phys), RowMajor{Width: 5}.Index(col, row))
		}
	}
}

func TestIndexUsesRemapperVerbatim(t *testing.T) {
	r := RemapFunc(func(col, row int) int { return 1000 + col*10 + row })
	assert.Equal(t, 1032, Index(r, 3, 2, Dim{X: 4, Y: 4}))
}

func TestPanelIndex(t *testing.T) {
	d := Dim{X: 3, Y: 2}
	cases := []struct {
		name     string
		p        Panel
		col, row int
		want     int
	}{
		{"rows", Panel{Dim: d}, 2, 1, 5},
		{"serpentine", Serpentine(d), 0, 1, 5},
		{"serpentine end", Serpentine(d), 2, 1, 3},
		{"columns", Panel{Dim: d, Columns: true}, 1, 0, 2},
		{"columns zigzag", Panel{Dim: d, Columns: true, Zigzag: true}, 1, 0, 3},
		{"columns zigzag 2", Panel{Dim: d, Columns: true, Zigzag: true}, 1, 1, 2},
		{"bottom right", Panel{Dim: d, Origin: BottomRight}, 2, 1, 0},
		{"bottom right 2", Panel{Dim: d, Origin: BottomRight}, 0, 0, 5},
		{"top right zigzag", Panel{Dim: d, Origin: TopRight, Zigzag: true}, 2, 1, 5},
		{"top right zigzag start", Panel{Dim: d, Origin: TopRight, Zigzag: true}, 2, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.p.Index(c.col, c.row))
		})
	}
}

func TestPanelsArePermutations(t *testing.T) {
	d := Dim{X: 4, Y: 3}
	for _, origin := range []Corner{TopLeft, TopRight, BottomLeft, BottomRight} {
		for _, cols := range []bool{false, true} {
			for _, zz := range []bool{false, true} {
				p := Panel{Dim: d, Origin: origin, Columns: cols, Zigzag: zz}
				seen := map[int]bool{}
				for row := 0; row < d.Y; row++ {
					for col := 0; col < d.X; col++ {
						i := p.Index(col, row)
						require.True(t, i >= 0 && i < p.Count(), "%+v", p)
						seen[i] = true
					}
				}
				assert.Len(t, seen, p.Count(), "%+v", p)
			}
		}
	}
}

func TestTiledIndex(t *testing.T) {
	tl := Tiled{
		Panel: Panel{Dim: Dim{X: 2, Y: 2}},
		Tiles: Panel{Dim: Dim{X: 2, Y: 1}},
	}
	assert.Equal(t, Dim{X: 4, Y: 2}, tl.Dim())
	assert.Equal(t, 8, tl.Count())
	assert.Equal(t, 3, tl.Index(1, 1))
	assert.Equal(t, 4, tl.Index(2, 0))
	assert.Equal(t, 7, tl.Index(3, 1))

	zz := Tiled{
		Panel: Serpentine(Dim{X: 2, Y: 2}),
		Tiles: Panel{Dim: Dim{X: 2, Y: 2}, Zigzag: true},
	}
	seen := map[int]bool{}
	d := zz.Dim()
	for row := 0; row < d.Y; row++ {
		for col := 0; col < d.X; col++ {
			seen[zz.Index(col, row)] = true
		}
	}
	assert.Len(t, seen, zz.Count())
	// bottom-left tile is the last one in a zigzag tile grid
	assert.Equal(t, 12, zz.Index(0, 2))
}

func TestParseCorner(t *testing.T) {
	c, err := ParseCorner("Bottom-Right")
	require.NoError(t, err)
	assert.Equal(t, BottomRight, c)
	assert.Equal(t, "bottom-right", c.String())

	c, err = ParseCorner("")
	require.NoError(t, err)
	assert.Equal(t, TopLeft, c)

	_, err = ParseCorner("middle")
	assert.Error(t, err)
}
