package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectionFromPitch(t *testing.T) {
	cases := map[string]Direction{
		"0":   Right,
		"90":  Up,
		"180": Left,
		"270": Down,
		"":    Right,
		"45":  Right,
	}
	for pitch, want := range cases {
		require.Equal(t, want, DirectionFromPitch(pitch), "pitch %q", pitch)
	}
}

func TestNeighboursAndDirectionTo(t *testing.T) {
	p := Point{X: 5, Y: 5}
	require.Equal(t, Point{4, 5}, p.Left())
	require.Equal(t, Point{6, 5}, p.Right())
	require.Equal(t, Point{5, 6}, p.Up())
	require.Equal(t, Point{5, 4}, p.Down())

	require.Equal(t, Right, p.DirectionTo(p.Right()))
	require.Equal(t, Left, p.DirectionTo(p.Left()))
	require.Equal(t, Up, p.DirectionTo(p.Up()))
	require.Equal(t, Down, p.DirectionTo(p.Down()))
}

func TestDirectionToPanicsOnNonNeighbour(t *testing.T) {
	require.Panics(t, func() {
		Point{0, 0}.DirectionTo(Point{2, 2})
	})
}

func TestIsNeighbour(t *testing.T) {
	p := Point{5, 5}
	require.True(t, p.IsNeighbour(Point{5, 6}))
	require.True(t, p.IsNeighbour(Point{4, 5}))
	require.False(t, p.IsNeighbour(Point{6, 6}))
	require.False(t, p.IsNeighbour(p))
}

func TestManhattan(t *testing.T) {
	require.Equal(t, 7, Manhattan(Point{0, 0}, Point{3, 4}))
	require.Equal(t, 0, Manhattan(Point{1, 1}, Point{1, 1}))
}

func TestBoundsOfAndPerimeter(t *testing.T) {
	pts := []Point{{2, 2}, {8, 2}, {5, 9}}
	b := BoundsOf(pts)
	require.Equal(t, Bounds{MinX: 2, MaxX: 8, MinY: 2, MaxY: 9}, b)

	perimeter := b.Perimeter()
	require.Contains(t, perimeter, Point{1, 1})
	require.Contains(t, perimeter, Point{9, 10})
	require.NotContains(t, perimeter, Point{5, 5})
}

func TestBoundsOfEmpty(t *testing.T) {
	require.Equal(t, Bounds{}, BoundsOf(nil))
}
