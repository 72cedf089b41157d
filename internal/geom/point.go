// Package geom provides the grid geometry the planner and scheduler share:
// integer points, the four cardinal directions, and Manhattan distance.
package geom

import "fmt"

// Direction is one of the four cardinal headings an AGV can face, encoded
// as the angle in degrees a trajectory consumer expects in the "pitch"
// column. The grid's Y-axis convention is inverted relative to these angle
// names: Up moves toward +Y, Down moves toward -Y.
type Direction int

const (
	Right Direction = 0
	Up    Direction = 90
	Left  Direction = 180
	Down  Direction = 270
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// DirectionFromPitch maps the numeric pitch values accepted on map-file AGV
// rows (0/90/180/270) to a Direction, defaulting to Right for anything else.
func DirectionFromPitch(pitch string) Direction {
	switch pitch {
	case "0":
		return Right
	case "90":
		return Up
	case "180":
		return Left
	case "270":
		return Down
	default:
		return Right
	}
}

// Point is an integer grid coordinate. Two points are equal by value.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Left, Right, Up and Down return the neighbour in that cardinal direction.
// Up increments Y; Down decrements it.
func (p Point) Left() Point  { return Point{p.X - 1, p.Y} }
func (p Point) Right() Point { return Point{p.X + 1, p.Y} }
func (p Point) Up() Point    { return Point{p.X, p.Y + 1} }
func (p Point) Down() Point  { return Point{p.X, p.Y - 1} }

// Neighbour returns the adjacent point in the given direction.
func (p Point) Neighbour(d Direction) Point {
	switch d {
	case Right:
		return p.Right()
	case Left:
		return p.Left()
	case Up:
		return p.Up()
	case Down:
		return p.Down()
	default:
		return p
	}
}

// Neighbours returns all four adjacent points, in Left, Right, Up, Down order.
func (p Point) Neighbours() [4]Point {
	return [4]Point{p.Left(), p.Right(), p.Up(), p.Down()}
}

// IsNeighbour reports whether other is exactly one cardinal step from p.
func (p Point) IsNeighbour(other Point) bool {
	return (p.X == other.X && (p.Y == other.Y+1 || p.Y == other.Y-1)) ||
		(p.Y == other.Y && (p.X == other.X+1 || p.X == other.X-1))
}

// DirectionTo returns the cardinal direction of travel from p to a
// neighbouring point. It panics if other is not adjacent to p; callers are
// expected to only invoke this on points known to be one step apart (the
// planner and scheduler never call it otherwise).
func (p Point) DirectionTo(other Point) Direction {
	dx, dy := other.X-p.X, other.Y-p.Y
	switch {
	case dy == 0 && dx == 1:
		return Right
	case dy == 0 && dx == -1:
		return Left
	case dx == 0 && dy == 1:
		return Up
	case dx == 0 && dy == -1:
		return Down
	default:
		panic(fmt.Sprintf("geom: %v is not adjacent to %v", other, p))
	}
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Bounds is an inclusive rectangular region of the grid.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// BoundsOf returns the smallest Bounds enclosing every point in pts.
// Returns the zero Bounds if pts is empty.
func BoundsOf(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0].X, MaxX: pts[0].X, MinY: pts[0].Y, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// Perimeter returns every cell forming a one-cell-thick ring just outside b.
func (b Bounds) Perimeter() []Point {
	var pts []Point
	for x := b.MinX - 1; x <= b.MaxX+1; x++ {
		pts = append(pts, Point{x, b.MinY - 1}, Point{x, b.MaxY + 1})
	}
	for y := b.MinY - 1; y <= b.MaxY+1; y++ {
		pts = append(pts, Point{b.MinX - 1, y}, Point{b.MaxX + 1, y})
	}
	return pts
}
