package types

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}

type Point struct {
	X, Y int
}

func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Unit directions. Y grows downwards.
var (
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

// Axis of a direction vector
type Axis int

const (
	NoAxis Axis = iota
	Horizontal
	Vertical
)

// Axis returns the axis a unit direction moves along, NoAxis otherwise
func (p Point) Axis() Axis {
	switch p {
	case Left, Right:
		return Horizontal
	case Up, Down:
		return Vertical
	}
	return NoAxis
}

// IsDirection reports whether p is one of the four unit directions
func (p Point) IsDirection() bool {
	return p.Axis() != NoAxis
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	BoardFull
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case BoardFull:
		return "board full"
	}
	return "none"
}

// Palette counts. Renderers map the indices to their own colours.
const (
	SnakeColors = 6
	Backgrounds = 3
)

// Palette selects the snake colour and the background tone.
type Palette struct {
	Snake      int
	Background int
}
