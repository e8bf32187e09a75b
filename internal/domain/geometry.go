package domain

import "fmt"

const (
	MaxCols = 500
	MaxRows = 200
)

// Geometry is a terminal size in character cells.
type Geometry struct {
	Cols int
	Rows int
}

// Valid reports whether both dimensions are positive. Degenerate geometry is
// never sent to the server.
func (g Geometry) Valid() bool {
	return g.Cols > 0 && g.Rows > 0
}

func (g Geometry) Clamp() Geometry {
	if g.Cols > MaxCols {
		g.Cols = MaxCols
	}
	if g.Rows > MaxRows {
		g.Rows = MaxRows
	}
	return g
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Cols, g.Rows)
}
