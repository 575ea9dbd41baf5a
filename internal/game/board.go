package game

import (
	"fmt"
)

// CellState represents the occupant of a cell on a sub-board.
// It can be Empty or owned by PlayerA or PlayerB.
type CellState int

const (
	Empty CellState = iota
	PlayerA
	PlayerB
)

// Grid dimensions and the number of same-owner cells in a row needed to win.
// Both nesting levels use the same shape.
const (
	Rows    = 3
	Cols    = 3
	Connect = 3
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "."
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	}
	return fmt.Sprintf("CellState(%d)", int(s))
}

// IsPlayer reports whether s is PlayerA or PlayerB.
func (s CellState) IsPlayer() bool {
	return s == PlayerA || s == PlayerB
}

// Coord is a (row, col) position inside a 3×3 grid.
type Coord struct {
	Row, Col int
}

// Grid is a 3×3 occupancy grid.
type Grid struct {
	cells [Rows][Cols]CellState
}

// CellAt returns the occupant at (r, c).
func (g *Grid) CellAt(r, c int) (CellState, error) {
	if !inBounds(r, c) {
		return Empty, coordError(r, c)
	}
	return g.cells[r][c], nil
}

// SetCell writes id at (r, c). Empty is allowed so callers can clear a cell.
func (g *Grid) SetCell(r, c int, id CellState) error {
	if !inBounds(r, c) {
		return coordError(r, c)
	}
	if id != Empty && !id.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerID, int(id))
	}
	g.cells[r][c] = id
	return nil
}

// IsFull returns true when no empty cell remains.
func (g *Grid) IsFull() bool {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if g.cells[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

// EmptyCells lists the empty cells in row-major order.
func (g *Grid) EmptyCells() []Coord {
	out := make([]Coord, 0, Rows*Cols)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if g.cells[r][c] == Empty {
				out = append(out, Coord{r, c})
			}
		}
	}
	return out
}

// LinesThrough implements LineDetector over the cell occupants.
func (g *Grid) LinesThrough(r, c int, id CellState) ([]Line, error) {
	return linesThrough(g, r, c, id)
}

// IsWinningAt implements LineDetector over the cell occupants.
func (g *Grid) IsWinningAt(r, c int, id CellState) (bool, error) {
	return isWinningAt(g, r, c, id)
}

// PotentialValue implements LineDetector over the cell occupants.
func (g *Grid) PotentialValue(r, c int, id CellState) (int, error) {
	return potentialValue(g, r, c, id)
}

func (g *Grid) ownerAt(r, c int) CellState {
	return g.cells[r][c]
}

func inBounds(r, c int) bool {
	return r >= 0 && r < Rows && c >= 0 && c < Cols
}

func coordError(r, c int) error {
	return fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, r, c)
}
