package game

// Line is one window of Connect cells along a row, column or diagonal.
type Line [Connect]Coord

// LineDetector finds the lines a player can still complete through a cell.
// Grid implements it over cell occupants and SuperBoard over sub-board
// statuses, so the same detector serves both nesting levels.
type LineDetector interface {
	LinesThrough(r, c int, id CellState) ([]Line, error)
	IsWinningAt(r, c int, id CellState) (bool, error)
	PotentialValue(r, c int, id CellState) (int, error)
}

// occupancy is the read side a detector walks. ownerAt is only called with
// in-bounds coordinates.
type occupancy interface {
	ownerAt(r, c int) CellState
}

var (
	_ LineDetector = (*Grid)(nil)
	_ LineDetector = (*SuperBoard)(nil)
)

// axes: horizontal, vertical, main diagonal, anti-diagonal.
var axes = [4]Coord{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// pow10[k] weights a window holding k cells of the player.
var pow10 = func() [Connect + 1]int {
	var p [Connect + 1]int
	v := 1
	for i := range p {
		p[i] = v
		v *= 10
	}
	return p
}()

// linesThrough walks each axis from (r, c) in both directions over cells that
// are empty or owned by id, at most Connect-1 steps each way. Every window of
// Connect cells inside that open run contains (r, c).
func linesThrough(o occupancy, r, c int, id CellState) ([]Line, error) {
	if !inBounds(r, c) {
		return nil, coordError(r, c)
	}
	if err := checkPlayer(id); err != nil {
		return nil, err
	}
	return openLines(o, r, c, id), nil
}

// openLines is linesThrough without validation: (r, c) must be in bounds and
// id a player.
func openLines(o occupancy, r, c int, id CellState) []Line {
	opp := Opponent(id)
	if o.ownerAt(r, c) == opp {
		return nil
	}

	lines := make([]Line, 0, 4)
	for _, d := range axes {
		back := openRun(o, r, c, -d.Row, -d.Col, opp)
		fwd := openRun(o, r, c, d.Row, d.Col, opp)
		span := back + fwd
		if span <= Connect-2 {
			continue
		}
		for i := 0; i < span-(Connect-2); i++ {
			var l Line
			for j := 0; j < Connect; j++ {
				k := i + j - back
				l[j] = Coord{Row: r + d.Row*k, Col: c + d.Col*k}
			}
			lines = append(lines, l)
		}
	}
	return lines
}

// openRun counts the steps from (r, c) along (dr, dc) before leaving the grid
// or hitting an opponent cell.
func openRun(o occupancy, r, c, dr, dc int, opp CellState) int {
	n := 0
	for n < Connect-1 {
		nr, nc := r+dr*(n+1), c+dc*(n+1)
		if !inBounds(nr, nc) || o.ownerAt(nr, nc) == opp {
			break
		}
		n++
	}
	return n
}

// countOwned returns how many cells of l belong to id.
func countOwned(o occupancy, l Line, id CellState) int {
	n := 0
	for _, p := range l {
		if o.ownerAt(p.Row, p.Col) == id {
			n++
		}
	}
	return n
}

func isWinningAt(o occupancy, r, c int, id CellState) (bool, error) {
	if !inBounds(r, c) {
		return false, coordError(r, c)
	}
	if err := checkPlayer(id); err != nil {
		return false, err
	}
	return completes(o, r, c, id), nil
}

// completes is isWinningAt for callers that already hold a validated move.
func completes(o occupancy, r, c int, id CellState) bool {
	for _, l := range openLines(o, r, c, id) {
		if countOwned(o, l, id) == Connect {
			return true
		}
	}
	return false
}

// potentialValue sums 10^owned over the open windows through (r, c), so one
// nearly complete line outweighs several barely started ones.
func potentialValue(o occupancy, r, c int, id CellState) (int, error) {
	lines, err := linesThrough(o, r, c, id)
	if err != nil {
		return 0, err
	}
	sum := 0
	for _, l := range lines {
		sum += pow10[countOwned(o, l, id)]
	}
	return sum, nil
}
