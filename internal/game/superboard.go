package game

import (
	"fmt"
	"strings"
)

// SuperBoard is the 3×3 grid of sub-boards. The macro winner is derived from
// the sub-board statuses with the same line detector the sub-boards use.
type SuperBoard struct {
	boards [Rows][Cols]SubBoard
	winner CellState
}

// NewSuperBoard returns an empty board on which every sub-board is active.
func NewSuperBoard() *SuperBoard {
	sb := &SuperBoard{}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.boards[r][c].status = Active
		}
	}
	return sb
}

// Clone 返回深拷贝，供并发搜索使用
func (sb *SuperBoard) Clone() *SuperBoard {
	nb := *sb
	return &nb
}

// SubBoard returns the sub-board at (r, c).
func (sb *SuperBoard) SubBoard(r, c int) (*SubBoard, error) {
	if !inBounds(r, c) {
		return nil, coordError(r, c)
	}
	return &sb.boards[r][c], nil
}

// StatusAt returns the status of the sub-board at (r, c).
func (sb *SuperBoard) StatusAt(r, c int) (Status, error) {
	if !inBounds(r, c) {
		return Inactive, coordError(r, c)
	}
	return sb.boards[r][c].status, nil
}

// CellAt reads a cell in absolute 9×9 coordinates.
func (sb *SuperBoard) CellAt(row, col int) (CellState, error) {
	if row < 0 || row >= Rows*Rows || col < 0 || col >= Cols*Cols {
		return Empty, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, row, col)
	}
	return sb.boards[row/Rows][col/Cols].cells[row%Rows][col%Cols], nil
}

// Winner returns the player that has three sub-boards in a row, or Empty.
func (sb *SuperBoard) Winner() CellState {
	return sb.winner
}

// LegalMoves enumerates the empty cells of every active sub-board, boards in
// row-major order and cells in row-major order inside each board. An empty
// result is a normal terminal condition.
func (sb *SuperBoard) LegalMoves(id CellState) ([]Move, error) {
	if err := checkPlayer(id); err != nil {
		return nil, err
	}
	var moves []Move
	for br := 0; br < Rows; br++ {
		for bc := 0; bc < Cols; bc++ {
			b := &sb.boards[br][bc]
			if b.status != Active {
				continue
			}
			for _, p := range b.EmptyCells() {
				moves = append(moves, Move{
					BoardRow: br,
					BoardCol: bc,
					Row:      p.Row,
					Col:      p.Col,
					Player:   id,
				})
			}
		}
	}
	return moves, nil
}

// LinesThrough implements LineDetector over sub-board statuses.
func (sb *SuperBoard) LinesThrough(r, c int, id CellState) ([]Line, error) {
	return linesThrough(sb, r, c, id)
}

// IsWinningAt implements LineDetector over sub-board statuses.
func (sb *SuperBoard) IsWinningAt(r, c int, id CellState) (bool, error) {
	return isWinningAt(sb, r, c, id)
}

// PotentialValue implements LineDetector over sub-board statuses.
func (sb *SuperBoard) PotentialValue(r, c int, id CellState) (int, error) {
	return potentialValue(sb, r, c, id)
}

// ownerAt treats a won sub-board as owned and anything else as empty.
func (sb *SuperBoard) ownerAt(r, c int) CellState {
	return sb.boards[r][c].status.Owner()
}

// recomputeWinner scans every won sub-board for a completed macro line.
func (sb *SuperBoard) recomputeWinner() {
	sb.winner = Empty
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			owner := sb.ownerAt(r, c)
			if owner == Empty {
				continue
			}
			if completes(sb, r, c, owner) {
				sb.winner = owner
				return
			}
		}
	}
}

// String renders the 9×9 field followed by the macro statuses.
func (sb *SuperBoard) String() string {
	var b strings.Builder
	for row := 0; row < Rows*Rows; row++ {
		if row > 0 && row%Rows == 0 {
			b.WriteString("------+-------+------\n")
		}
		for col := 0; col < Cols*Cols; col++ {
			if col > 0 && col%Cols == 0 {
				b.WriteString("| ")
			}
			cell, _ := sb.CellAt(row, col)
			b.WriteString(cell.String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			fmt.Fprintf(&b, "%3d", int(sb.boards[r][c].status))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
