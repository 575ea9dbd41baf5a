package game

import (
	"fmt"
)

// Field dimensions of the flattened 9×9 state.
const (
	FieldRows  = Rows * Rows
	FieldCols  = Cols * Cols
	FieldCells = FieldRows * FieldCols
	MacroCells = Rows * Cols
)

// ImportState rebuilds a board from 81 cell ids (row-major 9×9, 0/1/2) and
// 9 status ids (row-major 3×3, -1/0/1/2). The macro winner is derived.
func ImportState(cells, statuses []int) (*SuperBoard, error) {
	if len(cells) != FieldCells {
		return nil, fmt.Errorf("%w: %d cells, want %d", ErrMalformedState, len(cells), FieldCells)
	}
	if len(statuses) != MacroCells {
		return nil, fmt.Errorf("%w: %d statuses, want %d", ErrMalformedState, len(statuses), MacroCells)
	}

	sb := &SuperBoard{}
	for i, v := range cells {
		id := CellState(v)
		if id != Empty && !id.IsPlayer() {
			return nil, fmt.Errorf("%w: cell %d has id %d", ErrMalformedState, i, v)
		}
		row, col := i/FieldCols, i%FieldCols
		sb.boards[row/Rows][col/Cols].cells[row%Rows][col%Cols] = id
	}
	for i, v := range statuses {
		st := Status(v)
		if !st.valid() {
			return nil, fmt.Errorf("%w: sub-board %d has status %d", ErrMalformedState, i, v)
		}
		sb.boards[i/Cols][i%Cols].status = st
	}
	sb.recomputeWinner()
	return sb, nil
}

// ExportState is the inverse of ImportState.
func (sb *SuperBoard) ExportState() (cells, statuses []int) {
	cells = make([]int, FieldCells)
	for i := range cells {
		row, col := i/FieldCols, i%FieldCols
		cells[i] = int(sb.boards[row/Rows][col/Cols].cells[row%Rows][col%Cols])
	}
	statuses = make([]int, MacroCells)
	for i := range statuses {
		statuses[i] = int(sb.boards[i/Cols][i%Cols].status)
	}
	return cells, statuses
}

// Engine is the driver-facing facade: it holds one board, swaps it wholesale
// on import and answers move queries in absolute coordinates.
type Engine struct {
	board    *SuperBoard
	searcher *Searcher
}

// NewEngine returns an engine over an empty board.
func NewEngine() *Engine {
	sb := NewSuperBoard()
	return &Engine{board: sb, searcher: NewSearcher(sb)}
}

// Board exposes the engine's current board.
func (e *Engine) Board() *SuperBoard {
	return e.board
}

// Searcher exposes the searcher bound to the current board.
func (e *Engine) Searcher() *Searcher {
	return e.searcher
}

// ImportState replaces the board. On error the previous board is kept.
func (e *Engine) ImportState(cells, statuses []int) error {
	sb, err := ImportState(cells, statuses)
	if err != nil {
		return err
	}
	e.board = sb
	// 新棋盘：沿用日志和表大小，旧表丢弃
	e.searcher = NewSearcher(sb).WithLogger(e.searcher.log).WithTable(e.searcher.ttBits)
	return nil
}

// ExportState returns the current board in the flat encoding.
func (e *Engine) ExportState() (cells, statuses []int) {
	return e.board.ExportState()
}

// PickBestMove searches for id and returns the chosen cell in absolute 9×9
// coordinates. ok is false when id has no legal move.
func (e *Engine) PickBestMove(id CellState, depth int) (row, col int, ok bool, err error) {
	mv, ok, err := e.searcher.PickBestMove(id, depth)
	if err != nil || !ok {
		return 0, 0, false, err
	}
	row, col = mv.Absolute()
	return row, col, true, nil
}
