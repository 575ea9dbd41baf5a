package game

import (
	"fmt"
)

// Move 表示一次落子：目标子棋盘 (BoardRow, BoardCol) 内的格子 (Row, Col)。
// Value is the heuristic score assigned during search; the other fields are
// fixed once the move is generated.
type Move struct {
	BoardRow int
	BoardCol int
	Row      int
	Col      int
	Player   CellState
	Value    int
}

// Opponent returns the other player, or Empty for a non-player id.
func Opponent(player CellState) CellState {
	switch player {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

// MoveAt builds a move from absolute 9×9 coordinates.
func MoveAt(row, col int, player CellState) (Move, error) {
	if row < 0 || row >= Rows*Rows || col < 0 || col >= Cols*Cols {
		return Move{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidCoordinate, row, col)
	}
	if err := checkPlayer(player); err != nil {
		return Move{}, err
	}
	return Move{
		BoardRow: row / Rows,
		BoardCol: col / Cols,
		Row:      row % Rows,
		Col:      col % Cols,
		Player:   player,
	}, nil
}

// Absolute returns the move's position on the 9×9 field.
func (m Move) Absolute() (row, col int) {
	return m.BoardRow*Rows + m.Row, m.BoardCol*Cols + m.Col
}

// SameSquare reports whether m and o target the same cell, ignoring value.
func (m Move) SameSquare(o Move) bool {
	return m.BoardRow == o.BoardRow && m.BoardCol == o.BoardCol &&
		m.Row == o.Row && m.Col == o.Col
}

func (m Move) String() string {
	r, c := m.Absolute()
	return fmt.Sprintf("%v@(%d,%d) board(%d,%d) value=%d", m.Player, r, c, m.BoardRow, m.BoardCol, m.Value)
}

func (m Move) validate() error {
	if err := checkPlayer(m.Player); err != nil {
		return err
	}
	if !inBounds(m.BoardRow, m.BoardCol) {
		return fmt.Errorf("%w: board (%d,%d)", ErrInvalidCoordinate, m.BoardRow, m.BoardCol)
	}
	if !inBounds(m.Row, m.Col) {
		return coordError(m.Row, m.Col)
	}
	return nil
}
