package game

import (
	"fmt"
)

// Snapshot 记录落子前 9 个子棋盘的状态（以及宏观胜者），用于 Undo 回滚。
// A single move can toggle every status, so Undo restores the whole vector.
type Snapshot struct {
	statuses [Rows][Cols]Status
	winner   CellState
}

func (sb *SuperBoard) snapshot() Snapshot {
	var s Snapshot
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			s.statuses[r][c] = sb.boards[r][c].status
		}
	}
	s.winner = sb.winner
	return s
}

// Apply plays m and recomputes which sub-boards are legal next. The cell m
// picks inside its sub-board names the sub-board the opponent must use. If that
// board is not won and still has room it becomes the only active board;
// otherwise every undecided board with room is opened. The returned snapshot
// undoes the move. On error nothing has been mutated.
func (sb *SuperBoard) Apply(m Move) (Snapshot, error) {
	if err := m.validate(); err != nil {
		return Snapshot{}, err
	}
	snap := sb.snapshot()

	target := &sb.boards[m.BoardRow][m.BoardCol]
	if target.status != Active {
		return Snapshot{}, fmt.Errorf("%w: board (%d,%d) is %v", ErrIllegalMove, m.BoardRow, m.BoardCol, target.status)
	}
	if err := target.Play(m.Row, m.Col, m.Player); err != nil {
		return Snapshot{}, err
	}

	// next 可能此刻仍是 Active（自由选择阶段），同样收窄为唯一目标
	next := &sb.boards[m.Row][m.Col]
	if !next.status.IsWon() && !next.IsFull() {
		sb.changeStatuses(Active, Inactive)
		next.status = Active
	} else {
		sb.changeStatuses(Inactive, Active)
	}

	if target.status.IsWon() {
		if completes(sb, m.BoardRow, m.BoardCol, m.Player) {
			sb.winner = m.Player
		}
	}
	return snap, nil
}

// changeStatuses moves every board in state from to state to. Full boards are
// never reopened; won boards are never touched.
func (sb *SuperBoard) changeStatuses(from, to Status) {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			b := &sb.boards[r][c]
			if b.status != from {
				continue
			}
			if to == Active && b.IsFull() {
				continue
			}
			b.status = to
		}
	}
}

// Undo clears the cell m played and restores the statuses captured in snap.
func (sb *SuperBoard) Undo(m Move, snap Snapshot) error {
	if !inBounds(m.BoardRow, m.BoardCol) {
		return fmt.Errorf("%w: board (%d,%d)", ErrInvalidCoordinate, m.BoardRow, m.BoardCol)
	}
	if !inBounds(m.Row, m.Col) {
		return coordError(m.Row, m.Col)
	}
	sb.undo(m, snap)
	return nil
}

// undo skips validation; m must have been accepted by Apply.
func (sb *SuperBoard) undo(m Move, snap Snapshot) {
	sb.boards[m.BoardRow][m.BoardCol].cells[m.Row][m.Col] = Empty
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			sb.boards[r][c].status = snap.statuses[r][c]
		}
	}
	sb.winner = snap.winner
}
