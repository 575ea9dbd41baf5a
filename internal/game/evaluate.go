// file: internal/game/evaluate.go
package game

// 评估权重
const (
	// MacroWeight scales the macro-board potential against the sub-board one.
	MacroWeight = 10
	// WinScore is the value of a move that wins the whole game. It is larger
	// than any potential sum so negation keeps wins and losses at the extremes.
	WinScore = 1 << 20
	// DrawScore is the value of a move after which the opponent cannot move.
	DrawScore = 0
)

// Evaluate scores a move that has just been applied to sb:
// MacroWeight * macro potential + sub-board potential, both for m.Player at
// the location m played.
func Evaluate(sb *SuperBoard, m Move) int {
	macro, err := sb.PotentialValue(m.BoardRow, m.BoardCol, m.Player)
	if err != nil {
		return 0
	}
	micro, err := sb.boards[m.BoardRow][m.BoardCol].PotentialValue(m.Row, m.Col, m.Player)
	if err != nil {
		return 0
	}
	return MacroWeight*macro + micro
}

// isForcedWin reports whether the applied move m completed a line on its
// sub-board and, through it, on the macro board.
func isForcedWin(sb *SuperBoard, m Move) bool {
	sub := &sb.boards[m.BoardRow][m.BoardCol]
	return completes(sub, m.Row, m.Col, m.Player) &&
		completes(sb, m.BoardRow, m.BoardCol, m.Player)
}
