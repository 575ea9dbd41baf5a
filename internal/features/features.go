// Package features turns stored training rows into small hand-crafted
// feature vectors for linear models.
package features

import (
	"fmt"

	"uttt_go/internal/codec"
	"uttt_go/internal/game"
	"uttt_go/internal/store"
)

// Names labels the columns Extract returns, in order.
var Names = []string{
	"empty_ratio",
	"stone_diff",
	"board_diff",
	"active_boards",
	"mobility",
	"macro_potential_diff",
	"move_eval",
	"search_score",
}

// Extract computes the features of row from the mover's side.
func Extract(row store.TrainingRow) ([]float64, error) {
	sb, err := codec.Decode(row.Field, row.Macroboard)
	if err != nil {
		return nil, fmt.Errorf("row %s/%d: %w", row.GameID, row.Ply, err)
	}
	me := game.CellState(row.Player)
	if !me.IsPlayer() {
		return nil, fmt.Errorf("row %s/%d: %w: %d", row.GameID, row.Ply, game.ErrInvalidPlayerID, row.Player)
	}
	opp := game.Opponent(me)

	// ① 格子统计
	empty, myCnt, opCnt := 0, 0, 0
	for r := 0; r < game.FieldRows; r++ {
		for c := 0; c < game.FieldCols; c++ {
			switch cell, _ := sb.CellAt(r, c); cell {
			case me:
				myCnt++
			case opp:
				opCnt++
			default:
				empty++
			}
		}
	}

	// ② 子棋盘统计与宏观潜力
	myBoards, opBoards, active := 0, 0, 0
	potDiff := 0
	for br := 0; br < game.Rows; br++ {
		for bc := 0; bc < game.Cols; bc++ {
			st, _ := sb.StatusAt(br, bc)
			switch {
			case st == game.Active:
				active++
			case st.Owner() == me:
				myBoards++
			case st.Owner() == opp:
				opBoards++
			}
			mine, _ := sb.PotentialValue(br, bc, me)
			theirs, _ := sb.PotentialValue(br, bc, opp)
			potDiff += mine - theirs
		}
	}

	moves, err := sb.LegalMoves(me)
	if err != nil {
		return nil, err
	}

	// ③ 实际走法的静态评估
	idx := int(row.Policy)
	m, err := game.MoveAt(idx/game.FieldCols, idx%game.FieldCols, me)
	if err != nil {
		return nil, fmt.Errorf("row %s/%d: %w", row.GameID, row.Ply, err)
	}
	snap, err := sb.Apply(m)
	if err != nil {
		return nil, fmt.Errorf("row %s/%d: %w", row.GameID, row.Ply, err)
	}
	eval := game.Evaluate(sb, m)
	if err := sb.Undo(m, snap); err != nil {
		return nil, err
	}

	return []float64{
		float64(empty) / game.FieldCells,
		float64(myCnt - opCnt),
		float64(myBoards - opBoards),
		float64(active),
		float64(len(moves)),
		float64(potDiff),
		float64(eval),
		float64(row.Score),
	}, nil
}
