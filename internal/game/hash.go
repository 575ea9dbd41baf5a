// internal/game/hash.go
package game

import (
	"math/rand"
)

// ------------------------------------------------------------
//  Zobrist 随机键（固定种子，跨进程可复现）
// ------------------------------------------------------------

const zobristSeed = 0x5eed_0f_7777

var (
	zobristCell   [FieldCells][3]uint64 // 下标 → Empty/PlayerA/PlayerB
	zobristStatus [MacroCells][4]uint64 // 下标 → Active/Inactive/WonByA/WonByB
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for i := range zobristCell {
		zobristCell[i] = [3]uint64{
			0, // Empty never participates
			r.Uint64(),
			r.Uint64(),
		}
	}
	for i := range zobristStatus {
		for s := range zobristStatus[i] {
			zobristStatus[i][s] = r.Uint64()
		}
	}
}

// Hash returns the zobrist key of the board: every occupied cell and every
// sub-board status. Equal boards hash equal across processes.
func (sb *SuperBoard) Hash() uint64 {
	var h uint64
	for br := 0; br < Rows; br++ {
		for bc := 0; bc < Cols; bc++ {
			b := &sb.boards[br][bc]
			for r := 0; r < Rows; r++ {
				for c := 0; c < Cols; c++ {
					if s := b.cells[r][c]; s != Empty {
						h ^= zobristCell[fieldIndex(br, bc, r, c)][s]
					}
				}
			}
			h ^= zobristStatus[br*Cols+bc][b.status-Active]
		}
	}
	return h
}

// fieldIndex maps a (board, cell) pair to its row-major index on the 9×9 field.
func fieldIndex(br, bc, r, c int) int {
	return (br*Rows+r)*FieldCols + bc*Cols + c
}
