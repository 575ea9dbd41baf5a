// internal/game/encode.go
package game

const (
	PlaneCnt  = 3 // [我方, 对方, 合法落点]
	TensorLen = PlaneCnt * FieldCells
)

// EncodeBoardTensor 把棋盘编码成 [243]float32 张量（以 me 的视角）
func EncodeBoardTensor(sb *SuperBoard, me CellState) [TensorLen]float32 {
	var t [TensorLen]float32
	opp := Opponent(me)
	for br := 0; br < Rows; br++ {
		for bc := 0; bc < Cols; bc++ {
			b := &sb.boards[br][bc]
			for r := 0; r < Rows; r++ {
				for c := 0; c < Cols; c++ {
					idx := fieldIndex(br, bc, r, c)
					switch b.cells[r][c] {
					case me:
						t[idx] = 1 // plane 0
					case opp:
						t[FieldCells+idx] = 1 // plane 1
					case Empty:
						if b.status == Active {
							t[2*FieldCells+idx] = 1 // plane 2
						}
					}
				}
			}
		}
	}
	return t
}

// EncodeBoardBytes is EncodeBoardTensor packed one byte per entry.
func EncodeBoardBytes(sb *SuperBoard, me CellState) []byte {
	t := EncodeBoardTensor(sb, me)
	out := make([]byte, TensorLen)
	for i, v := range t {
		if v != 0 {
			out[i] = 1
		}
	}
	return out
}

// MoveIndex 把落子映射到 0..80 的 move 索引
func MoveIndex(m Move) int {
	return fieldIndex(m.BoardRow, m.BoardCol, m.Row, m.Col)
}
