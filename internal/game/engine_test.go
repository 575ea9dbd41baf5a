package game

import (
	"errors"
	"reflect"
	"testing"
)

func TestImportStateMalformed(t *testing.T) {
	good := make([]int, FieldCells)
	goodStatus := allStatuses(Active)

	bad := func(i, v int) []int {
		out := append([]int(nil), good...)
		out[i] = v
		return out
	}
	badStatus := func(i, v int) []int {
		out := append([]int(nil), goodStatus...)
		out[i] = v
		return out
	}

	cases := []struct {
		name     string
		cells    []int
		statuses []int
	}{
		{"short field", good[:80], goodStatus},
		{"long macro", good, append(goodStatus, -1)},
		{"cell id 3", bad(40, 3), goodStatus},
		{"cell id -1", bad(0, -1), goodStatus},
		{"status -2", good, badStatus(2, -2)},
		{"status 3", good, badStatus(8, 3)},
	}
	for _, tc := range cases {
		if _, err := ImportState(tc.cells, tc.statuses); !errors.Is(err, ErrMalformedState) {
			t.Errorf("%s: err = %v, want ErrMalformedState", tc.name, err)
		}
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	rows := macroWinRows("XX.", "...", "...")
	sb := fieldFrom(t, rows, macroWinStatuses)
	cells, statuses := sb.ExportState()
	if !reflect.DeepEqual(statuses, macroWinStatuses) {
		t.Errorf("statuses = %v", statuses)
	}
	again, err := ImportState(cells, statuses)
	if err != nil {
		t.Fatal(err)
	}
	if again.Hash() != sb.Hash() {
		t.Error("hash differs after round trip")
	}
	if c, _ := again.CellAt(0, 7); c != PlayerA {
		t.Errorf("cell (0,7) = %v, want X", c)
	}
}

func TestImportStateDerivesWinner(t *testing.T) {
	statuses := []int{2, 0, 0, 0, 2, 0, 0, 0, 2}
	sb := fieldFrom(t, emptyRows(), statuses)
	if sb.Winner() != PlayerB {
		t.Errorf("winner = %v, want O", sb.Winner())
	}
}

func TestEngine(t *testing.T) {
	e := NewEngine()
	row, col, ok, err := e.PickBestMove(PlayerA, 1)
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if row != 4 || col != 4 {
		t.Errorf("got (%d,%d), want (4,4)", row, col)
	}

	// 导入失败时保留原棋盘
	before := e.Board()
	if err := e.ImportState(make([]int, 3), allStatuses(Active)); !errors.Is(err, ErrMalformedState) {
		t.Fatalf("err = %v", err)
	}
	if e.Board() != before {
		t.Error("board replaced by a failed import")
	}

	if err := e.ImportState(make([]int, FieldCells), allStatuses(Inactive)); err != nil {
		t.Fatal(err)
	}
	if _, _, ok, err := e.PickBestMove(PlayerB, 2); err != nil || ok {
		t.Errorf("no-move board: ok=%v err=%v", ok, err)
	}
	cells, statuses := e.ExportState()
	if len(cells) != FieldCells || !reflect.DeepEqual(statuses, allStatuses(Inactive)) {
		t.Errorf("export = %v / %v", cells, statuses)
	}
}

func TestEncodeBoardTensor(t *testing.T) {
	sb := NewSuperBoard()
	m := Move{BoardRow: 0, BoardCol: 0, Row: 1, Col: 1, Player: PlayerA}
	sb.Apply(m)

	tensor := EncodeBoardTensor(sb, PlayerB)
	idx := MoveIndex(m)
	if idx != 10 {
		t.Fatalf("MoveIndex = %d, want 10", idx)
	}
	if tensor[idx] != 0 || tensor[FieldCells+idx] != 1 {
		t.Error("X stone not in the opponent plane for O")
	}
	legal := 0
	for i := 2 * FieldCells; i < TensorLen; i++ {
		if tensor[i] == 1 {
			legal++
		}
	}
	if legal != 9 {
		t.Errorf("legal plane has %d cells, want 9", legal)
	}
	if b := EncodeBoardBytes(sb, PlayerA); b[idx] != 1 || len(b) != TensorLen {
		t.Error("byte encoding")
	}
}
