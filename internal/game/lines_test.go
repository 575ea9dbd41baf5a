package game

import (
	"errors"
	"math/rand"
	"testing"
)

func gridFrom(t *testing.T, rows ...string) *Grid {
	t.Helper()
	g := &Grid{}
	for r, line := range rows {
		for c, ch := range line {
			var id CellState
			switch ch {
			case 'X':
				id = PlayerA
			case 'O':
				id = PlayerB
			}
			if err := g.SetCell(r, c, id); err != nil {
				t.Fatalf("SetCell(%d,%d): %v", r, c, err)
			}
		}
	}
	return g
}

func TestPotentialValueEmptyGrid(t *testing.T) {
	g := &Grid{}
	cases := []struct {
		r, c int
		want int
	}{
		{1, 1, 4}, // row, column, both diagonals
		{0, 0, 3}, // row, column, main diagonal
		{0, 1, 2}, // row, column
		{2, 0, 3},
	}
	for _, tc := range cases {
		got, err := g.PotentialValue(tc.r, tc.c, PlayerA)
		if err != nil {
			t.Fatalf("PotentialValue(%d,%d): %v", tc.r, tc.c, err)
		}
		if got != tc.want {
			t.Errorf("PotentialValue(%d,%d) = %d, want %d", tc.r, tc.c, got, tc.want)
		}
	}
}

func TestPotentialValueWeighsNearCompleteLines(t *testing.T) {
	g := gridFrom(t,
		"XX.",
		".O.",
		"...",
	)
	// Through (0,2) for X: row has 2 X (100), column 0 X (1), anti-diagonal
	// is blocked by O at the centre.
	got, err := g.PotentialValue(0, 2, PlayerA)
	if err != nil {
		t.Fatal(err)
	}
	if got != 101 {
		t.Errorf("PotentialValue = %d, want 101", got)
	}
}

func TestLinesThroughSkipsOpponentWindows(t *testing.T) {
	g := gridFrom(t,
		"X..",
		".O.",
		"..O",
	)
	lines, err := g.LinesThrough(0, 0, PlayerA)
	if err != nil {
		t.Fatal(err)
	}
	// Row 0 and column 0 stay open, the main diagonal holds O.
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	for _, l := range lines {
		found := false
		for _, p := range l {
			if p == (Coord{0, 0}) {
				found = true
			}
		}
		if !found {
			t.Errorf("line %v does not contain (0,0)", l)
		}
	}

	// An opponent-owned start cell has no open lines.
	lines, err = g.LinesThrough(1, 1, PlayerA)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Errorf("got %d lines through an O cell for X", len(lines))
	}
}

func TestIsWinningAt(t *testing.T) {
	cases := []struct {
		name string
		rows []string
		r, c int
		id   CellState
		want bool
	}{
		{"row", []string{"...", "OOO", "X.X"}, 1, 0, PlayerB, true},
		{"column", []string{"X.O", "X.O", "X.."}, 2, 0, PlayerA, true},
		{"diagonal", []string{"X.O", "OX.", "..X"}, 1, 1, PlayerA, true},
		{"anti-diagonal", []string{"..O", ".O.", "O.X"}, 0, 2, PlayerB, true},
		{"two only", []string{"XX.", "...", "..."}, 0, 0, PlayerA, false},
		{"blocked", []string{"XOX", "...", "..."}, 0, 0, PlayerA, false},
		{"wrong player", []string{"XXX", "...", "..."}, 0, 0, PlayerB, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := gridFrom(t, tc.rows...)
			got, err := g.IsWinningAt(tc.r, tc.c, tc.id)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("IsWinningAt(%d,%d,%v) = %v, want %v", tc.r, tc.c, tc.id, got, tc.want)
			}
		})
	}
}

func TestGridErrors(t *testing.T) {
	g := &Grid{}
	if _, err := g.CellAt(3, 0); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("CellAt(3,0) err = %v", err)
	}
	if err := g.SetCell(0, -1, PlayerA); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("SetCell(0,-1) err = %v", err)
	}
	if err := g.SetCell(0, 0, CellState(7)); !errors.Is(err, ErrInvalidPlayerID) {
		t.Errorf("SetCell id 7 err = %v", err)
	}
	if _, err := g.IsWinningAt(0, 0, Empty); !errors.Is(err, ErrInvalidPlayerID) {
		t.Errorf("IsWinningAt(Empty) err = %v", err)
	}
	if _, err := g.PotentialValue(-1, 0, PlayerA); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("PotentialValue(-1,0) err = %v", err)
	}
}

// symmetries of the square, mapping (r, c) on a 3×3 grid.
var symmetries = []func(r, c int) (int, int){
	func(r, c int) (int, int) { return c, 2 - r },     // 90°
	func(r, c int) (int, int) { return 2 - r, 2 - c }, // 180°
	func(r, c int) (int, int) { return 2 - c, r },     // 270°
	func(r, c int) (int, int) { return r, 2 - c },     // mirror
	func(r, c int) (int, int) { return 2 - r, c },     // flip
	func(r, c int) (int, int) { return c, r },         // transpose
	func(r, c int) (int, int) { return 2 - c, 2 - r }, // anti-transpose
}

func TestWinShapeInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 500; n++ {
		g := &Grid{}
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				g.cells[r][c] = CellState(rng.Intn(3))
			}
		}
		for si, f := range symmetries {
			tg := &Grid{}
			for r := 0; r < Rows; r++ {
				for c := 0; c < Cols; c++ {
					tr, tc := f(r, c)
					tg.cells[tr][tc] = g.cells[r][c]
				}
			}
			for r := 0; r < Rows; r++ {
				for c := 0; c < Cols; c++ {
					tr, tc := f(r, c)
					for _, id := range []CellState{PlayerA, PlayerB} {
						a, _ := g.IsWinningAt(r, c, id)
						b, _ := tg.IsWinningAt(tr, tc, id)
						if a != b {
							t.Fatalf("grid %v symmetry %d: IsWinningAt(%d,%d,%v)=%v, transformed=%v", g.cells, si, r, c, id, a, b)
						}
						pa, _ := g.PotentialValue(r, c, id)
						pb, _ := tg.PotentialValue(tr, tc, id)
						if pa != pb {
							t.Fatalf("grid %v symmetry %d: PotentialValue(%d,%d,%v)=%d, transformed=%d", g.cells, si, r, c, id, pa, pb)
						}
					}
				}
			}
		}
	}
}

func TestCompletesMatchesIsWinningAt(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for n := 0; n < 300; n++ {
		g := &Grid{}
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				g.cells[r][c] = CellState(rng.Intn(3))
			}
		}
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				for _, id := range []CellState{PlayerA, PlayerB} {
					want, err := g.IsWinningAt(r, c, id)
					if err != nil {
						t.Fatal(err)
					}
					if got := completes(g, r, c, id); got != want {
						t.Fatalf("grid %v: completes(%d,%d,%v) = %v, IsWinningAt = %v", g.cells, r, c, id, got, want)
					}
				}
			}
		}
	}
}
