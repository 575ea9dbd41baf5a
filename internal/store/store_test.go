package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"uttt_go/internal/game"
)

// playShortGame plays depth-1 moves for n plies.
func playShortGame(t *testing.T, n int) *game.GameState {
	t.Helper()
	gs := game.NewGameState()
	for i := 0; i < n && !gs.GameOver; i++ {
		mv, ok, err := game.PickBestMove(gs.Board, gs.CurrentPlayer, 1)
		if err != nil || !ok {
			t.Fatalf("ply %d: ok=%v err=%v", i, ok, err)
		}
		if err := gs.MakeMove(mv); err != nil {
			t.Fatal(err)
		}
	}
	return gs
}

func TestArchiveSaveLoad(t *testing.T) {
	ctx := context.Background()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "sub", "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	gs := playShortGame(t, 12)
	started := time.Now().Add(-time.Minute)
	rec := NewGameRecord(gs, "engine-d1", "engine-d1", started)
	if err := a.SaveGame(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := a.LoadGame(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Moves) != 12 || got.Field != rec.Field || got.Macro != rec.Macro {
		t.Errorf("loaded %+v", got)
	}
	if got.StartedAt.UnixMilli() != started.UnixMilli() {
		t.Errorf("started_at = %v, want %v", got.StartedAt, started)
	}

	// 回放得到同样的局面
	replayed, err := got.Replay(-1)
	if err != nil {
		t.Fatal(err)
	}
	if replayed.Board.Hash() != gs.Board.Hash() {
		t.Error("replay does not reach the saved position")
	}
	half, err := got.Replay(5)
	if err != nil || len(half.History) != 5 {
		t.Errorf("Replay(5): %v, %d plies", err, len(half.History))
	}

	if _, err := a.LoadGame(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v", err)
	}
}

func TestArchiveList(t *testing.T) {
	ctx := context.Background()
	a, err := OpenArchive(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	for i := 0; i < 3; i++ {
		rec := NewGameRecord(playShortGame(t, 4+i), "a", "b", time.Now())
		rec.EndedAt = time.UnixMilli(int64(1000 * (i + 1)))
		if err := a.SaveGame(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}
	n, err := a.CountGames(ctx)
	if err != nil || n != 3 {
		t.Fatalf("CountGames = %d, %v", n, err)
	}
	list, err := a.ListGames(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || len(list[0].Moves) != 6 || len(list[1].Moves) != 5 {
		t.Errorf("list order wrong: %d games", len(list))
	}
}

func TestReplayRejectsBadRecord(t *testing.T) {
	rec := GameRecord{Moves: []ArchivedMove{{Player: 2, Row: 4, Col: 4}}}
	if _, err := rec.Replay(-1); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("wrong side to move: err = %v", err)
	}
	rec.Moves = []ArchivedMove{{Player: 1, Row: 4, Col: 4}, {Player: 2, Row: 0, Col: 0}}
	if _, err := rec.Replay(-1); !errors.Is(err, game.ErrIllegalMove) {
		t.Errorf("move outside active board: err = %v", err)
	}
}

func TestRecordsRoundTrip(t *testing.T) {
	gs := game.NewGameState()
	mv, _, _ := game.PickBestMove(gs.Board, game.PlayerA, 1)
	rows := []TrainingRow{{
		GameID:     "g1",
		Ply:        0,
		Player:     int32(game.PlayerA),
		Hash:       int64(gs.Board.Hash()),
		Macroboard: "-1,-1,-1,-1,-1,-1,-1,-1,-1",
		State:      game.EncodeBoardBytes(gs.Board, game.PlayerA),
		Policy:     int32(game.MoveIndex(mv)),
		Score:      int32(mv.Value),
		Depth:      1,
		Value:      OutcomeFor(game.PlayerB, game.PlayerA),
		Source:     "test",
	}}

	dir := t.TempDir()
	path, err := WriteBatch(dir, rows)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
	got, err := ReadRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows", len(got))
	}
	if got[0].Policy != 40 || got[0].Value != -1 || len(got[0].State) != game.TensorLen {
		t.Errorf("row = %+v", got[0])
	}
}

func TestOutcomeFor(t *testing.T) {
	if OutcomeFor(game.PlayerA, game.PlayerA) != 1 || OutcomeFor(game.Empty, game.PlayerB) != 0 || OutcomeFor(game.PlayerA, game.PlayerB) != -1 {
		t.Error("OutcomeFor mapping")
	}
}
