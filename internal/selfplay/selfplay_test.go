package selfplay

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"uttt_go/internal/game"
	"uttt_go/internal/store"
)

type memSink struct {
	mu    sync.Mutex
	games []Game
}

func (m *memSink) Save(_ context.Context, g Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append(m.games, g)
	return nil
}

func testOptions() Options {
	return Options{
		Games:        4,
		Workers:      2,
		Depth:        2,
		OpeningPlies: 4,
		Seed:         42,
		Source:       "test",
		Logger:       zerolog.Nop(),
	}
}

func TestRunPlaysEveryGame(t *testing.T) {
	sink := &memSink{}
	sum, err := Run(context.Background(), testOptions(), sink)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Games != 4 || len(sink.games) != 4 {
		t.Fatalf("summary %+v, sink has %d games", sum, len(sink.games))
	}
	if sum.WinsA+sum.WinsB+sum.Draws != 4 {
		t.Errorf("results do not add up: %+v", sum)
	}
	for _, g := range sink.games {
		if len(g.Rows) != len(g.Record.Moves)-4 {
			t.Errorf("%d rows for %d plies", len(g.Rows), len(g.Record.Moves))
		}
		for _, r := range g.Rows {
			if r.GameID != g.Record.ID {
				t.Fatalf("row game id %q, record %q", r.GameID, g.Record.ID)
			}
			want := store.OutcomeFor(g.Record.Winner, game.CellState(r.Player))
			if r.Value != want {
				t.Fatalf("row value %v, want %v", r.Value, want)
			}
		}
		if _, err := g.Record.Replay(-1); err != nil {
			t.Errorf("record does not replay: %v", err)
		}
	}
}

func TestPlayOneIsReproducible(t *testing.T) {
	opts := testOptions()
	a, err := PlayOne(opts, 1, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := PlayOne(opts, 1, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Record.Moves, b.Record.Moves) {
		t.Error("same seed produced different games")
	}
	if a.Record.ID == b.Record.ID {
		t.Error("games share an id")
	}
}

func TestRunRejectsBadDepth(t *testing.T) {
	opts := testOptions()
	opts.Depth = 0
	if _, err := Run(context.Background(), opts, &memSink{}); !errors.Is(err, game.ErrInvalidDepth) {
		t.Errorf("err = %v", err)
	}
}

type failingSink struct{}

func (failingSink) Save(context.Context, Game) error { return errors.New("disk full") }

func TestRunStopsOnSinkError(t *testing.T) {
	_, err := Run(context.Background(), testOptions(), failingSink{})
	if err == nil {
		t.Fatal("sink error swallowed")
	}
}

func TestStoreSink(t *testing.T) {
	dir := t.TempDir()
	archive, err := store.OpenArchive(filepath.Join(dir, "games.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer archive.Close()

	sink := &StoreSink{Archive: archive, RecordsDir: filepath.Join(dir, "records"), BatchRows: 1 << 20}
	opts := testOptions()
	opts.Games = 3
	sum, err := Run(context.Background(), opts, sink)
	if err != nil {
		t.Fatal(err)
	}
	if len(sink.Files()) != 0 {
		t.Error("batch flushed before reaching BatchRows")
	}
	if err := sink.Flush(); err != nil {
		t.Fatal(err)
	}
	files := sink.Files()
	if len(files) != 1 {
		t.Fatalf("files = %v", files)
	}
	rows, err := store.ReadRecords(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != sum.Plies-3*opts.OpeningPlies {
		t.Errorf("%d rows, want %d", len(rows), sum.Plies-3*opts.OpeningPlies)
	}
	n, err := archive.CountGames(context.Background())
	if err != nil || n != 3 {
		t.Errorf("archived %d games, %v", n, err)
	}
}
