// Package selfplay runs engine-vs-engine games on a bounded worker pool and
// hands every finished game to a Sink.
package selfplay

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"uttt_go/internal/codec"
	"uttt_go/internal/game"
	"uttt_go/internal/store"
)

// Options controls a self-play run.
type Options struct {
	Games        int
	Workers      int
	Depth        int
	OpeningPlies int   // random plies before the engines take over
	Seed         int64 // game i uses Seed+i, so a run is reproducible
	Source       string
	Logger       zerolog.Logger
}

// Game is one finished self-play game.
type Game struct {
	Record store.GameRecord
	Rows   []store.TrainingRow
}

// Sink receives finished games. Save may be called from several goroutines.
type Sink interface {
	Save(ctx context.Context, g Game) error
}

// Summary aggregates a run.
type Summary struct {
	Games int
	WinsA int
	WinsB int
	Draws int
	Plies int
}

func (s *Summary) add(g Game) {
	s.Games++
	s.Plies += len(g.Record.Moves)
	switch g.Record.Winner {
	case game.PlayerA:
		s.WinsA++
	case game.PlayerB:
		s.WinsB++
	default:
		s.Draws++
	}
}

// Run plays opts.Games games with at most opts.Workers in flight. The first
// error from a game or the sink cancels the rest.
func Run(ctx context.Context, opts Options, sink Sink) (Summary, error) {
	if opts.Depth < 1 {
		return Summary{}, fmt.Errorf("%w: %d", game.ErrInvalidDepth, opts.Depth)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	opts.Logger.Info().Int("games", opts.Games).Int("workers", workers).Int("depth", opts.Depth).Msg("self-play starting")

	var (
		mu  sync.Mutex
		sum Summary
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// 每局独立随机源
			rng := rand.New(rand.NewSource(opts.Seed + int64(i)))
			played, err := PlayOne(opts, i, rng)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			if err := sink.Save(ctx, played); err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}

			mu.Lock()
			sum.add(played)
			done := sum.Games
			mu.Unlock()
			opts.Logger.Debug().
				Str("game_id", played.Record.ID).
				Int("plies", len(played.Record.Moves)).
				Stringer("winner", played.Record.Winner).
				Msg("game finished")
			if done%100 == 0 {
				opts.Logger.Info().Int("done", done).Int("total", opts.Games).Msg("progress")
			}
			return nil
		})
	}
	err := g.Wait()
	return sum, err
}

// PlayOne plays a single game. In even-numbered games PlayerB searches one ply
// shallower so the records are not all mirror matches.
func PlayOne(opts Options, idx int, rng *rand.Rand) (Game, error) {
	started := time.Now()
	gs := game.NewGameState()
	if err := randomOpening(gs, opts.OpeningPlies, rng); err != nil {
		return Game{}, err
	}

	// 同一局共用一个搜索器，置换表在着法之间保留
	searcher := game.NewSearcher(gs.Board)
	var rows []store.TrainingRow
	for !gs.GameOver {
		player := gs.CurrentPlayer
		depth := opts.Depth
		if idx%2 == 0 && player == game.PlayerB && depth > 1 {
			depth--
		}
		field, macro := codec.Encode(gs.Board)
		row := store.TrainingRow{
			Ply:        int32(len(gs.History)),
			Player:     int32(player),
			Hash:       int64(gs.Board.Hash()),
			Field:      field,
			Macroboard: macro,
			State:      game.EncodeBoardBytes(gs.Board, player),
			Depth:      int32(depth),
			Source:     opts.Source,
		}

		mv, ok, err := searcher.PickBestMove(player, depth)
		if err != nil {
			return Game{}, err
		}
		if !ok {
			break
		}
		row.Policy = int32(game.MoveIndex(mv))
		row.Score = int32(mv.Value)
		rows = append(rows, row)

		if err := gs.MakeMove(mv); err != nil {
			return Game{}, err
		}
	}

	rec := store.NewGameRecord(gs, engineName(opts.Depth), engineName(opts.Depth-boolInt(idx%2 == 0 && opts.Depth > 1)), started)
	for i := range rows {
		rows[i].GameID = rec.ID
		rows[i].Value = store.OutcomeFor(gs.Winner, game.CellState(rows[i].Player))
	}
	return Game{Record: rec, Rows: rows}, nil
}

func randomOpening(gs *game.GameState, plies int, rng *rand.Rand) error {
	for i := 0; i < plies && !gs.GameOver; i++ {
		moves, err := gs.Board.LegalMoves(gs.CurrentPlayer)
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			break
		}
		if err := gs.MakeMove(moves[rng.Intn(len(moves))]); err != nil {
			return err
		}
	}
	return nil
}

func engineName(depth int) string {
	return fmt.Sprintf("negamax-d%d", depth)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// StoreSink archives each game and batches its rows into parquet files.
type StoreSink struct {
	Archive    *store.Archive // may be nil
	RecordsDir string         // empty disables records
	BatchRows  int

	mu      sync.Mutex
	pending []store.TrainingRow
	files   []string
}

// Save implements Sink.
func (s *StoreSink) Save(ctx context.Context, g Game) error {
	if s.Archive != nil {
		if err := s.Archive.SaveGame(ctx, g.Record); err != nil {
			return err
		}
	}
	if s.RecordsDir == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, g.Rows...)
	if s.BatchRows > 0 && len(s.pending) >= s.BatchRows {
		return s.flushLocked()
	}
	return nil
}

// Flush writes any buffered rows.
func (s *StoreSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked()
}

// Files lists the parquet files written so far.
func (s *StoreSink) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.files...)
}

func (s *StoreSink) flushLocked() error {
	if len(s.pending) == 0 || s.RecordsDir == "" {
		return nil
	}
	path, err := store.WriteBatch(s.RecordsDir, s.pending)
	if err != nil {
		return err
	}
	s.files = append(s.files, path)
	s.pending = s.pending[:0]
	return nil
}
