// game/ai.go
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SearchStats counts the work done by the last search.
type SearchStats struct {
	Depth      int // deepest completed depth
	Nodes      int // moves applied
	Leaves     int // leaf evaluations
	ForcedWins int // game-winning moves that cut a layer short
	TTProbes   int // 置换表查询次数
	TTHits     int
	Elapsed    time.Duration
}

// Searcher runs depth-bounded negamax over a board it owns exclusively for
// the duration of a call. The board is mutated with Apply/Undo and is back in
// its original state when every call returns.
type Searcher struct {
	board  *SuperBoard
	stats  SearchStats
	log    zerolog.Logger
	ttBits int
	tt     *ttTable // 首次搜索时分配；跨搜索保留，条目是精确值
}

// NewSearcher returns a searcher over sb that logs nothing and caches results
// in a table of 1<<DefaultTTBits slots.
func NewSearcher(sb *SuperBoard) *Searcher {
	return &Searcher{board: sb, log: zerolog.Nop(), ttBits: DefaultTTBits}
}

// WithTable resizes the transposition table to 1<<bits slots, dropping its
// contents. bits <= 0 disables caching.
func (s *Searcher) WithTable(bits int) *Searcher {
	s.ttBits = bits
	s.tt = nil
	return s
}

// WithLogger sets the logger used for per-depth debug events.
func (s *Searcher) WithLogger(l zerolog.Logger) *Searcher {
	s.log = l
	return s
}

// Stats returns the counters of the last search.
func (s *Searcher) Stats() SearchStats {
	return s.stats
}

// PickBestMove is a convenience wrapper around a fresh Searcher.
func PickBestMove(sb *SuperBoard, id CellState, depth int) (Move, bool, error) {
	return NewSearcher(sb).PickBestMove(id, depth)
}

// PickBestMove returns the best move for id searching depth plies. ok is
// false when id has no legal move; that is not an error.
func (s *Searcher) PickBestMove(id CellState, depth int) (Move, bool, error) {
	if err := checkPlayer(id); err != nil {
		return Move{}, false, err
	}
	if depth < 1 {
		return Move{}, false, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	start := time.Now()
	s.stats = SearchStats{}
	mv, ok, err := s.negamax(id, depth)
	s.stats.Elapsed = time.Since(start)
	if err == nil {
		s.stats.Depth = depth
	}
	return mv, ok, err
}

// IterativeDeepening searches depth 1, 2, ... maxDepth and returns the result
// of the deepest completed depth. ctx is only checked between depths, so a
// started depth always finishes. A forced win ends the loop early.
func (s *Searcher) IterativeDeepening(ctx context.Context, id CellState, maxDepth int) (Move, bool, error) {
	if err := checkPlayer(id); err != nil {
		return Move{}, false, err
	}
	if maxDepth < 1 {
		return Move{}, false, fmt.Errorf("%w: %d", ErrInvalidDepth, maxDepth)
	}
	start := time.Now()
	s.stats = SearchStats{}

	var best Move
	found := false
	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && ctx.Err() != nil {
			s.log.Debug().Int("depth", depth-1).Msg("deadline reached, keeping previous depth")
			break
		}
		mv, ok, err := s.negamax(id, depth)
		if err != nil {
			return Move{}, false, err
		}
		if !ok {
			break
		}
		best, found = mv, true
		s.stats.Depth = depth
		s.log.Debug().
			Int("depth", depth).
			Str("move", mv.String()).
			Int("nodes", s.stats.Nodes).
			Int("tt_hits", s.stats.TTHits).
			Dur("elapsed", time.Since(start)).
			Msg("depth complete")
		if mv.Value >= WinScore {
			break
		}
	}
	s.stats.Elapsed = time.Since(start)
	return best, found, nil
}

// negamax consults the transposition table before searching; a miss searches
// and stores the exact result.
func (s *Searcher) negamax(id CellState, depth int) (Move, bool, error) {
	if s.tt == nil && s.ttBits > 0 {
		s.tt = newTTTable(s.ttBits)
	}
	if s.tt == nil {
		return s.search(id, depth)
	}
	key := s.board.Hash()
	s.stats.TTProbes++
	if mv, ok, hit := s.tt.probe(key, id, depth); hit {
		s.stats.TTHits++
		return mv, ok, nil
	}
	mv, ok, err := s.search(id, depth)
	if err != nil {
		return Move{}, false, err
	}
	s.tt.store(key, id, depth, mv, ok)
	return mv, ok, nil
}

func (s *Searcher) search(id CellState, depth int) (Move, bool, error) {
	moves, err := s.board.LegalMoves(id)
	if err != nil {
		return Move{}, false, err
	}
	if len(moves) == 0 {
		return Move{}, false, nil
	}
	if depth == 1 {
		return s.bestLeaf(moves)
	}

	var best Move
	found := false
	for _, m := range moves {
		forced := false
		err := s.withMove(m, func() error {
			if isForcedWin(s.board, m) {
				forced = true
				return nil
			}
			reply, ok, err := s.negamax(Opponent(id), depth-1)
			if err != nil {
				return err
			}
			// 对手无棋可走：局面已终结，按和棋计分
			score := DrawScore
			if ok {
				score = -reply.Value
			}
			if !found || score > best.Value {
				best = m
				best.Value = score
				found = true
			}
			return nil
		})
		if err != nil {
			return Move{}, false, err
		}
		if forced {
			s.stats.ForcedWins++
			m.Value = WinScore
			return m, true, nil
		}
	}
	return best, found, nil
}

// bestLeaf scores every move with Evaluate and keeps the highest; on equal
// values the move enumerated first wins.
func (s *Searcher) bestLeaf(moves []Move) (Move, bool, error) {
	for i := range moves {
		m := moves[i]
		err := s.withMove(m, func() error {
			moves[i].Value = Evaluate(s.board, m)
			s.stats.Leaves++
			return nil
		})
		if err != nil {
			return Move{}, false, err
		}
	}
	best := moves[0]
	for _, m := range moves[1:] {
		if m.Value > best.Value {
			best = m
		}
	}
	return best, true, nil
}

// withMove applies m, runs fn and undoes m on every exit path.
func (s *Searcher) withMove(m Move, fn func() error) error {
	snap, err := s.board.Apply(m)
	if err != nil {
		return fmt.Errorf("search: apply %v: %w", m, err)
	}
	s.stats.Nodes++
	defer s.board.undo(m, snap)
	return fn()
}
