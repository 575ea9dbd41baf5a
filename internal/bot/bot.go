// Package bot drives the engine over the line-based competition protocol:
// "settings" and "update game" lines set up the position and every
// "action move <ms>" is answered with one "place_move <col> <row>" line.
package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"uttt_go/internal/codec"
	"uttt_go/internal/game"
)

// Options configures a Bot.
type Options struct {
	MaxDepth int
	MoveTime time.Duration // upper bound per move; the timebank may shrink it
	Logger   zerolog.Logger
}

// Bot holds the protocol state between lines.
type Bot struct {
	opts   Options
	log    zerolog.Logger
	engine *game.Engine

	id         game.CellState
	field      string
	macroboard string
	round      int
	move       int
}

// New returns a bot that plays PlayerA until told otherwise.
func New(opts Options) *Bot {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}
	e := game.NewEngine()
	e.Searcher().WithLogger(opts.Logger)
	return &Bot{
		opts:   opts,
		log:    opts.Logger,
		engine: e,
		id:     game.PlayerA,
	}
}

// ID is the player the bot moves for.
func (b *Bot) ID() game.CellState {
	return b.id
}

// Run reads commands from r until EOF or ctx is done and writes answers to w.
// Bad input lines are logged and skipped.
func (b *Bot) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	out := bufio.NewWriter(w)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		reply, err := b.Handle(ctx, sc.Text())
		if err != nil {
			b.log.Error().Err(err).Str("line", sc.Text()).Msg("bad command")
			continue
		}
		if reply == "" {
			continue
		}
		if _, err := fmt.Fprintln(out, reply); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("flush reply: %w", err)
		}
	}
	return sc.Err()
}

// Handle processes one line and returns the reply, if any.
func (b *Bot) Handle(ctx context.Context, line string) (string, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return "", nil
	}
	switch f[0] {
	case "settings":
		return "", b.settings(f[1:])
	case "update":
		return "", b.update(f[1:])
	case "action":
		if len(f) < 2 || f[1] != "move" {
			return "", fmt.Errorf("unknown action %q", line)
		}
		budget := b.opts.MoveTime
		if len(f) > 2 {
			if ms, err := strconv.Atoi(f[2]); err == nil && ms > 0 {
				// 剩余时间不足时只用一半
				if bank := time.Duration(ms) * time.Millisecond / 2; bank < budget {
					budget = bank
				}
			}
		}
		return b.act(ctx, budget)
	}
	b.log.Debug().Str("line", line).Msg("ignored")
	return "", nil
}

func (b *Bot) settings(f []string) error {
	if len(f) < 2 {
		return fmt.Errorf("settings: missing value")
	}
	if f[0] != "your_botid" {
		return nil
	}
	n, err := strconv.Atoi(f[1])
	if err != nil {
		return fmt.Errorf("settings your_botid: %w", err)
	}
	id := game.CellState(n)
	if !id.IsPlayer() {
		return fmt.Errorf("settings your_botid: %w: %d", game.ErrInvalidPlayerID, n)
	}
	b.id = id
	b.log.Info().Int("botid", n).Msg("bot id set")
	return nil
}

func (b *Bot) update(f []string) error {
	if len(f) < 3 || f[0] != "game" {
		return nil
	}
	switch f[1] {
	case "field":
		b.field = f[2]
	case "macroboard":
		b.macroboard = f[2]
	case "round":
		b.round, _ = strconv.Atoi(f[2])
	case "move":
		b.move, _ = strconv.Atoi(f[2])
	}
	return nil
}

func (b *Bot) act(ctx context.Context, budget time.Duration) (string, error) {
	if b.field == "" || b.macroboard == "" {
		return "", fmt.Errorf("action before field and macroboard")
	}
	cells, err := codec.ParseField(b.field)
	if err != nil {
		return "", err
	}
	statuses, err := codec.ParseMacroboard(b.macroboard)
	if err != nil {
		return "", err
	}
	if err := b.engine.ImportState(cells, statuses); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()
	s := b.engine.Searcher()
	mv, ok, err := s.IterativeDeepening(ctx, b.id, b.opts.MaxDepth)
	if err != nil {
		return "", err
	}
	st := s.Stats()
	if !ok {
		b.log.Warn().Int("round", b.round).Msg("no available moves")
		return "", nil
	}
	row, col := mv.Absolute()
	b.log.Info().
		Int("round", b.round).
		Int("move", b.move).
		Int("depth", st.Depth).
		Int("nodes", st.Nodes).
		Int("value", mv.Value).
		Dur("elapsed", st.Elapsed).
		Msg("move chosen")
	return codec.FormatMove(row, col), nil
}
