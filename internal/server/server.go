// Package server answers move queries over a websocket. Each text frame is a
// JSON Request and gets exactly one JSON Response.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"uttt_go/internal/codec"
	"uttt_go/internal/game"
)

const maxMessageSize = 8 * 1024

// Request is a client message. Type is "hello" or "move".
type Request struct {
	Type       string `json:"type"`
	ID         string `json:"id,omitempty"` // echoed back
	Field      string `json:"field,omitempty"`
	Macroboard string `json:"macroboard,omitempty"`
	Player     int    `json:"player,omitempty"`
	Depth      int    `json:"depth,omitempty"`
}

// Response is a server message. Type is "hello", "move" or "error".
type Response struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Session string `json:"session,omitempty"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	OK      bool   `json:"ok"`
	Value   int    `json:"value,omitempty"`
	Depth   int    `json:"depth,omitempty"`
	Nodes   int    `json:"nodes,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Options configures a Server.
type Options struct {
	MaxDepth int           // requests asking for more are clamped
	MoveTime time.Duration // per-request search budget
	Logger   zerolog.Logger
}

// Server is an http.Handler serving the move service on /ws.
type Server struct {
	opts     Options
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// New returns a server.
func New(opts Options) *Server {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}
	return &Server{
		opts: opts,
		log:  opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the routes: /ws for the socket and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	session := uuid.New().String()
	log := s.log.With().Str("session", session).Str("remote", r.RemoteAddr).Logger()
	log.Info().Msg("client connected")

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("read error")
			}
			break
		}
		resp := s.Handle(r.Context(), session, req)
		if resp.Type == "error" {
			log.Debug().Str("error", resp.Error).Msg("request rejected")
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn().Err(err).Msg("write error")
			break
		}
	}
	log.Info().Msg("client disconnected")
}

// Handle answers one request. Failures become "error" responses.
func (s *Server) Handle(ctx context.Context, session string, req Request) Response {
	switch req.Type {
	case "hello":
		return Response{Type: "hello", ID: req.ID, Session: session, OK: true}
	case "move":
		resp, err := s.move(ctx, req)
		if err != nil {
			return Response{Type: "error", ID: req.ID, Error: err.Error()}
		}
		return resp
	}
	return Response{Type: "error", ID: req.ID, Error: fmt.Sprintf("unknown request type %q", req.Type)}
}

func (s *Server) move(ctx context.Context, req Request) (Response, error) {
	player := game.CellState(req.Player)
	if !player.IsPlayer() {
		return Response{}, fmt.Errorf("%w: %d", game.ErrInvalidPlayerID, req.Player)
	}
	depth := req.Depth
	if depth <= 0 || depth > s.opts.MaxDepth {
		depth = s.opts.MaxDepth
	}
	sb, err := codec.Decode(req.Field, req.Macroboard)
	if err != nil {
		return Response{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.MoveTime)
	defer cancel()
	searcher := game.NewSearcher(sb).WithLogger(s.log)
	mv, ok, err := searcher.IterativeDeepening(ctx, player, depth)
	if err != nil {
		return Response{}, err
	}
	st := searcher.Stats()
	resp := Response{Type: "move", ID: req.ID, OK: ok, Depth: st.Depth, Nodes: st.Nodes}
	if ok {
		resp.Row, resp.Col = mv.Absolute()
		resp.Value = mv.Value
	}
	return resp, nil
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
