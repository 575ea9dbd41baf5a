package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"uttt_go/internal/codec"
	"uttt_go/internal/game"
)

func newTestServer(t *testing.T) (*httptest.Server, *websocket.Conn) {
	t.Helper()
	srv := New(Options{MaxDepth: 3, MoveTime: time.Second, Logger: zerolog.Nop()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return ts, conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req Request) Response {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestWebsocketSession(t *testing.T) {
	_, conn := newTestServer(t)

	hello := roundTrip(t, conn, Request{Type: "hello", ID: "1"})
	if hello.Type != "hello" || hello.Session == "" || hello.ID != "1" {
		t.Fatalf("hello = %+v", hello)
	}

	field, macro := codec.Encode(game.NewSuperBoard())
	mv := roundTrip(t, conn, Request{Type: "move", ID: "2", Field: field, Macroboard: macro, Player: 1, Depth: 1})
	if mv.Type != "move" || !mv.OK || mv.Row != 4 || mv.Col != 4 {
		t.Errorf("move = %+v, want centre", mv)
	}

	bad := roundTrip(t, conn, Request{Type: "move", ID: "3", Field: "0,0", Macroboard: macro, Player: 1})
	if bad.Type != "error" || bad.ID != "3" || bad.Error == "" {
		t.Errorf("malformed = %+v", bad)
	}

	unknown := roundTrip(t, conn, Request{Type: "resign"})
	if unknown.Type != "error" {
		t.Errorf("unknown = %+v", unknown)
	}
}

func TestHandleMove(t *testing.T) {
	srv := New(Options{MaxDepth: 2, MoveTime: time.Second, Logger: zerolog.Nop()})
	ctx := context.Background()
	field, _ := codec.Encode(game.NewSuperBoard())

	resp := srv.Handle(ctx, "s", Request{Type: "move", Field: field, Macroboard: "0,0,0,0,0,0,0,0,0", Player: 2})
	if resp.Type != "move" || resp.OK {
		t.Errorf("no legal move: %+v", resp)
	}

	resp = srv.Handle(ctx, "s", Request{Type: "move", Field: field, Macroboard: "-1,-1,-1,-1,-1,-1,-1,-1,-1", Player: 3})
	if resp.Type != "error" {
		t.Errorf("player 3: %+v", resp)
	}

	// 深度被限制在 MaxDepth
	resp = srv.Handle(ctx, "s", Request{Type: "move", Field: field, Macroboard: "-1,-1,-1,-1,-1,-1,-1,-1,-1", Player: 1, Depth: 9})
	if !resp.OK || resp.Depth != 2 {
		t.Errorf("clamped depth: %+v", resp)
	}
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d", res.StatusCode)
	}
}
