package game

import (
	"errors"
	"fmt"
)

// ErrGameOver is returned by MakeMove once the game has ended.
var ErrGameOver = errors.New("game is over")

// GameState 包含整局游戏的状态：棋盘、当前玩家、历史着法和胜负
type GameState struct {
	Board         *SuperBoard
	CurrentPlayer CellState // PlayerA 或 PlayerB
	History       []Move
	GameOver      bool
	Winner        CellState // PlayerA、PlayerB，或 Empty 表示平局/未结束
}

// NewGameState returns a fresh game with PlayerA to move.
func NewGameState() *GameState {
	return &GameState{
		Board:         NewSuperBoard(),
		CurrentPlayer: PlayerA,
	}
}

// MakeMove plays m for the current player, then switches sides or ends the
// game. m.Player is overwritten with the current player.
func (gs *GameState) MakeMove(m Move) error {
	if gs.GameOver {
		return ErrGameOver
	}
	m.Player = gs.CurrentPlayer
	if _, err := gs.Board.Apply(m); err != nil {
		return err
	}
	gs.History = append(gs.History, m)
	gs.checkGameOver()
	if !gs.GameOver {
		gs.CurrentPlayer = Opponent(gs.CurrentPlayer)
	}
	return nil
}

// PlayAt plays the current player at absolute 9×9 coordinates.
func (gs *GameState) PlayAt(row, col int) error {
	m, err := MoveAt(row, col, gs.CurrentPlayer)
	if err != nil {
		return err
	}
	return gs.MakeMove(m)
}

// checkGameOver 判断是否结束：宏观三连，或下一手无合法走法（平局）
func (gs *GameState) checkGameOver() {
	if w := gs.Board.Winner(); w != Empty {
		gs.GameOver = true
		gs.Winner = w
		return
	}
	next, _ := gs.Board.LegalMoves(Opponent(gs.CurrentPlayer))
	if len(next) == 0 {
		gs.GameOver = true
		gs.Winner = Empty
	}
}

// Result describes the outcome from PlayerA's point of view: 1, -1 or 0.
func (gs *GameState) Result() int {
	switch gs.Winner {
	case PlayerA:
		return 1
	case PlayerB:
		return -1
	}
	return 0
}

// String summarises the game for logs.
func (gs *GameState) String() string {
	status := "in progress"
	if gs.GameOver {
		status = "draw"
		if gs.Winner != Empty {
			status = fmt.Sprintf("won by %v", gs.Winner)
		}
	}
	return fmt.Sprintf("ply %d, %v to move, %s", len(gs.History), gs.CurrentPlayer, status)
}

// Reset 重置到初始局面
func (gs *GameState) Reset() {
	*gs = *NewGameState()
}
