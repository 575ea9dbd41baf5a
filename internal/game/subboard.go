package game

import (
	"fmt"
)

// Status is the decidability state of a sub-board. The numeric values match
// the external macroboard encoding.
type Status int

const (
	Active   Status = -1
	Inactive Status = 0
	WonByA   Status = 1
	WonByB   Status = 2
)

// WonBy returns the won status for player p.
func WonBy(p CellState) Status {
	switch p {
	case PlayerA:
		return WonByA
	case PlayerB:
		return WonByB
	}
	return Inactive
}

// Owner maps a won status to its player; Active and Inactive map to Empty.
func (s Status) Owner() CellState {
	switch s {
	case WonByA:
		return PlayerA
	case WonByB:
		return PlayerB
	}
	return Empty
}

// IsWon reports whether the sub-board has been decided by a win.
func (s Status) IsWon() bool {
	return s == WonByA || s == WonByB
}

func (s Status) valid() bool {
	return s >= Active && s <= WonByB
}

func (s Status) String() string {
	switch s {
	case Active:
		return "ACTIVE"
	case Inactive:
		return "INACTIVE"
	case WonByA:
		return "WON_BY(X)"
	case WonByB:
		return "WON_BY(O)"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// SubBoard is one playable 3×3 grid plus its status.
type SubBoard struct {
	Grid
	status Status
}

// Status returns the current status. Only SuperBoard changes it besides Play.
func (b *SubBoard) Status() Status {
	return b.status
}

// Play puts id at (r, c). A winning move marks the board WonBy(id); any other
// move marks it Inactive even if empty cells remain, and the super-board's
// propagation step decides whether it is reopened.
func (b *SubBoard) Play(r, c int, id CellState) error {
	if err := checkPlayer(id); err != nil {
		return err
	}
	if !inBounds(r, c) {
		return coordError(r, c)
	}
	if b.status != Active {
		return fmt.Errorf("%w: sub-board is %v", ErrIllegalMove, b.status)
	}
	if b.cells[r][c] != Empty {
		return fmt.Errorf("%w: cell (%d,%d) taken by %v", ErrIllegalMove, r, c, b.cells[r][c])
	}

	b.cells[r][c] = id
	if completes(b, r, c, id) {
		b.status = WonBy(id)
	} else {
		b.status = Inactive
	}
	return nil
}
