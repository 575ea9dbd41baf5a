package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinate is returned for a row or column outside a grid.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidPlayerID is returned for an id outside the set valid for the call.
	ErrInvalidPlayerID = errors.New("invalid player id")
	// ErrIllegalMove is returned when the target sub-board is not active or the
	// cell is already taken.
	ErrIllegalMove = errors.New("illegal move")
	// ErrMalformedState is returned by ImportState for bad cardinality or ids.
	ErrMalformedState = errors.New("malformed state")
)

func checkPlayer(id CellState) error {
	if !id.IsPlayer() {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerID, int(id))
	}
	return nil
}

// ErrInvalidDepth is returned for a search depth below 1.
var ErrInvalidDepth = errors.New("search depth must be at least 1")
