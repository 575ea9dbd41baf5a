// Package codec converts boards and moves to and from the comma-separated
// text used on the bot line protocol and in the game archive.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	"uttt_go/internal/game"
)

// MovePrefix starts every move line a bot writes.
const MovePrefix = "place_move"

// ParseField parses 81 comma-separated cell ids, row by row over the 9×9 field.
func ParseField(s string) ([]int, error) {
	return parseInts(s, game.FieldCells, "field")
}

// ParseMacroboard parses 9 comma-separated sub-board statuses.
func ParseMacroboard(s string) ([]int, error) {
	return parseInts(s, game.MacroCells, "macroboard")
}

func parseInts(s string, want int, what string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != want {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d", game.ErrMalformedState, what, len(parts), want)
	}
	out := make([]int, want)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %s entry %d: %v", game.ErrMalformedState, what, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// FormatInts joins ids with commas, the inverse of ParseField/ParseMacroboard.
func FormatInts(v []int) string {
	var b strings.Builder
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// Decode builds a board from a field string and a macroboard string.
func Decode(field, macroboard string) (*game.SuperBoard, error) {
	cells, err := ParseField(field)
	if err != nil {
		return nil, err
	}
	statuses, err := ParseMacroboard(macroboard)
	if err != nil {
		return nil, err
	}
	return game.ImportState(cells, statuses)
}

// Encode is the inverse of Decode.
func Encode(sb *game.SuperBoard) (field, macroboard string) {
	cells, statuses := sb.ExportState()
	return FormatInts(cells), FormatInts(statuses)
}

// FormatMove renders an absolute cell as "place_move <col> <row>".
func FormatMove(row, col int) string {
	return fmt.Sprintf("%s %d %d", MovePrefix, col, row)
}

// ParseMove reads a line written by FormatMove.
func ParseMove(s string) (row, col int, err error) {
	f := strings.Fields(s)
	if len(f) != 3 || f[0] != MovePrefix {
		return 0, 0, fmt.Errorf("%w: move %q", game.ErrMalformedState, s)
	}
	if col, err = strconv.Atoi(f[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: move column %q", game.ErrMalformedState, f[1])
	}
	if row, err = strconv.Atoi(f[2]); err != nil {
		return 0, 0, fmt.Errorf("%w: move row %q", game.ErrMalformedState, f[2])
	}
	if row < 0 || row >= game.FieldRows || col < 0 || col >= game.FieldCols {
		return 0, 0, fmt.Errorf("%w: (%d,%d)", game.ErrInvalidCoordinate, row, col)
	}
	return row, col, nil
}
