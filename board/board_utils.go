package board

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBadPosition = errors.New("position must be 8 rows of 8 squares separated by /")
)

func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("\n   ")
	for c := 0; c < Dim; c++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+c))
	}
	sb.WriteString("\n")
	sb.WriteString("  +" + strings.Repeat("-", Dim*2) + "\n")
	for r := 0; r < Dim; r++ {
		sb.WriteString(fmt.Sprintf("%d |", r+1))
		for c := 0; c < Dim; c++ {
			sb.WriteString(b[r][c].displayString())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToPositionString writes the board as 8 slash-separated rows, top row
// first, using X for dark, O for light and . for empty.
func (b *Board) ToPositionString() string {
	rows := make([]string, Dim)
	for r := 0; r < Dim; r++ {
		row := make([]byte, Dim)
		for c := 0; c < Dim; c++ {
			row[c] = b[r][c].Symbol()
		}
		rows[r] = string(row)
	}
	return strings.Join(rows, "/")
}

// ParsePosition reads a board written by ToPositionString. Whitespace
// around rows is ignored.
func ParsePosition(pos string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(pos), "/")
	if len(rows) != Dim {
		return nil, ErrBadPosition
	}
	b := &Board{}
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Dim {
			return nil, fmt.Errorf("row %d: %w", r+1, ErrBadPosition)
		}
		for c := 0; c < Dim; c++ {
			color, ok := ColorFromSymbol(row[c])
			if !ok {
				return nil, fmt.Errorf("row %d: unexpected character %q", r+1, row[c])
			}
			b[r][c] = color
		}
	}
	return b, nil
}

// MustParsePosition is ParsePosition for fixtures known to be valid.
func MustParsePosition(pos string) *Board {
	b, err := ParsePosition(pos)
	if err != nil {
		panic(err)
	}
	return b
}
