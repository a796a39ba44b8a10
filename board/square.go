package board

import (
	"fmt"
	"os"
)

var (
	ColorSupport = os.Getenv("OTHELLO_DISABLE_COLOR") != "on"
)

// Color is the content of a square: empty, or a disc of one of the two
// sides. Dark and Light double as the two sides of the game.
type Color uint8

const (
	Empty Color = iota
	Dark
	Light
)

// Opponent returns the other side. Empty has no opponent and maps to itself.
func (c Color) Opponent() Color {
	switch c {
	case Dark:
		return Light
	case Light:
		return Dark
	}
	return Empty
}

// IsSide is true for Dark and Light.
func (c Color) IsSide() bool {
	return c == Dark || c == Light
}

func (c Color) String() string {
	switch c {
	case Dark:
		return "dark"
	case Light:
		return "light"
	}
	return "empty"
}

// Symbol is the single-character form used in position strings.
func (c Color) Symbol() byte {
	switch c {
	case Dark:
		return 'X'
	case Light:
		return 'O'
	}
	return '.'
}

// ColorFromSymbol is the inverse of Symbol.
func ColorFromSymbol(ch byte) (Color, bool) {
	switch ch {
	case 'X', 'x', 'B', 'b':
		return Dark, true
	case 'O', 'o', 'W', 'w':
		return Light, true
	case '.', '-', '_':
		return Empty, true
	}
	return Empty, false
}

func (c Color) displayString() string {
	ch := string(c.Symbol())
	if !ColorSupport {
		return ch
	}
	switch c {
	case Dark:
		return fmt.Sprintf("\033[36m%s\033[0m", ch)
	case Light:
		return fmt.Sprintf("\033[33m%s\033[0m", ch)
	}
	return ch
}

// A Square is a (row, column) location on the board.
type Square struct {
	Row int
	Col int
}

func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Row+1)
}

// Index is the row-major index of the square, 0..63.
func (s Square) Index() int {
	return s.Row*Dim + s.Col
}

// IsCorner reports whether s is one of the four corners.
func (s Square) IsCorner() bool {
	return (s.Row == 0 || s.Row == Dim-1) && (s.Col == 0 || s.Col == Dim-1)
}

// IsXSquare reports whether s is diagonally adjacent to a corner. Taking one
// of these while the corner is open usually hands the corner to the
// opponent.
func (s Square) IsXSquare() bool {
	return (s.Row == 1 || s.Row == Dim-2) && (s.Col == 1 || s.Col == Dim-2)
}

// IsEdge reports whether s lies on the outer ring (corners included).
func (s Square) IsEdge() bool {
	return s.Row == 0 || s.Row == Dim-1 || s.Col == 0 || s.Col == Dim-1
}

// Corners lists the four corner squares.
var Corners = [4]Square{{0, 0}, {0, Dim - 1}, {Dim - 1, 0}, {Dim - 1, Dim - 1}}

// FlipSet is the ordered list of discs captured by a placement.
type FlipSet []Square
