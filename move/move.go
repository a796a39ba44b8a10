package move

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/othellolab/othello/board"
)

// MoveType is a type of move: a disc placement or a pass.
type MoveType uint8

const (
	MoveTypePlace MoveType = iota
	MoveTypePass
)

var (
	ErrBadCoords = errors.New("coordinates must be a column a-h followed by a row 1-8")
)

// Move is a disc placement by one side. Passes only appear in game history;
// the search never generates them.
type Move struct {
	action MoveType
	row    int
	col    int
	side   board.Color
	// estimatedValue is only used for move ordering during search.
	estimatedValue int
}

var reCoords *regexp.Regexp

func init() {
	reCoords = regexp.MustCompile(`^(?P<col>[A-Ha-h])(?P<row>[1-8])$`)
}

// NewPlacementMove creates a placement for side at (row, col).
func NewPlacementMove(row, col int, side board.Color) *Move {
	return &Move{
		action: MoveTypePlace,
		row:    row,
		col:    col,
		side:   side,
	}
}

// NewPassMove records that side had no legal placement.
func NewPassMove(side board.Color) *Move {
	return &Move{
		action: MoveTypePass,
		side:   side,
	}
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlace:
		return fmt.Sprintf("<action: place %v side: %v>", m.BoardCoords(), m.side)
	case MoveTypePass:
		return fmt.Sprintf("<action: pass side: %v>", m.side)
	}
	return "<Unhandled move>"
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	if m == nil {
		return "(none)"
	}
	switch m.action {
	case MoveTypePlace:
		return m.BoardCoords()
	case MoveTypePass:
		return "(Pass)"
	}
	return "UNHANDLED"
}

func (m *Move) Action() MoveType {
	return m.action
}

func (m *Move) IsPass() bool {
	return m.action == MoveTypePass
}

func (m *Move) Row() int {
	return m.row
}

func (m *Move) Col() int {
	return m.col
}

func (m *Move) Side() board.Color {
	return m.side
}

// Square returns the placement square. It is meaningless for a pass.
func (m *Move) Square() board.Square {
	return board.Square{Row: m.row, Col: m.col}
}

func (m *Move) BoardCoords() string {
	return ToBoardGameCoords(m.row, m.col)
}

// Equals compares two moves. The side is not compared, so a move generated
// for analysis matches the same placement made in a game.
func (m *Move) Equals(o *Move) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.action != o.action {
		return false
	}
	if m.action == MoveTypePass {
		return true
	}
	return m.row == o.row && m.col == o.col
}

func (m *Move) EstimatedValue() int {
	return m.estimatedValue
}

func (m *Move) SetEstimatedValue(v int) {
	m.estimatedValue = v
}

func (m *Move) AddEstimatedValue(v int) {
	m.estimatedValue += v
}

// ToBoardGameCoords converts a row and column to a coordinate like c4:
// column letter first, then the 1-based row.
func ToBoardGameCoords(row int, col int) string {
	return string(rune('a'+col)) + strconv.Itoa(row+1)
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords above.
// Letters are accepted in either case.
func FromBoardGameCoords(c string) (int, int, error) {
	matches := reCoords.FindStringSubmatch(strings.TrimSpace(c))
	if len(matches) != 3 {
		return 0, 0, fmt.Errorf("%q: %w", c, ErrBadCoords)
	}
	row, _ := strconv.Atoi(matches[2])
	col := int(strings.ToLower(matches[1])[0] - 'a')
	return row - 1, col, nil
}
