package board

// Dim is the number of rows and columns on an Othello board.
const Dim = 8

// NumSquares is the total number of squares.
const NumSquares = Dim * Dim

// Board is an 8x8 Othello board. It is a plain array so that copying a
// board is a value assignment; the search relies on this to give every
// explored node its own private board.
type Board [Dim][Dim]Color

// A direction is a (row, column) step along one of the eight rays.
type direction struct {
	dr, dc int
}

// Ray order: N, S, W, E, NW, NE, SW, SE.
var directions = [8]direction{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// NewBoard returns the standard four-disc opening position. Dark moves first.
func NewBoard() *Board {
	b := &Board{}
	b[3][3] = Light
	b[3][4] = Dark
	b[4][3] = Dark
	b[4][4] = Light
	return b
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Clear empties every square.
func (b *Board) Clear() {
	*b = Board{}
}

// InBounds reports whether (r, c) is on the board.
func InBounds(r, c int) bool {
	return r >= 0 && r < Dim && c >= 0 && c < Dim
}

// At returns the color at (r, c).
func (b *Board) At(r, c int) Color {
	return b[r][c]
}

// LegalFlips returns the discs that would be flipped if side placed a disc
// at (r, c). An empty result means the move is illegal.
func (b *Board) LegalFlips(r, c int, side Color) FlipSet {
	if !InBounds(r, c) || b[r][c] != Empty || !side.IsSide() {
		return nil
	}
	opp := side.Opponent()
	var flips FlipSet
	for _, d := range directions {
		var run FlipSet
		cr, cc := r+d.dr, c+d.dc
		for InBounds(cr, cc) && b[cr][cc] == opp {
			run = append(run, Square{cr, cc})
			cr += d.dr
			cc += d.dc
		}
		if len(run) > 0 && InBounds(cr, cc) && b[cr][cc] == side {
			flips = append(flips, run...)
		}
	}
	return flips
}

// hasFlips is LegalFlips without the allocation.
func (b *Board) hasFlips(r, c int, side Color) bool {
	if b[r][c] != Empty {
		return false
	}
	opp := side.Opponent()
	for _, d := range directions {
		cr, cc := r+d.dr, c+d.dc
		n := 0
		for InBounds(cr, cc) && b[cr][cc] == opp {
			cr += d.dr
			cc += d.dc
			n++
		}
		if n > 0 && InBounds(cr, cc) && b[cr][cc] == side {
			return true
		}
	}
	return false
}

// IsLegal reports whether side may place a disc at (r, c).
func (b *Board) IsLegal(r, c int, side Color) bool {
	if !InBounds(r, c) || !side.IsSide() {
		return false
	}
	return b.hasFlips(r, c, side)
}

// Flip places a disc for side at (r, c) and flips the captured discs. It
// returns the flipped squares, or nil (leaving the board untouched) if the
// move is illegal.
func (b *Board) Flip(r, c int, side Color) FlipSet {
	flips := b.LegalFlips(r, c, side)
	if len(flips) == 0 {
		return nil
	}
	b[r][c] = side
	for _, sq := range flips {
		b[sq.Row][sq.Col] = side
	}
	return flips
}

// ApplyMove is the only mutator of board state used by play. It returns
// false, leaving the board unchanged, if the move flips nothing.
func (b *Board) ApplyMove(r, c int, side Color) bool {
	return b.Flip(r, c, side) != nil
}

// HasLegalMove reports whether side has at least one legal placement.
func (b *Board) HasLegalMove(side Color) bool {
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if b.hasFlips(r, c, side) {
				return true
			}
		}
	}
	return false
}

// IsTerminal is true iff neither side can move. A full board is one such
// case but not the only one.
func (b *Board) IsTerminal() bool {
	return !b.HasLegalMove(Dark) && !b.HasLegalMove(Light)
}

// Count returns the number of discs of the given color.
func (b *Board) Count(color Color) int {
	n := 0
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			if b[r][c] == color {
				n++
			}
		}
	}
	return n
}

// Score returns the disc counts for Dark and Light.
func (b *Board) Score() (dark, light int) {
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			switch b[r][c] {
			case Dark:
				dark++
			case Light:
				light++
			}
		}
	}
	return dark, light
}

// Discs returns the number of discs on the board.
func (b *Board) Discs() int {
	d, l := b.Score()
	return d + l
}

// Empties returns the number of empty squares.
func (b *Board) Empties() int {
	return NumSquares - b.Discs()
}

// DiscDifferential returns side's disc count minus the opponent's.
func (b *Board) DiscDifferential(side Color) int {
	d, l := b.Score()
	if side == Dark {
		return d - l
	}
	return l - d
}
