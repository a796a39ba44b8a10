package game

import (
	"fmt"
	"strings"

	"github.com/othellolab/othello/board"
)

func addText(lines []string, row int, hpad int, text string) {
	if row >= len(lines) {
		return
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
}

func sideString(side board.Color) string {
	return fmt.Sprintf("%v (%c)", side, side.Symbol())
}

// ToDisplayText turns the current state of the game into a displayable
// string: the board with a status panel to its right.
func (g *Game) ToDisplayText() string {
	bt := g.board.ToDisplayText()
	bts := strings.Split(bt, "\n")
	hpadding := 4
	vpadding := 3

	dark, light := g.board.Score()
	darkMarker, lightMarker := "  ", "  "
	if g.playing == StatePlaying {
		if g.onturn == board.Dark {
			darkMarker = "->"
		} else {
			lightMarker = "->"
		}
	}
	addText(bts, vpadding, hpadding, fmt.Sprintf("%s %-14s %2d", darkMarker, sideString(board.Dark), dark))
	addText(bts, vpadding+1, hpadding, fmt.Sprintf("%s %-14s %2d", lightMarker, sideString(board.Light), light))
	addText(bts, vpadding+3, hpadding, fmt.Sprintf("Turn %d", g.turnnum))

	if last := g.LastMove(); last != nil {
		addText(bts, vpadding+4, hpadding, "Last: "+last.String())
	}
	if g.playing == StateGameOver {
		addText(bts, vpadding+6, hpadding, "Game is over. "+g.ResultString())
	}
	return strings.Join(bts, "\n")
}

// ResultString describes the final result.
func (g *Game) ResultString() string {
	dark, light := g.board.Score()
	switch g.Winner() {
	case board.Dark:
		return fmt.Sprintf("Dark wins %d-%d.", dark, light)
	case board.Light:
		return fmt.Sprintf("Light wins %d-%d.", light, dark)
	}
	return fmt.Sprintf("Tie %d-%d.", dark, light)
}
