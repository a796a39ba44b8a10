package movegen

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/testhelpers"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func TestGenOpening(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	moves := GenAll(b, board.Dark)
	is.Equal(Squares(moves), []board.Square{{Row: 2, Col: 3}, {Row: 3, Col: 2}, {Row: 4, Col: 5}, {Row: 5, Col: 4}})
	is.Equal(Mobility(b, board.Dark), 4)
	is.True(HasMove(b, board.Dark))

	light := GenAll(b, board.Light)
	is.Equal(Squares(light), []board.Square{{Row: 2, Col: 4}, {Row: 3, Col: 5}, {Row: 4, Col: 2}, {Row: 5, Col: 3}})
}

func TestGenForcedPass(t *testing.T) {
	is := is.New(t)
	b := board.MustParsePosition("OX....../......../......../......../......../......../......../........")
	is.Equal(len(GenAll(b, board.Dark)), 0)
	is.True(!HasMove(b, board.Dark))
	is.Equal(Mobility(b, board.Dark), 0)
	is.Equal(Squares(GenAll(b, board.Light)), []board.Square{{Row: 0, Col: 2}})
	is.Equal(len(GenAll(b, board.Empty)), 0)
}

func TestFindMove(t *testing.T) {
	is := is.New(t)
	moves := GenAll(board.NewBoard(), board.Dark)
	m := FindMove(moves, 3, 2)
	is.True(m != nil)
	is.Equal(m.BoardCoords(), "c4")
	is.True(FindMove(moves, 0, 0) == nil)
}

// Play random games and check that every generated move is legal, applies
// cleanly, and grows the disc count by one plus the number of flips.
func TestRandomPlayoutInvariants(t *testing.T) {
	is := is.New(t)
	for seed := byte(1); seed <= 20; seed++ {
		rng := testhelpers.RNG(seed)
		b := board.NewBoard()
		side := board.Dark
		for !b.IsTerminal() {
			moves := GenAll(b, side)
			is.Equal(len(moves) > 0, HasMove(b, side))
			is.Equal(len(moves), Mobility(b, side))
			if len(moves) == 0 {
				side = side.Opponent()
				continue
			}
			for i := 1; i < len(moves); i++ {
				prev, cur := moves[i-1].Square(), moves[i].Square()
				is.True(prev.Index() < cur.Index())
			}
			m := moves[rng.Intn(len(moves))]
			flips := b.LegalFlips(m.Row(), m.Col(), side)
			is.True(len(flips) > 0)
			mine := b.Count(side)
			before := b.Discs()
			is.True(b.ApplyMove(m.Row(), m.Col(), side))
			is.Equal(b.Discs(), before+1)
			is.Equal(b.Count(side), mine+1+len(flips))
			side = side.Opponent()
		}
		is.True(!HasMove(b, board.Dark))
		is.True(!HasMove(b, board.Light))
	}
}
