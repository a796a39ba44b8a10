package automatic

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"

	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/stats"
)

var (
	ErrBadLogFile = errors.New("not an autoplay log")
)

// Summary accumulates results over many games. Differentials are from
// Dark's point of view.
type Summary struct {
	DarkName  string
	LightName string
	Games     int
	DarkWins  int
	LightWins int
	Ties      int

	Differential stats.Statistic
	diffs        []float64
}

func NewSummary(darkName, lightName string) *Summary {
	return &Summary{DarkName: darkName, LightName: lightName}
}

func (s *Summary) Add(res *GameResult) {
	s.Games++
	switch res.Winner {
	case board.Dark:
		s.DarkWins++
	case board.Light:
		s.LightWins++
	default:
		s.Ties++
	}
	d := float64(res.Differential())
	s.Differential.Push(d)
	s.diffs = append(s.diffs, d)
}

// DarkWinRate counts a tie as half a win.
func (s *Summary) DarkWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return (float64(s.DarkWins) + 0.5*float64(s.Ties)) / float64(s.Games)
}

// Histogram is the distribution of final disc differentials.
func (s *Summary) Histogram() histogram.Histogram {
	return histogram.Hist(15, s.diffs)
}

func (s *Summary) String() string {
	var sb strings.Builder
	pct := func(n int) float64 {
		if s.Games == 0 {
			return 0
		}
		return 100.0 * float64(n) / float64(s.Games)
	}
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	fmt.Fprintf(&sb, "Dark (%v) wins: %d (%.3f%%)\n", s.DarkName, s.DarkWins, pct(s.DarkWins))
	fmt.Fprintf(&sb, "Light (%v) wins: %d (%.3f%%)\n", s.LightName, s.LightWins, pct(s.LightWins))
	fmt.Fprintf(&sb, "Ties: %d (%.3f%%)\n", s.Ties, pct(s.Ties))
	lo95, hi95 := s.Differential.ConfidenceInterval(95)
	fmt.Fprintf(&sb, "Dark disc differential: mean %.3f  stdev %.3f  95%% CI [%.3f, %.3f]\n",
		s.Differential.Mean(), s.Differential.Stdev(), lo95, hi95)
	if s.Games > 0 {
		sb.WriteString("\n")
		histogram.Fprint(&sb, s.Histogram(), histogram.Linear(40))
	}
	return sb.String()
}

// AnalyzeLogFile reads a per-move log written by CompVsComp and
// rebuilds the summary from the last row of every game.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	r := csv.NewReader(file)

	// Record looks like:
	// gameID,turn,side,player,move,score,depth,nodes,dark,light
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	if len(header) != 10 || header[0] != "gameID" {
		return nil, ErrBadLogFile
	}

	var order []string
	last := map[string]*GameResult{}
	names := map[string]string{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		dark, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, err
		}
		light, err := strconv.Atoi(record[9])
		if err != nil {
			return nil, err
		}
		turn, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		names[record[2]] = record[3]
		id := record[0]
		if _, ok := last[id]; !ok {
			order = append(order, id)
		}
		last[id] = &GameResult{GameID: id, Dark: dark, Light: light, Turns: turn}
	}

	s := NewSummary(names[board.Dark.String()], names[board.Light.String()])
	for _, res := range lo.Map(order, func(id string, _ int) *GameResult { return last[id] }) {
		switch {
		case res.Dark > res.Light:
			res.Winner = board.Dark
		case res.Light > res.Dark:
			res.Winner = board.Light
		default:
			res.Winner = board.Empty
		}
		s.Add(res)
	}
	return s, nil
}
