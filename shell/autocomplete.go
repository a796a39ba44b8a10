package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/othellolab/othello/game"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/move"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games", "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var sideValues = []string{"dark", "light"}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Args: []string{"dark", "light", "both", "none"},
	},
	"eval": {
		Args: sideValues,
	},
	"setboard": {
		Args: sideValues,
	},
	"set": {
		Args: shellOptions,
	},
	"setconfig": {
		Args: shellOptions,
	},
	"autoplay": {
		Options: []string{"-games", "-threads", "-dark", "-light", "-darkplies",
			"-lightplies", "-opening", "-file", "-seeds"},
		Args: []string{"stop", "analyze"},
	},
	"help": {
		Args: []string{"set", "setboard", "autoplay", "script", "heuristics"},
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "show", "s", "moves", "play", "p", "ai", "eval", "search",
	"undo", "u", "setboard", "set", "setconfig", "gid", "autoplay", "script",
	"exit",
}

var boolValues = []string{"true", "false"}

func heuristicNames() []string {
	return lo.Map(heuristic.All(), func(h heuristic.Heuristic, _ int) string {
		return h.String()
	})
}

// Do implements readline.AutoCompleter. It returns the suffixes that
// complete the word under the cursor, and that word's length.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	// an empty word is being started after a trailing space
	if text == "" || strings.HasSuffix(text, " ") {
		fields = append(fields, "")
	}
	word := fields[len(fields)-1]

	var candidates []string
	if len(fields) == 1 {
		candidates = commandNames
	} else {
		candidates = c.candidates(fields[0], fields[len(fields)-2], word)
	}
	return lo.FilterMap(candidates, func(cand string, _ int) ([]rune, bool) {
		if !strings.HasPrefix(cand, word) {
			return nil, false
		}
		return []rune(cand[len(word):]), true
	}), len(word)
}

// candidates lists the words that may follow prev in a cmd command line.
func (c *ShellCompleter) candidates(cmd, prev, word string) []string {
	if strings.HasPrefix(prev, "-") {
		switch prev[1:] {
		case "dark", "light":
			return heuristicNames()
		}
		return nil
	}
	switch cmd {
	case "set", "setconfig":
		switch prev {
		case cmd:
			return shellOptions
		case "heuristic":
			return heuristicNames()
		case "ai":
			return commandMetadata["new"].Args
		case "tt", "ordering":
			return boolValues
		}
		return nil
	case "play", "p":
		return c.legalMoves()
	}
	metadata, ok := commandMetadata[cmd]
	if !ok {
		return nil
	}
	if strings.HasPrefix(word, "-") || len(metadata.Args) == 0 {
		return metadata.Options
	}
	return metadata.Args
}

func (c *ShellCompleter) legalMoves() []string {
	g := c.sc.game
	if g == nil || g.Playing() != game.StatePlaying {
		return nil
	}
	return lo.Map(g.LegalMoves(), func(m *move.Move, _ int) string {
		return m.BoardCoords()
	})
}
