package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/othellolab/othello/ai/bot"
	"github.com/othellolab/othello/alphabeta"
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/game"
	"github.com/othellolab/othello/heuristic"
	"github.com/othellolab/othello/move"
	"github.com/othellolab/othello/movegen"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func parseSide(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "dark", "black", "x", "b":
		return board.Dark, nil
	case "light", "white", "o", "w":
		return board.Light, nil
	}
	return board.Empty, fmt.Errorf("%q is not a side; use dark or light", s)
}

func (sc *ShellController) aiSidesString() string {
	switch {
	case sc.aiSides[board.Dark] && sc.aiSides[board.Light]:
		return "both"
	case sc.aiSides[board.Dark]:
		return "dark"
	case sc.aiSides[board.Light]:
		return "light"
	}
	return "none"
}

func (sc *ShellController) setAISides(s string) error {
	var sides [3]bool
	switch strings.ToLower(s) {
	case "both":
		sides[board.Dark], sides[board.Light] = true, true
	case "none", "off":
	default:
		side, err := parseSide(s)
		if err != nil {
			return err
		}
		sides[side] = true
	}
	sc.aiSides = sides
	return nil
}

// options shown and changed by `set`, besides raw config keys.
var shellOptions = []string{"ai", "heuristic", "plies", "maxtime", "endgame",
	"tt", "ordering", "seed", "searchlog"}

var optionConfigKeys = map[string]string{
	"heuristic": config.ConfigDefaultHeuristic,
	"plies":     config.ConfigDefaultPlies,
	"maxtime":   config.ConfigMaxTime,
	"endgame":   config.ConfigEndgameThreshold,
	"tt":        config.ConfigTranspositionTable,
	"ordering":  config.ConfigMoveOrdering,
	"seed":      config.ConfigRandomSeed,
	"searchlog": config.ConfigSearchLog,
}

func (sc *ShellController) optionsDisplayText() string {
	var sb strings.Builder
	for _, opt := range shellOptions {
		_, val := sc.showOption(opt)
		fmt.Fprintf(&sb, "%-10s %s\n", opt, val)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) showOption(opt string) (bool, string) {
	if opt == "ai" {
		return true, sc.aiSidesString()
	}
	key, ok := optionConfigKeys[opt]
	if !ok {
		key = opt
	}
	if !sc.config.IsSet(key) {
		return false, "No such option: " + opt
	}
	return true, fmt.Sprint(sc.config.Get(key))
}

// setOption validates and applies a single option. Everything except the
// AI side selection is stored in the config, and the AI is rebuilt.
func (sc *ShellController) setOption(opt, val string) (string, error) {
	if opt == "ai" {
		if err := sc.setAISides(val); err != nil {
			return "", err
		}
		return sc.aiSidesString(), nil
	}
	key, ok := optionConfigKeys[opt]
	if !ok {
		key = opt
	}
	var setting any = val
	switch key {
	case config.ConfigDefaultHeuristic:
		h, err := heuristic.Parse(val)
		if err != nil {
			return "", err
		}
		setting = h.String()
	case config.ConfigDefaultPlies, config.ConfigEndgameThreshold, config.ConfigAutoplayThreads:
		n, err := strconv.Atoi(val)
		if err != nil {
			return "", err
		}
		if n < 0 {
			return "", fmt.Errorf("%s must not be negative", opt)
		}
		setting = n
	case config.ConfigMaxTime:
		d, err := time.ParseDuration(val)
		if err != nil {
			return "", err
		}
		setting = d.String()
	case config.ConfigTranspositionTable, config.ConfigMoveOrdering, config.ConfigDebug:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return "", err
		}
		setting = b
	case config.ConfigSearchLog:
		if err := sc.openSearchLog(val); err != nil {
			return "", err
		}
	default:
		if !sc.config.IsSet(key) {
			return "", fmt.Errorf("no such option: %s", opt)
		}
	}
	sc.config.Set(key, setting)
	if err := sc.initPlayer(); err != nil {
		return "", err
	}
	return fmt.Sprint(setting), nil
}

func (sc *ShellController) openSearchLog(path string) error {
	if sc.searchLogFile != nil {
		sc.searchLogFile.Close()
		sc.searchLogFile = nil
	}
	if path == "" || path == "off" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	sc.searchLogFile = f
	return nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return msg(sc.optionsDisplayText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		_, val := sc.showOption(opt)
		return msg(val), nil
	}
	ret, err := sc.setOption(opt, strings.Join(cmd.args[1:], " "))
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key := cmd.args[0]
	value := cmd.args[1]
	if _, err := sc.setOption(key, value); err != nil {
		return nil, err
	}
	if err := sc.config.Write(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}
	return msg(fmt.Sprintf("set config %s to %s and saved to file", key, value)), nil
}

func (sc *ShellController) gid(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.Uid()), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		if err := sc.setAISides(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	sc.game = game.NewGame()
	log.Debug().Str("gid", sc.game.Uid()).Str("ai", sc.aiSidesString()).Msg("new-game")
	return sc.afterMove(nil)
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() != game.StatePlaying {
		return msg("The game is over."), nil
	}
	coords := lo.Map(sc.game.LegalMoves(), func(m *move.Move, _ int) string {
		return m.BoardCoords()
	})
	return msg(fmt.Sprintf("Legal moves for %v: %s", sc.game.PlayerOnTurn(),
		strings.Join(coords, " "))), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <coords>, for example `play c4`")
	}
	before := len(sc.game.History())
	if _, err := sc.game.PlayCoords(cmd.args[0]); err != nil {
		return nil, err
	}
	return sc.afterMove(sc.game.History()[before:])
}

// aiMove makes the AI play for whichever side is on turn, even a side it
// does not control.
func (sc *ShellController) aiMove(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() != game.StatePlaying {
		return nil, game.ErrGameOver
	}
	var sb strings.Builder
	if err := sc.playAITurn(&sb); err != nil {
		return nil, err
	}
	resp, err := sc.afterMove(nil)
	if err != nil {
		return nil, err
	}
	return msg(sb.String() + resp.message), nil
}

func (sc *ShellController) playAITurn(sb *strings.Builder) error {
	side := sc.game.PlayerOnTurn()
	before := len(sc.game.History())
	choice, err := sc.player.ChooseMove(context.Background(), sc.game.Board(), side)
	if err != nil {
		return err
	}
	if err := sc.game.PlayMove(choice.Move); err != nil {
		return err
	}
	fmt.Fprintf(sb, "AI (%v) plays %v\n", side, choice)
	writePasses(sb, sc.game.History()[before+1:])
	return nil
}

func writePasses(sb *strings.Builder, events []game.Event) {
	for _, evt := range events {
		if evt.Move.IsPass() {
			fmt.Fprintf(sb, "%v has no legal moves and must pass.\n", evt.Side)
		}
	}
}

// afterMove reports what happened since the human's move, lets the AI
// play every turn it controls, and shows the board.
func (sc *ShellController) afterMove(events []game.Event) (*Response, error) {
	var sb strings.Builder
	if len(events) > 1 {
		writePasses(&sb, events[1:])
	}
	for sc.game.Playing() == game.StatePlaying && sc.aiSides[sc.game.PlayerOnTurn()] {
		if err := sc.playAITurn(&sb); err != nil {
			return nil, err
		}
	}
	sb.WriteString(sc.game.ToDisplayText())
	if sc.game.Playing() == game.StateGameOver {
		dark, light := sc.game.Score()
		fmt.Fprintf(&sb, "\nGame over. Dark: %d, Light: %d. %s", dark, light, sc.game.ResultString())
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	b := sc.game.Board()
	side := sc.game.PlayerOnTurn()
	if len(cmd.args) > 0 {
		var err error
		side, err = parseSide(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Static evaluation for %v:\n", side)
	for _, h := range heuristic.All() {
		fmt.Fprintf(&sb, "  %-10s %d\n", h, h.Evaluator().Evaluate(b, side))
	}
	fmt.Fprintf(&sb, "  %-10s %d", "mobility", movegen.Mobility(b, side))
	return msg(sb.String()), nil
}

// search analyzes the position for the side on turn without playing.
func (sc *ShellController) search(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Playing() != game.StatePlaying {
		return nil, game.ErrGameOver
	}
	plies := sc.player.Plies()
	if len(cmd.args) > 0 {
		var err error
		plies, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if plies < 0 {
			return nil, fmt.Errorf("search %d: %w", plies, alphabeta.ErrNegativePlies)
		}
	}
	saved := sc.player.Plies()
	sc.player.SetPlies(plies)
	defer sc.player.SetPlies(saved)

	choice, err := sc.player.ChooseMove(context.Background(), sc.game.Board(), sc.game.PlayerOnTurn())
	if err != nil {
		return nil, err
	}
	pv := sc.player.Solver().PrincipalVariation()
	return msg(fmt.Sprintf("Best move for %v: %v\nPrincipal variation: %s",
		sc.game.PlayerOnTurn(), choice, pv)), nil
}

// undo takes back moves until a side not played by the AI is on turn, so
// that one `undo` takes back the human's last move and the AI's reply.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	n, err := strconv.Atoi(lo.FirstOr(cmd.args, "1"))
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err := sc.game.UnplayLastMove(); err != nil {
			return nil, err
		}
		for sc.aiSides[sc.game.PlayerOnTurn()] && sc.game.CanUndo() &&
			!(sc.aiSides[board.Dark] && sc.aiSides[board.Light]) {
			if err := sc.game.UnplayLastMove(); err != nil {
				return nil, err
			}
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) setBoard(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: setboard <position> [dark|light]")
	}
	b, err := board.ParsePosition(cmd.args[0])
	if err != nil {
		return nil, err
	}
	onturn := board.Dark
	if len(cmd.args) > 1 {
		onturn, err = parseSide(cmd.args[1])
		if err != nil {
			return nil, err
		}
	}
	g, err := game.NewGameFromPosition(b, onturn)
	if err != nil {
		return nil, err
	}
	sc.game = g
	// The position is shown as set; the AI waits for `ai` or a human move.
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

func friendlyError(err error) error {
	if errors.Is(err, bot.ErrNoMoveAvailable) {
		return errors.New("the side on turn has no legal moves")
	}
	return err
}
