package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/othellolab/othello/ai/bot"
	"github.com/othellolab/othello/board"
	"github.com/othellolab/othello/config"
	"github.com/othellolab/othello/game"
	"github.com/othellolab/othello/move"
)

var (
	errNoData            = errors.New("no data in line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start a game first with the `new` command")
	errAutoplayRunning   = errors.New("autoplay is running, please do an `autoplay stop` first")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l          *readline.Instance
	out        io.Writer
	config     *config.Config
	execPath   string
	gitVersion string

	game   *game.Game
	player *bot.Player
	// aiSides is indexed by board.Color.
	aiSides [3]bool

	searchLogFile *os.File

	interactive    bool
	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	prompt := "othello> "
	if board.ColorSupport {
		prompt = "\033[32mothello>\033[0m "
	}
	sc := &ShellController{config: cfg, execPath: execPath, gitVersion: gitVersion}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	if err := sc.openSearchLog(cfg.GetString(config.ConfigSearchLog)); err != nil {
		log.Err(err).Msg("could-not-open-search-log")
	}
	if err := sc.initPlayer(); err != nil {
		log.Err(err).Msg("could-not-create-ai-player")
	}
	sc.aiSides[board.Light] = true
	return sc
}

// initPlayer rebuilds the AI from the current config. It is called after
// any setting that the AI depends on changes.
func (sc *ShellController) initPlayer() error {
	p, err := bot.NewPlayer(sc.config)
	if err != nil {
		return err
	}
	if sc.searchLogFile != nil {
		p.SetLogStream(sc.searchLogFile)
	}
	sc.player = p
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + friendlyError(err).Error())
}

// extractFields splits a command line into the command, its positional
// arguments, and its -option value pairs. Quoted strings are kept whole.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		if strings.HasPrefix(fields[idx], "-") && len(fields[idx]) > 1 {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			opt := fields[idx][1:]
			options[opt] = append(options[opt], fields[idx+1])
			idx++
			continue
		}
		args = append(args, fields[idx])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye", "quit":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "show", "s":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "play", "p":
		return sc.play(cmd)
	case "ai":
		return sc.aiMove(cmd)
	case "eval":
		return sc.eval(cmd)
	case "search":
		return sc.search(cmd)
	case "undo", "u":
		return sc.undo(cmd)
	case "setboard":
		return sc.setBoard(cmd)
	case "set":
		return sc.set(cmd)
	case "setconfig":
		return sc.setConfig(cmd)
	case "gid":
		return sc.gid(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "script":
		return sc.script(cmd)
	default:
		// a bare coordinate plays that square
		if _, _, err := move.FromBoardGameCoords(cmd.cmd); err == nil && len(cmd.args) == 0 {
			return sc.play(&shellcmd{cmd: "play", args: []string{cmd.cmd}})
		}
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
	}
}

// Execute runs a single command line, as given on the command line of
// the binary.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	sc.interactive = true
	sc.showMessage(fmt.Sprintf("othello %s. Type `help` for a list of commands.", sc.gitVersion))

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			sc.showError(err)
			continue
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops background work and closes open files.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
		<-sc.autoplayDone
	}
	if sc.searchLogFile != nil {
		sc.searchLogFile.Close()
		sc.searchLogFile = nil
	}
}
