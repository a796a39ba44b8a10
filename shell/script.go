package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/othellolab/othello/game"
)

const luaShellGlobal = "othello_shell"

type handlerFunc func(*ShellController, *shellcmd) (*Response, error)

func getShell(L *lua.LState) *ShellController {
	ud, ok := L.GetGlobal(luaShellGlobal).(*lua.LUserData)
	if !ok {
		L.RaiseError("shell userdata not found")
		return nil
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		L.RaiseError("shell userdata has the wrong type")
		return nil
	}
	return sc
}

// luaCommand exposes a shell command to lua. The lua function takes the
// argument string and returns the command's output, or an "ERROR: "
// string.
func luaCommand(name string, handler handlerFunc) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.OptString(1, "")
		sc := getShell(L)
		cmd, err := extractFields(name + " " + lv)
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := handler(sc, cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

func Score(L *lua.LState) int {
	sc := getShell(L)
	var dark, light int
	if sc.game != nil {
		dark, light = sc.game.Score()
	}
	L.Push(lua.LNumber(dark))
	L.Push(lua.LNumber(light))
	return 2
}

func Playing(L *lua.LState) int {
	sc := getShell(L)
	L.Push(lua.LBool(sc.game != nil && sc.game.Playing() == game.StatePlaying))
	return 1
}

func Turn(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(sc.game.PlayerOnTurn().String()))
	return 1
}

var luaCommands = map[string]handlerFunc{
	"new":      (*ShellController).newGame,
	"play":     (*ShellController).play,
	"ai":       (*ShellController).aiMove,
	"show":     (*ShellController).show,
	"moves":    (*ShellController).moves,
	"eval":     (*ShellController).eval,
	"search":   (*ShellController).search,
	"undo":     (*ShellController).undo,
	"setboard": (*ShellController).setBoard,
	"set":      (*ShellController).set,
	"autoplay": (*ShellController).autoplay,
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}
	filepath := cmd.args[0]

	// Scripts run commands one after another, so nothing goes to the
	// background.
	interactive := sc.interactive
	sc.interactive = false
	defer func() { sc.interactive = interactive }()

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc
	L.SetGlobal(luaShellGlobal, lsc)
	for name, handler := range luaCommands {
		L.SetGlobal("othello_"+name, L.NewFunction(luaCommand(name, handler)))
	}
	L.SetGlobal("othello_score", L.NewFunction(Score))
	L.SetGlobal("othello_playing", L.NewFunction(Playing))
	L.SetGlobal("othello_turn", L.NewFunction(Turn))

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	return msg(""), nil
}
