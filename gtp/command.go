package gtp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Command interface {
	Do(id int, args []string, e *Engine) (int, string, error)
}

type stdlib func(e *Engine) string

type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(id int, args []string, e *Engine) (int, string, error) {
	str := f(e)
	return id, str, nil
}

func (f stdlib2) Do(id int, args []string, e *Engine) (int, string, error) {
	str, err := f(e, args)
	return id, str, err
}

func protocolVersion(e *Engine) string { return "2" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	names := make([]string, 0, len(e.known))
	for c := range e.known {
		names = append(names, c)
	}
	sort.Strings(names)
	return strings.Join(names, "\n")
}

func quit(e *Engine) string       { e.quit = true; return "" }
func clearBoard(e *Engine) string { e.g.Reset(); return "" }
func showboard(e *Engine) string  { return fmt.Sprintf("\n%v", e.g) }
func undo(e *Engine) string       { e.g.UndoLastMove(); return "" }

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func parseColour(s string) (game.Player, error) {
	switch s {
	case "b", "black", "x":
		return reversi.Black, nil
	case "w", "white", "o":
		return reversi.White, nil
	}
	return reversi.Tie, errors.Errorf("Invalid colour %q", s)
}

func colourName(p game.Player) string {
	switch p {
	case reversi.Black:
		return "black"
	case reversi.White:
		return "white"
	}
	return "draw"
}

func play(e *Engine, args []string) (string, error) {
	if len(args) < 2 {
		return "", errors.New("Not enough arguments for \"play\"")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	pm := game.PlayerMove{Player: p, Single: reversi.Pass}
	if args[1] != "pass" {
		m, err := reversi.ParseMove(args[1])
		if err != nil {
			return "", err
		}
		pm.Single = m.Single()
	}
	if !e.g.Check(pm) {
		return "", errors.Errorf("illegal move %s %s", args[0], args[1])
	}
	e.g.Apply(pm)
	return "", nil
}

func genmove(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"genmove\"")
	}
	if e.Generate == nil {
		return "", errors.New("Unable to generate moves. No generator found")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	if ended, _ := e.g.Ended(); ended {
		return "", errors.New("Game over")
	}
	board := e.g.Current()
	m, ok := e.Generate(board, p)
	if !ok {
		e.g.Apply(game.PlayerMove{Player: p, Single: reversi.Pass})
		return "pass", nil
	}
	pm := game.PlayerMove{Player: p, Single: m.Single()}
	if !e.g.Check(pm) {
		return "", errors.Errorf("Generated an illegal move %v", m)
	}
	e.g.Apply(pm)
	return m.String(), nil
}

func legalMoves(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"legal_moves\"")
	}
	p, err := parseColour(args[0])
	if err != nil {
		return "", err
	}
	board := e.g.Current()
	return strings.Join(lo.Map(board.LegalMoves(p), func(m reversi.Move, _ int) string { return m.String() }), " "), nil
}

func winner(e *Engine, args []string) (string, error) {
	ended, w := e.g.Ended()
	if !ended {
		return "", errors.New("Game is not over")
	}
	return colourName(w), nil
}

func finalScore(e *Engine) string {
	black, white := int(e.g.Score(reversi.Black)), int(e.g.Score(reversi.White))
	switch {
	case black > white:
		return fmt.Sprintf("B+%d", black-white)
	case white > black:
		return fmt.Sprintf("W+%d", white-black)
	}
	return "0"
}

// setBoard replaces the position. The cells may be split over several arguments, and an optional colour
// to move may follow them. Black moves by default.
func setBoard(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("Not enough arguments for \"set_board\"")
	}
	toMove := reversi.Black
	if len(args) > 1 {
		if p, err := parseColour(args[len(args)-1]); err == nil {
			toMove = p
			args = args[:len(args)-1]
		}
	}
	b, err := reversi.ParseBoard(strings.Join(args, ""))
	if err != nil {
		return "", err
	}
	e.g = reversi.NewGameFrom(b, toMove)
	return "", nil
}

func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"quit":             stdlib(quit),
		"clear_board":      stdlib(clearBoard),
		"showboard":        stdlib(showboard),
		"undo":             stdlib(undo),
		"final_score":      stdlib(finalScore),

		"known_command": stdlib2(knownCommand),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
		"legal_moves":   stdlib2(legalMoves),
		"winner":        stdlib2(winner),
		"set_board":     stdlib2(setBoard),
	}
}
