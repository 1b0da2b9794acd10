package othello

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/othellobot/othello/movelog"
	"github.com/pkg/errors"
	"lukechampine.com/frand"
)

// Recorder records the moves of a game. *movelog.Store is a Recorder.
type Recorder interface {
	Record(ctx context.Context, e movelog.Entry) error
}

// Arena is where two agents play each other.
type Arena struct {
	r    *frand.RNG
	game *reversi.Game
	A, B *Agent

	// state
	currentPlayer *Agent
	buf           bytes.Buffer
	logger        *log.Logger

	id         uuid.UUID
	name       string
	epoch      int
	gameNumber int

	// io
	enc OutputEncoder
	rec Recorder
}

// NewArena makes an arena for the two agents. A nil rng uses a random seed.
func NewArena(a, b *Agent, name string, rng *frand.RNG) *Arena {
	if rng == nil {
		rng = frand.New()
	}
	if name == "" {
		name = "UNKNOWN GAME"
	}
	ar := &Arena{
		r:    rng,
		game: reversi.NewGame(),
		A:    a,
		B:    b,
		name: name,
	}
	ar.logger = log.New(&ar.buf, "", log.Ltime)
	return ar
}

// SetEncoder sets the encoder every position of the game is sent to.
func (a *Arena) SetEncoder(enc OutputEncoder) { a.enc = enc }

// SetRecorder sets where the moves are recorded.
func (a *Arena) SetRecorder(r Recorder) { a.rec = r }

// SetGameNumber sets the number of the game within its series.
func (a *Arena) SetGameNumber(epoch, n int) {
	a.epoch = epoch
	a.gameNumber = n
}

// Play plays a game with colours drawn at random, and returns the winner. If it is a draw, the returned colour is None.
func (a *Arena) Play(ctx context.Context) (winner game.Player, err error) {
	a.id = uuid.New()
	a.game.Reset()
	if a.r.Intn(2) == 0 {
		a.A.Player = reversi.Black
		a.B.Player = reversi.White
		a.currentPlayer = a.A
	} else {
		a.A.Player = reversi.White
		a.B.Player = reversi.Black
		a.currentPlayer = a.B
	}
	a.A.Reset()
	a.B.Reset()

	a.logger.Printf("Playing %v. %s is Black, %s is White\n", a.id, a.black().Name, a.white().Name)
	a.logger.SetPrefix("\t\t")
	var ended bool
	for ended, winner = a.game.Ended(); !ended; ended, winner = a.game.Ended() {
		if err = ctx.Err(); err != nil {
			return reversi.Tie, err
		}
		board := a.game.Current()
		d, ok := a.currentPlayer.Search(board)
		pm := game.PlayerMove{Player: a.currentPlayer.Player, Single: reversi.Pass}
		move := "pass"
		if ok {
			pm.Single = d.Move.Single()
			move = d.Move.String()
		}
		if !a.game.Check(pm) {
			return reversi.Tie, errors.WithMessagef(reversi.IllegalMove(pm.Player, d.Move), "%s played", a.currentPlayer.Name)
		}
		a.logger.Printf("Current Player: %v (%s). Move %v Score %v Source %v\n", a.currentPlayer.Player, a.currentPlayer.Name, move, d.Score, d.Source)

		if a.rec != nil {
			e := movelog.Entry{
				GameID: a.id,
				Ply:    a.game.MoveNumber(),
				Player: pm.Player,
				Move:   move,
				Score:  d.Score,
				Phase:  reversi.PhaseOf(&board),
				Source: d.Source.String(),
				Board:  board,
			}
			if !ok {
				e.Source = "pass"
			}
			if err = a.rec.Record(ctx, e); err != nil {
				return reversi.Tie, err
			}
		}

		a.game.Apply(pm)
		a.switchPlayer()
		if a.enc != nil {
			if err = a.enc.Encode(a); err != nil {
				return reversi.Tie, errors.WithMessage(err, "Unable to encode position")
			}
		}
	}
	a.logger.SetPrefix("")
	if a.enc != nil {
		if err = a.enc.Flush(); err != nil {
			return winner, errors.WithMessage(err, "Unable to flush encoder")
		}
	}

	switch {
	case winner == reversi.Tie:
		a.A.Draw++
		a.B.Draw++
	case winner == a.A.Player:
		a.A.Wins++
		a.B.Loss++
	case winner == a.B.Player:
		a.B.Wins++
		a.A.Loss++
	}
	a.logger.Printf("Winner %v. Black %v White %v\n", winner, a.game.Score(reversi.Black), a.game.Score(reversi.White))
	return winner, nil
}

func (a *Arena) ID() uuid.UUID               { return a.id }
func (a *Arena) Epoch() int                  { return a.epoch }
func (a *Arena) GameNumber() int             { return a.gameNumber }
func (a *Arena) Name() string                { return a.name }
func (a *Arena) Score(p game.Player) float64 { return float64(a.game.Score(p)) }
func (a *Arena) State() game.State           { return a.game }

// Log writes the transcript of the games played so far.
func (a *Arena) Log(w io.Writer) {
	fmt.Fprint(w, a.buf.String())
}

func (a *Arena) black() *Agent {
	if a.A.Player == reversi.Black {
		return a.A
	}
	return a.B
}

func (a *Arena) white() *Agent {
	if a.A.Player == reversi.White {
		return a.A
	}
	return a.B
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.A:
		a.currentPlayer = a.B
	case a.B:
		a.currentPlayer = a.A
	}
}
