package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/othellobot/othello"
	"github.com/othellobot/othello/encoding/gif"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// multiEncoder sends every position to all of its encoders.
type multiEncoder []othello.OutputEncoder

func (m multiEncoder) Encode(ms game.MetaState) error {
	for _, enc := range m {
		if err := enc.Encode(ms); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every encoder, even after one fails. The first error is returned.
func (m multiEncoder) Flush() (err error) {
	for _, enc := range m {
		if ferr := enc.Flush(); ferr != nil && err == nil {
			err = ferr
		}
	}
	return err
}

// fileEncoder closes the gif's file once the game is written. A game that fails never flushes its
// encoder, so the file is also closed by Close, which may be called any number of times.
type fileEncoder struct {
	*gif.Encoder
	f    *os.File
	once sync.Once
	err  error
}

func newFileEncoder(path string, cell int) (*fileEncoder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to create gif")
	}
	return &fileEncoder{Encoder: gif.NewGifEncoder(f, cell), f: f}, nil
}

func (enc *fileEncoder) Flush() error {
	err := enc.Encoder.Flush()
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	return err
}

func (enc *fileEncoder) Close() error {
	enc.once.Do(func() { enc.err = enc.f.Close() })
	return enc.err
}

// closers holds what the games opened, to be closed once the tournament is over.
type closers struct {
	sync.Mutex
	l []io.Closer
}

func (c *closers) add(cl io.Closer) {
	c.Lock()
	c.l = append(c.l, cl)
	c.Unlock()
}

func (c *closers) Close() (err error) {
	c.Lock()
	defer c.Unlock()
	for _, cl := range c.l {
		if cerr := cl.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	c.l = c.l[:0]
	return err
}

// frame is a position as sent to the websocket clients.
type frame struct {
	Name   string   `json:"name"`
	Game   int      `json:"game"`
	Ply    int      `json:"ply"`
	Player string   `json:"player"`
	Move   string   `json:"move"`
	Board  []string `json:"board"`
	Black  float64  `json:"black"`
	White  float64  `json:"white"`
	Ended  bool     `json:"ended"`
	Winner string   `json:"winner,omitempty"`
}

func makeFrame(ms game.MetaState) frame {
	g := ms.State()
	last := g.LastMove()
	f := frame{
		Name:   ms.Name(),
		Game:   ms.GameNumber(),
		Ply:    g.MoveNumber(),
		Player: last.Player.String(),
		Move:   "pass",
		Black:  ms.Score(reversi.Black),
		White:  ms.Score(reversi.White),
	}
	if m, ok := reversi.MoveFromSingle(last.Single); ok {
		f.Move = m.String()
	}
	rows, cols := g.BoardSize()
	board := g.Board()
	for r := 0; r < rows; r++ {
		var row []byte
		for _, c := range board[r*cols : (r+1)*cols] {
			row = append(row, fmt.Sprintf("%s", c)...)
		}
		f.Board = append(f.Board, string(row))
	}
	if ended, winner := g.Ended(); ended {
		f.Ended = true
		f.Winner = winner.String()
	}
	return f
}

var upgrader = websocket.Upgrader{} // use default options

// streamer broadcasts every position to the connected websocket clients. Slow clients miss frames.
type streamer struct {
	sync.Mutex
	clients map[chan []byte]struct{}
}

func newStreamer() *streamer {
	return &streamer{clients: make(map[chan []byte]struct{})}
}

func (s *streamer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("upgrade")
		return
	}
	defer c.Close()

	ch := make(chan []byte, 64)
	s.Lock()
	s.clients[ch] = struct{}{}
	s.Unlock()
	defer func() {
		s.Lock()
		delete(s.clients, ch)
		s.Unlock()
	}()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case b := <-ch:
			if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
				log.Warn().Err(err).Msg("write")
				return
			}
		case <-gone:
			return
		}
	}
}

func (s *streamer) Encode(ms game.MetaState) error {
	b, err := json.Marshal(makeFrame(ms))
	if err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	for ch := range s.clients {
		select {
		case ch <- b:
		default:
		}
	}
	return nil
}

func (s *streamer) Flush() error { return nil }
