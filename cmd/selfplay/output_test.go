package main

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meta struct {
	*reversi.Game
}

func (m meta) Name() string                { return "test" }
func (m meta) Epoch() int                  { return 0 }
func (m meta) GameNumber() int             { return 7 }
func (m meta) Score(p game.Player) float64 { return float64(m.Game.Score(p)) }
func (m meta) State() game.State           { return m.Game }

func TestMakeFrame(t *testing.T) {
	g := reversi.NewGame()
	g.Apply(game.PlayerMove{Player: reversi.Black, Single: reversi.Move{Row: 4, Col: 5}.Single()})
	f := makeFrame(meta{g})
	assert.Equal(t, 7, f.Game)
	assert.Equal(t, 1, f.Ply)
	assert.Equal(t, "Black", f.Player)
	assert.Equal(t, "F5", f.Move)
	assert.Equal(t, float64(4), f.Black)
	assert.Len(t, f.Board, reversi.Size)
	assert.Equal(t, "···XXX··", f.Board[4])
	assert.False(t, f.Ended)
}

func TestStreamer(t *testing.T) {
	s := newStreamer()
	srv := httptest.NewServer(s)
	defer srv.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer c.Close()

	// wait for the client to be registered
	require.Eventually(t, func() bool {
		s.Lock()
		defer s.Unlock()
		return len(s.clients) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Encode(meta{reversi.NewGame()}))
	require.NoError(t, c.SetReadDeadline(time.Now().Add(time.Second)))
	_, b, err := c.ReadMessage()
	require.NoError(t, err)
	var f frame
	require.NoError(t, json.Unmarshal(b, &f))
	assert.Equal(t, "test", f.Name)
	assert.Equal(t, "pass", f.Move, "no move has been played")
	assert.Equal(t, "···OX···", f.Board[3])

	c.Close()
	require.Eventually(t, func() bool {
		s.Lock()
		defer s.Unlock()
		return len(s.clients) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestFileEncoderClosesOnce(t *testing.T) {
	dir := t.TempDir()
	enc, err := newFileEncoder(filepath.Join(dir, "game.gif"), 10)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(meta{reversi.NewGame()}))
	require.NoError(t, enc.Flush())
	assert.NoError(t, enc.Close(), "closing a flushed encoder again is fine")

	fi, err := os.Stat(filepath.Join(dir, "game.gif"))
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())

	_, err = newFileEncoder(filepath.Join(dir, "missing", "game.gif"), 10)
	assert.Error(t, err)
}

// failing stands in for an encoder whose game broke off.
type failing struct{}

func (failing) Encode(game.MetaState) error { return errors.New("broken") }
func (failing) Flush() error                { return errors.New("broken") }

func TestClosersCloseUnflushedFiles(t *testing.T) {
	var files closers
	enc, err := newFileEncoder(filepath.Join(t.TempDir(), "game.gif"), 10)
	require.NoError(t, err)
	files.add(enc)

	require.NoError(t, files.Close())
	_, err = enc.f.Write([]byte{0})
	assert.ErrorIs(t, err, os.ErrClosed, "the file of a game that never flushed is closed")
	assert.NoError(t, files.Close())

	enc, err = newFileEncoder(filepath.Join(t.TempDir(), "game.gif"), 10)
	require.NoError(t, err)
	m := multiEncoder{failing{}, enc}
	assert.Error(t, m.Flush())
	_, err = enc.f.Write([]byte{0})
	assert.ErrorIs(t, err, os.ErrClosed, "a failing encoder does not keep the others from flushing")
}
