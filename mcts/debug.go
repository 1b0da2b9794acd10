//go:build debug
// +build debug

package mcts

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// lumberjack keeps a trace of the search in memory. It is only compiled in with the debug tag.
// Writes and reads of the trace share a lock, so Log may be called while a search runs.
type lumberjack struct {
	mu     *sync.Mutex
	buf    *bytes.Buffer
	logger zerolog.Logger
}

func makeLumberJack() lumberjack {
	buf := new(bytes.Buffer)
	return lumberjack{
		mu:     new(sync.Mutex),
		buf:    buf,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: buf, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}),
	}
}

func (l *lumberjack) log(msg string, args ...interface{}) {
	l.mu.Lock()
	l.logger.Debug().Msg(fmt.Sprintf(msg, args...))
	l.mu.Unlock()
}

// Log returns the trace so far.
func (l *lumberjack) Log() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}
