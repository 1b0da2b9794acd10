package othello

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
)

// Statistics holds, for every agent, its running totals of wins, losses and draws after each of its games.
type Statistics struct {
	Creation []string // agent names, in order of first appearance
	Wins     map[string][]float32
	Losses   map[string][]float32
	Draws    map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 8),
		Wins:     make(map[string][]float32),
		Losses:   make(map[string][]float32),
		Draws:    make(map[string][]float32),
	}
}

func (s *Statistics) add(name string, win, loss, draw float32) {
	if _, ok := s.Wins[name]; !ok {
		s.Creation = append(s.Creation, name)
	}
	last := func(l []float32) float32 {
		if len(l) == 0 {
			return 0
		}
		return l[len(l)-1]
	}
	s.Wins[name] = append(s.Wins[name], last(s.Wins[name])+win)
	s.Losses[name] = append(s.Losses[name], last(s.Losses[name])+loss)
	s.Draws[name] = append(s.Draws[name], last(s.Draws[name])+draw)
}

// update adds the outcome of one game.
func (s *Statistics) update(r GameResult) {
	switch {
	case r.Winner == reversi.Black:
		s.add(r.Black, 1, 0, 0)
		s.add(r.White, 0, 1, 0)
	case r.Winner == reversi.White:
		s.add(r.Black, 0, 1, 0)
		s.add(r.White, 1, 0, 0)
	default:
		s.add(r.Black, 0, 0, 1)
		s.add(r.White, 0, 0, 1)
	}
}

// WinRate returns the agent's current share of games won.
func (s *Statistics) WinRate(name string) float32 {
	wins := s.Wins[name]
	if len(wins) == 0 {
		return 0
	}
	i := len(wins) - 1
	return wins[i] / (wins[i] + s.Losses[name][i] + s.Draws[name][i])
}

// Dump writes the win rate series of every agent as CSV, one column per agent.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "Unable to dump statistics to %q", filename)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(s.Creation); err != nil {
		return err
	}
	var records [][]string
	for i, agent := range s.Creation {
		for j, win := range s.Wins[agent] {
			record := make([]string, len(s.Creation))
			winRate := win / (win + s.Losses[agent][j] + s.Draws[agent][j])

			record[i] = strconv.FormatFloat(float64(winRate), 'f', 3, 32)
			records = append(records, record)
		}
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
