package othello

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// GameResult is the outcome of one game of a tournament.
type GameResult struct {
	Number       int
	ID           uuid.UUID
	Black, White string // agent names
	Winner       game.Player
	BlackDiscs   int
	WhiteDiscs   int
}

// Tournament plays games, at most parallel of them at once. newArena is called once per game and must return an
// arena whose agents are not shared with any other game, as Bots are not safe for concurrent use.
// The results are ordered by game number, and the statistics are accumulated in that order.
func Tournament(ctx context.Context, games, parallel int, newArena func(i int) (*Arena, error)) ([]GameResult, Statistics, error) {
	if parallel < 1 {
		parallel = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	var mu sync.Mutex
	results := make([]GameResult, 0, games)
	for i := 0; i < games; i++ {
		i := i
		g.Go(func() error {
			a, err := newArena(i)
			if err != nil {
				return errors.WithMessagef(err, "Unable to set up game %d", i)
			}
			a.SetGameNumber(0, i)
			winner, err := a.Play(ctx)
			if err != nil {
				return errors.WithMessagef(err, "Game %d", i)
			}
			r := GameResult{
				Number:     i,
				ID:         a.ID(),
				Black:      a.black().Name,
				White:      a.white().Name,
				Winner:     winner,
				BlackDiscs: int(a.Score(reversi.Black)),
				WhiteDiscs: int(a.Score(reversi.White)),
			}
			log.Info().
				Int("game", i).
				Str("black", r.Black).
				Str("white", r.White).
				Str("winner", winner.String()).
				Int("black_discs", r.BlackDiscs).
				Int("white_discs", r.WhiteDiscs).
				Msg("game over")

			mu.Lock()
			results = append(results, r)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Number < results[j].Number })
	stats := makeStatistics()
	for _, r := range results {
		stats.update(r)
	}
	return results, stats, err
}
