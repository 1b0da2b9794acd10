// Command selfplay plays a series of games between the bot and an opponent and reports the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/othellobot/othello"
	"github.com/othellobot/othello/movelog"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

var (
	games    = flag.Int("games", 10, "number of games to play")
	parallel = flag.Int("parallel", 2, "games played at once")
	opponent = flag.String("opponent", "medium", "opponent: weak, medium, strong or bot")
	confPath = flag.String("config", "", "JSON configuration of the bot")
	gifDir   = flag.String("gif", "", "directory to render every game to as an animated gif")
	cell     = flag.Int("cell", 40, "side of a square in the gifs, in pixels")
	dbPath   = flag.String("db", "", "sqlite database the moves are logged to")
	stats    = flag.String("stats", "", "CSV file the win rates are dumped to")
	wsAddr   = flag.String("ws", "", "address to stream the games on over a websocket, e.g. :8080")
	verbose  = flag.Bool("v", false, "log every move")
)

func loadConfig() (othello.Config, error) {
	if *confPath == "" {
		return othello.DefaultConfig(), nil
	}
	f, err := os.Open(*confPath)
	if err != nil {
		return othello.Config{}, errors.Wrap(err, "Unable to open config")
	}
	defer f.Close()
	return othello.LoadConfig(f)
}

func newAgent(name, kind string, conf othello.Config) (*othello.Agent, error) {
	if kind == "bot" {
		bot, err := othello.NewBot(conf)
		if err != nil {
			return nil, err
		}
		return othello.NewAgent(name, bot), nil
	}
	s, err := othello.ParseStrength(kind)
	if err != nil {
		return nil, err
	}
	return othello.NewOpponent(name, s, conf, frand.New())
}

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}
}

func run() error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}

	var rec othello.Recorder
	if *dbPath != "" {
		store, err := movelog.Open(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		rec = store
	}

	if *gifDir != "" {
		if err := os.MkdirAll(*gifDir, 0755); err != nil {
			return errors.Wrap(err, "Unable to create gif directory")
		}
	}

	var stream *streamer
	if *wsAddr != "" {
		stream = newStreamer()
		mux := http.NewServeMux()
		mux.Handle("/ws", stream)
		go func() {
			log.Warn().Str("addr", *wsAddr).Msg("streaming games on /ws")
			if err := http.ListenAndServe(*wsAddr, mux); err != nil {
				log.Error().Err(err).Msg("websocket server stopped")
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var files closers
	defer func() {
		if err := files.Close(); err != nil {
			log.Error().Err(err).Msg("closing gifs")
		}
	}()

	newArena := func(i int) (*othello.Arena, error) {
		a, err := newAgent(conf.Name, "bot", conf)
		if err != nil {
			return nil, err
		}
		b, err := newAgent(*opponent, *opponent, conf)
		if err != nil {
			return nil, err
		}
		arena := othello.NewArena(a, b, fmt.Sprintf("%s vs %s", a.Name, b.Name), nil)
		if rec != nil {
			arena.SetRecorder(rec)
		}

		var encs multiEncoder
		if *gifDir != "" {
			enc, err := newFileEncoder(filepath.Join(*gifDir, fmt.Sprintf("game-%03d.gif", i)), *cell)
			if err != nil {
				return nil, err
			}
			files.add(enc)
			encs = append(encs, enc)
		}
		if stream != nil {
			encs = append(encs, stream)
		}
		if len(encs) > 0 {
			arena.SetEncoder(encs)
		}
		return arena, nil
	}

	results, st, err := othello.Tournament(ctx, *games, *parallel, newArena)
	for _, r := range results {
		fmt.Printf("game %3d  %s  black %-8s %2d  white %-8s %2d  winner %v\n",
			r.Number, r.ID, r.Black, r.BlackDiscs, r.White, r.WhiteDiscs, r.Winner)
	}
	for _, name := range st.Creation {
		fmt.Printf("%-10s win rate %.3f\n", name, st.WinRate(name))
	}
	if *stats != "" {
		if err := st.Dump(*stats); err != nil {
			return err
		}
	}
	return err
}
