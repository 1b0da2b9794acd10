// Command othello-gtp plays Othello over a text protocol on stdin and stdout.
package main

import (
	"flag"
	"os"

	"github.com/othellobot/othello"
	"github.com/othellobot/othello/game"
	"github.com/othellobot/othello/game/reversi"
	"github.com/othellobot/othello/gtp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const version = "1.0"

var (
	confPath = flag.String("config", "", "JSON configuration of the bot")
	verbose  = flag.Bool("v", false, "log every move to stderr")
)

func main() {
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	conf := othello.DefaultConfig()
	if *confPath != "" {
		f, err := os.Open(*confPath)
		if err != nil {
			log.Fatal().Err(err).Msg("unable to open config")
		}
		conf, err = othello.LoadConfig(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load config")
		}
	}

	bot, err := othello.NewBot(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to make bot")
	}
	e := gtp.New(nil, conf.Name, version, nil)
	e.Generate = func(b reversi.Board, p game.Player) (reversi.Move, bool) {
		r, ok := bot.BestMove(b, p)
		return r.Move, ok
	}
	if err := e.Serve(os.Stdin, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}
