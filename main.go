package main

import (
	"flag"
	"fmt"
	"os"

	"crosses/communication/server"
	"crosses/config"
	"crosses/experiments"
	"crosses/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML run configuration")
	games := flag.Int("games", 0, "Number of self-play games")
	seed := flag.Uint64("seed", 0, "Seed of the first game")
	output := flag.String("output", "", "Directory for run records")
	save := flag.Bool("save", false, "Keep the last game as JSON")
	serve := flag.String("serve", "", "Host one interactive game on this address instead of running experiments")
	resume := flag.String("resume", "", "Saved game to host with -serve")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}

	// Flags given on the command line win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "seed":
			cfg.Seed = *seed
		case "output":
			cfg.OutputDir = *output
		case "save":
			cfg.Save = *save
		}
	})

	level, err := cfg.Level()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	zerolog.SetGlobalLevel(level)

	if *serve != "" {
		g, err := hostedGame(cfg, *resume)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up game")
		}
		if err := server.New(g).Start(*serve); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
		return
	}

	last, err := experiments.Run(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
	fmt.Print(last.Board())
}

func hostedGame(cfg config.Config, resume string) (*game.Game, error) {
	if resume == "" {
		return game.NewStandard(cfg.Width, cfg.Height, cfg.MovesPerTurn)
	}
	f, err := os.Open(resume)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return game.Load(f)
}
