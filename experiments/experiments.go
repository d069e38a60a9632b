package experiments

import (
	"fmt"

	"crosses/config"
	"crosses/engine"
	"crosses/experiments/metrics"
	"crosses/game"
	"crosses/searcher"

	"github.com/rs/zerolog/log"
)

// Run plays cfg.Games self-play games and stores their records in a new
// directory under cfg.OutputDir. It returns the last game played.
func Run(cfg config.Config) (*game.Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	writer, err := metrics.NewWriter(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	run := metrics.RunConfig{
		Width:        cfg.Width,
		Height:       cfg.Height,
		MovesPerTurn: cfg.MovesPerTurn,
		Games:        cfg.Games,
		MaxMoves:     cfg.MaxMoves,
		Seed:         cfg.Seed,
		Rewind:       cfg.Rewind,
	}
	if cfg.Agent.Enabled() {
		run.AgentConfig = metrics.AgentConfig{
			Player:     cfg.Agent.Player,
			Goroutines: cfg.Agent.Goroutines,
			Episodes:   cfg.Agent.Episodes,
			Duration:   cfg.Agent.Duration,
			Cutoff:     cfg.Agent.Cutoff,
		}
	}
	err = writer.WriteRunConfig(run)
	if err != nil {
		return nil, fmt.Errorf("failed to store run config: %w", err)
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	var last *game.Game

	log.Info().Msgf("starting %d games on a %dx%d board...", cfg.Games, cfg.Width, cfg.Height)

	for i := 0; i < cfg.Games; i++ {
		id := i + 1
		seed := cfg.Seed + uint64(i)
		log.Info().Msgf("starting game %d of %d...", id, cfg.Games)

		g, result, err := runGame(cfg, seed)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", id, err)
		}
		last = g

		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         id,
			Seed:       seed,
			GameMetric: result.Game,
		})
		for _, mm := range result.Moves {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       id,
				MoveMetric: mm,
			})
		}

		if result.Over != nil {
			log.Info().Msgf("completed game %d after %d moves with winner: %s (%s lost with %s)",
				id, result.Game.TotalMoves, result.Game.Winner, result.Over.Loser, result.Over.Reason)
		} else {
			log.Info().Msgf("stopped game %d after %d moves (no winner yet)", id, result.Game.TotalMoves)
		}
	}

	log.Info().Msg("completed games")

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if cfg.Save {
		if err := saveGame(writer, last); err != nil {
			return nil, err
		}
		log.Info().Msgf("stored last game in %s", writer.Dir())
	}
	return last, nil
}

// runGame executes a single self-play game
func runGame(cfg config.Config, seed uint64) (*game.Game, engine.Result, error) {
	g, err := game.NewStandard(cfg.Width, cfg.Height, cfg.MovesPerTurn)
	if err != nil {
		return nil, engine.Result{}, err
	}
	options := []engine.Option{
		engine.WithSeed(seed),
		engine.WithMaxMoves(cfg.MaxMoves),
		engine.WithRewind(cfg.Rewind),
	}
	if cfg.Agent.Enabled() {
		side, err := cfg.Agent.Side()
		if err != nil {
			return nil, engine.Result{}, err
		}
		options = append(options, engine.WithAgent(side, createMCTS(cfg.Agent)))
	}
	result, err := engine.Local(g, options...).Run()
	if err != nil {
		return nil, engine.Result{}, err
	}
	return g, result, nil
}

func saveGame(writer *metrics.Writer, g *game.Game) error {
	f, err := writer.Create("last_game.json")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.Save(f); err != nil {
		return fmt.Errorf("failed to save last game: %w", err)
	}
	return nil
}

func createMCTS(cfg config.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if cfg.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(cfg.Episodes))
	}
	if cfg.Duration > 0 {
		options = append(options, searcher.WithDuration(cfg.Duration))
	}
	if cfg.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(cfg.Cutoff))
	}

	return searcher.NewMCTS(cfg.Goroutines, options...)
}
