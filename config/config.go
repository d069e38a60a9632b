package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"crosses/board"
	"crosses/cell"
	"crosses/meta"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes a self-play run.
type Config struct {
	Width        int         `yaml:"width"`
	Height       int         `yaml:"height"`
	MovesPerTurn int         `yaml:"moves_per_turn"`
	Games        int         `yaml:"games"`
	MaxMoves     int         `yaml:"max_moves"` // 0 plays every game to the end
	Seed         uint64      `yaml:"seed"`
	Rewind       int         `yaml:"rewind"` // Take back and replay every n-th move, 0 disables
	OutputDir    string      `yaml:"output_dir"`
	LogLevel     string      `yaml:"log_level"`
	Save         bool        `yaml:"save"` // Keep the last game as JSON
	Agent        AgentConfig `yaml:"agent"`
}

// AgentConfig puts one player under tree search. Without episodes or a
// duration both players move at random.
type AgentConfig struct {
	Player     string        `yaml:"player"`
	Goroutines int           `yaml:"goroutines"`
	Episodes   int           `yaml:"episodes"`
	Duration   time.Duration `yaml:"duration"`
	Cutoff     int           `yaml:"cutoff"`
}

func (a AgentConfig) Enabled() bool {
	return a.Episodes > 0 || a.Duration > 0
}

// Side returns the player the agent moves for.
func (a AgentConfig) Side() (cell.Player, error) {
	switch a.Player {
	case cell.Blue.String():
		return cell.Blue, nil
	case cell.Red.String():
		return cell.Red, nil
	default:
		return cell.Blue, fmt.Errorf("%w: unknown agent player %q", ErrInvalidConfig, a.Player)
	}
}

func Default() Config {
	return Config{
		Width:        meta.BOARD_WIDTH,
		Height:       meta.BOARD_HEIGHT,
		MovesPerTurn: meta.MOVES_PER_TURN,
		Games:        meta.GAMES,
		MaxMoves:     meta.MAX_MOVES,
		OutputDir:    meta.OUTPUT_DIR,
		LogLevel:     meta.LOG_LEVEL,
		Agent: AgentConfig{
			Player:     cell.Blue.String(),
			Goroutines: meta.GO_ROUTINES,
			Cutoff:     meta.WITH_CUTOFF,
		},
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width < 2 || c.Width > board.Capacity || c.Height < 2 || c.Height > board.Capacity:
		return fmt.Errorf("%w: board %dx%d, sides must be within 2..%d", ErrInvalidConfig, c.Width, c.Height, board.Capacity)
	case c.MovesPerTurn < 1:
		return fmt.Errorf("%w: %d moves per turn", ErrInvalidConfig, c.MovesPerTurn)
	case c.Games < 1:
		return fmt.Errorf("%w: %d games", ErrInvalidConfig, c.Games)
	case c.MaxMoves < 0 || c.Rewind < 0:
		return fmt.Errorf("%w: max_moves and rewind must not be negative", ErrInvalidConfig)
	case c.OutputDir == "":
		return fmt.Errorf("%w: empty output_dir", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if !c.Agent.Enabled() {
		return nil
	}
	if _, err := c.Agent.Side(); err != nil {
		return err
	}
	if c.Agent.Goroutines < 1 || c.Agent.Cutoff < 0 {
		return fmt.Errorf("%w: agent needs goroutines and a non-negative cutoff", ErrInvalidConfig)
	}
	return nil
}

// Level parses LogLevel for zerolog.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}
