package engine

import (
	"fmt"
	"time"

	"crosses/board"
	"crosses/cell"
	"crosses/experiments/metrics"
	"crosses/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *Engine)

// Agent finds moves for one player.
type Agent interface {
	FindMove(g *game.Game) (board.Index, metrics.SearchMetric, error)
}

// Engine plays a game to the end. Players without an agent pick uniformly
// among their legal moves.
type Engine struct {
	game     *game.Game
	rng      *rand.Rand
	agents   [2]Agent
	maxMoves int
	rewind   int
	metrics  metrics.Collector
}

func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithAgent(p cell.Player, agent Agent) Option {
	return func(e *Engine) {
		e.agents[p] = agent
	}
}

func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithRewind takes back and replays every n-th move.
func WithRewind(every int) Option {
	return func(e *Engine) {
		if every > 0 {
			e.rewind = every
		}
	}
}

func Local(g *game.Game, options ...Option) *Engine {
	e := &Engine{ // Default values
		game:    g,
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: metrics.NewCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Game() *game.Game {
	return e.game
}

// Run plays until the game is over or the move limit is reached.
func (e *Engine) Run() (Result, error) {
	e.metrics.Start(e.game.CurrentPlayer().String())
	log.Debug().Msgf("%s is starting", e.game.CurrentPlayer())

	for played := 0; e.maxMoves == 0 || played < e.maxMoves; played++ {
		if _, ended := e.game.Ended(); ended {
			break
		}
		p := e.game.CurrentPlayer()
		moves := e.game.Board().LegalMoves(p)
		if len(moves) == 0 {
			return Result{}, fmt.Errorf("%s has no legal move at move %d", p, e.game.CurrentMove())
		}

		idx, search, err := e.choose(p, moves)
		if err != nil {
			return Result{}, err
		}
		step := e.game.CurrentMove()
		capture := e.game.Board().Get(idx).Kind() == cell.Cross
		if err := e.game.MakeMove(idx.X, idx.Y); err != nil {
			return Result{}, fmt.Errorf("failed to play %s: %w", idx, err)
		}
		e.metrics.AddMove(metrics.MoveMetric{
			Step:    step,
			Player:  p.String(),
			X:       idx.X,
			Y:       idx.Y,
			Capture: capture,
			Options: len(moves),
			Search:  search,
		})

		if e.rewind > 0 && (played+1)%e.rewind == 0 {
			if err := e.rewindLast(); err != nil {
				return Result{}, err
			}
		}
	}

	var result Result
	winner, reason := "", ""
	if over, ended := e.game.Ended(); ended {
		result.Over = &over
		winner, reason = over.Winner().String(), over.Reason.String()
	}
	result.Game, result.Moves = e.metrics.Complete(winner, reason)
	return result, nil
}

func (e *Engine) choose(p cell.Player, moves []board.Index) (board.Index, metrics.SearchMetric, error) {
	agent := e.agents[p]
	if agent == nil {
		return moves[e.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
	}
	idx, search, err := agent.FindMove(e.game)
	if err != nil {
		return board.Index{}, search, fmt.Errorf("%s agent failed: %w", p, err)
	}
	return idx, search, nil
}

type snapshot struct {
	diagram        string
	movesCounter   [2]int
	crossesCounter [2]int
}

func takeSnapshot(b *board.Board) snapshot {
	return snapshot{
		diagram:        b.String(),
		movesCounter:   b.MovesCounter,
		crossesCounter: b.CrossesCounter,
	}
}

// rewindLast takes back the last move, replays it from the log and checks
// that the board came back.
func (e *Engine) rewindLast() error {
	before := takeSnapshot(e.game.Board())
	if err := e.game.Back(); err != nil {
		return fmt.Errorf("failed to take back move: %w", err)
	}
	if err := e.game.Forward(); err != nil {
		return fmt.Errorf("failed to replay move: %w", err)
	}
	if after := takeSnapshot(e.game.Board()); after != before {
		return fmt.Errorf("board differs after replaying move %d", e.game.CurrentMove()-1)
	}
	e.metrics.AddRewind()
	return nil
}
