package searcher

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"crosses/board"
	"crosses/cell"
	"crosses/experiments/metrics"
	"crosses/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const MaxCutoff = 1 << 16

var ErrNoMoves = errors.New("no legal move to search")

type Option func(m *MCTS)

// MCTS is a tree-parallel Monte Carlo tree search with virtual loss. Every
// goroutine runs whole episodes against one shared tree.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   Evaluate
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops rollouts after depth moves and scores them with the
// evaluation function.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   EvaluateTerritory,
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

type stats struct {
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
}

// FindMove searches from the current position of g and returns the most
// visited move for the player to move.
func (m *MCTS) FindMove(g *game.Game) (board.Index, metrics.SearchMetric, error) {
	pos, err := g.Position()
	if err != nil {
		return board.Index{}, metrics.SearchMetric{}, fmt.Errorf("failed to copy game: %w", err)
	}
	if len(pos.LegalMoves()) == 0 {
		return board.Index{}, metrics.SearchMetric{}, ErrNoMoves
	}

	root := newDecision(nil, pos.CurrentPlayer().Opponent(), &pos)
	var s stats
	start := time.Now()
	if m.episodes > 0 {
		m.iterate(root, pos, &s)
	} else {
		m.countdown(root, pos, &s)
	}

	metric := metrics.SearchMetric{
		Goroutines:   m.goroutines,
		Episodes:     int(s.episodes.Load()),
		FullPlayouts: int(s.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Duration:     time.Since(start),
	}
	move := root.bestMove()
	log.Debug().
		Stringer("player", pos.CurrentPlayer()).
		Stringer("move", move).
		Int("episodes", metric.Episodes).
		Int("full_playouts", metric.FullPlayouts).
		Msg("search complete")
	return move, metric, nil
}

func (m *MCTS) iterate(root *decision, pos game.Position, s *stats) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(root, pos, s)
				s.episodes.Add(1)
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *decision, pos game.Position, s *stats) {
	done := make(chan any)
	var wg sync.WaitGroup

	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, pos, s)
					s.episodes.Add(1)
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// simulate runs one episode on its own copy of pos.
func (m *MCTS) simulate(root *decision, pos game.Position, s *stats) {
	node := selectThenExpand(root, &pos)
	reward := m.rollout(&pos, s)
	backup(node, reward)
}

func selectThenExpand(root *decision, pos *game.Position) *decision {
	parent := root
	child, expanded := parent.selectOrExpand(pos)
	for !expanded && child != parent {
		parent = child
		child, expanded = parent.selectOrExpand(pos)
	}
	return child
}

func (m *MCTS) rollout(pos *game.Position, s *stats) func(cell.Player) float64 {
	depth := 0
	moves := pos.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && depth < m.cutoff {
		mustPlay(pos, moves[rand.Intn(len(moves))]) // Random rollout policy
		moves = pos.LegalMoves()
		depth++
	}

	if over, ended := pos.Ended(); ended {
		s.fullPlayouts.Add(1)
		return rewarder(over.Winner())
	}

	blue := m.evaluate(&pos.Board, cell.Blue)
	return func(p cell.Player) float64 {
		if p == cell.Blue {
			return blue
		}
		return WIN + LOSS - blue
	}
}

func backup(node *decision, reward func(cell.Player) float64) {
	for node != nil {
		node = node.backup(reward)
	}
}
