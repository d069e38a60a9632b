package metrics

import (
	"time"
)

// SearchMetric describes how a searching agent found a move. It is zero for
// random moves.
type SearchMetric struct {
	Goroutines   int
	Episodes     int
	FullPlayouts int
	Cutoff       int
	Duration     time.Duration
}

type MoveMetric struct {
	Step     int
	Player   string
	X, Y     int
	Capture  bool
	Options  int // Legal moves the player could choose from
	Duration time.Duration
	Search   SearchMetric
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // Empty when the game was cut off
	Reason         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Rewinds        int
}

type Collector interface {
	Start(startingPlayer string)
	AddMove(m MoveMetric)
	AddRewind()
	Complete(winner, reason string) (GameMetric, []MoveMetric)
}

type collector struct {
	startingPlayer string
	startTime      time.Time
	lastMove       time.Time
	moves          []MoveMetric
	rewinds        int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(startingPlayer string) {
	m.startingPlayer = startingPlayer
	m.startTime = time.Now()
	m.lastMove = m.startTime
	m.moves = nil
	m.rewinds = 0
}

// AddMove records a move, timed from the previous one.
func (m *collector) AddMove(mm MoveMetric) {
	now := time.Now()
	mm.Duration = now.Sub(m.lastMove)
	m.lastMove = now
	m.moves = append(m.moves, mm)
}

func (m *collector) AddRewind() {
	m.rewinds++
}

func (m *collector) Complete(winner, reason string) (GameMetric, []MoveMetric) {
	end := time.Now()
	return GameMetric{
		StartingPlayer: m.startingPlayer,
		Winner:         winner,
		Reason:         reason,
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		TotalMoves:     len(m.moves),
		Rewinds:        m.rewinds,
	}, m.moves
}
