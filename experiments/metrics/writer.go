package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type RunConfig struct {
	Width        int
	Height       int
	MovesPerTurn int
	Games        int
	MaxMoves     int
	Seed         uint64
	Rewind       int
	AgentConfig
}

// AgentConfig describes the searching agent of a run, if any.
type AgentConfig struct {
	Player     string // Empty when both players move at random
	Goroutines int
	Episodes   int
	Duration   time.Duration
	Cutoff     int
}

type GameRecord struct {
	ID   int
	Seed uint64
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a run directory under root named by the current time.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000000000Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// Create opens a file in the run directory.
func (w *Writer) Create(name string) (*os.File, error) {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return f, nil
}

func (w *Writer) WriteRunConfig(config RunConfig) error {
	header := []string{"width", "height", "moves_per_turn", "games", "max_moves", "seed", "rewind",
		"agent", "goroutines", "episodes", "duration", "cutoff"}
	rows := [][]string{{
		strconv.Itoa(config.Width),
		strconv.Itoa(config.Height),
		strconv.Itoa(config.MovesPerTurn),
		strconv.Itoa(config.Games),
		strconv.Itoa(config.MaxMoves),
		strconv.FormatUint(config.Seed, 10),
		strconv.Itoa(config.Rewind),
		config.Player,
		strconv.Itoa(config.Goroutines),
		strconv.Itoa(config.Episodes),
		config.Duration.String(),
		strconv.Itoa(config.Cutoff),
	}}
	return w.writeCSV("run_config.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seed", "starting_player", "winner", "reason", "total_moves", "rewinds", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.StartingPlayer,
			record.Winner,
			record.Reason,
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Rewinds),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "x", "y", "capture", "options", "duration", "episodes", "full_playouts", "search_duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			strconv.Itoa(record.X),
			strconv.Itoa(record.Y),
			strconv.FormatBool(record.Capture),
			strconv.Itoa(record.Options),
			record.Duration.String(),
			strconv.Itoa(record.Search.Episodes),
			strconv.Itoa(record.Search.FullPlayouts),
			record.Search.Duration.String(),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := w.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return nil
}
