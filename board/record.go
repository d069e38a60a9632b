package board

import (
	"encoding/json"
	"fmt"

	"crosses/cell"
)

// record is the serialized form of a board. Cells are stored column by column
// for the live rectangle only.
type record struct {
	MaxX           int           `json:"max_x"`
	MaxY           int           `json:"max_y"`
	MovesCounter   [2]int        `json:"moves_counter"`
	CrossesCounter [2]int        `json:"crosses_counter"`
	Cells          [][]cell.Cell `json:"cells"`
}

func (b *Board) MarshalJSON() ([]byte, error) {
	r := record{
		MaxX:           b.maxX,
		MaxY:           b.maxY,
		MovesCounter:   b.MovesCounter,
		CrossesCounter: b.CrossesCounter,
		Cells:          make([][]cell.Cell, b.maxX),
	}
	for x := 0; x < b.maxX; x++ {
		r.Cells[x] = append([]cell.Cell(nil), b.cells[x][:b.maxY]...)
	}
	return json.Marshal(r)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.MaxX < 2 || r.MaxY < 2 || r.MaxX > Capacity || r.MaxY > Capacity {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBoard, r.MaxX, r.MaxY)
	}
	if len(r.Cells) != r.MaxX {
		return fmt.Errorf("%w: %d columns for width %d", ErrInvalidBoard, len(r.Cells), r.MaxX)
	}

	restored := Board{
		maxX:           r.MaxX,
		maxY:           r.MaxY,
		MovesCounter:   r.MovesCounter,
		CrossesCounter: r.CrossesCounter,
	}
	for x, column := range r.Cells {
		if len(column) != r.MaxY {
			return fmt.Errorf("%w: column %d has %d cells for height %d", ErrInvalidBoard, x, len(column), r.MaxY)
		}
		for y, c := range column {
			if c.Kind() == cell.Border {
				return fmt.Errorf("%w: border cell at %s", ErrInvalidBoard, Index{x, y})
			}
			restored.cells[x][y] = c
		}
	}
	*b = restored
	return nil
}
