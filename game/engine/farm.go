package engine

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned for coordinates outside the farm grid
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// OutOfBoundsError describes which coordinates missed the grid
type OutOfBoundsError struct {
	X, Y int
	Size int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d,%d) outside %dx%d farm", e.X, e.Y, e.Size, e.Size)
}

// Is lets errors.Is match ErrOutOfBounds
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// Farm is a square grid of crop plots
type Farm struct {
	Size int      `json:"size"`
	Grid [][]Crop `json:"grid"`
}

// NewFarm creates a farm of empty plots
func NewFarm(size int) *Farm {
	grid := make([][]Crop, size)
	for i := range grid {
		grid[i] = make([]Crop, size)
	}
	return &Farm{Size: size, Grid: grid}
}

// InBounds checks whether (x, y) addresses a plot
func (f *Farm) InBounds(x, y int) bool {
	return x >= 0 && x < f.Size && y >= 0 && y < f.Size
}

func (f *Farm) cell(x, y int) (*Crop, error) {
	if !f.InBounds(x, y) {
		return nil, &OutOfBoundsError{X: x, Y: y, Size: f.Size}
	}
	return &f.Grid[x][y], nil
}

// Cell returns a copy of the plot at (x, y)
func (f *Farm) Cell(x, y int) (Crop, error) {
	c, err := f.cell(x, y)
	if err != nil {
		return Crop{}, err
	}
	return *c, nil
}

// Plant plants kind at (x, y) without checking what is there
func (f *Farm) Plant(x, y int, kind CropKind) error {
	c, err := f.cell(x, y)
	if err != nil {
		return err
	}
	c.Plant(kind)
	return nil
}

// Water waters the plot at (x, y)
func (f *Farm) Water(x, y int) error {
	c, err := f.cell(x, y)
	if err != nil {
		return err
	}
	c.Water()
	return nil
}

// Fertilize fertilizes the plot at (x, y)
func (f *Farm) Fertilize(x, y int) error {
	c, err := f.cell(x, y)
	if err != nil {
		return err
	}
	c.Fertilize()
	return nil
}

// Harvest harvests the plot at (x, y); ok is false when nothing was ready
func (f *Farm) Harvest(x, y int) (kind CropKind, ok bool, err error) {
	c, err := f.cell(x, y)
	if err != nil {
		return "", false, err
	}
	kind, ok = c.Harvest()
	return kind, ok, nil
}

// AdvanceDay ages every plot by one day under the same weather
func (f *Farm) AdvanceDay(rain bool) {
	for i := range f.Grid {
		for j := range f.Grid[i] {
			f.Grid[i][j].AdvanceDay(rain)
		}
	}
}

// CountStage counts plots in the given stage
func (f *Farm) CountStage(stage Stage) int {
	count := 0
	for _, row := range f.Grid {
		for _, c := range row {
			if c.Stage == stage {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the farm
func (f *Farm) Clone() *Farm {
	clone := &Farm{Size: f.Size, Grid: make([][]Crop, len(f.Grid))}
	for i, row := range f.Grid {
		clone.Grid[i] = make([]Crop, len(row))
		copy(clone.Grid[i], row)
	}
	return clone
}
