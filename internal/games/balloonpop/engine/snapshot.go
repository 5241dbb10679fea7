package engine

import (
	"errors"
	"fmt"
)

// Default board limits.
const (
	DefaultMaxRows = 40
	DefaultMaxCols = 40
)

// NoSnapshot is the prev handle of the initial snapshot.
const NoSnapshot = -1

var (
	// ErrInvalidDimensions is returned when rows or cols are outside [1, max].
	ErrInvalidDimensions = errors.New("engine: invalid board dimensions")

	// ErrInvalidToken is returned when a matrix holds an unknown symbol.
	ErrInvalidToken = errors.New("engine: invalid token")

	// ErrMatrixShape is returned when a matrix is smaller than the requested board.
	ErrMatrixShape = errors.New("engine: matrix does not match board dimensions")
)

// Limits bounds the board size a session may be created with.
type Limits struct {
	MaxRows int
	MaxCols int
}

// DefaultLimits returns the standard 40x40 limits.
func DefaultLimits() Limits {
	return Limits{MaxRows: DefaultMaxRows, MaxCols: DefaultMaxCols}
}

// Check validates rows and cols against the limits.
func (l Limits) Check(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > l.MaxRows || cols > l.MaxCols {
		return fmt.Errorf("%w: %dx%d (max %dx%d)", ErrInvalidDimensions, rows, cols, l.MaxRows, l.MaxCols)
	}
	return nil
}

// Snapshot is one board state in a session's history.
// Cells are stored in row-major order: index = r*cols + c.
type Snapshot struct {
	rows  int
	cols  int
	cells []Token
	score int
	prev  int
}

// NewSnapshot creates a board with every cell set to None.
func NewSnapshot(rows, cols int, limits Limits) (*Snapshot, error) {
	if err := limits.Check(rows, cols); err != nil {
		return nil, err
	}
	s := &Snapshot{
		rows:  rows,
		cols:  cols,
		cells: make([]Token, rows*cols),
		prev:  NoSnapshot,
	}
	for i := range s.cells {
		s.cells[i] = None
	}
	return s, nil
}

// Rows returns the number of rows.
func (s *Snapshot) Rows() int {
	if s == nil {
		return 0
	}
	return s.rows
}

// Cols returns the number of columns.
func (s *Snapshot) Cols() int {
	if s == nil {
		return 0
	}
	return s.cols
}

// Score returns the cumulative score stored with this snapshot.
func (s *Snapshot) Score() int {
	if s == nil {
		return 0
	}
	return s.score
}

// Prev returns the arena handle of the previous snapshot, or NoSnapshot.
func (s *Snapshot) Prev() int {
	if s == nil {
		return NoSnapshot
	}
	return s.prev
}

func (s *Snapshot) inBounds(r, c int) bool {
	return r >= 0 && r < s.rows && c >= 0 && c < s.cols
}

// Get returns the token at (r, c).
// Returns Invalid for a nil snapshot or out-of-range coordinates.
func (s *Snapshot) Get(r, c int) Token {
	if s == nil || !s.inBounds(r, c) {
		return Invalid
	}
	return s.cells[r*s.cols+c]
}

// Set writes t at (r, c). Out-of-range writes are ignored.
func (s *Snapshot) Set(r, c int, t Token) {
	if s == nil || !s.inBounds(r, c) {
		return
	}
	s.cells[r*s.cols+c] = t
}

// Copy returns a deep copy with the same grid and score.
// The prev handle of the copy is left unset.
func (s *Snapshot) Copy() *Snapshot {
	if s == nil {
		return nil
	}
	cells := make([]Token, len(s.cells))
	copy(cells, s.cells)
	return &Snapshot{
		rows:  s.rows,
		cols:  s.cols,
		cells: cells,
		score: s.score,
		prev:  NoSnapshot,
	}
}

// Balloons returns the number of non-empty cells.
func (s *Snapshot) Balloons() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, t := range s.cells {
		if t != None {
			n++
		}
	}
	return n
}

// Equal reports whether two snapshots have the same dimensions, grid and score.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.rows != other.rows || s.cols != other.cols || s.score != other.score {
		return false
	}
	for i, t := range s.cells {
		if t != other.cells[i] {
			return false
		}
	}
	return true
}

// cell is a worklist entry for PopCluster.
type cell struct{ r, c int }

// PopCluster clears the 4-connected region of cells equal to t that
// contains (r, c) and returns how many cells were cleared.
// Returns 0 if (r, c) is out of range or does not hold t.
//
// Neighbors are visited up, left, right, down. A worklist replaces
// recursion so the traversal depth does not depend on board size.
func (s *Snapshot) PopCluster(r, c int, t Token) int {
	if s == nil || t == None || t == Invalid {
		return 0
	}

	count := 0
	stack := []cell{{r, c}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.Get(cur.r, cur.c) != t {
			continue
		}
		s.Set(cur.r, cur.c, None)
		count++

		// Pushed in reverse so "up" is expanded first.
		stack = append(stack,
			cell{cur.r + 1, cur.c},
			cell{cur.r, cur.c + 1},
			cell{cur.r, cur.c - 1},
			cell{cur.r - 1, cur.c},
		)
	}
	return count
}
