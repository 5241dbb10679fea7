package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// MinCluster is the smallest cluster that can be popped.
const MinCluster = 2

// Session is a running game: the current board plus its undo history.
//
// History is kept as an arena of snapshots. The current snapshot is the
// last element and each snapshot records the arena index of the one it
// was derived from, so the chain always ends at index 0.
type Session struct {
	limits  Limits
	arena   []*Snapshot
	current int
}

// NewSession creates a session with a board of the given size filled with
// random balloons. Columns are filled top to bottom so the initial board
// is compact. A nil rng falls back to a time-seeded source.
func NewSession(limits Limits, rows, cols int, rng *rand.Rand) (*Session, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s, err := newSession(limits, rows, cols)
	if err != nil {
		return nil, err
	}

	head := s.head()
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			head.Set(r, c, palette[rng.Intn(PaletteSize)])
		}
	}
	return s, nil
}

// NewSessionFromMatrix creates a session whose initial board is copied from
// mtx. The matrix must have at least rows rows of at least cols tokens and
// every token in that range must be a balloon or None.
func NewSessionFromMatrix(limits Limits, mtx [][]Token, rows, cols int) (*Session, error) {
	s, err := newSession(limits, rows, cols)
	if err != nil {
		return nil, err
	}
	if len(mtx) < rows {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrMatrixShape, len(mtx), rows)
	}

	head := s.head()
	for r := 0; r < rows; r++ {
		if len(mtx[r]) < cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMatrixShape, r, len(mtx[r]), cols)
		}
		for c := 0; c < cols; c++ {
			t := mtx[r][c]
			if !t.Valid() {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidToken, byte(t), r, c)
			}
			head.Set(r, c, t)
		}
	}
	return s, nil
}

func newSession(limits Limits, rows, cols int) (*Session, error) {
	initial, err := NewSnapshot(rows, cols, limits)
	if err != nil {
		return nil, err
	}
	return &Session{
		limits:  limits,
		arena:   []*Snapshot{initial},
		current: 0,
	}, nil
}

func (s *Session) head() *Snapshot {
	return s.arena[s.current]
}

// Rows returns the board height.
func (s *Session) Rows() int {
	return s.head().Rows()
}

// Cols returns the board width.
func (s *Session) Cols() int {
	return s.head().Cols()
}

// Limits returns the limits the session was created with.
func (s *Session) Limits() Limits {
	return s.limits
}

// Balloon returns the token at (r, c) on the current board,
// or Invalid if out of range.
func (s *Session) Balloon(r, c int) Token {
	return s.head().Get(r, c)
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.head().Score()
}

// Depth returns the number of pops that can be undone.
func (s *Session) Depth() int {
	return s.current
}

// Remaining returns the number of balloons left on the board.
func (s *Session) Remaining() int {
	return s.head().Balloons()
}

// Current returns a copy of the current board for read-only consumers.
func (s *Session) Current() *Snapshot {
	return s.head().Copy()
}

// Pop clears the cluster containing (r, c) if it has at least MinCluster
// balloons, adds n*(n-1) to the score and returns n.
// Otherwise the board is left untouched and 0 is returned.
func (s *Session) Pop(r, c int) int {
	target := s.Balloon(r, c)
	if !target.IsBalloon() {
		return 0
	}

	next := s.head().Copy()
	if next == nil {
		return 0
	}

	n := next.PopCluster(r, c, target)
	if n < MinCluster {
		return 0
	}

	next.prev = s.current
	next.score += n * (n - 1)
	s.arena = append(s.arena, next)
	s.current = len(s.arena) - 1
	return n
}

// Undo discards the most recent pop. Returns false at the initial state.
func (s *Session) Undo() bool {
	head := s.head()
	if head.prev == NoSnapshot {
		return false
	}

	s.arena[s.current] = nil
	s.arena = s.arena[:s.current]
	s.current = head.prev
	return true
}

// IsCompact reports whether every balloon below row 0 has a balloon
// directly above it.
func (s *Session) IsCompact() bool {
	head := s.head()
	for r := 1; r < head.rows; r++ {
		for c := 0; c < head.cols; c++ {
			if head.Get(r, c) != None && head.Get(r-1, c) == None {
				return false
			}
		}
	}
	return true
}

// FloatOneStep moves every balloon with an empty cell above it up by one row.
// Rows are scanned top to bottom so a balloon rises at most one cell per call.
//
// The step mutates the current snapshot in place: floating is part of
// settling the board after a pop, not a move of its own.
func (s *Session) FloatOneStep() {
	head := s.head()
	for r := 1; r < head.rows; r++ {
		for c := 0; c < head.cols; c++ {
			t := head.Get(r, c)
			if t != None && head.Get(r-1, c) == None {
				head.Set(r-1, c, t)
				head.Set(r, c, None)
			}
		}
	}
}

// Compact floats the board until it is compact and returns the number of
// steps taken.
func (s *Session) Compact() int {
	steps := 0
	for !s.IsCompact() {
		s.FloatOneStep()
		steps++
	}
	return steps
}

// CanPop reports whether some cluster of at least two balloons exists.
// Every cell is checked against its right and lower neighbor, so pairs
// lying entirely in the last row or last column are found too.
func (s *Session) CanPop() bool {
	head := s.head()
	for r := 0; r < head.rows; r++ {
		for c := 0; c < head.cols; c++ {
			t := head.Get(r, c)
			if t == None {
				continue
			}
			// Get returns Invalid past the edge, which never matches.
			if head.Get(r, c+1) == t || head.Get(r+1, c) == t {
				return true
			}
		}
	}
	return false
}
