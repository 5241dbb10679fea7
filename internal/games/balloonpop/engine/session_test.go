package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestSession(t *testing.T, rows []string) *Session {
	t.Helper()
	mtx, nr, nc, err := ParseBoard(rows)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	s, err := NewSessionFromMatrix(DefaultLimits(), mtx, nr, nc)
	if err != nil {
		t.Fatalf("NewSessionFromMatrix failed: %v", err)
	}
	return s
}

func TestNewSessionRandomFill(t *testing.T) {
	s, err := NewSession(DefaultLimits(), 8, 12, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if s.Rows() != 8 || s.Cols() != 12 {
		t.Errorf("got %dx%d board, want 8x12", s.Rows(), s.Cols())
	}
	for r := 0; r < 8; r++ {
		for c := 0; c < 12; c++ {
			if !s.Balloon(r, c).IsBalloon() {
				t.Errorf("Balloon(%d, %d) = %v, want a color", r, c, s.Balloon(r, c))
			}
		}
	}
	if !s.IsCompact() {
		t.Error("initial board should be compact")
	}
	if s.Score() != 0 {
		t.Errorf("initial Score() = %d, want 0", s.Score())
	}
	if s.Depth() != 0 {
		t.Errorf("initial Depth() = %d, want 0", s.Depth())
	}
}

func TestNewSessionDeterministic(t *testing.T) {
	a, _ := NewSession(DefaultLimits(), 10, 10, rand.New(rand.NewSource(99)))
	b, _ := NewSession(DefaultLimits(), 10, 10, rand.New(rand.NewSource(99)))

	if !a.Current().Equal(b.Current()) {
		t.Error("sessions with the same seed should have identical boards")
	}
}

func TestNewSessionInvalidDimensions(t *testing.T) {
	limits := Limits{MaxRows: 10, MaxCols: 20}

	cases := [][2]int{{0, 5}, {5, 0}, {-3, 5}, {11, 5}, {5, 21}}
	for _, dims := range cases {
		s, err := NewSession(limits, dims[0], dims[1], nil)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewSession(%d, %d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
		if s != nil {
			t.Errorf("NewSession(%d, %d) should return nil session", dims[0], dims[1])
		}
	}

	if _, err := NewSession(limits, 10, 20, nil); err != nil {
		t.Errorf("NewSession at the limits failed: %v", err)
	}
}

func TestNewSessionFromMatrixValidation(t *testing.T) {
	limits := DefaultLimits()

	t.Run("unknown token", func(t *testing.T) {
		mtx := [][]Token{{Red, 'X'}, {Blue, Green}}
		_, err := NewSessionFromMatrix(limits, mtx, 2, 2)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("too few rows", func(t *testing.T) {
		mtx := [][]Token{{Red, Blue}}
		_, err := NewSessionFromMatrix(limits, mtx, 2, 2)
		if !errors.Is(err, ErrMatrixShape) {
			t.Errorf("error = %v, want ErrMatrixShape", err)
		}
	})

	t.Run("short row", func(t *testing.T) {
		mtx := [][]Token{{Red, Blue}, {Green}}
		_, err := NewSessionFromMatrix(limits, mtx, 2, 2)
		if !errors.Is(err, ErrMatrixShape) {
			t.Errorf("error = %v, want ErrMatrixShape", err)
		}
	})

	t.Run("bad dimensions", func(t *testing.T) {
		_, err := NewSessionFromMatrix(limits, nil, 0, 2)
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("error = %v, want ErrInvalidDimensions", err)
		}
	})

	t.Run("empty cells allowed", func(t *testing.T) {
		mtx := [][]Token{{Red, None}, {None, None}}
		s, err := NewSessionFromMatrix(limits, mtx, 2, 2)
		if err != nil {
			t.Fatalf("NewSessionFromMatrix failed: %v", err)
		}
		if s.Balloon(0, 1) != None {
			t.Errorf("Balloon(0, 1) = %v, want none", s.Balloon(0, 1))
		}
	})
}

func TestBalloonOutOfRange(t *testing.T) {
	s := newTestSession(t, []string{"^="})
	if got := s.Balloon(1, 0); got != Invalid {
		t.Errorf("Balloon(1, 0) = %v, want invalid", got)
	}
	if got := s.Balloon(0, -1); got != Invalid {
		t.Errorf("Balloon(0, -1) = %v, want invalid", got)
	}
}

func TestPopScenario(t *testing.T) {
	s := newTestSession(t, []string{
		"^^=o",
		"==oo",
		"^^=o",
		"++++",
	})

	// Only the top pair is connected; the ^^ in row 2 is cut off by row 1.
	if n := s.Pop(0, 0); n != 2 {
		t.Fatalf("Pop(0, 0) = %d, want 2", n)
	}
	if s.Score() != 2 {
		t.Errorf("Score() = %d, want 2", s.Score())
	}
	if s.Balloon(2, 0) != Red || s.Balloon(2, 1) != Red {
		t.Error("row 2 reds should not have been popped")
	}

	if n := s.Pop(3, 0); n != 4 {
		t.Fatalf("Pop(3, 0) = %d, want 4", n)
	}
	if s.Score() != 14 {
		t.Errorf("Score() = %d, want 14", s.Score())
	}
	if s.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", s.Depth())
	}
}

func TestPopNoOps(t *testing.T) {
	s := newTestSession(t, []string{
		"^=.",
		"o+^",
	})
	before := s.Current()

	tests := []struct {
		name string
		r, c int
	}{
		{"empty cell", 0, 2},
		{"single balloon", 0, 0},
		{"out of range", 5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if n := s.Pop(tc.r, tc.c); n != 0 {
				t.Errorf("Pop(%d, %d) = %d, want 0", tc.r, tc.c, n)
			}
			if !s.Current().Equal(before) {
				t.Error("board changed after a failed pop")
			}
			if s.Depth() != 0 {
				t.Errorf("Depth() = %d, want 0", s.Depth())
			}
		})
	}
}

func TestUndo(t *testing.T) {
	s := newTestSession(t, []string{
		"^^=",
		"==o",
		"oo+",
	})

	if s.Undo() {
		t.Error("Undo() at initial state should return false")
	}

	initial := s.Current()
	if s.Pop(0, 0) != 2 {
		t.Fatal("Pop(0, 0) should pop 2")
	}
	afterFirst := s.Current()
	if s.Pop(2, 0) != 2 {
		t.Fatal("Pop(2, 0) should pop 2")
	}

	if !s.Undo() {
		t.Fatal("Undo() should succeed after a pop")
	}
	if !s.Current().Equal(afterFirst) {
		t.Errorf("after undo:\n%s\nwant:\n%s", raw(s), raw(afterFirst))
	}
	if s.Score() != 2 {
		t.Errorf("Score() after undo = %d, want 2", s.Score())
	}

	if !s.Undo() {
		t.Fatal("second Undo() should succeed")
	}
	if !s.Current().Equal(initial) {
		t.Error("two undos should restore the initial board")
	}

	for i := 0; i < 3; i++ {
		if s.Undo() {
			t.Error("Undo() at initial state should keep returning false")
		}
	}
}

func TestUndoReleasesSnapshot(t *testing.T) {
	s := newTestSession(t, []string{"^^", "=="})
	s.Pop(0, 0)
	s.Pop(1, 0)
	if len(s.arena) != 3 {
		t.Fatalf("arena size = %d, want 3", len(s.arena))
	}

	s.Undo()
	if len(s.arena) != 2 {
		t.Errorf("arena size after undo = %d, want 2", len(s.arena))
	}

	// A new pop after undo reuses the freed slot.
	s.Pop(1, 0)
	if len(s.arena) != 3 || s.head().Prev() != 1 {
		t.Errorf("arena size = %d, head prev = %d; want 3 and 1", len(s.arena), s.head().Prev())
	}
}

func TestHistoryChainTerminates(t *testing.T) {
	s, _ := NewSession(DefaultLimits(), 10, 10, rand.New(rand.NewSource(3)))
	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			s.Pop(r, c)
		}
	}

	steps := 0
	for i := s.current; i != NoSnapshot; i = s.arena[i].Prev() {
		steps++
		if steps > len(s.arena) {
			t.Fatal("history chain is cyclic")
		}
	}
	if steps != s.Depth()+1 {
		t.Errorf("chain length = %d, want %d", steps, s.Depth()+1)
	}
}

func TestIsCompact(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		want  bool
	}{
		{"full", []string{"^=", "o+"}, true},
		{"empty", []string{"..", ".."}, true},
		{"settled", []string{"^=", "o.", ".."}, true},
		{"gap under top", []string{".=", "^+"}, false},
		{"hole in column", []string{"^=", ".+", "o+"}, false},
		{"single row", []string{".^.="}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, tc.board)
			if got := s.IsCompact(); got != tc.want {
				t.Errorf("IsCompact() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFloatOneStep(t *testing.T) {
	s := newTestSession(t, []string{
		"^.",
		"..",
		"=o",
	})

	s.FloatOneStep()
	want := []string{
		"^.",
		"=o",
		"..",
	}
	if got := raw(s); got != joinRows(want) {
		t.Errorf("after one step:\n%s\nwant:\n%s", got, joinRows(want))
	}
	if s.IsCompact() {
		t.Error("board should not be compact after one step")
	}

	s.FloatOneStep()
	want = []string{
		"^o",
		"=.",
		"..",
	}
	if got := raw(s); got != joinRows(want) {
		t.Errorf("after two steps:\n%s\nwant:\n%s", got, joinRows(want))
	}
	if !s.IsCompact() {
		t.Error("board should be compact after two steps")
	}
}

func TestFloatOneStepOnCompactBoardIsNoOp(t *testing.T) {
	s := newTestSession(t, []string{"^=", "o.", ".."})
	before := s.Current()
	s.FloatOneStep()
	if !s.Current().Equal(before) {
		t.Error("FloatOneStep changed a compact board")
	}
}

func TestCompactConvergesAndKeepsTokens(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		s, _ := NewSession(DefaultLimits(), 12, 9, rng)

		// Punch random holes into the board.
		head := s.head()
		for i := 0; i < 40; i++ {
			head.Set(rng.Intn(12), rng.Intn(9), None)
		}

		counts := tokenCounts(s)
		steps := 0
		for !s.IsCompact() {
			s.FloatOneStep()
			steps++
			if steps > 12 {
				t.Fatalf("trial %d: board did not settle within %d steps", trial, steps)
			}
			if got := tokenCounts(s); got != counts {
				t.Fatalf("trial %d: token counts changed from %v to %v", trial, counts, got)
			}
		}
	}
}

func TestCompactReturnsSteps(t *testing.T) {
	s := newTestSession(t, []string{
		".",
		".",
		"^",
	})
	if steps := s.Compact(); steps == 0 {
		t.Error("Compact() should take at least one step")
	}
	if s.Balloon(0, 0) != Red {
		t.Errorf("Balloon(0, 0) = %v after Compact, want red", s.Balloon(0, 0))
	}
}

func TestCanPop(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		want  bool
	}{
		{"checkerboard", []string{"^=^=", "=^=^", "^=^="}, false},
		{"horizontal pair", []string{"^^", "=o"}, true},
		{"vertical pair", []string{"^=", "^o"}, true},
		{"pair in last row", []string{"^=", "oo"}, true},
		{"pair in last column", []string{"^=", "o="}, true},
		{"single row", []string{"=^^"}, true},
		{"empty cells do not match", []string{"..", "^="}, false},
		{"empty board", []string{"...", "..."}, false},
		{"single cell", []string{"^"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, tc.board)
			if got := s.CanPop(); got != tc.want {
				t.Errorf("CanPop() = %v, want %v", got, tc.want)
			}
		})
	}
}

// TestPopProperties checks pops on random boards against an independent
// recursive flood fill.
func TestPopProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for trial := 0; trial < 30; trial++ {
		s, _ := NewSession(DefaultLimits(), 6, 7, rng)

		for move := 0; move < 10; move++ {
			r, c := rng.Intn(6), rng.Intn(7)
			before := s.Current()
			scoreBefore := s.Score()

			cluster := floodFill(before, r, c)
			n := s.Pop(r, c)

			if len(cluster) < MinCluster {
				if n != 0 || !s.Current().Equal(before) {
					t.Fatalf("trial %d: Pop(%d, %d) on cluster of %d changed the board", trial, r, c, len(cluster))
				}
				continue
			}

			if n != len(cluster) {
				t.Fatalf("trial %d: Pop(%d, %d) = %d, want %d", trial, r, c, n, len(cluster))
			}
			if got := s.Score() - scoreBefore; got != n*(n-1) {
				t.Fatalf("trial %d: score delta = %d, want %d", trial, got, n*(n-1))
			}
			for rr := 0; rr < 6; rr++ {
				for cc := 0; cc < 7; cc++ {
					_, inCluster := cluster[[2]int{rr, cc}]
					want := before.Get(rr, cc)
					if inCluster {
						want = None
					}
					if s.Balloon(rr, cc) != want {
						t.Fatalf("trial %d: cell (%d,%d) = %v, want %v", trial, rr, cc, s.Balloon(rr, cc), want)
					}
				}
			}

			if !s.Undo() || !s.Current().Equal(before) {
				t.Fatalf("trial %d: undo did not restore the board", trial)
			}
			s.Pop(r, c)
			s.Compact()
		}
	}
}

func floodFill(s *Snapshot, r, c int) map[[2]int]struct{} {
	seen := make(map[[2]int]struct{})
	target := s.Get(r, c)
	if !target.IsBalloon() {
		return seen
	}

	var visit func(r, c int)
	visit = func(r, c int) {
		if s.Get(r, c) != target {
			return
		}
		if _, ok := seen[[2]int{r, c}]; ok {
			return
		}
		seen[[2]int{r, c}] = struct{}{}
		visit(r-1, c)
		visit(r, c-1)
		visit(r, c+1)
		visit(r+1, c)
	}
	visit(r, c)
	return seen
}

func tokenCounts(s *Session) [PaletteSize]int {
	var counts [PaletteSize]int
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			for i, p := range palette {
				if s.Balloon(r, c) == p {
					counts[i]++
				}
			}
		}
	}
	return counts
}

func joinRows(rows []string) string {
	out := ""
	for _, r := range rows {
		out += r + "\n"
	}
	return out
}
