package engine

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Board is the read-only view the text renderers need.
// Both *Session and *Snapshot satisfy it.
type Board interface {
	Rows() int
	Cols() int
	Balloon(r, c int) Token
}

// Balloon makes Snapshot satisfy Board.
func (s *Snapshot) Balloon(r, c int) Token {
	return s.Get(r, c)
}

// Display writes the board with a border, row labels on the left and
// column indices printed vertically underneath (tens, then ones).
//
//	   +---------+
//	 0 | ^ ^ = o |
//	 1 | . = = o |
//	   +---------+
//	     0 0 0 0
//	     0 1 2 3
func Display(w io.Writer, b Board) error {
	bw := bufio.NewWriter(w)
	rows, cols := b.Rows(), b.Cols()
	rule := "   +-" + strings.Repeat("--", cols) + "+\n"

	bw.WriteString(rule)
	for r := 0; r < rows; r++ {
		fmt.Fprintf(bw, "%2d | ", r)
		for c := 0; c < cols; c++ {
			bw.WriteRune(b.Balloon(r, c).Char())
			bw.WriteByte(' ')
		}
		bw.WriteString("|\n")
	}
	bw.WriteString(rule)

	bw.WriteString("     ")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(bw, "%d ", c/10)
	}
	bw.WriteString("\n     ")
	for c := 0; c < cols; c++ {
		fmt.Fprintf(bw, "%d ", c%10)
	}
	bw.WriteByte('\n')

	return bw.Flush()
}

// DisplayRaw writes one character per cell and one row per line.
func DisplayRaw(w io.Writer, b Board) error {
	bw := bufio.NewWriter(w)
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			bw.WriteRune(b.Balloon(r, c).Char())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ParseBoard reads rows in the DisplayRaw format and returns the matrix
// with its dimensions. Empty lines are skipped and a space is read as an
// empty cell. All rows must be the same length.
func ParseBoard(lines []string) (mtx [][]Token, rows, cols int, err error) {
	for _, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}

		row := make([]Token, 0, len(line))
		for i, ch := range line {
			t, ok := ParseToken(ch)
			if !ok {
				return nil, 0, 0, fmt.Errorf("%w: %q at line %d col %d", ErrInvalidToken, ch, len(mtx), i)
			}
			row = append(row, t)
		}

		if len(mtx) > 0 && len(row) != cols {
			return nil, 0, 0, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMatrixShape, len(mtx), len(row), cols)
		}
		cols = len(row)
		mtx = append(mtx, row)
	}

	if len(mtx) == 0 {
		return nil, 0, 0, fmt.Errorf("%w: empty board", ErrMatrixShape)
	}
	return mtx, len(mtx), cols, nil
}
