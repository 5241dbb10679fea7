// Package console reads typed values from line-oriented text input.
// Each Read method consumes one line, re-prompts on malformed input and
// returns a sentinel once the input is exhausted.
package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Sentinels returned when no line can be read.
const (
	CharEOF    = byte(math.MaxInt8)
	Float64EOF = math.MaxFloat64
	Float32EOF = float32(math.MaxFloat32)
	IntEOF     = math.MaxInt32
	Int64EOF   = int64(math.MaxInt64)
)

// RetryPrompt is written after a line that could not be parsed.
const RetryPrompt = "Retry: "

// Reader reads values from in and writes retry prompts to out.
type Reader struct {
	in  *bufio.Reader
	out io.Writer
}

// NewReader creates a Reader. out may be nil to suppress prompts.
func NewReader(in io.Reader, out io.Writer) *Reader {
	if out == nil {
		out = io.Discard
	}
	return &Reader{in: bufio.NewReader(in), out: out}
}

// ReadString returns the next line without its trailing newline.
// Whitespace is preserved. ok is false at end of input.
func (r *Reader) ReadString() (line string, ok bool) {
	s, err := r.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", false
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true
}

// readParsed reads lines until parse succeeds. Returns false at end of input.
func (r *Reader) readParsed(parse func(string) bool) bool {
	for {
		line, ok := r.ReadString()
		if !ok {
			return false
		}
		if parse(strings.TrimSpace(line)) {
			return true
		}
		fmt.Fprint(r.out, RetryPrompt)
	}
}

// ReadChar returns a line holding exactly one character.
func (r *Reader) ReadChar() byte {
	var v byte
	if !r.readParsed(func(s string) bool {
		if len(s) != 1 {
			return false
		}
		v = s[0]
		return true
	}) {
		return CharEOF
	}
	return v
}

// ReadFloat64 returns a line parsed as a float64.
func (r *Reader) ReadFloat64() float64 {
	var v float64
	if !r.readParsed(func(s string) bool {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		v = f
		return true
	}) {
		return Float64EOF
	}
	return v
}

// ReadFloat32 returns a line parsed as a float32.
func (r *Reader) ReadFloat32() float32 {
	var v float32
	if !r.readParsed(func(s string) bool {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		v = float32(f)
		return true
	}) {
		return Float32EOF
	}
	return v
}

// ReadInt returns a line parsed as an int in [-2^31+1, 2^31-2].
// The range leaves room for the IntEOF sentinel.
func (r *Reader) ReadInt() int {
	var v int
	if !r.readParsed(func(s string) bool {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil || n == math.MaxInt32 || n == math.MinInt32 {
			return false
		}
		v = int(n)
		return true
	}) {
		return IntEOF
	}
	return v
}

// ReadInt64 returns a line parsed as an int64 in [-2^63+1, 2^63-2].
func (r *Reader) ReadInt64() int64 {
	var v int64
	if !r.readParsed(func(s string) bool {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil || n == math.MaxInt64 || n == math.MinInt64 {
			return false
		}
		v = n
		return true
	}) {
		return Int64EOF
	}
	return v
}
