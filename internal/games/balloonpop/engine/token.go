// Package engine implements the balloon pop game state: board snapshots,
// cluster popping, undo history and gravity.
// It has no dependencies on the platform so it can be driven by the TUI,
// the classic console loop, or tests alike.
package engine

// Token is the content of a single board cell.
// Tokens are stored as one byte per cell using the same symbols the text
// renderer prints.
type Token byte

const (
	// Invalid is returned for out-of-range lookups. It is never stored.
	Invalid Token = 0

	None   Token = '.'
	Red    Token = '^'
	Blue   Token = '='
	Green  Token = 'o'
	Yellow Token = '+'
)

// PaletteSize is the number of balloon colors.
const PaletteSize = 4

var palette = [PaletteSize]Token{Red, Blue, Green, Yellow}

// Palette returns the balloon colors in fill order.
func Palette() []Token {
	p := palette
	return p[:]
}

// IsBalloon reports whether t is one of the palette colors.
func (t Token) IsBalloon() bool {
	switch t {
	case Red, Blue, Green, Yellow:
		return true
	}
	return false
}

// Valid reports whether t may be stored in a cell (a balloon or None).
func (t Token) Valid() bool {
	return t == None || t.IsBalloon()
}

// String returns a human-readable name for the token.
func (t Token) String() string {
	switch t {
	case None:
		return "none"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	default:
		return "invalid"
	}
}

// Char returns the symbol used by the text renderer.
func (t Token) Char() rune {
	if !t.Valid() {
		return '?'
	}
	return rune(t)
}

// ParseToken converts a board symbol to a Token.
// A space is accepted as an alias for None.
func ParseToken(r rune) (Token, bool) {
	if r == ' ' {
		return None, true
	}
	if r > 0xff {
		return Invalid, false
	}
	t := Token(r)
	if !t.Valid() {
		return Invalid, false
	}
	return t, true
}
