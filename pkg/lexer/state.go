package lexer

import (
	"slices"
	"strings"
)

// Mode is the lexer sub-state deciding which rules may apply.
type Mode string

const (
	BlockMode  Mode = "block"  // Structural constructs like headings
	InlineMode Mode = "inline" // Text-level constructs like emphasis
)

// State is the mutable state of one lexing session. It is owned by exactly
// one Lexer and never shared. Rules observe it through the exported read
// methods; only rule Parse implementations mutate it.
type State struct {
	src    string
	length int
	cursor int // 0 <= cursor <= length+1, never decreases
	mode   Mode
	stack  []string // open delimiter runs, innermost last
}

func newState(src string) *State {
	return &State{
		src:    src,
		length: len(src),
		mode:   BlockMode,
	}
}

// Cursor returns the offset of the next unconsumed byte.
func (s *State) Cursor() int { return s.cursor }

// Len returns the length of the source in bytes.
func (s *State) Len() int { return s.length }

// Mode returns the current lexing mode.
func (s *State) Mode() Mode { return s.mode }

// Source returns the full source text.
func (s *State) Source() string { return s.src }

// At returns the byte at offset i, or 0 when i is outside the source.
func (s *State) At(i int) byte {
	if i < 0 || i >= s.length {
		return 0
	}
	return s.src[i]
}

// Peek returns the byte n positions after the cursor, or 0 past the end.
func (s *State) Peek(n int) byte {
	return s.At(s.cursor + n)
}

// AtEnd reports whether every byte of the source has been consumed.
func (s *State) AtEnd() bool { return s.cursor >= s.length }

// Stack returns a copy of the open delimiter runs, outermost first.
func (s *State) Stack() []string {
	return append([]string(nil), s.stack...)
}

// Top returns the innermost open delimiter run, or "" if none is open.
func (s *State) Top() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1]
}

// PositionOf converts a byte offset into a 1-based line and column.
// Offsets past the end are clamped to the end of the source.
func (s *State) PositionOf(offset int) Position {
	if offset > s.length {
		offset = s.length
	}
	if offset < 0 {
		offset = 0
	}
	before := s.src[:offset]
	line := strings.Count(before, "\n") + 1
	col := offset - strings.LastIndexByte(before, '\n')
	return Position{Line: line, Col: col}
}

func (s *State) advance(n int) {
	s.cursor += n
}

func (s *State) setMode(mode Mode) {
	s.mode = mode
}

func (s *State) push(run string) {
	s.stack = append(s.stack, run)
}

func (s *State) pop() string {
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

func (s *State) isOpen(run string) bool {
	return slices.Contains(s.stack, run)
}
