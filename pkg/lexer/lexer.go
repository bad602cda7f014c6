package lexer

import (
	"iter"
	"strings"
)

// DefaultEscapable is the set of punctuation that a backslash escapes.
const DefaultEscapable = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Config holds the rules and escape set a Lexer runs with.
type Config struct {
	Rules     Rules
	Escapable string
}

// DefaultConfig returns the built-in rules and escape set.
func DefaultConfig() *Config {
	return &Config{
		Rules:     DefaultRules(),
		Escapable: DefaultEscapable,
	}
}

// Lexer produces the token stream for one source text. It is a pull-based
// generator: each call to Next does bounded work and returns one token.
// A Lexer must not be used from more than one goroutine.
type Lexer struct {
	state     *State
	rules     Rules
	escapable [256]bool
	prev      TokenType
	err       error // sticky, once set every Next returns it
}

// New creates a lexer with the default configuration.
func New(src string) *Lexer {
	return NewWithConfig(src, DefaultConfig())
}

// NewWithConfig creates a lexer with custom rules and escape set.
// A nil config means DefaultConfig.
func NewWithConfig(src string, config *Config) *Lexer {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Lexer{
		state: newState(src),
		rules: config.Rules,
	}
	for i := 0; i < len(config.Escapable); i++ {
		l.escapable[config.Escapable[i]] = true
	}
	return l
}

// State exposes the session state for inspection.
func (l *Lexer) State() *State { return l.state }

// PositionOf converts a token offset into a line and column.
func (l *Lexer) PositionOf(offset int) Position {
	return l.state.PositionOf(offset)
}

// Next returns the next token. After EOF it fails with ErrIteratorExhausted;
// after any failure it keeps returning that failure.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	token, err := l.next()
	if err != nil {
		l.err = err
		return Token{}, err
	}
	l.prev = token.Type
	return token, nil
}

func (l *Lexer) next() (Token, error) {
	s := l.state
	if s.cursor > s.length {
		return Token{}, ErrIteratorExhausted
	}

	if s.AtEnd() {
		if len(s.stack) > 0 {
			return Token{}, &UnclosedError{Runs: s.Stack(), Pos: s.PositionOf(s.cursor)}
		}
		start := s.cursor
		s.cursor = s.length + 1
		return NewEOFToken(start), nil
	}

	if s.Peek(0) == '\n' {
		start := s.cursor
		s.advance(1)
		// a blank line ends the paragraph
		if l.prev == EOLToken {
			s.setMode(BlockMode)
		}
		return NewEOLToken(start), nil
	}

	if s.mode == BlockMode {
		return l.parseBlock()
	}
	return l.parseInline()
}

func (l *Lexer) parseBlock() (Token, error) {
	s := l.state
	if rule := l.rules.Find(s, BlockMode); rule != nil {
		return l.apply(rule)
	}
	// anything that is not a block construct starts a paragraph
	s.setMode(InlineMode)
	return NewParagraphToken(s.cursor), nil
}

func (l *Lexer) parseInline() (Token, error) {
	s := l.state
	if rule := l.rules.Find(s, InlineMode); rule != nil {
		return l.apply(rule)
	}
	return l.parseText(), nil
}

// apply runs a matched rule, failing if it did not consume any input.
func (l *Lexer) apply(rule Rule) (Token, error) {
	s := l.state
	start := s.cursor
	token, err := rule.Parse(s)
	if err != nil {
		return Token{}, err
	}
	if s.cursor <= start {
		return Token{}, &ProgressError{Rule: rule.Name(), Start: start, Pos: s.PositionOf(start)}
	}
	return token, nil
}

// parseText consumes plain bytes up to a newline, the end of input, or the
// next position where an inline rule applies. Escaped punctuation contributes
// only the escaped byte. Unescaped runs are sliced from the source; the
// builder is only used once an escape splits the value.
func (l *Lexer) parseText() Token {
	s := l.state
	start := s.cursor
	segment := start
	var value strings.Builder
	escaped := false

	for !s.AtEnd() {
		c := s.Peek(0)
		if c == '\n' {
			break
		}

		if next := s.Peek(1); c == '\\' && l.escapable[next] {
			value.WriteString(s.src[segment:s.cursor])
			value.WriteByte(next)
			escaped = true
			s.advance(2)
			segment = s.cursor
			continue
		}

		if s.cursor > start && l.rules.Find(s, InlineMode) != nil {
			break
		}

		s.advance(1)
	}

	if !escaped {
		return NewTextToken(s.src[start:s.cursor], start)
	}
	value.WriteString(s.src[segment:s.cursor])
	return NewTextToken(value.String(), start)
}

// Tokenize runs the lexer to completion. The returned tokens end with EOF on
// success; on failure they are the tokens produced before the error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for token, err := range l.All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// All iterates the remaining tokens. Iteration ends after EOF, or after
// yielding the first error.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			token, err := l.Next()
			if !yield(token, err) || err != nil || token.Type == EOFToken {
				return
			}
		}
	}
}

// Tokenize lexes src with the default configuration.
func Tokenize(src string) ([]Token, error) {
	return New(src).Tokenize()
}
