package lexer

import (
	"fmt"
	"strconv"
)

// TokenType represents the different types of tokens.
type TokenType string

const (
	// Block tokens
	HeadingToken   TokenType = "heading"   // Opening of a heading block
	ParagraphToken TokenType = "paragraph" // Implicit start of a run of inline content

	// Inline tokens
	TextToken          TokenType = "text"          // Plain characters, escapes resolved
	EmphasisStartToken TokenType = "emphasisStart" // Opening emphasis delimiter run
	EmphasisEndToken   TokenType = "emphasisEnd"   // Closing emphasis delimiter run

	// Boundaries
	EOLToken TokenType = "EOL"
	EOFToken TokenType = "EOF"
)

// Position represents a line and column position in the source text.
// Both are 1-based; columns count bytes.
type Position struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col" yaml:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token represents a single lexical unit. Tokens are values: the lexer never
// keeps or mutates a token after handing it out.
type Token struct {
	Type  TokenType `json:"type" yaml:"type"`
	Start int       `json:"start" yaml:"start"` // Byte offset of the first source byte covered

	// Heading fields
	Level int `json:"level,omitempty" yaml:"level,omitempty"`

	// Text and emphasis fields
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// NewHeadingToken creates a heading token of the given level (1-6).
func NewHeadingToken(level, start int) Token {
	return Token{Type: HeadingToken, Level: level, Start: start}
}

// NewParagraphToken creates a zero-width paragraph marker.
func NewParagraphToken(start int) Token {
	return Token{Type: ParagraphToken, Start: start}
}

// NewTextToken creates a text token holding the literal (unescaped) value.
func NewTextToken(value string, start int) Token {
	return Token{Type: TextToken, Value: value, Start: start}
}

// NewEmphasisStartToken creates a token for an opening delimiter run.
func NewEmphasisStartToken(run string, start int) Token {
	return Token{Type: EmphasisStartToken, Value: run, Start: start}
}

// NewEmphasisEndToken creates a token for a closing delimiter run.
func NewEmphasisEndToken(run string, start int) Token {
	return Token{Type: EmphasisEndToken, Value: run, Start: start}
}

// NewEOLToken creates a token for the newline byte at start.
func NewEOLToken(start int) Token {
	return Token{Type: EOLToken, Start: start}
}

// NewEOFToken creates the end of input token; start is the source length.
func NewEOFToken(start int) Token {
	return Token{Type: EOFToken, Start: start}
}

// String renders the token compactly, e.g. heading(1)@0 or text("Body")@9.
func (t Token) String() string {
	switch t.Type {
	case HeadingToken:
		return fmt.Sprintf("%s(%d)@%d", t.Type, t.Level, t.Start)
	case TextToken, EmphasisStartToken, EmphasisEndToken:
		return fmt.Sprintf("%s(%s)@%d", t.Type, strconv.Quote(t.Value), t.Start)
	default:
		return fmt.Sprintf("%s@%d", t.Type, t.Start)
	}
}
