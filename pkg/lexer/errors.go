package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidEmphasisNesting is reported when a delimiter run is reopened
	// while the same run is already open further down the stack.
	ErrInvalidEmphasisNesting = errors.New("invalid emphasis nesting")

	// ErrUnclosedEmphasis is reported at end of input when delimiter runs are
	// still open.
	ErrUnclosedEmphasis = errors.New("unclosed emphasis")

	// ErrNoProgress is reported when a rule's Parse consumed no input.
	ErrNoProgress = errors.New("rule consumed no input")

	// ErrIteratorExhausted is returned by Next once EOF has been produced.
	ErrIteratorExhausted = errors.New("lexer exhausted: EOF already returned")
)

// NestingError describes a delimiter run that cannot be opened because it is
// already open.
type NestingError struct {
	Run   string
	Start int
	Pos   Position
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %v %s",
		e.Pos.Line, e.Pos.Col, ErrInvalidEmphasisNesting, strconv.Quote(e.Run))
}

func (e *NestingError) Unwrap() error { return ErrInvalidEmphasisNesting }

// UnclosedError lists the delimiter runs still open at end of input,
// outermost first.
type UnclosedError struct {
	Runs []string
	Pos  Position
}

func (e *UnclosedError) Error() string {
	quoted := make([]string, len(e.Runs))
	for i, run := range e.Runs {
		quoted[i] = strconv.Quote(run)
	}
	return fmt.Sprintf("lex error at line %d, column %d: %v %s",
		e.Pos.Line, e.Pos.Col, ErrUnclosedEmphasis, strings.Join(quoted, ", "))
}

func (e *UnclosedError) Unwrap() error { return ErrUnclosedEmphasis }

// ProgressError names a rule whose Parse left the cursor where it was.
type ProgressError struct {
	Rule  string
	Start int
	Pos   Position
}

func (e *ProgressError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s %v",
		e.Pos.Line, e.Pos.Col, strconv.Quote(e.Rule), ErrNoProgress)
}

func (e *ProgressError) Unwrap() error { return ErrNoProgress }
