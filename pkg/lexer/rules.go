package lexer

import (
	"fmt"
	"strings"
)

// Rule recognises one lexical construct in one mode.
//
// Test must be a pure lookahead from the cursor. Parse is only called after
// Test succeeded against the same state; it must consume at least one byte
// and return exactly one token.
type Rule interface {
	Name() string
	Mode() Mode
	Test(s *State) bool
	Parse(s *State) (Token, error)
}

// Rules is an ordered rule registry. Order is priority: when more than one
// rule of a mode could apply at the cursor, the earliest registered wins.
type Rules []Rule

// DefaultRules returns the built-in registry: heading, then emphasis.
func DefaultRules() Rules {
	return Rules{HeadingRule{}, EmphasisRule{}}
}

// builtinRules maps rule names, as used in rules files, to rules.
var builtinRules = map[string]Rule{
	"heading":  HeadingRule{},
	"emphasis": EmphasisRule{},
}

// RulesByName builds a registry from built-in rule names in priority order.
func RulesByName(names ...string) (Rules, error) {
	rules := make(Rules, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		rule, ok := builtinRules[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate rule %q", name)
		}
		seen[name] = true
		rules = append(rules, rule)
	}
	return rules, nil
}

// Names returns the rule names in priority order.
func (rules Rules) Names() []string {
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name()
	}
	return names
}

// Find returns the first rule of the given mode whose Test succeeds, or nil.
func (rules Rules) Find(s *State, mode Mode) Rule {
	for _, rule := range rules {
		if rule.Mode() == mode && rule.Test(s) {
			return rule
		}
	}
	return nil
}

// maxHeadingLevel is the deepest heading recognised; longer # runs are text.
const maxHeadingLevel = 6

// HeadingRule recognises "#" runs of length 1-6 followed by a space or tab.
type HeadingRule struct{}

func (HeadingRule) Name() string { return "heading" }
func (HeadingRule) Mode() Mode { return BlockMode }

func (HeadingRule) Test(s *State) bool {
	level := headingLevel(s)
	if level == 0 || level > maxHeadingLevel {
		return false
	}
	next := s.Peek(level)
	return next == ' ' || next == '\t'
}

func (HeadingRule) Parse(s *State) (Token, error) {
	start := s.Cursor()
	level := headingLevel(s)
	// the run, plus exactly one separator
	s.advance(level + 1)
	s.setMode(InlineMode)
	return NewHeadingToken(level, start), nil
}

// headingLevel counts the run of '#' at the cursor.
func headingLevel(s *State) int {
	level := 0
	for s.Peek(level) == '#' {
		level++
	}
	return level
}

// emphasisSymbols are the bytes that form delimiter runs.
const emphasisSymbols = "*_"

// EmphasisRule matches delimiter runs of '*' or '_' against the delimiter
// stack. It is a plain LIFO matcher: runs are one or two symbols long, a run
// equal to the innermost open run closes it, any other run opens. There is no
// left/right flanking analysis.
type EmphasisRule struct{}

func (EmphasisRule) Name() string { return "emphasis" }
func (EmphasisRule) Mode() Mode { return InlineMode }

func (EmphasisRule) Test(s *State) bool {
	c := s.Peek(0)
	return c != 0 && strings.IndexByte(emphasisSymbols, c) >= 0
}

func (EmphasisRule) Parse(s *State) (Token, error) {
	start := s.Cursor()
	symbol := s.Peek(0)
	top := s.Top()

	// grow the run one symbol at a time, so that a single symbol closing
	// a single-symbol run never absorbs the next symbol
	n := 0
	for !s.AtEnd() && s.Peek(0) == symbol {
		s.advance(1)
		n++
		run := s.src[start : start+n]
		if run == top || n >= 2 {
			break
		}
	}
	run := s.src[start : start+n]

	if run == top {
		s.pop()
		return NewEmphasisEndToken(run, start), nil
	}
	if s.isOpen(run) {
		return Token{}, &NestingError{Run: run, Start: start, Pos: s.PositionOf(start)}
	}
	s.push(run)
	return NewEmphasisStartToken(run, start), nil
}
