package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateAt(src string, cursor int, mode Mode, stack ...string) *State {
	s := newState(src)
	s.cursor = cursor
	s.mode = mode
	s.stack = stack
	return s
}

func TestHeadingRuleTest(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"# a", true},
		{"#\ta", true},
		{"###### a", true},
		{"####### a", false},
		{"#a", false},
		{"#", false},
		{"a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := stateAt(tt.input, 0, BlockMode)
			assert.Equal(t, tt.want, HeadingRule{}.Test(s))
			assert.Equal(t, 0, s.Cursor(), "Test must not move the cursor")
			assert.Equal(t, BlockMode, s.Mode(), "Test must not change mode")
		})
	}
}

func TestHeadingRuleParse(t *testing.T) {
	s := stateAt("x\n### Three", 2, BlockMode)
	token, err := HeadingRule{}.Parse(s)
	require.NoError(t, err)
	assert.Equal(t, NewHeadingToken(3, 2), token)
	assert.Equal(t, 6, s.Cursor())
	assert.Equal(t, InlineMode, s.Mode())
}

func TestEmphasisRuleParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		stack     []string
		want      Token
		cursor    int
		wantStack []string
	}{
		{"open single", "*a", nil, NewEmphasisStartToken("*", 0), 1, []string{"*"}},
		{"open double", "__a", nil, NewEmphasisStartToken("__", 0), 2, []string{"__"}},
		{"run capped at two", "***", nil, NewEmphasisStartToken("**", 0), 2, []string{"**"}},
		{"close single", "*a", []string{"*"}, NewEmphasisEndToken("*", 0), 1, nil},
		{"single closes without growing", "**", []string{"*"}, NewEmphasisEndToken("*", 0), 1, nil},
		{"close double", "**", []string{"_", "**"}, NewEmphasisEndToken("**", 0), 2, []string{"_"}},
		{"other symbol opens", "_", []string{"*"}, NewEmphasisStartToken("_", 0), 1, []string{"*", "_"}},
		{"double inside single", "**", []string{"_"}, NewEmphasisStartToken("**", 0), 2, []string{"_", "**"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stateAt(tt.input, 0, InlineMode, tt.stack...)
			require.True(t, EmphasisRule{}.Test(s))
			token, err := EmphasisRule{}.Parse(s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
			assert.Equal(t, tt.cursor, s.Cursor())
			assert.Equal(t, tt.wantStack, s.Stack())
		})
	}
}

func TestEmphasisRuleReopen(t *testing.T) {
	s := stateAt("x *", 2, InlineMode, "*", "_")
	_, err := EmphasisRule{}.Parse(s)
	require.ErrorIs(t, err, ErrInvalidEmphasisNesting)
	assert.Equal(t, []string{"*", "_"}, s.Stack(), "stack untouched on error")
}

func TestRulesFind(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, []string{"heading", "emphasis"}, rules.Names())

	s := stateAt("# *", 0, BlockMode)
	assert.Equal(t, HeadingRule{}, rules.Find(s, BlockMode))
	assert.Nil(t, rules.Find(s, InlineMode))

	s = stateAt("# *", 2, InlineMode)
	assert.Equal(t, EmphasisRule{}, rules.Find(s, InlineMode))
	assert.Nil(t, rules.Find(s, BlockMode))
}

// blockStar is a test rule competing with heading for '#'.
type blockStar struct{}

func (blockStar) Name() string { return "star" }
func (blockStar) Mode() Mode { return BlockMode }
func (blockStar) Test(s *State) bool { return s.Peek(0) == '#' }
func (blockStar) Parse(s *State) (Token, error) {
	s.advance(1)
	return NewTextToken("#", s.Cursor()-1), nil
}

func TestRulesPriority(t *testing.T) {
	s := stateAt("# a", 0, BlockMode)
	assert.Equal(t, HeadingRule{}, Rules{HeadingRule{}, blockStar{}}.Find(s, BlockMode))
	assert.Equal(t, blockStar{}, Rules{blockStar{}, HeadingRule{}}.Find(s, BlockMode))
}

func TestRulesByName(t *testing.T) {
	rules, err := RulesByName("emphasis", "heading")
	require.NoError(t, err)
	assert.Equal(t, []string{"emphasis", "heading"}, rules.Names())

	_, err = RulesByName("heading", "table")
	assert.EqualError(t, err, `unknown rule "table"`)

	_, err = RulesByName("heading", "heading")
	assert.EqualError(t, err, `duplicate rule "heading"`)
}
