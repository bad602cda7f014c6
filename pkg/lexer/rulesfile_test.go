package lexer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/spicery/marklex/pkg/lexer"
)

func TestDefaultRulesFileRoundTrip(t *testing.T) {
	data, err := DefaultRulesFile().Marshal()
	require.NoError(t, err)

	rules, err := ParseRulesFile(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultRulesFile(), rules)

	config, err := ApplyRulesFile(rules)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestApplyRulesFile(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		rules     []string
		escapable string
		err       string
	}{
		{"empty keeps defaults", "", []string{"heading", "emphasis"}, DefaultEscapable, ""},
		{"reordered", "rules: [emphasis, heading]\n", []string{"emphasis", "heading"}, DefaultEscapable, ""},
		{"subset", "rules: [heading]\n", []string{"heading"}, DefaultEscapable, ""},
		{"escapes", "escapable: \"*_\\\\\"\n", []string{"heading", "emphasis"}, `*_\`, ""},
		{"no escapes", "escapable: \"\"\n", []string{"heading", "emphasis"}, "", ""},
		{"unknown rule", "rules: [heading, list]\n", nil, "", `unknown rule "list"`},
		{"letter escape", "escapable: \"*a\"\n", nil, "", `escapable character 'a' is not ASCII punctuation`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := ParseRulesFile([]byte(tt.yaml))
			require.NoError(t, err)

			config, err := ApplyRulesFile(rules)
			if tt.err != "" {
				assert.EqualError(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rules, config.Rules.Names())
			assert.Equal(t, tt.escapable, config.Escapable)
		})
	}
}

func TestParseRulesFileInvalid(t *testing.T) {
	_, err := ParseRulesFile([]byte("rules: {heading: 1}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadRulesFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("rules: [emphasis]\nescapable: \"*\"\n"), 0o644))

	rules, err := LoadRulesFile(filename)
	require.NoError(t, err)
	config, err := ApplyRulesFile(rules)
	require.NoError(t, err)

	tokens, err := NewWithConfig(`# \#*x*`, config).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []Token{
		para(0), text(`# \#`, 0), emOpen("*", 4), text("x", 5), emClose("*", 6), eof(7),
	}, tokens)

	_, err = LoadRulesFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read rules file")
}
