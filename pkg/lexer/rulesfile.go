package lexer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file.
type RulesFile struct {
	// Rules lists built-in rule names in priority order.
	Rules []string `yaml:"rules"`
	// Escapable overrides the punctuation a backslash escapes.
	Escapable *string `yaml:"escapable,omitempty"`
}

// DefaultRulesFile describes the default configuration as a rules file.
func DefaultRulesFile() *RulesFile {
	escapable := DefaultEscapable
	return &RulesFile{
		Rules:     DefaultRules().Names(),
		Escapable: &escapable,
	}
}

// LoadRulesFile loads and parses a YAML rules file.
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRulesFile(data)
	if err != nil {
		return nil, fmt.Errorf("rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRulesFile parses rules file YAML.
func ParseRulesFile(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &rules, nil
}

// ApplyRulesFile builds a lexer configuration from a rules file, starting
// from the defaults. An empty rule list keeps the default rules.
func ApplyRulesFile(rules *RulesFile) (*Config, error) {
	config := DefaultConfig()

	if len(rules.Rules) > 0 {
		registry, err := RulesByName(rules.Rules...)
		if err != nil {
			return nil, err
		}
		config.Rules = registry
	}

	if rules.Escapable != nil {
		if err := validateEscapable(*rules.Escapable); err != nil {
			return nil, err
		}
		config.Escapable = *rules.Escapable
	}

	return config, nil
}

// validateEscapable admits ASCII punctuation only.
func validateEscapable(escapable string) error {
	for i := 0; i < len(escapable); i++ {
		if c := escapable[i]; !strings.ContainsRune(DefaultEscapable, rune(c)) {
			return fmt.Errorf("escapable character %q is not ASCII punctuation", c)
		}
	}
	return nil
}

// Marshal renders the rules file as YAML.
func (rules *RulesFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	return data, nil
}
