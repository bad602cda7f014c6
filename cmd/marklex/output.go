package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"

	"github.com/spicery/marklex/pkg/lexer"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// minValueWidth keeps some of every value visible on narrow terminals.
const minValueWidth = 12

func writeTokens(w io.Writer, format string, tokens []lexer.Token, lex *lexer.Lexer, width int) error {
	switch format {
	case formatJSON:
		return writeJSON(w, tokens)
	case formatYAML:
		return writeYAML(w, tokens)
	case formatTable:
		return writeTable(w, tokens, lex, width)
	}
	return fmt.Errorf("unknown format %q", format)
}

// writeJSON outputs one JSON token object per line.
func writeJSON(w io.Writer, tokens []lexer.Token) error {
	for _, token := range tokens {
		jsonBytes, err := json.Marshal(token)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, tokens []lexer.Token) error {
	if len(tokens) == 0 {
		return nil
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tokens); err != nil {
		return err
	}
	return enc.Close()
}

// writeTable prints an aligned table of position, type, offset and payload.
// Payloads are truncated to fit width when it is known.
func writeTable(w io.Writer, tokens []lexer.Token, lex *lexer.Lexer, width int) error {
	rows := make([][4]string, 0, len(tokens)+1)
	rows = append(rows, [4]string{"POS", "TYPE", "START", "VALUE"})
	for _, token := range tokens {
		rows = append(rows, [4]string{
			lex.PositionOf(token.Start).String(),
			string(token.Type),
			strconv.Itoa(token.Start),
			payload(token),
		})
	}

	var widths [3]int
	for _, row := range rows {
		for i := range widths {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	valueWidth := 0
	if width > 0 {
		valueWidth = width - (widths[0] + widths[1] + widths[2] + 6)
		valueWidth = max(valueWidth, minValueWidth)
	}

	for _, row := range rows {
		value := row[3]
		if valueWidth > 0 && runewidth.StringWidth(value) > valueWidth {
			value = truncate.StringWithTail(value, uint(valueWidth), "…")
		}
		line := padding.String(row[0], uint(widths[0])) + "  " +
			padding.String(row[1], uint(widths[1])) + "  " +
			padding.String(row[2], uint(widths[2])) + "  " +
			value
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

func payload(token lexer.Token) string {
	switch token.Type {
	case lexer.HeadingToken:
		return "level " + strconv.Itoa(token.Level)
	case lexer.TextToken, lexer.EmphasisStartToken, lexer.EmphasisEndToken:
		return strconv.Quote(token.Value)
	}
	return ""
}
