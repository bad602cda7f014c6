package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/renameio"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"github.com/spicery/marklex/pkg/lexer"
)

const usage = `marklex - A lexer for a small markdown dialect

Usage:
  marklex [options]

Examples:
  marklex                                  # Read from stdin, write to stdout
  marklex --input notes.md                 # Read from file, write to stdout
  marklex -i notes.md -o tokens.json       # Read from file, write to file
  marklex --rules custom.yaml -i notes.md  # Use a custom rules file
  marklex --make-rules                     # Print the default rules file
  echo "# Title" | marklex -f table        # Print an aligned token table

Tokens are written as one JSON object per line unless --format says otherwise.
With --format auto, a terminal gets a table and anything else gets JSON.

Options:
`

func init() {
	version.SetDefaultModule("github.com/spicery/marklex")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	input, output string
	rulesFile     string
	format        string
	makeRules     bool
	exit0         bool
	verbose       bool
	showVersion   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("marklex", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.input, "input", "i", "", "Input file (defaults to stdin)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (defaults to stdout)")
	flags.StringVar(&opts.rulesFile, "rules", "", "YAML rules file (optional)")
	flags.StringVarP(&opts.format, "format", "f", "auto", "Output format: auto|json|yaml|table")
	flags.BoolVar(&opts.makeRules, "make-rules", false, "Print the default rules file as YAML")
	flags.BoolVar(&opts.exit0, "exit0", false, "Exit with code 0 even on lex errors (suppress stderr)")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log diagnostics to stderr")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}

	if opts.makeRules {
		data, err := lexer.DefaultRulesFile().Marshal()
		if err != nil {
			fmt.Fprintf(stderr, "Error generating default rules: %v\n", err)
			return 1
		}
		if _, err := stdout.Write(data); err != nil {
			fmt.Fprintf(stderr, "Error generating default rules: %v\n", err)
			return 1
		}
		return 0
	}

	// Reject any positional arguments
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flags.Usage()
		return 1
	}

	format, err := resolveFormat(opts.format, opts.output, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	config := lexer.DefaultConfig()
	if opts.rulesFile != "" {
		rules, err := lexer.LoadRulesFile(opts.rulesFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading rules file: %v\n", err)
			return 1
		}
		if config, err = lexer.ApplyRulesFile(rules); err != nil {
			fmt.Fprintf(stderr, "Error applying rules: %v\n", err)
			return 1
		}
	}
	log.Debug("rules loaded", "rules", config.Rules.Names(), "escapable", config.Escapable)

	input, err := readInput(opts.input, stdin, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	lex := lexer.NewWithConfig(input, config)
	tokens, lexErr := lex.Tokenize()
	log.Debug("lexed", "bytes", len(input), "tokens", len(tokens), "format", format)

	// Output tokens even if there was an error
	var out bytes.Buffer
	width := terminalWidth(stdout)
	if err := writeTokens(&out, format, tokens, lex, width); err != nil {
		fmt.Fprintf(stderr, "Encoding error: %v\n", err)
		return 1
	}
	if err := writeOutput(opts.output, out.Bytes(), stdout); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}

	if lexErr != nil {
		if opts.exit0 {
			return 0
		}
		fmt.Fprintf(stderr, "Lex error: %v\n", lexErr)
		return 1
	}
	return 0
}

// resolveFormat turns auto into table for terminals and json otherwise.
func resolveFormat(format, output string, stdout io.Writer) (string, error) {
	switch format {
	case formatJSON, formatYAML, formatTable:
		return format, nil
	case "auto":
		if output == "" && isTerminal(stdout) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, json, yaml or table)", format)
	}
}

func readInput(filename string, stdin io.Reader, log *slog.Logger) (string, error) {
	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if isTerminal(stdin) {
		log.Warn("reading markdown from the terminal, end input with Ctrl-D")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// writeOutput writes to stdout, or atomically replaces the output file.
func writeOutput(filename string, data []byte, stdout io.Writer) error {
	if filename == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := renameio.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("write '%s': %w", filename, err)
	}
	return nil
}

func isTerminal(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// terminalWidth returns the width of a terminal writer, or 0 when unknown.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
