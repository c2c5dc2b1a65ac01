package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/mcncl/prettyjson/internal/analyzer"
	"github.com/mcncl/prettyjson/internal/config"
	"github.com/mcncl/prettyjson/internal/errors"
	"github.com/mcncl/prettyjson/internal/formatter"
	"github.com/mcncl/prettyjson/internal/generator"
	"github.com/mcncl/prettyjson/internal/jsondoc"
	"github.com/mcncl/prettyjson/internal/models"
	"github.com/mcncl/prettyjson/internal/parser"
	"github.com/mcncl/prettyjson/internal/prettyprint"
	"github.com/mcncl/prettyjson/internal/units"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input metrics file (YAML or JSON). If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output JSON file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to config file. Defaults to the nearest .prettyjson.yml." short:"c" type:"path"`
	Raw         bool   `help:"Write numbers raw instead of pretty-printing them." short:"r"`
	KeyCase     string `help:"Case for output keys: original, snake, camel, lower_camel, kebab or screaming_snake."`
	Indent      int    `help:"Spaces per indent level, 0 for compact output. Defaults to the config value." default:"-1"`
	SortKeys    bool   `help:"Sort output keys." short:"s"`
	Color       bool   `help:"Colorize output when writing to a terminal."`
	IncludeRaw  bool   `help:"Also emit the raw number next to every pretty-printed value."`
	ListUnits   bool   `help:"List supported units and exit."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("prettyjson"),
		kong.Description("Render metrics as JSON, with human-readable units"),
		kong.UsageOnError(),
	)

	// No arguments means interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("prettyjson version %s\n", Version)
		return
	}

	if CLI.ListUnits {
		if err := listUnits(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, configPath, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// dev.debug in the config file enables debug logging as well as --debug
	logger := newLogger(os.Stderr, cfg.Dev.Debug)
	if configPath != "" {
		logger.Debug("using config file", "path", configPath)
	}

	err = run(&Context{Debug: cfg.Dev.Debug, Config: cfg, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		logger.Debug("run failed", "error", err)

		fmt.Fprintf(os.Stderr, "\nFor help, run: prettyjson --help\n")
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config file (explicit or discovered) and applies CLI
// flags on top. It also returns the path of the file used, if any.
func loadConfig() (*config.Config, string, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	overrides := config.CLIOverrides{
		KeyCase: CLI.KeyCase,
		Debug:   CLI.Debug,
	}
	if CLI.Raw {
		overrides.Raw = &CLI.Raw
	}
	if CLI.Indent >= 0 {
		overrides.Indent = &CLI.Indent
	}
	if CLI.SortKeys {
		overrides.SortKeys = &CLI.SortKeys
	}
	if CLI.Color {
		overrides.Color = &CLI.Color
	}
	if CLI.IncludeRaw {
		overrides.IncludeRaw = &CLI.IncludeRaw
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, "", err
	}
	return cfg, configPath, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := ctx.Logger
	if logger == nil {
		logger = newLogger(io.Discard, false)
	}

	// 1. Parse metric input
	set, err := parseInput()
	if err != nil {
		return err
	}
	logger.Debug("parsed input", "metrics", len(set.Metrics))

	// 2. Resolve units
	analyzed, err := analyzer.NewAnalyzerWithConfig(cfg).Analyze(set)
	if err != nil {
		return err
	}
	for _, m := range analyzed.Metrics {
		logger.Debug("resolved unit", "metric", m.Name, "unit", m.Unit, "source", m.Source)
	}

	// 3. Build the JSON document
	doc, err := generator.NewGeneratorWithConfig(cfg).Generate(analyzed)
	if err != nil {
		return err
	}
	logger.Debug("built document",
		"metrics", len(analyzed.Metrics),
		"strings", doc.Strings(),
		"string_bytes", humanize.IBytes(uint64(doc.Allocated())))

	// 4. Render it
	var buf bytes.Buffer
	if err := doc.Encode(&buf, jsondoc.EncodeOptions{}); err != nil {
		return errors.NewFormatError("failed to encode document", err)
	}
	f := formatter.NewFormatterWithConfig(cfg)
	f.SetColor(cfg.Output.Color && CLI.Output == "" && isTerminal(os.Stdout))
	out, err := f.Format(buf.Bytes())
	if err != nil {
		return errors.NewFormatError("failed to format JSON output", err)
	}

	// 5. Output the result
	return writeOutput(out)
}

// parseInput reads metrics from file or stdin
func parseInput() (models.MetricSet, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	if isTerminal(os.Stdin) {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return models.MetricSet{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.MetricSet{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return models.MetricSet{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(data))
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// writeOutput writes JSON to file or stdout
func writeOutput(data []byte) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, data, 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "JSON written to %s\n", CLI.Output)
		return nil
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste metrics and finish with Ctrl+D (EOF)
func readInteractiveInput() (models.MetricSet, error) {
	fmt.Fprintln(os.Stderr, "prettyjson Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste metrics as YAML or JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.MetricSet{}, errors.NewInputError("error reading input", err)
		}
	}

	input := builder.String()
	if strings.TrimSpace(input) == "" {
		return models.MetricSet{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing metrics...")
	return parser.ParseString(input)
}

// listUnits prints every unit with a sample rendering
func listUnits(w io.Writer) error {
	samples := map[units.Unit]float64{
		units.None:           1048576,
		units.Count:          12500,
		units.CountPerSecond: 3200,
		units.CPUTicks:       4500000,
		units.Bytes:          1048576,
		units.BytesPerSecond: 2048,
		units.TimeNS:         1500,
		units.TimeUS:         2500,
		units.TimeMS:         1002,
		units.TimeS:          90,
		units.DoubleValue:    3.14159,
		units.BasisPoints:    1234,
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tSAMPLE\tRENDERED")
	for _, u := range units.All() {
		sample := samples[u]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u, prettyprint.Print(sample, units.None), prettyprint.Print(sample, u))
	}
	return tw.Flush()
}
