package formatter

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/tidwall/pretty"

	"github.com/mcncl/prettyjson/internal/config"
)

// Formatter renders encoded JSON for display
type Formatter struct {
	indent   string
	sortKeys bool
	color    bool
	width    int
}

// NewFormatter creates a new Formatter with two-space indentation
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig())
}

// NewFormatterWithConfig creates a new Formatter from output settings
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{
		indent:   cfg.IndentString(),
		sortKeys: cfg.Output.SortKeys,
		color:    cfg.Output.Color,
		width:    pretty.DefaultOptions.Width,
	}
}

// SetColor enables or disables terminal colors
func (f *Formatter) SetColor(enabled bool) {
	f.color = enabled
}

// Format takes a JSON document and returns it indented (or compacted when no
// indent is configured), terminated by a single newline
func (f *Formatter) Format(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if !jsontext.Value(data).IsValid() {
		return nil, fmt.Errorf("failed to format JSON: input is not valid JSON")
	}

	var out []byte
	if f.indent == "" {
		out = data
		if f.sortKeys {
			out = pretty.PrettyOptions(out, &pretty.Options{SortKeys: true})
		}
		out = append(pretty.Ugly(out), '\n')
	} else {
		out = pretty.PrettyOptions(data, &pretty.Options{
			Width:    f.width,
			Indent:   f.indent,
			SortKeys: f.sortKeys,
		})
	}

	if f.color {
		out = pretty.Color(out, pretty.TerminalStyle)
	}
	return out, nil
}
