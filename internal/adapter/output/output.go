// Package output provides output formatters for dialog listings.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/modalstack/internal/model"
)

// Formatter formats dialog summaries for output.
type Formatter interface {
	// Format writes formatted dialogs to the writer.
	Format(w io.Writer, dialogs []model.Summary) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatIDs   FormatType = "ids"
	FormatDmenu FormatType = "dmenu"
)

// FormatTypes returns every supported format.
func FormatTypes() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatIDs, FormatDmenu}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (FormatType, error) {
	for _, f := range FormatTypes() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	names := make([]string, 0, len(FormatTypes()))
	for _, f := range FormatTypes() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown format %q (use %s)", s, strings.Join(names, ", "))
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Custom template for dmenu/plain format
	ShowIndex bool   // Show the "#N" stack position
	ShowTime  bool   // Show relative open time
	Separator string // Field separator for dmenu format

	// Stream writes each Format call as one self-contained record: a JSON
	// line or a YAML document.
	Stream bool
}

// DefaultFormatterOptions returns defaults for listings.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex: true,
		ShowTime:  true,
		Separator: " | ",
	}
}

// NewFormatter creates a formatter for the specified format type. A custom
// template that does not parse is an error.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatIDs:
		return NewIDsFormatter(), nil
	case FormatDmenu:
		return NewDmenuFormatter(opts)
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
