package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/modalstack/internal/model"
)

// JSONFormatter formats dialogs as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes dialogs as a JSON array, indented unless streaming.
func (f *JSONFormatter) Format(w io.Writer, dialogs []model.Summary) error {
	if dialogs == nil {
		dialogs = []model.Summary{}
	}
	encoder := json.NewEncoder(w)
	if !f.opts.Stream {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(dialogs)
}
