package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/modalstack/internal/model"
)

// YAMLFormatter formats dialogs as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes dialogs as a YAML sequence. Streamed output starts each
// call with a document marker.
func (f *YAMLFormatter) Format(w io.Writer, dialogs []model.Summary) error {
	if dialogs == nil {
		dialogs = []model.Summary{}
	}
	data, err := yaml.Marshal(dialogs)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if f.opts.Stream {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
	}
	_, err = w.Write(data)
	return err
}
