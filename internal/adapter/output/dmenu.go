package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/modalstack/internal/model"
)

// DmenuFormatter formats dialogs for dmenu/rofi/fuzzel pickers. The ID is
// always the first field so the picked line can be cut back to a target.
type DmenuFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDmenuFormatter creates a new dmenu formatter.
func NewDmenuFormatter(opts FormatterOptions) (*DmenuFormatter, error) {
	f := &DmenuFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("dmenu").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes dialogs in dmenu format (one per line).
func (f *DmenuFormatter) Format(w io.Writer, dialogs []model.Summary) error {
	for i := range dialogs {
		line, err := f.formatLine(&dialogs[i])
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *DmenuFormatter) formatLine(d *model.Summary) (string, error) {
	if f.template != nil {
		var buf strings.Builder
		if err := f.template.Execute(&buf, newTemplateData(d)); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	sep := f.opts.Separator
	if sep == "" {
		sep = " | "
	}

	parts := []string{d.ID}
	if f.opts.ShowIndex && d.Position > 0 {
		parts = append(parts, fmt.Sprintf("#%d", d.Position))
	}
	if d.Content != "" {
		parts = append(parts, d.Content)
	}
	parts = append(parts, d.Size, d.State())
	if f.opts.ShowTime && !d.CreatedAt.IsZero() {
		parts = append(parts, relativeTime(d.CreatedAt))
	}

	return strings.Join(parts, sep), nil
}

// templateData provides data for custom templates.
// Summary fields and State are promoted.
type templateData struct {
	*model.Summary
	RelativeTime string
}

func newTemplateData(d *model.Summary) templateData {
	return templateData{
		Summary:      d,
		RelativeTime: relativeTime(d.CreatedAt),
	}
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			if maxLen <= 0 || len(s) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return s[:maxLen]
			}
			return s[:maxLen-3] + "..."
		},
		"reltime": relativeTime,
		"upper":   strings.ToUpper,
		"short": func(id string) string {
			if len(id) <= 6 {
				return id
			}
			return id[len(id)-6:]
		},
	}
}

// relativeTime returns a human-readable relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}
