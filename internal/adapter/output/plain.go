package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/modalstack/internal/model"
)

// PlainFormatter formats dialogs as aligned text columns.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes dialogs as plain text, one line each.
func (f *PlainFormatter) Format(w io.Writer, dialogs []model.Summary) error {
	for i := range dialogs {
		if err := f.formatDialog(w, &dialogs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatDialog(w io.Writer, d *model.Summary) error {
	if f.template != nil {
		if err := f.template.Execute(w, newTemplateData(d)); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	var sb strings.Builder

	if f.opts.ShowIndex && d.Position > 0 {
		fmt.Fprintf(&sb, "#%-2d ", d.Position)
	}

	content := d.Content
	if content == "" {
		content = "-"
	}
	fmt.Fprintf(&sb, "%s  %-14s %-11s %-8s %-5s %-8s", d.ID, content, d.Size, d.Color, d.BackgroundEffect, d.State())

	if f.opts.ShowTime && !d.CreatedAt.IsZero() {
		sb.WriteString("  " + relativeTime(d.CreatedAt))
	}

	if d.Size == model.SizeCustom.String() && d.CustomSize != "" {
		fmt.Fprintf(&sb, "  [%s]", d.CustomSize)
	}

	_, err := io.WriteString(w, strings.TrimRight(sb.String(), " ")+"\n")
	return err
}

// FormatField outputs a specific field of a dialog.
func FormatField(d *model.Summary, field string) string {
	switch strings.ToLower(field) {
	case "id":
		return d.ID
	case "content", "ref":
		return d.Content
	case "size":
		return d.Size
	case "custom_size", "custom-size":
		return d.CustomSize
	case "color", "colour":
		return d.Color
	case "effect", "background_effect":
		return d.BackgroundEffect
	case "state":
		return d.State()
	default:
		return d.ID
	}
}
