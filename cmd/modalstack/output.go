package main

import (
	"fmt"
	"io"

	"github.com/jmylchreest/modalstack/internal/adapter/output"
	"github.com/jmylchreest/modalstack/internal/model"
)

// snapshotWriter prints successive stack snapshots. JSON snapshots are one
// line each, YAML snapshots are separate documents, plain snapshots get a
// numbered header.
type snapshotWriter struct {
	w         io.Writer
	format    output.FormatType
	formatter output.Formatter
	seq       int
}

func newSnapshotWriter(w io.Writer, format string) (*snapshotWriter, error) {
	ft, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	opts := output.DefaultFormatterOptions()
	opts.Stream = true
	f, err := output.NewFormatter(ft, opts)
	if err != nil {
		return nil, err
	}
	return &snapshotWriter{w: w, format: ft, formatter: f}, nil
}

// Write prints one snapshot.
func (s *snapshotWriter) Write(dialogs []model.Dialog) error {
	s.seq++
	if s.format == output.FormatPlain {
		if _, err := fmt.Fprintf(s.w, "# change %d: %d dialog(s)\n", s.seq, len(dialogs)); err != nil {
			return err
		}
	}
	return s.formatter.Format(s.w, model.Summaries(dialogs))
}
