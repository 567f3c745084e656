package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/modalstack/internal/model"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"0", 0},
		{"", 0},
		{"30s", 30 * time.Second},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
}

func TestParseFilter_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"missing operator", "content"},
		{"unknown field", "urgency=high"},
		{"bad size", "size=huge"},
		{"bad state", "state=gone"},
		{"ordered string field", "content>demo"},
		{"contains on size", "size~large"},
		{"bad regex", "content~=("},
		{"bad age", "age>soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestParseFilter_Empty(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Empty(t, f.Conditions)
	assert.True(t, f.Match(model.Summary{}))
}

func TestFilterWithExpr(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	dialogs := []model.Summary{
		{ID: "A", Content: "demo.Welcome", Size: "small", Color: "default", BackgroundEffect: "dim",
			Visible: true, CreatedAt: now.Add(-time.Minute)},
		{ID: "B", Content: "demo.Settings", Size: "large", Color: "info", BackgroundEffect: "none",
			Visible: true, Resizing: true, CreatedAt: now.Add(-10 * time.Second)},
		{ID: "C", Content: "demo.Confirm", Size: "extra-large", Color: "error", BackgroundEffect: "none",
			Removing: true, CreatedAt: now},
	}

	tests := []struct {
		expr string
		want []string
	}{
		{"content=demo.welcome", []string{"A"}},
		{"content~demo", []string{"A", "B", "C"}},
		{"content~=^demo\\.S", []string{"B"}},
		{"state!=removing", []string{"A", "B"}},
		{"state=resizing", []string{"B"}},
		{"size>=large", []string{"B", "C"}},
		{"size<medium", []string{"A"}},
		{"effect=none,color=error", []string{"C"}},
		{"age>30s", []string{"A"}},
		{"age<=10s", []string{"B", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := ParseFilter(tt.expr)
			require.NoError(t, err)
			f.now = func() time.Time { return now }

			var ids []string
			for _, d := range FilterWithExpr(dialogs, f) {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Len(t, FilterWithExpr(dialogs, nil), 3)
}
