package theme

import (
	"embed"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/modalstack/internal/model"
)

// EmbeddedThemes contains all bundled stylesheets.
//
//go:embed themes/*.css
var EmbeddedThemes embed.FS

// BundledThemes lists the embedded stylesheet names, one per model.Theme.
var BundledThemes = []string{"dark", "light"}

// GetEmbeddedTheme retrieves a bundled stylesheet by name, unprocessed.
func GetEmbeddedTheme(name string) (string, bool) {
	data, err := EmbeddedThemes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// GetEmbeddedPartial retrieves a bundled partial (files starting with _).
func GetEmbeddedPartial(name string) (string, bool) {
	if !strings.HasPrefix(name, "_") {
		name = "_" + name
	}
	if !strings.HasSuffix(name, ".css") {
		name = name + ".css"
	}
	data, err := EmbeddedThemes.ReadFile("themes/" + name)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedThemes returns names of all embedded stylesheets, excluding partials.
func ListEmbeddedThemes() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "themes")
	if err != nil {
		return BundledThemes
	}

	var themes []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") {
			continue
		}
		if ext := filepath.Ext(name); ext == ".css" {
			themes = append(themes, strings.TrimSuffix(name, ext))
		}
	}
	return themes
}

// StylesheetName returns the stylesheet name used for t.
func StylesheetName(t model.Theme) string {
	return t.String()
}
