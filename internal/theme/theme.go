package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jmylchreest/modalstack/internal/model"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Stylesheet is the resolved CSS for one theme.
type Stylesheet struct {
	Name     string
	Path     string // empty for bundled stylesheets
	CSS      string
	IsBundle bool
}

// ThemesDir returns the directory users may drop override stylesheets into.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "modalstack", "themes"), nil
}

// LoadStylesheet resolves the stylesheet for t.
//
// A file named after the theme in dir (e.g. dark.css) overrides the bundled
// one. Pass an empty dir to use bundled stylesheets only. @import statements
// are inlined in both cases.
func LoadStylesheet(t model.Theme, dir string) Stylesheet {
	name := StylesheetName(t)

	if dir != "" {
		path := filepath.Join(dir, name+".css")
		if data, err := os.ReadFile(path); err == nil {
			return Stylesheet{
				Name: name,
				Path: path,
				CSS:  ProcessImports(string(data), dir, nil),
			}
		}
	}

	css, ok := GetEmbeddedTheme(name)
	if !ok {
		css, _ = GetEmbeddedTheme(StylesheetName(model.ThemeDark))
	}
	return Stylesheet{
		Name:     name,
		CSS:      ProcessImports(css, "", nil),
		IsBundle: true,
	}
}

// ProcessImports resolves and inlines @import statements in CSS.
// Imports are resolved relative to baseDir first, then against the bundled
// partials and stylesheets. The seen map prevents circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		key := importPath
		if baseDir != "" && !filepath.IsAbs(importPath) {
			key = filepath.Join(baseDir, importPath)
		}
		if seen[key] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[key] = true

		if baseDir != "" || filepath.IsAbs(importPath) {
			if data, err := os.ReadFile(key); err == nil {
				return "/* imported: " + importPath + " */\n" +
					ProcessImports(string(data), filepath.Dir(key), seen)
			}
		}

		baseName := filepath.Base(importPath)
		if strings.HasPrefix(baseName, "_") {
			if partial, found := GetEmbeddedPartial(baseName); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(partial, "", seen)
			}
		}
		if bundled, found := GetEmbeddedTheme(strings.TrimSuffix(baseName, ".css")); found {
			return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(bundled, "", seen)
		}
		return "/* import failed: " + importPath + " */"
	})
}
