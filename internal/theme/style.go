package theme

import (
	"strings"

	"github.com/jmylchreest/modalstack/internal/model"
)

const baseStyle = "border-radius: 0.5rem; box-shadow: 0 10px 15px -3px rgba(0, 0, 0, 0.1), 0 4px 6px -2px rgba(0, 0, 0, 0.05); border: 1px solid; overflow: hidden; position: relative; display: flex; flex-direction: column;"

const resizeTransition = " transition: width 0.3s ease-in-out, height 0.3s ease-in-out, min-width 0.3s ease-in-out, min-height 0.3s ease-in-out, max-width 0.3s ease-in-out, max-height 0.3s ease-in-out;"

// Accent colors by dialog color.
var accentColors = map[model.Color]string{
	model.ColorSuccess: "#10b981",
	model.ColorError:   "#ef4444",
	model.ColorWarning: "#f59e0b",
	model.ColorInfo:    "#8b5cf6",
	model.ColorPrimary: "#3b82f6",
}

// Dimensions by size. Custom falls back to Medium when no descriptor is set.
var sizeStyles = map[model.Size]string{
	model.SizeSmall:      " width: 350px; min-width: 300px; min-height: 200px; max-height: 60vh;",
	model.SizeMedium:     " width: 500px; min-width: 400px; min-height: 300px; max-height: 70vh;",
	model.SizeLarge:      " width: 700px; min-width: 600px; min-height: 400px; max-height: 80vh;",
	model.SizeExtraLarge: " width: 900px; min-width: 800px; min-height: 500px; max-height: 85vh;",
}

// Palette is the set of colors a theme paints dialogs with.
type Palette struct {
	Background  string
	Foreground  string
	Border      string
	CloseButton string
}

// PaletteFor returns the palette of t. Unknown themes use the dark palette.
func PaletteFor(t model.Theme) Palette {
	if t == model.ThemeLight {
		return Palette{
			Background:  "white",
			Foreground:  "#1f2937",
			Border:      "#e5e7eb",
			CloseButton: "#6b7280",
		}
	}
	return Palette{
		Background:  "#1f2937",
		Foreground:  "#f9fafb",
		Border:      "#374151",
		CloseButton: "#9ca3af",
	}
}

// StyleFor returns the inline CSS for d under theme t.
func StyleFor(t model.Theme, d model.Dialog) string {
	p := PaletteFor(t)

	var b strings.Builder
	b.WriteString(baseStyle)
	b.WriteString(resizeTransition)
	b.WriteString(SizeStyle(d))
	b.WriteString(" background: ")
	b.WriteString(p.Background)
	b.WriteString("; border-color: ")
	b.WriteString(BorderColor(d, p.Border))
	b.WriteString("; color: ")
	b.WriteString(p.Foreground)
	b.WriteString(";")
	return b.String()
}

// SizeStyle returns the dimension declarations for d.
func SizeStyle(d model.Dialog) string {
	if d.Size == model.SizeCustom && d.CustomSize != "" {
		return " " + strings.TrimSuffix(strings.TrimSpace(d.CustomSize), ";") + ";"
	}
	if s, ok := sizeStyles[d.Size]; ok {
		return s
	}
	return sizeStyles[model.SizeMedium]
}

// BorderColor returns the accent for d, or fallback for the default color.
func BorderColor(d model.Dialog, fallback string) string {
	if d.Color == model.ColorCustom {
		if d.OutlineColor != "" {
			return d.OutlineColor
		}
		return fallback
	}
	if c, ok := accentColors[d.Color]; ok {
		return c
	}
	return fallback
}

// CloseButtonColor returns the close button color token for t.
func CloseButtonColor(t model.Theme) string {
	return PaletteFor(t).CloseButton
}

// BackdropClass returns the CSS class for a background effect.
func BackdropClass(e model.BackgroundEffect) string {
	return "effect-" + e.String()
}

// AnimationClass returns the CSS class for an animation.
func AnimationClass(a model.Animation) string {
	return "animation-" + a.String()
}

// DialogClasses returns the class list the renderer puts on d's element.
func DialogClasses(d model.Dialog, a model.Animation) string {
	classes := []string{"modalstack-dialog", AnimationClass(a)}
	if d.Visible {
		classes = append(classes, "visible")
	}
	if d.Removing {
		classes = append(classes, "removing")
	}
	if d.Resizing {
		classes = append(classes, "resizing")
	}
	return strings.Join(classes, " ")
}
