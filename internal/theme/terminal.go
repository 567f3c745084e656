package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/modalstack/internal/model"
)

// Terminal widths by size, in cells.
var terminalWidths = map[model.Size]int{
	model.SizeSmall:      28,
	model.SizeMedium:     40,
	model.SizeLarge:      54,
	model.SizeExtraLarge: 68,
}

// TerminalWidth returns the preview width of d. Custom sizes use Medium.
func TerminalWidth(d model.Dialog) int {
	if w, ok := terminalWidths[d.Size]; ok {
		return w
	}
	return terminalWidths[model.SizeMedium]
}

// TerminalStyle maps the dialog style onto a lipgloss box for the terminal preview.
func TerminalStyle(t model.Theme, d model.Dialog) lipgloss.Style {
	p := PaletteFor(t)
	border := BorderColor(d, p.Border)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(TerminalWidth(d))

	if t == model.ThemeLight {
		style = style.Foreground(lipgloss.Color(p.Foreground))
	} else {
		style = style.Foreground(lipgloss.Color(p.Foreground)).
			Background(lipgloss.Color(p.Background)).
			BorderBackground(lipgloss.Color(p.Background))
	}

	switch {
	case d.Removing:
		style = style.Faint(true)
	case !d.Visible:
		style = style.Faint(true).BorderStyle(lipgloss.NormalBorder())
	case d.Resizing:
		style = style.BorderStyle(lipgloss.DoubleBorder())
	}
	return style
}

// BackdropStyle returns the style used to paint the backdrop line for an effect.
func BackdropStyle(t model.Theme, e model.BackgroundEffect) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(CloseButtonColor(t)))
	switch e {
	case model.EffectDim:
		return style.Faint(true)
	case model.EffectBlur:
		return style.Italic(true)
	default:
		return style
	}
}
