package model

import "time"

// Summary is the serializable view of a dialog used for listings and exports.
type Summary struct {
	// Position is the 1-based place in the stack, oldest first. Zero when
	// the summary was taken outside a stack listing.
	Position         int            `json:"position,omitempty" yaml:"position,omitempty"`
	ID               string         `json:"id" yaml:"id"`
	Content          string         `json:"content,omitempty" yaml:"content,omitempty"`
	Visible          bool           `json:"visible" yaml:"visible"`
	Removing         bool           `json:"removing" yaml:"removing"`
	Resizing         bool           `json:"resizing" yaml:"resizing"`
	Size             string         `json:"size" yaml:"size"`
	CustomSize       string         `json:"custom_size,omitempty" yaml:"custom_size,omitempty"`
	Color            string         `json:"color" yaml:"color"`
	OutlineColor     string         `json:"outline_color,omitempty" yaml:"outline_color,omitempty"`
	BackgroundEffect string         `json:"background_effect" yaml:"background_effect"`
	CreatedAt        time.Time      `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	Parameters       map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Summary returns the serializable view of d.
func (d *Dialog) Summary() Summary {
	return Summary{
		ID:               d.ID,
		Content:          d.Content,
		Visible:          d.Visible,
		Removing:         d.Removing,
		Resizing:         d.Resizing,
		Size:             d.Size.String(),
		CustomSize:       d.CustomSize,
		Color:            d.Color.String(),
		OutlineColor:     d.OutlineColor,
		BackgroundEffect: d.BackgroundEffect.String(),
		CreatedAt:        d.CreatedAt,
		Parameters:       d.Parameters,
	}
}

// Summaries converts a stack snapshot, numbering positions from 1.
func Summaries(dialogs []Dialog) []Summary {
	out := make([]Summary, 0, len(dialogs))
	for i := range dialogs {
		s := dialogs[i].Summary()
		s.Position = i + 1
		out = append(out, s)
	}
	return out
}

// Transition state names reported by Summary.State.
const (
	StateOpening  = "opening"
	StateVisible  = "visible"
	StateResizing = "resizing"
	StateRemoving = "removing"
)

// State names the transition the dialog is in.
func (s Summary) State() string {
	switch {
	case s.Removing:
		return StateRemoving
	case !s.Visible:
		return StateOpening
	case s.Resizing:
		return StateResizing
	default:
		return StateVisible
	}
}
