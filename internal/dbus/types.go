package dbus

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/modalstack/internal/model"
)

// Option keys accepted by Open in its a{sv} argument.
const (
	OptName                       = "name"
	OptContent                    = "content"
	OptParameters                 = "parameters"
	OptSize                       = "size"
	OptCustomSize                 = "custom_size"
	OptColor                      = "color"
	OptOutlineColor               = "outline_color"
	OptBackgroundEffect           = "background_effect"
	OptCloseOnClickOutside        = "close_on_click_outside"
	OptShowCloseButton            = "show_close_button"
	OptEnableScroller             = "enable_scroller"
	OptEnableFocusTrap            = "enable_focus_trap"
	OptDisableBackgroundScrolling = "disable_background_scrolling"
)

// DialogEntrySignature is the D-Bus signature of one List element.
const DialogEntrySignature = "(sbbbssssssxa{sv})"

// DialogEntry is one element of the List reply, marshalled as
// (sbbbssssssxa{sv}).
type DialogEntry struct {
	ID               string
	Visible          bool
	Removing         bool
	Resizing         bool
	Size             string
	Color            string
	Content          string
	BackgroundEffect string
	CustomSize       string
	OutlineColor     string
	// CreatedAt is the creation time in Unix milliseconds.
	CreatedAt  int64
	Parameters map[string]dbus.Variant
}

// EntryFor converts a dialog snapshot to its wire form.
func EntryFor(d model.Dialog) DialogEntry {
	return DialogEntry{
		ID:               d.ID,
		Visible:          d.Visible,
		Removing:         d.Removing,
		Resizing:         d.Resizing,
		Size:             d.Size.String(),
		Color:            d.Color.String(),
		Content:          d.Content,
		BackgroundEffect: d.BackgroundEffect.String(),
		CustomSize:       d.CustomSize,
		OutlineColor:     d.OutlineColor,
		CreatedAt:        d.CreatedAt.UnixMilli(),
		Parameters:       ToVariants(d.Parameters),
	}
}

// Summary converts an entry to the listing view.
func (e DialogEntry) Summary() model.Summary {
	s := model.Summary{
		ID:               e.ID,
		Content:          e.Content,
		Visible:          e.Visible,
		Removing:         e.Removing,
		Resizing:         e.Resizing,
		Size:             e.Size,
		CustomSize:       e.CustomSize,
		Color:            e.Color,
		OutlineColor:     e.OutlineColor,
		BackgroundEffect: e.BackgroundEffect,
	}
	if e.CreatedAt != 0 {
		s.CreatedAt = time.UnixMilli(e.CreatedAt)
	}
	if len(e.Parameters) > 0 {
		s.Parameters = FromVariants(e.Parameters)
	}
	return s
}

// OpenRequest is a decoded Open argument.
type OpenRequest struct {
	// Name is resolved through the content registry when set.
	Name    string
	Options model.Options
}

// ParseOpenOptions decodes the a{sv} argument of Open on top of defaults.
// Unknown keys are ignored; values of the wrong type or unknown enum names
// are errors.
func ParseOpenOptions(opts map[string]dbus.Variant, defaults model.Options) (OpenRequest, error) {
	req := OpenRequest{Options: defaults}
	o := &req.Options

	var err error
	if req.Name, err = stringOpt(opts, OptName, ""); err != nil {
		return req, err
	}
	if o.Content, err = stringOpt(opts, OptContent, o.Content); err != nil {
		return req, err
	}
	if o.CustomSize, err = stringOpt(opts, OptCustomSize, o.CustomSize); err != nil {
		return req, err
	}
	if o.OutlineColor, err = stringOpt(opts, OptOutlineColor, o.OutlineColor); err != nil {
		return req, err
	}

	if s, err := stringOpt(opts, OptSize, ""); err != nil {
		return req, err
	} else if s != "" {
		if o.Size, err = model.ParseSize(s); err != nil {
			return req, err
		}
	}
	if s, err := stringOpt(opts, OptColor, ""); err != nil {
		return req, err
	} else if s != "" {
		if o.Color, err = model.ParseColor(s); err != nil {
			return req, err
		}
	}
	if s, err := stringOpt(opts, OptBackgroundEffect, ""); err != nil {
		return req, err
	} else if s != "" {
		if o.BackgroundEffect, err = model.ParseBackgroundEffect(s); err != nil {
			return req, err
		}
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{OptCloseOnClickOutside, &o.CloseOnClickOutside},
		{OptShowCloseButton, &o.ShowCloseButton},
		{OptEnableScroller, &o.EnableScroller},
		{OptEnableFocusTrap, &o.EnableFocusTrap},
		{OptDisableBackgroundScrolling, &o.DisableBackgroundScrolling},
	}
	for _, f := range flags {
		if *f.dst, err = boolOpt(opts, f.key, *f.dst); err != nil {
			return req, err
		}
	}

	if v, ok := opts[OptParameters]; ok {
		params, ok := v.Value().(map[string]dbus.Variant)
		if !ok {
			return req, fmt.Errorf("option %q: expected a{sv}, got %s", OptParameters, v.Signature())
		}
		o.Parameters = FromVariants(params)
	}

	return req, nil
}

// FromVariants unwraps a{sv} values, recursing into nested dictionaries.
func FromVariants(in map[string]dbus.Variant) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if nested, ok := v.Value().(map[string]dbus.Variant); ok {
			out[k] = FromVariants(nested)
			continue
		}
		out[k] = v.Value()
	}
	return out
}

// ToVariants wraps values for an a{sv} argument. Nil values have no D-Bus
// type and are skipped; values of other unsupported types are sent as their
// string form.
func ToVariants(in map[string]any) map[string]dbus.Variant {
	out := make(map[string]dbus.Variant, len(in))
	for k, v := range in {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			out[k] = dbus.MakeVariant(ToVariants(nested))
			continue
		}
		out[k] = variantOf(v)
	}
	return out
}

// variantOf wraps v, falling back to its string form when godbus has no
// signature for its type.
func variantOf(v any) (variant dbus.Variant) {
	defer func() {
		if recover() != nil {
			variant = dbus.MakeVariant(fmt.Sprint(v))
		}
	}()
	return dbus.MakeVariant(v)
}

func stringOpt(opts map[string]dbus.Variant, key, fallback string) (string, error) {
	v, ok := opts[key]
	if !ok {
		return fallback, nil
	}
	s, ok := v.Value().(string)
	if !ok {
		return fallback, fmt.Errorf("option %q: expected s, got %s", key, v.Signature())
	}
	return s, nil
}

func boolOpt(opts map[string]dbus.Variant, key string, fallback bool) (bool, error) {
	v, ok := opts[key]
	if !ok {
		return fallback, nil
	}
	b, ok := v.Value().(bool)
	if !ok {
		return fallback, fmt.Errorf("option %q: expected b, got %s", key, v.Signature())
	}
	return b, nil
}
