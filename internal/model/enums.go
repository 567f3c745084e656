package model

import (
	"fmt"
	"strings"
)

// Size is the preset dimension class of a dialog.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
	SizeExtraLarge
	SizeCustom
)

var sizeNames = map[Size]string{
	SizeSmall:      "small",
	SizeMedium:     "medium",
	SizeLarge:      "large",
	SizeExtraLarge: "extra-large",
	SizeCustom:     "custom",
}

// String returns the kebab-case name of the size.
func (s Size) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Sizes returns all sizes in declaration order.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge, SizeCustom}
}

// ParseSize parses a size name such as "large" or "ExtraLarge".
func ParseSize(s string) (Size, error) {
	for _, v := range Sizes() {
		if normalize(s) == normalize(v.String()) {
			return v, nil
		}
	}
	return SizeMedium, fmt.Errorf("%w: %q", ErrUnknownSize, s)
}

// Color is the accent applied to a dialog border.
type Color int

const (
	ColorDefault Color = iota
	ColorSuccess
	ColorError
	ColorWarning
	ColorInfo
	ColorPrimary
	ColorCustom
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorSuccess: "success",
	ColorError:   "error",
	ColorWarning: "warning",
	ColorInfo:    "info",
	ColorPrimary: "primary",
	ColorCustom:  "custom",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Colors returns all colors in declaration order.
func Colors() []Color {
	return []Color{ColorDefault, ColorSuccess, ColorError, ColorWarning, ColorInfo, ColorPrimary, ColorCustom}
}

// ParseColor parses a color name.
func ParseColor(s string) (Color, error) {
	for _, v := range Colors() {
		if normalize(s) == normalize(v.String()) {
			return v, nil
		}
	}
	return ColorDefault, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// BackgroundEffect is the backdrop treatment behind a dialog.
type BackgroundEffect int

const (
	EffectDim BackgroundEffect = iota
	EffectBlur
	EffectNone
)

func (e BackgroundEffect) String() string {
	switch e {
	case EffectDim:
		return "dim"
	case EffectBlur:
		return "blur"
	case EffectNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseBackgroundEffect parses a background effect name.
func ParseBackgroundEffect(s string) (BackgroundEffect, error) {
	for _, v := range []BackgroundEffect{EffectDim, EffectBlur, EffectNone} {
		if normalize(s) == normalize(v.String()) {
			return v, nil
		}
	}
	return EffectDim, fmt.Errorf("%w: %q", ErrUnknownEffect, s)
}

// Theme is the process-wide color scheme used for style derivation.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	switch t {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	default:
		return "unknown"
	}
}

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	switch normalize(s) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeDark, fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}

// Animation selects the enter/exit animation used by the renderer.
type Animation int

const (
	AnimationNone Animation = iota
	AnimationFade
	AnimationScale
	AnimationFadeAndScale
)

func (a Animation) String() string {
	switch a {
	case AnimationNone:
		return "none"
	case AnimationFade:
		return "fade"
	case AnimationScale:
		return "scale"
	case AnimationFadeAndScale:
		return "fade-and-scale"
	default:
		return "unknown"
	}
}

// Animations returns all animations in declaration order.
func Animations() []Animation {
	return []Animation{AnimationNone, AnimationFade, AnimationScale, AnimationFadeAndScale}
}

// ParseAnimation parses an animation name such as "fade-and-scale" or "FadeAndScale".
func ParseAnimation(s string) (Animation, error) {
	for _, v := range Animations() {
		if normalize(s) == normalize(v.String()) {
			return v, nil
		}
	}
	return AnimationFadeAndScale, fmt.Errorf("%w: %q", ErrUnknownAnimation, s)
}

// normalize folds case and drops separators so "extra-large",
// "extra_large" and "ExtraLarge" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// Text marshaling lets the enums appear directly in TOML/YAML config.

func (s Size) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Size) UnmarshalText(text []byte) error {
	v, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (e BackgroundEffect) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *BackgroundEffect) UnmarshalText(text []byte) error {
	v, err := ParseBackgroundEffect(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func (t Theme) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Theme) UnmarshalText(text []byte) error {
	v, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (a Animation) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Animation) UnmarshalText(text []byte) error {
	v, err := ParseAnimation(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
