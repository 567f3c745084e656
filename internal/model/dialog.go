// Package model defines the dialog record and the enumerations shared by
// every modalstack package.
package model

import (
	"crypto/rand"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Field names reported by PropertyChange.
const (
	FieldVisible          = "Visible"
	FieldRemoving         = "Removing"
	FieldResizing         = "Resizing"
	FieldSize             = "Size"
	FieldCustomSize       = "CustomSize"
	FieldColor            = "Color"
	FieldOutlineColor     = "OutlineColor"
	FieldBackgroundEffect = "BackgroundEffect"
	FieldContent          = "Content"
	FieldParameters       = "Parameters"
)

// Parse errors for the enumerations.
var (
	ErrUnknownSize      = errors.New("unknown dialog size")
	ErrUnknownColor     = errors.New("unknown dialog color")
	ErrUnknownEffect    = errors.New("unknown background effect")
	ErrUnknownTheme     = errors.New("unknown theme")
	ErrUnknownAnimation = errors.New("unknown animation")
)

// PropertyChange names a single field that changed on a dialog.
type PropertyChange struct {
	DialogID string
	Field    string
}

// Dialog is one dialog instance in the stack and its transient visual state.
//
// A Dialog owned by a stack must only be mutated through its setters while
// the owner's lock is held. Copies returned to callers come from Clone and
// carry no change hook.
type Dialog struct {
	ID string

	// Transient animation state.
	Visible  bool
	Removing bool
	Resizing bool

	CloseOnClickOutside        bool
	ShowCloseButton            bool
	EnableScroller             bool
	EnableFocusTrap            bool
	DisableBackgroundScrolling bool

	Size       Size
	CustomSize string // only meaningful for SizeCustom

	Color        Color
	OutlineColor string // only meaningful for ColorCustom

	BackgroundEffect BackgroundEffect

	CreatedAt time.Time

	Content    string
	Parameters map[string]any
	Data       map[string]any

	// OnClose is invoked by the renderer when the dialog closes. The core never calls it.
	OnClose func()

	// Seq is the insertion sequence assigned by the stack.
	Seq uint64

	onChange func(PropertyChange)
}

// Options describe a dialog to open. Use DefaultOptions as the starting point;
// the zero value differs from the defaults for every boolean flag.
type Options struct {
	CloseOnClickOutside        bool
	ShowCloseButton            bool
	EnableScroller             bool
	EnableFocusTrap            bool
	DisableBackgroundScrolling bool

	Size             Size
	CustomSize       string
	Color            Color
	OutlineColor     string
	BackgroundEffect BackgroundEffect

	Content    string
	Parameters map[string]any
	Data       map[string]any
	OnClose    func()
}

// DefaultOptions returns the options used when a caller specifies nothing.
func DefaultOptions() Options {
	return Options{
		CloseOnClickOutside:        true,
		ShowCloseButton:            true,
		EnableScroller:             true,
		EnableFocusTrap:            true,
		DisableBackgroundScrolling: true,
		Size:                       SizeMedium,
		Color:                      ColorDefault,
		BackgroundEffect:           EffectDim,
	}
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a new ULID string. IDs generated by one process sort in
// creation order.
func NewID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewDialog creates a hidden dialog from opts with a fresh ID and creation time.
func NewDialog(opts Options) *Dialog {
	params := opts.Parameters
	if params == nil {
		params = make(map[string]any)
	}
	data := opts.Data
	if data == nil {
		data = make(map[string]any)
	}
	return &Dialog{
		ID:                         NewID(),
		CloseOnClickOutside:        opts.CloseOnClickOutside,
		ShowCloseButton:            opts.ShowCloseButton,
		EnableScroller:             opts.EnableScroller,
		EnableFocusTrap:            opts.EnableFocusTrap,
		DisableBackgroundScrolling: opts.DisableBackgroundScrolling,
		Size:                       opts.Size,
		CustomSize:                 opts.CustomSize,
		Color:                      opts.Color,
		OutlineColor:               opts.OutlineColor,
		BackgroundEffect:           opts.BackgroundEffect,
		CreatedAt:                  time.Now(),
		Content:                    opts.Content,
		Parameters:                 params,
		Data:                       data,
		OnClose:                    opts.OnClose,
	}
}

// SetChangeHook installs fn as the receiver of property changes. Pass nil to detach.
func (d *Dialog) SetChangeHook(fn func(PropertyChange)) {
	d.onChange = fn
}

// OwnsBackdrop reports whether the dialog currently holds the dimmed or
// blurred backdrop.
func (d *Dialog) OwnsBackdrop() bool {
	return d.BackgroundEffect != EffectNone && d.Visible && !d.Removing
}

// IsCurrentCandidate reports whether the dialog takes part in current resolution.
func (d *Dialog) IsCurrentCandidate() bool {
	return d.Visible && !d.Removing
}

func (d *Dialog) changed(field string) {
	if d.onChange != nil {
		d.onChange(PropertyChange{DialogID: d.ID, Field: field})
	}
}

// SetVisible sets the visible flag.
func (d *Dialog) SetVisible(v bool) {
	if d.Visible != v {
		d.Visible = v
		d.changed(FieldVisible)
	}
}

// SetRemoving sets the removing flag.
func (d *Dialog) SetRemoving(v bool) {
	if d.Removing != v {
		d.Removing = v
		d.changed(FieldRemoving)
	}
}

// SetResizing sets the resizing flag.
func (d *Dialog) SetResizing(v bool) {
	if d.Resizing != v {
		d.Resizing = v
		d.changed(FieldResizing)
	}
}

// SetSize sets the size and the custom size descriptor.
func (d *Dialog) SetSize(size Size, customSize string) {
	if d.Size != size {
		d.Size = size
		d.changed(FieldSize)
	}
	if d.CustomSize != customSize {
		d.CustomSize = customSize
		d.changed(FieldCustomSize)
	}
}

// SetColor sets the accent color and the custom outline color.
func (d *Dialog) SetColor(color Color, outlineColor string) {
	if d.Color != color {
		d.Color = color
		d.changed(FieldColor)
	}
	if d.OutlineColor != outlineColor {
		d.OutlineColor = outlineColor
		d.changed(FieldOutlineColor)
	}
}

// SetBackgroundEffect sets the backdrop effect.
func (d *Dialog) SetBackgroundEffect(e BackgroundEffect) {
	if d.BackgroundEffect != e {
		d.BackgroundEffect = e
		d.changed(FieldBackgroundEffect)
	}
}

// SetContent replaces the content reference and its parameters.
// A nil params map is stored as an empty map.
func (d *Dialog) SetContent(content string, params map[string]any) {
	if params == nil {
		params = make(map[string]any)
	}
	if d.Content != content {
		d.Content = content
		d.changed(FieldContent)
	}
	d.Parameters = params
	d.changed(FieldParameters)
}

// Clone returns a copy of d that shares no maps with it and has no change hook.
func (d *Dialog) Clone() Dialog {
	c := *d
	c.Parameters = maps.Clone(d.Parameters)
	c.Data = maps.Clone(d.Data)
	c.onChange = nil
	return c
}
