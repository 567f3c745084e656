package dbus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/modalstack/internal/model"
)

func TestParseOpenOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    map[string]dbus.Variant
		check   func(t *testing.T, req OpenRequest)
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			opts: nil,
			check: func(t *testing.T, req OpenRequest) {
				assert.Equal(t, model.DefaultOptions(), req.Options)
				assert.Empty(t, req.Name)
			},
		},
		{
			name: "enums and flags",
			opts: map[string]dbus.Variant{
				OptSize:              dbus.MakeVariant("extra-large"),
				OptColor:             dbus.MakeVariant("Warning"),
				OptBackgroundEffect:  dbus.MakeVariant("blur"),
				OptShowCloseButton:   dbus.MakeVariant(false),
				OptEnableFocusTrap:   dbus.MakeVariant(false),
				OptName:              dbus.MakeVariant("Login"),
				"unknown-key-ignored": dbus.MakeVariant(42),
			},
			check: func(t *testing.T, req OpenRequest) {
				assert.Equal(t, model.SizeExtraLarge, req.Options.Size)
				assert.Equal(t, model.ColorWarning, req.Options.Color)
				assert.Equal(t, model.EffectBlur, req.Options.BackgroundEffect)
				assert.False(t, req.Options.ShowCloseButton)
				assert.False(t, req.Options.EnableFocusTrap)
				assert.True(t, req.Options.CloseOnClickOutside)
				assert.Equal(t, "Login", req.Name)
			},
		},
		{
			name: "custom size and parameters",
			opts: map[string]dbus.Variant{
				OptSize:       dbus.MakeVariant("custom"),
				OptCustomSize: dbus.MakeVariant("width: 640px"),
				OptContent:    dbus.MakeVariant("app.Editor"),
				OptParameters: dbus.MakeVariant(map[string]dbus.Variant{
					"path": dbus.MakeVariant("/tmp/x"),
					"line": dbus.MakeVariant(int32(12)),
				}),
			},
			check: func(t *testing.T, req OpenRequest) {
				assert.Equal(t, model.SizeCustom, req.Options.Size)
				assert.Equal(t, "width: 640px", req.Options.CustomSize)
				assert.Equal(t, "app.Editor", req.Options.Content)
				assert.Equal(t, map[string]any{"path": "/tmp/x", "line": int32(12)}, req.Options.Parameters)
			},
		},
		{
			name:    "unknown size",
			opts:    map[string]dbus.Variant{OptSize: dbus.MakeVariant("huge")},
			wantErr: true,
		},
		{
			name:    "wrong type",
			opts:    map[string]dbus.Variant{OptShowCloseButton: dbus.MakeVariant("yes")},
			wantErr: true,
		},
		{
			name:    "parameters not a dict",
			opts:    map[string]dbus.Variant{OptParameters: dbus.MakeVariant("x")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseOpenOptions(tt.opts, model.DefaultOptions())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, req)
		})
	}
}

func TestVariantsRoundTrip(t *testing.T) {
	in := map[string]any{
		"name":   "ada",
		"nested": map[string]any{"n": int32(1)},
	}
	assert.Equal(t, in, FromVariants(ToVariants(in)))
}

func TestEntryFor(t *testing.T) {
	opts := model.DefaultOptions()
	opts.BackgroundEffect = model.EffectBlur
	opts.Size = model.SizeCustom
	opts.CustomSize = "width: 640px"
	opts.Color = model.ColorCustom
	opts.OutlineColor = "#123456"
	opts.Parameters = map[string]any{"user": "alice"}
	d := model.NewDialog(opts)
	d.Visible = true
	d.Content = "app.Login"

	e := EntryFor(d.Clone())
	assert.Equal(t, d.ID, e.ID)
	assert.Equal(t, "blur", e.BackgroundEffect)
	assert.Equal(t, d.CreatedAt.UnixMilli(), e.CreatedAt)
	assert.Equal(t, "alice", e.Parameters["user"].Value())

	s := e.Summary()
	assert.Equal(t, d.ID, s.ID)
	assert.Equal(t, model.StateVisible, s.State())
	assert.Equal(t, "app.Login", s.Content)
	assert.Equal(t, "custom", s.Size)
	assert.Equal(t, "width: 640px", s.CustomSize)
	assert.Equal(t, "custom", s.Color)
	assert.Equal(t, "#123456", s.OutlineColor)
	assert.Equal(t, "blur", s.BackgroundEffect)
	assert.Equal(t, d.CreatedAt.UnixMilli(), s.CreatedAt.UnixMilli())
	assert.Equal(t, map[string]any{"user": "alice"}, s.Parameters)
}

func TestDialogEntry_Signature(t *testing.T) {
	assert.Equal(t, DialogEntrySignature, dbus.SignatureOf(DialogEntry{}).String())
}

func TestDialogEntry_SummaryOfEmptyEntry(t *testing.T) {
	s := DialogEntry{ID: "a"}.Summary()
	assert.True(t, s.CreatedAt.IsZero())
	assert.Nil(t, s.Parameters)
}

func TestToVariants_UnsupportedValues(t *testing.T) {
	out := ToVariants(map[string]any{
		"skipped": nil,
		"func":    func() {},
		"n":       int32(2),
	})
	assert.NotContains(t, out, "skipped")
	assert.Equal(t, int32(2), out["n"].Value())
	_, isString := out["func"].Value().(string)
	assert.True(t, isString)
}

func TestChangedCount(t *testing.T) {
	count, ok := changedCount(&dbus.Signal{
		Path: DBusPath,
		Name: SignalChanged,
		Body: []any{uint32(3)},
	})
	assert.True(t, ok)
	assert.Equal(t, uint32(3), count)

	_, ok = changedCount(&dbus.Signal{Path: DBusPath, Name: "org.other.Changed", Body: []any{uint32(1)}})
	assert.False(t, ok)
	_, ok = changedCount(&dbus.Signal{Path: DBusPath, Name: SignalChanged})
	assert.False(t, ok)
	_, ok = changedCount(nil)
	assert.False(t, ok)
}
