package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDialog(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = SizeLarge
	opts.Content = "app.Login"

	d := NewDialog(opts)
	require.NotNil(t, d)

	assert.Len(t, d.ID, 26)
	assert.False(t, d.Visible)
	assert.False(t, d.Removing)
	assert.False(t, d.Resizing)
	assert.Equal(t, SizeLarge, d.Size)
	assert.Equal(t, EffectDim, d.BackgroundEffect)
	assert.Equal(t, "app.Login", d.Content)
	assert.NotNil(t, d.Parameters)
	assert.NotNil(t, d.Data)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestNewID_Ordered(t *testing.T) {
	prev := NewID()
	for i := 0; i < 100; i++ {
		next := NewID()
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestDialog_SettersEmitOnlyOnChange(t *testing.T) {
	d := NewDialog(DefaultOptions())

	var fields []string
	d.SetChangeHook(func(c PropertyChange) {
		assert.Equal(t, d.ID, c.DialogID)
		fields = append(fields, c.Field)
	})

	d.SetVisible(true)
	d.SetVisible(true)
	d.SetRemoving(false)
	d.SetResizing(true)
	d.SetSize(SizeCustom, "width: 10px")
	d.SetSize(SizeCustom, "width: 10px")
	d.SetColor(ColorDefault, "#fff")
	d.SetBackgroundEffect(EffectDim)
	d.SetBackgroundEffect(EffectNone)

	assert.Equal(t, []string{
		FieldVisible,
		FieldResizing,
		FieldSize,
		FieldCustomSize,
		FieldOutlineColor,
		FieldBackgroundEffect,
	}, fields)

	d.SetChangeHook(nil)
	d.SetVisible(false)
	assert.Len(t, fields, 6)
}

func TestDialog_SetContent(t *testing.T) {
	d := NewDialog(DefaultOptions())

	var fields []string
	d.SetChangeHook(func(c PropertyChange) { fields = append(fields, c.Field) })

	d.SetContent("app.A", map[string]any{"n": 1})
	d.SetContent("app.A", nil)

	assert.Equal(t, []string{FieldContent, FieldParameters, FieldParameters}, fields)
	assert.NotNil(t, d.Parameters)
	assert.Empty(t, d.Parameters)
}

func TestDialog_OwnsBackdrop(t *testing.T) {
	d := NewDialog(DefaultOptions())
	assert.False(t, d.OwnsBackdrop(), "hidden")

	d.Visible = true
	assert.True(t, d.OwnsBackdrop())
	assert.True(t, d.IsCurrentCandidate())

	d.Removing = true
	assert.False(t, d.OwnsBackdrop(), "removing")
	assert.False(t, d.IsCurrentCandidate())

	d.Removing = false
	d.BackgroundEffect = EffectNone
	assert.False(t, d.OwnsBackdrop(), "no effect")
}

func TestDialog_Clone(t *testing.T) {
	opts := DefaultOptions()
	opts.Parameters = map[string]any{"k": "v"}
	d := NewDialog(opts)

	called := false
	d.SetChangeHook(func(PropertyChange) { called = true })

	c := d.Clone()
	c.Parameters["k"] = "other"
	c.SetVisible(true)

	assert.Equal(t, "v", d.Parameters["k"])
	assert.False(t, called, "clones carry no hook")
	assert.False(t, d.Visible)
}

func TestDialog_Summary(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = SizeCustom
	opts.CustomSize = "width: 1px"
	opts.Color = ColorSuccess
	d := NewDialog(opts)

	s := d.Summary()
	assert.Equal(t, d.ID, s.ID)
	assert.Equal(t, "custom", s.Size)
	assert.Equal(t, "width: 1px", s.CustomSize)
	assert.Equal(t, "success", s.Color)
	assert.Equal(t, "dim", s.BackgroundEffect)
	assert.Zero(t, s.Position)
	assert.Equal(t, StateOpening, s.State())

	all := Summaries([]Dialog{d.Clone(), d.Clone()})
	assert.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Position)
	assert.Equal(t, 2, all[1].Position)
}

func TestSummary_State(t *testing.T) {
	tests := []struct {
		name string
		s    Summary
		want string
	}{
		{"opening", Summary{}, StateOpening},
		{"visible", Summary{Visible: true}, StateVisible},
		{"resizing", Summary{Visible: true, Resizing: true}, StateResizing},
		{"removing wins", Summary{Visible: true, Resizing: true, Removing: true}, StateRemoving},
		{"removing before shown", Summary{Removing: true}, StateRemoving},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.State())
		})
	}
}
