package dbus

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/content"
	"github.com/jmylchreest/modalstack/internal/display"
	"github.com/jmylchreest/modalstack/internal/interop"
	"github.com/jmylchreest/modalstack/internal/model"
)

func newTestServer(t *testing.T) (*DialogServer, *display.Manager) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Transitions.Show = config.Duration(time.Hour)
	cfg.Transitions.Remove = config.Duration(time.Hour)
	cfg.Transitions.Resize = config.Duration(time.Hour)

	registry := content.NewRegistry(nil)
	require.NoError(t, registry.RegisterRef("app.dialogs.Login"))

	m := display.NewManager(cfg, registry, nil)
	t.Cleanup(m.Stop)

	router := interop.NewEscapeRouter(nil)
	m.SetAsCurrent(router)
	return NewDialogServer(m, router, nil), m
}

func TestDialogServer_Open(t *testing.T) {
	s, m := newTestServer(t)

	id, derr := s.Open(map[string]dbus.Variant{
		OptName: dbus.MakeVariant("login"),
		OptSize: dbus.MakeVariant("small"),
	})
	require.Nil(t, derr)

	d, ok := m.Get(id)
	require.True(t, ok)
	assert.Equal(t, "app.dialogs.Login", d.Content)
	assert.Equal(t, model.SizeSmall, d.Size)
}

func TestDialogServer_OpenRejectsBadInput(t *testing.T) {
	s, m := newTestServer(t)

	_, derr := s.Open(map[string]dbus.Variant{OptColor: dbus.MakeVariant("mauve")})
	require.NotNil(t, derr)
	assert.Equal(t, ErrInvalidArgs, derr.Name)

	_, derr = s.Open(map[string]dbus.Variant{OptName: dbus.MakeVariant("Missing")})
	require.NotNil(t, derr)
	assert.Equal(t, ErrUnknownContent, derr.Name)

	assert.Equal(t, 0, m.Count())
}

func TestDialogServer_Mutations(t *testing.T) {
	s, m := newTestServer(t)
	id := m.Open(model.DefaultOptions())

	require.Nil(t, s.Resize(id, "large", ""))
	require.Nil(t, s.Recolor(id, "custom", "#123456"))
	require.Nil(t, s.UpdateContent(id, "Login"))

	d, _ := m.Get(id)
	assert.Equal(t, model.SizeLarge, d.Size)
	assert.True(t, d.Resizing)
	assert.Equal(t, model.ColorCustom, d.Color)
	assert.Equal(t, "#123456", d.OutlineColor)
	assert.Equal(t, "app.dialogs.Login", d.Content)

	assert.NotNil(t, s.Resize(id, "gigantic", ""))
	assert.NotNil(t, s.Recolor(id, "mauve", ""))
	assert.NotNil(t, s.UpdateContent(id, "nope"))

	require.Nil(t, s.SetTheme("light"))
	require.Nil(t, s.SetAnimation("fade"))
	assert.Equal(t, model.ThemeLight, m.Theme())
	assert.Equal(t, model.AnimationFade, m.Animation())
	assert.NotNil(t, s.SetTheme("sepia"))
	assert.NotNil(t, s.SetAnimation("spin"))
}

func TestDialogServer_CloseAndList(t *testing.T) {
	s, m := newTestServer(t)
	a := m.Open(model.DefaultOptions())
	b := m.Open(model.DefaultOptions())

	require.Nil(t, s.Close(a))
	handled, derr := s.HandleEscapeKey(b)
	require.Nil(t, derr)
	assert.True(t, handled)

	entries, derr := s.List()
	require.Nil(t, derr)
	require.Len(t, entries, 2)
	assert.Equal(t, a, entries[0].ID)
	assert.True(t, entries[0].Removing)
	assert.True(t, entries[1].Removing)

	c := m.Open(model.DefaultOptions())
	require.Nil(t, s.CloseAll())
	d, _ := m.Get(c)
	assert.True(t, d.Removing)
}

func TestDialogServer_RunStopsWithContext(t *testing.T) {
	s, m := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Without a bus connection the Changed emit fails and is only logged.
	m.Open(model.DefaultOptions())
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestDialogServer_EmitWithoutConnection(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Error(t, s.EmitChanged())
	assert.Nil(t, s.Connection())
	assert.NoError(t, s.Stop())
}
