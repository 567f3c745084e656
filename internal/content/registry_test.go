package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(nil)

	require.NoError(t, r.Register("app.dialogs.ConfirmDelete", Static("app.dialogs.ConfirmDelete")))
	assert.ErrorIs(t, r.Register("app.dialogs.ConfirmDelete", Static("x")), ErrDuplicateName)
	assert.ErrorIs(t, r.Register("  ", Static("x")), ErrEmptyName)
	assert.ErrorIs(t, r.Register("x", nil), ErrNilFactory)

	assert.Equal(t, []string{"app.dialogs.ConfirmDelete"}, r.Names())
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister("Login", Static("Login"))
	assert.Panics(t, func() { r.MustRegister("Login", Static("Login")) })
}

func TestRegistry_ResolveExact(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.RegisterRef("app.dialogs.Settings"))

	ref, ok := r.Resolve("app.dialogs.Settings")
	require.True(t, ok)
	assert.Equal(t, Ref("app.dialogs.Settings"), ref)
}

func TestRegistry_ResolveShortNameCaseInsensitive(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.RegisterRef("app.dialogs.Settings"))

	ref, ok := r.Resolve("settings")
	require.True(t, ok)
	assert.Equal(t, Ref("app.dialogs.Settings"), ref)
}

func TestRegistry_ResolveAmbiguousIsNotFound(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.RegisterRef("admin.Settings"))
	require.NoError(t, r.RegisterRef("user.Settings"))

	_, ok := r.Resolve("settings")
	assert.False(t, ok)

	// The qualified names still resolve.
	_, ok = r.Resolve("admin.Settings")
	assert.True(t, ok)
}

func TestRegistry_ResolveMissing(t *testing.T) {
	r := NewRegistry(nil)
	_, ok := r.Resolve("nope")
	assert.False(t, ok)
	_, ok = r.Resolve("")
	assert.False(t, ok)
}

func TestRegistry_FactoryFailuresAreNotFound(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister("Broken", func() (Ref, error) { return "", errors.New("boom") })
	r.MustRegister("Panicky", func() (Ref, error) { panic("kaboom") })
	r.MustRegister("Empty", func() (Ref, error) { return "", nil })

	for _, name := range []string{"Broken", "Panicky", "Empty"} {
		t.Run(name, func(t *testing.T) {
			var ok bool
			assert.NotPanics(t, func() { _, ok = r.Resolve(name) })
			assert.False(t, ok)
		})
	}
}
