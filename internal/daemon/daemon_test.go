package daemon

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/model"
)

func TestDaemon_ReloadAppliesConfigAndNotifies(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Transitions.Show = config.Duration(time.Hour)

	d := New(cfg, nil, Options{Notices: true}, nil)
	t.Cleanup(d.Manager().Stop)

	next := config.DefaultConfig()
	next.Appearance.Theme = model.ThemeLight
	next.Transitions.Show = config.Duration(time.Hour)
	d.Reload(next)

	assert.Equal(t, model.ThemeLight, d.Manager().Theme())

	dialogs := d.Manager().Dialogs()
	require.Len(t, dialogs, 1)
	assert.Equal(t, string(NoticeContent), dialogs[0].Content)
	assert.Equal(t, "Configuration Reloaded", dialogs[0].Parameters["summary"])

	ref, ok := d.Manager().Registry().Resolve("Notice")
	assert.True(t, ok)
	assert.Equal(t, NoticeContent, ref)
}

func TestDaemon_NoticesDisabled(t *testing.T) {
	d := New(nil, nil, Options{}, nil)
	t.Cleanup(d.Manager().Stop)

	d.Reload(config.DefaultConfig())
	assert.Equal(t, 0, d.Manager().Count())
	assert.NotNil(t, d.Notifier())
}

func TestDaemon_StartWatcher(t *testing.T) {
	t.Run("missing config directory disables hot reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "config.toml")
		d := New(nil, nil, Options{ConfigPath: path, Watch: true}, nil)
		t.Cleanup(d.Manager().Stop)

		w, err := d.startWatcher()
		require.NoError(t, err)
		assert.Nil(t, w)
	})

	t.Run("existing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		d := New(nil, nil, Options{ConfigPath: path, Watch: true}, nil)
		t.Cleanup(d.Manager().Stop)

		w, err := d.startWatcher()
		require.NoError(t, err)
		require.NotNil(t, w)
		assert.NoError(t, w.Stop())
	})
}
