package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, model.ThemeDark, cfg.Appearance.Theme)
	assert.Equal(t, model.AnimationFadeAndScale, cfg.Appearance.Animation)
	assert.Equal(t, scheduler.DefaultDelays(), cfg.Delays())
	assert.Equal(t, model.SizeMedium, cfg.Defaults.Size)
	assert.Equal(t, model.EffectDim, cfg.Defaults.BackgroundEffect)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[appearance]
theme = "light"
animation = "Fade"

[transitions]
show = "10ms"
remove = "1s"

[defaults]
size = "extra-large"
color = "primary"
background_effect = "blur"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, model.ThemeLight, cfg.Appearance.Theme)
	assert.Equal(t, model.AnimationFade, cfg.Appearance.Animation)
	assert.Equal(t, 10*time.Millisecond, cfg.Transitions.Show.Duration())
	assert.Equal(t, time.Second, cfg.Transitions.Remove.Duration())
	// Unset values keep their defaults.
	assert.Equal(t, scheduler.DefaultResizeDelay, cfg.Transitions.Resize.Duration())
	assert.Equal(t, model.SizeExtraLarge, cfg.Defaults.Size)
	assert.Equal(t, model.ColorPrimary, cfg.Defaults.Color)
	assert.Equal(t, model.EffectBlur, cfg.Defaults.BackgroundEffect)

	opts := cfg.DialogOptions()
	assert.Equal(t, model.SizeExtraLarge, opts.Size)
	assert.True(t, opts.ShowCloseButton)
}

func TestLoadConfig_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
appearance:
  theme: light
  animation: scale
transitions:
  show: 20ms
  warm_up: "0"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, cfg.Appearance.Theme)
	assert.Equal(t, model.AnimationScale, cfg.Appearance.Animation)
	assert.Equal(t, 20*time.Millisecond, cfg.Transitions.Show.Duration())
	assert.Equal(t, time.Duration(0), cfg.Transitions.WarmUp.Duration())
	// Zero delays fall back to the scheduler defaults.
	assert.Equal(t, scheduler.DefaultWarmUpDelay, cfg.Delays().For(scheduler.TransitionWarmUp))
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad theme", "[appearance]\ntheme = \"sepia\"\n"},
		{"bad animation", "[appearance]\nanimation = \"spin\"\n"},
		{"bad duration", "[transitions]\nshow = \"soon\"\n"},
		{"negative duration", "[transitions]\nremove = \"-1s\"\n"},
		{"bad size", "[defaults]\nsize = \"huge\"\n"},
		{"bad log level", "[log]\nlevel = \"loud\"\n"},
		{"malformed", "[appearance\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.toml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := DefaultConfig()
			cfg.Appearance.Theme = model.ThemeLight
			cfg.Transitions.Show = Duration(75 * time.Millisecond)

			require.NoError(t, cfg.Save(path))
			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := DefaultConfig()
	for level, ok := range map[string]bool{"debug": true, "INFO": true, "": true, "warning": true, "error": true, "trace": false} {
		cfg.Log.Level = level
		_, err := cfg.SlogLevel()
		assert.Equal(t, ok, err == nil, level)
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"50ms", 50 * time.Millisecond},
		{"300", 300 * time.Millisecond},
		{"1m30s", 90 * time.Second},
	}
	for _, tt := range tests {
		var d Duration
		require.NoError(t, d.UnmarshalText([]byte(tt.in)))
		assert.Equal(t, tt.want, d.Duration())
	}

	var d Duration
	assert.Error(t, d.UnmarshalText([]byte("later")))
}

func TestConfigPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/modalstack/config.toml", ConfigPath())
}
