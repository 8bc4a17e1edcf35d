package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jumptap/internal/spring"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("JUMPTAP_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 60, cfg.Animation.FPS)
	require.Equal(t, spring.DefaultSet(), cfg.Animation.Springs)
	require.Equal(t, []string{"🍞", "🍦", "🍿"}, cfg.UI.Jumpers)
	require.Equal(t, 5, cfg.UI.Height)
	require.True(t, cfg.UI.ShowCounts)
	require.False(t, cfg.Audio.Enabled)
	require.Empty(t, cfg.Metrics.Addr)
	require.Equal(t, filepath.Join(home, ".local", "share", "jumptap", "jumptap.db"), cfg.Database.Path)
}

func TestLoadFileOverrides(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[animation]
fps = 120

[animation.springs.return]
damping_ratio = 0.4
stiffness = 200

[ui]
jumpers = ["A", "B"]
height = 7
`), 0o600))
	t.Setenv("JUMPTAP_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 120, cfg.Animation.FPS)
	require.Equal(t, spring.Params{DampingRatio: 0.4, Stiffness: 200}, cfg.Animation.Springs.Return)
	require.Equal(t, spring.Default, cfg.Animation.Springs.Default)
	require.Equal(t, []string{"A", "B"}, cfg.UI.Jumpers)
	require.Equal(t, 7, cfg.UI.Height)
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("JUMPTAP_METRICS_ADDR", "127.0.0.1:9100")
	t.Setenv("JUMPTAP_AUDIO_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	require.True(t, cfg.Audio.Enabled)
}

func TestLoadRejectsBadSpring(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[animation.springs.launch]
stiffness = 0
`), 0o600))
	t.Setenv("JUMPTAP_CONFIG", path)

	_, err := Load()
	require.ErrorIs(t, err, spring.ErrInvalidSpring)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[animation\nfps = "), 0o600))
	t.Setenv("JUMPTAP_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "nested", "config.toml")
	t.Setenv("JUMPTAP_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	cfg.UI.Jumpers = []string{"X"}
	cfg.Animation.Springs.Overshoot = spring.Params{DampingRatio: 0.3, Stiffness: 900}
	require.NoError(t, Save(cfg))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"X"}, got.UI.Jumpers)
	require.Equal(t, cfg.Animation.Springs.Overshoot, got.Animation.Springs.Overshoot)
}

func TestValidate(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)

	bad := cfg
	bad.Animation.FPS = 0
	require.Error(t, bad.Validate())

	bad = cfg
	bad.UI.Jumpers = nil
	require.Error(t, bad.Validate())

	bad = cfg
	bad.UI.Height = 2
	require.Error(t, bad.Validate())

	set, err := cfg.Springs()
	require.NoError(t, err)
	require.Equal(t, spring.DefaultSet(), set)
}
