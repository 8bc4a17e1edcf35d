package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/jumptap/internal/spring"
)

// Config holds application configuration.
type Config struct {
	Database  DatabaseConfig
	Animation AnimationConfig
	UI        UIConfig
	Audio     AudioConfig
	Metrics   MetricsConfig
	Log       LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// AnimationConfig holds the simulation rate and spring overrides.
type AnimationConfig struct {
	FPS     int
	Springs spring.Set
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Jumpers    []string
	Height     int
	ShowCounts bool `mapstructure:"show_counts"`
}

// AudioConfig controls the landing thud.
type AudioConfig struct {
	Enabled   bool
	Frequency float64
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string
}

// LogConfig controls the debug log file.
type LogConfig struct {
	Path  string
	Level string
}

func defaultDataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "jumptap")
}

func setDefaults(v *viper.Viper) {
	springs := spring.DefaultSet()

	v.SetDefault("database.path", filepath.Join(defaultDataDir(), "jumptap.db"))
	v.SetDefault("animation.fps", 60)
	for name, p := range map[string]spring.Params{
		"default":   springs.Default,
		"overshoot": springs.Overshoot,
		"launch":    springs.Launch,
		"return":    springs.Return,
	} {
		v.SetDefault("animation.springs."+name+".damping_ratio", p.DampingRatio)
		v.SetDefault("animation.springs."+name+".stiffness", p.Stiffness)
	}
	v.SetDefault("ui.jumpers", []string{"🍞", "🍦", "🍿"})
	v.SetDefault("ui.height", 5)
	v.SetDefault("ui.show_counts", true)
	v.SetDefault("audio.enabled", false)
	v.SetDefault("audio.frequency", 110.0)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix JUMPTAP_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("JUMPTAP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "jumptap"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("JUMPTAP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine; a malformed one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("animation.fps must be positive, got %d", c.Animation.FPS)
	}
	if err := c.Animation.Springs.Validate(); err != nil {
		return fmt.Errorf("animation.springs: %w", err)
	}
	if len(c.UI.Jumpers) == 0 {
		return fmt.Errorf("ui.jumpers must list at least one jumper")
	}
	if c.UI.Height < 3 {
		return fmt.Errorf("ui.height must be at least 3, got %d", c.UI.Height)
	}
	return nil
}

// Springs returns the validated spring set.
func (c Config) Springs() (spring.Set, error) {
	if err := c.Animation.Springs.Validate(); err != nil {
		return spring.Set{}, err
	}
	return c.Animation.Springs, nil
}

// Path returns the config file location Save writes to.
func Path() string {
	if p := os.Getenv("JUMPTAP_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "jumptap", "config.toml")
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("animation.fps", cfg.Animation.FPS)
	for name, p := range map[string]spring.Params{
		"default":   cfg.Animation.Springs.Default,
		"overshoot": cfg.Animation.Springs.Overshoot,
		"launch":    cfg.Animation.Springs.Launch,
		"return":    cfg.Animation.Springs.Return,
	} {
		v.Set("animation.springs."+name+".damping_ratio", p.DampingRatio)
		v.Set("animation.springs."+name+".stiffness", p.Stiffness)
	}
	v.Set("ui.jumpers", cfg.UI.Jumpers)
	v.Set("ui.height", cfg.UI.Height)
	v.Set("ui.show_counts", cfg.UI.ShowCounts)
	v.Set("audio.enabled", cfg.Audio.Enabled)
	v.Set("audio.frequency", cfg.Audio.Frequency)
	v.Set("metrics.addr", cfg.Metrics.Addr)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
