package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store     StoreConfig
	Gesture   GestureConfig
	Expansion ExpansionConfig
	Theme     ThemeConfig
	Log       LogConfig
}

// StoreConfig holds sqlite settings.
type StoreConfig struct {
	Dir string
}

// GestureConfig tunes row gesture recognition.
type GestureConfig struct {
	SwipeThresholdUnits float64 `mapstructure:"swipe_threshold_units"`
	LongPressMs         int     `mapstructure:"long_press_ms"`
}

func (g GestureConfig) LongPress() time.Duration {
	return time.Duration(g.LongPressMs) * time.Millisecond
}

// ExpansionConfig is the initial expansion policy of the list view.
type ExpansionConfig struct {
	Exclusive              bool
	UnlockExpanded         bool `mapstructure:"unlock_expanded"`
	CollapseOnOutsidePress bool `mapstructure:"collapse_on_outside_press"`
}

// ThemeConfig selects the style document and density. File, when set, is a
// TOML theme file that is watched for changes.
type ThemeConfig struct {
	GridUnit float64 `mapstructure:"grid_unit"`
	Name     string
	Version  string
	File     string
}

type LogConfig struct {
	Level string
	File  string
}

func defaultDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "swipelist")
}

// Path returns the config file location: $SWIPELIST_CONFIG or
// ~/.config/swipelist/config.toml.
func Path() string {
	if p := strings.TrimSpace(os.Getenv("SWIPELIST_CONFIG")); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "swipelist", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("store.dir", defaultDir())
	v.SetDefault("gesture.swipe_threshold_units", 1.5)
	v.SetDefault("gesture.long_press_ms", 500)
	v.SetDefault("expansion.exclusive", true)
	v.SetDefault("expansion.unlock_expanded", false)
	v.SetDefault("expansion.collapse_on_outside_press", false)
	v.SetDefault("theme.grid_unit", 1.0)
	v.SetDefault("theme.name", "Ambiance")
	v.SetDefault("theme.version", "1.3")
	v.SetDefault("theme.file", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	v.SetEnvPrefix("SWIPELIST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix
// SWIPELIST_ (for example SWIPELIST_STORE_DIR). A missing file is not an
// error; a malformed one is.
func Load() (Config, error) {
	v := newViper()
	path := Path()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c.normalized(), nil
}

func (c Config) normalized() Config {
	if c.Gesture.SwipeThresholdUnits <= 0 {
		c.Gesture.SwipeThresholdUnits = 1.5
	}
	if c.Gesture.LongPressMs <= 0 {
		c.Gesture.LongPressMs = 500
	}
	if c.Theme.GridUnit <= 0 {
		c.Theme.GridUnit = 1
	}
	if strings.TrimSpace(c.Theme.Name) == "" {
		c.Theme.Name = "Ambiance"
	}
	if strings.TrimSpace(c.Theme.Version) == "" {
		c.Theme.Version = "1.3"
	}
	if c.Expansion.CollapseOnOutsidePress {
		c.Expansion.Exclusive = true
	}
	return c
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("store.dir", cfg.Store.Dir)
	v.Set("gesture.swipe_threshold_units", cfg.Gesture.SwipeThresholdUnits)
	v.Set("gesture.long_press_ms", cfg.Gesture.LongPressMs)
	v.Set("expansion.exclusive", cfg.Expansion.Exclusive)
	v.Set("expansion.unlock_expanded", cfg.Expansion.UnlockExpanded)
	v.Set("expansion.collapse_on_outside_press", cfg.Expansion.CollapseOnOutsidePress)
	v.Set("theme.grid_unit", cfg.Theme.GridUnit)
	v.Set("theme.name", cfg.Theme.Name)
	v.Set("theme.version", cfg.Theme.Version)
	v.Set("theme.file", cfg.Theme.File)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
