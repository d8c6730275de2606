package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Window WindowConfig `mapstructure:"window"`
	View   ViewConfig   `mapstructure:"view"`
	Watch  bool         `mapstructure:"watch"`
	Pairs  []PairConfig `mapstructure:"pairs"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// ViewConfig holds split view presentation and behaviour.
type ViewConfig struct {
	Padding float64      `mapstructure:"padding"`
	Style   string       `mapstructure:"style"`
	Labels  LabelsConfig `mapstructure:"labels"`
	// TouchMoveRequiresDrag makes touch behave like the mouse: the divider
	// only follows a finger after a touch start inside the view.
	TouchMoveRequiresDrag bool `mapstructure:"touch_move_requires_drag"`
}

// LabelsConfig holds the corner captions.
type LabelsConfig struct {
	Before string `mapstructure:"before"`
	After  string `mapstructure:"after"`
}

// PairConfig is one before/after comparison.
type PairConfig struct {
	Title  string `mapstructure:"title"`
	Before string `mapstructure:"before"`
	After  string `mapstructure:"after"`
}

// ErrNoPairs is returned by Validate when there is nothing to compare.
var ErrNoPairs = errors.New("no image pairs configured")

// DefaultPath returns $HOME/.config/splitview/config.yaml.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "splitview", "config.yaml")
}

// Load reads configuration from path (if non-empty and present) and the
// environment. Env var overrides use prefix SPLITVIEW_, e.g.
// SPLITVIEW_VIEW_PADDING=8.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 800)
	v.SetDefault("window.title", "splitview")
	v.SetDefault("view.padding", 24.0)
	v.SetDefault("view.style", "")
	v.SetDefault("view.labels.before", "Before")
	v.SetDefault("view.labels.after", "After")
	v.SetDefault("view.touch_move_requires_drag", true)
	v.SetDefault("watch", true)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SPLITVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// An explicit path that does not exist is an error; a missing default
	// config is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// WithPair returns c with p placed first, replacing a configured pair of the
// same images if present.
func (c Config) WithPair(p PairConfig) Config {
	pairs := make([]PairConfig, 0, len(c.Pairs)+1)
	pairs = append(pairs, p)
	for _, existing := range c.Pairs {
		if existing.Before == p.Before && existing.After == p.After {
			continue
		}
		pairs = append(pairs, existing)
	}
	c.Pairs = pairs
	return c
}

// Validate reports the first problem that would stop the viewer from starting.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.View.Padding < 0 {
		return fmt.Errorf("view padding must not be negative, got %v", c.View.Padding)
	}
	if len(c.Pairs) == 0 {
		return ErrNoPairs
	}
	for i, p := range c.Pairs {
		if p.Before == "" || p.After == "" {
			return fmt.Errorf("pair %d (%q): before and after images are required", i, p.Title)
		}
	}
	return nil
}
