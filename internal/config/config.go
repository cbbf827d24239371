package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrConfig = errors.New("invalid configuration")

// EnvPrefix is prepended to environment overrides, e.g. DECKPLAY_VIEWPORT_WIDTH
const EnvPrefix = "DECKPLAY"

// Renderer names accepted by the renderer setting
const (
	RendererText     = "text"
	RendererSnapshot = "snapshot"
	RendererBoth     = "both"
	RendererNone     = "none"
)

type ViewportConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type SnapshotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
	// Samples is how many frames are written per step with running effects
	Samples int `mapstructure:"samples"`
}

type InputConfig struct {
	Dir string `mapstructure:"dir"`
}

// Config holds the settings of one playback run
type Config struct {
	LogLevel   string         `mapstructure:"logLevel"`
	DeckPath   string         `mapstructure:"deck"`
	StartSlide int            `mapstructure:"startSlide"`
	Renderer   string         `mapstructure:"renderer"`
	Stats      bool           `mapstructure:"stats"`
	Script     string         `mapstructure:"script"`
	Pace       time.Duration  `mapstructure:"pace"`
	Viewport   ViewportConfig `mapstructure:"viewport"`
	Snapshot   SnapshotConfig `mapstructure:"snapshot"`
	Input      InputConfig    `mapstructure:"input"`

	BuildVersion string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("deck", "")
	v.SetDefault("startSlide", 0)
	v.SetDefault("renderer", RendererText)
	v.SetDefault("stats", false)
	v.SetDefault("script", "")
	v.SetDefault("pace", "750ms")

	v.SetDefault("viewport.width", 1280)
	v.SetDefault("viewport.height", 720)

	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.dir", "output/frames")
	v.SetDefault("snapshot.samples", 1)

	v.SetDefault("input.dir", "input/decks")
}

// Load reads an optional YAML config file, applies defaults and DECKPLAY_*
// environment overrides. An empty path skips the file; a path that cannot be
// read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: error reading config file: %v", ErrConfig, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererText, RendererNone, RendererSnapshot, RendererBoth:
	default:
		return fmt.Errorf("%w: unknown renderer %q", ErrConfig, c.Renderer)
	}

	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("%w: negative viewport %dx%d", ErrConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Pace < 0 {
		return fmt.Errorf("%w: negative pace %s", ErrConfig, c.Pace)
	}
	if c.Snapshot.Samples < 1 {
		return fmt.Errorf("%w: snapshot.samples must be at least 1, got %d", ErrConfig, c.Snapshot.Samples)
	}
	if c.WantsSnapshots() && c.Snapshot.Dir == "" {
		return fmt.Errorf("%w: snapshot output needs a directory", ErrConfig)
	}

	return nil
}

// WantsText reports whether status lines go to the console
func (c *Config) WantsText() bool {
	return c.Renderer == RendererText || c.Renderer == RendererBoth
}

// WantsSnapshots reports whether PNG frames are written, either because the
// renderer asks for them or snapshot.enabled is set
func (c *Config) WantsSnapshots() bool {
	return c.Snapshot.Enabled || c.Renderer == RendererSnapshot || c.Renderer == RendererBoth
}
