package garland

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a greeting: window, tree geometry, particle counts,
// gesture feed, and the optional music track and photo drop folder.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Tree    TreeConfig    `yaml:"tree"`
	Gesture GestureConfig `yaml:"gesture"`
	Audio   AudioConfig   `yaml:"audio"`
	Photos  PhotoConfig   `yaml:"photos"`
	// Seed drives all layout sampling. The same seed always produces the
	// same tree.
	Seed uint64 `yaml:"seed"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type TreeConfig struct {
	Height     float64 `yaml:"height"`
	BaseRadius float64 `yaml:"base_radius"`
	Leaves     int     `yaml:"leaves"`
	Ribbon     int     `yaml:"ribbon"`
	Decor      int     `yaml:"decor"`
	Stars      int     `yaml:"stars"`
	// ExplosionRadius is the radius of the exploded particle cloud.
	// Background stars occupy the shell from this radius to twice it.
	ExplosionRadius float64 `yaml:"explosion_radius"`
}

type GestureConfig struct {
	// FeedURL is the WebSocket endpoint of the external hand-landmark
	// detector. Empty disables gesture input.
	FeedURL        string  `yaml:"feed_url"`
	PinchThreshold float64 `yaml:"pinch_threshold"`
}

type AudioConfig struct {
	// Track is a wav/mp3/flac file looped as background music.
	// Empty disables audio.
	Track string `yaml:"track"`
}

type PhotoConfig struct {
	// WatchDir, when set, is watched for new image files which are added
	// as ornaments while the greeting runs.
	WatchDir string `yaml:"watch_dir"`
}

// DefaultConfig returns the stock greeting: a 12-unit tree of 5000 leaves,
// 1500 ribbon particles, and 1500 lights under 800 stars.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 960, Height: 720, Title: "Season's Greetings"},
		Tree: TreeConfig{
			Height:          12,
			BaseRadius:      5,
			Leaves:          5000,
			Ribbon:          1500,
			Decor:           1500,
			Stars:           800,
			ExplosionRadius: 30,
		},
		Gesture: GestureConfig{PinchThreshold: DefaultPinchThreshold},
		Seed:    1225,
	}
}

// LoadConfig reads a YAML config, applying defaults for anything omitted.
// Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config from disk.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Tree.Height <= 0 || c.Tree.BaseRadius <= 0 {
		return fmt.Errorf("config: tree geometry must be positive")
	}
	if c.Tree.Leaves < 0 || c.Tree.Ribbon < 0 || c.Tree.Decor < 0 || c.Tree.Stars < 0 {
		return fmt.Errorf("config: particle counts must be non-negative")
	}
	if c.Tree.ExplosionRadius <= 0 {
		return fmt.Errorf("config: explosion radius must be positive")
	}
	if c.Gesture.PinchThreshold <= 0 {
		return fmt.Errorf("config: pinch threshold must be positive")
	}
	return nil
}
