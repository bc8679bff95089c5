package garland

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Tree.Leaves != 5000 || cfg.Tree.Ribbon != 1500 || cfg.Tree.Decor != 1500 {
		t.Errorf("unexpected default particle counts: %+v", cfg.Tree)
	}
	assertNear(t, "default pinch threshold", cfg.Gesture.PinchThreshold, DefaultPinchThreshold)
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	src := `
window:
  width: 1280
  height: 800
tree:
  leaves: 2000
  explosion_radius: 45
gesture:
  feed_url: ws://localhost:9001/hands
audio:
  track: melody.mp3
seed: 99
`
	cfg, err := LoadConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 800 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Tree.Leaves != 2000 {
		t.Errorf("leaves = %d, want 2000", cfg.Tree.Leaves)
	}
	assertNear(t, "explosion radius", cfg.Tree.ExplosionRadius, 45)
	if cfg.Gesture.FeedURL != "ws://localhost:9001/hands" {
		t.Errorf("feed url = %q", cfg.Gesture.FeedURL)
	}
	if cfg.Audio.Track != "melody.mp3" {
		t.Errorf("track = %q", cfg.Audio.Track)
	}
	if cfg.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Seed)
	}

	// Untouched sections keep their defaults.
	if cfg.Window.Title != "Season's Greetings" {
		t.Errorf("title lost its default: %q", cfg.Window.Title)
	}
}

func TestLoadConfigEmptyInputKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadConfig(empty): %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty config diverged from defaults: %+v", cfg)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	if _, err := LoadConfig(strings.NewReader("sparkle: 9000\n")); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero window", "window:\n  width: 0\n"},
		{"negative leaves", "tree:\n  leaves: -5\n"},
		{"zero explosion radius", "tree:\n  explosion_radius: 0\n"},
		{"negative height", "tree:\n  height: -2\n"},
		{"zero pinch threshold", "gesture:\n  pinch_threshold: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(strings.NewReader(tc.yaml)); err == nil {
				t.Errorf("invalid config accepted: %q", tc.yaml)
			}
		})
	}
}
