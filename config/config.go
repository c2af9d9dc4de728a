package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/milk9111/stadium/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window           WindowConfig `yaml:"window"`
	TPS              int          `yaml:"tps"`
	DebugDraw        bool         `yaml:"debug_draw"`
	MouseSensitivity float64      `yaml:"mouse_sensitivity"`
	Scene            string       `yaml:"scene"`
	LogLevel         string       `yaml:"log_level"`
	Keys             KeyBindings  `yaml:"keys"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// KeyBindings holds key names as understood by ebiten, e.g. "W" or
// "ShiftLeft".
type KeyBindings struct {
	Forwards  string `yaml:"forwards"`
	Backwards string `yaml:"backwards"`
	Right     string `yaml:"right"`
	Left      string `yaml:"left"`
	Jump      string `yaml:"jump"`
	Sneak     string `yaml:"sneak"`
}

func (k KeyBindings) named() [][2]string {
	return [][2]string{
		{"forwards", k.Forwards},
		{"backwards", k.Backwards},
		{"right", k.Right},
		{"left", k.Left},
		{"jump", k.Jump},
		{"sneak", k.Sneak},
	}
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "stadium",
		},
		TPS:              common.DefaultTPS,
		MouseSensitivity: 1,
		Scene:            "example.yaml",
		LogLevel:         "info",
		Keys: KeyBindings{
			Forwards:  "W",
			Backwards: "S",
			Right:     "D",
			Left:      "A",
			Jump:      "Space",
			Sneak:     "ShiftLeft",
		},
	}
}

// Load reads path over the defaults, so a config file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}
	return cfg, nil
}

// Level returns the zerolog level named by LogLevel, info when empty.
func (c *Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, errors.Wrap(err, "config: log_level")
	}
	return lvl, nil
}

// Validate checks the config. known reports whether a key name can be
// bound; pass nil to skip that check.
func (c *Config) Validate(known func(string) bool) error {
	var problems []string
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		problems = append(problems, fmt.Sprintf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.TPS <= 0 {
		problems = append(problems, fmt.Sprintf("tps must be positive, got %d", c.TPS))
	}
	if c.MouseSensitivity < 0 {
		problems = append(problems, "mouse_sensitivity must not be negative")
	}
	if c.Scene == "" {
		problems = append(problems, "scene is empty")
	}
	if _, err := c.Level(); err != nil {
		problems = append(problems, err.Error())
	}

	bound := map[string]string{}
	for _, kv := range c.Keys.named() {
		action, key := kv[0], kv[1]
		if key == "" {
			problems = append(problems, fmt.Sprintf("keys.%s is empty", action))
			continue
		}
		if known != nil && !known(key) {
			problems = append(problems, fmt.Sprintf("keys.%s: unknown key %q", action, key))
		}
		lower := strings.ToLower(key)
		if other, ok := bound[lower]; ok {
			problems = append(problems, fmt.Sprintf("keys.%s: %q already bound to %s", action, key, other))
			continue
		}
		bound[lower] = action
	}

	if len(problems) > 0 {
		return errors.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
