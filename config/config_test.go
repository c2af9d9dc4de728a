package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config)
	}{
		{
			name:       "overrides defaults",
			createFile: true,
			content: `window:
  width: 800
tps: 30
keys:
  jump: Enter
`,
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 800, cfg.Window.Width)
				assert.Equal(t, 720, cfg.Window.Height)
				assert.Equal(t, "stadium", cfg.Window.Title)
				assert.Equal(t, 30, cfg.TPS)
				assert.Equal(t, "Enter", cfg.Keys.Jump)
				assert.Equal(t, "W", cfg.Keys.Forwards)
			},
		},
		{
			name:       "empty file keeps defaults",
			createFile: true,
			content:    "",
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, Default(), cfg)
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
		},
		{
			name:       "bad yaml",
			createFile: true,
			content:    "tps: [60\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.createFile {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		known   func(string) bool
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.Window.Width = 0 },
			wantErr: "window size must be positive",
		},
		{
			name:    "zero tps",
			mutate:  func(c *Config) { c.TPS = 0 },
			wantErr: "tps must be positive",
		},
		{
			name:    "empty key",
			mutate:  func(c *Config) { c.Keys.Sneak = "" },
			wantErr: "keys.sneak is empty",
		},
		{
			name:    "duplicate key ignores case",
			mutate:  func(c *Config) { c.Keys.Jump = "w" },
			wantErr: `keys.jump: "w" already bound to forwards`,
		},
		{
			name:    "unknown key",
			mutate:  func(c *Config) { c.Keys.Left = "Banana" },
			known:   func(k string) bool { return k != "Banana" },
			wantErr: `keys.left: unknown key "Banana"`,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "loud" },
			wantErr: "log_level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate(tt.known)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := Default()
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, lvl)

	cfg.LogLevel = "DEBUG"
	lvl, err = cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}
