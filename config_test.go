// FILE: config_test.go
package logship

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig verifies the documented default values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, int64(100), cfg.MaxQueueSize)
	assert.Equal(t, int64(30), cfg.FlushIntervalS)
	assert.Equal(t, int64(10), cfg.HTTPTimeoutS)
	assert.Equal(t, int64(1024), cfg.BufferSize)
	assert.True(t, cfg.PrintToConsole)
	assert.Equal(t, "stdout", cfg.ConsoleTarget)
	assert.Equal(t, defaultEndpointPath, cfg.EndpointPath)
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, int64(0), cfg.HeartbeatIntervalS)
}

// TestDefaultConfigIsACopy verifies mutating a returned config does not
// affect later callers
func TestDefaultConfigIsACopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxQueueSize = 1

	assert.Equal(t, int64(100), DefaultConfig().MaxQueueSize)
}

// TestConfigValidation exercises the validation rules
func TestConfigValidation(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.BaseURL = "https://logs.example.com"
		cfg.AppID = "test-app"
		return cfg
	}

	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantError bool
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:      "empty base url",
			mutate:    func(cfg *Config) { cfg.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "base url without scheme",
			mutate:    func(cfg *Config) { cfg.BaseURL = "logs.example.com" },
			wantError: true,
		},
		{
			name:      "empty app id",
			mutate:    func(cfg *Config) { cfg.AppID = "  " },
			wantError: true,
		},
		{
			name:      "endpoint path without slash",
			mutate:    func(cfg *Config) { cfg.EndpointPath = "api/logs" },
			wantError: true,
		},
		{
			name:      "invalid console target",
			mutate:    func(cfg *Config) { cfg.ConsoleTarget = "file" },
			wantError: true,
		},
		{
			name:      "zero queue size",
			mutate:    func(cfg *Config) { cfg.MaxQueueSize = 0 },
			wantError: true,
		},
		{
			name:      "negative buffer size",
			mutate:    func(cfg *Config) { cfg.BufferSize = -1 },
			wantError: true,
		},
		{
			name:      "zero flush interval",
			mutate:    func(cfg *Config) { cfg.FlushIntervalS = 0 },
			wantError: true,
		},
		{
			name:      "zero http timeout",
			mutate:    func(cfg *Config) { cfg.HTTPTimeoutS = 0 },
			wantError: true,
		},
		{
			name:      "negative heartbeat interval",
			mutate:    func(cfg *Config) { cfg.HeartbeatIntervalS = -1 },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestNewConfigFromDefaults verifies map overrides
func TestNewConfigFromDefaults(t *testing.T) {
	cfg, err := NewConfigFromDefaults(map[string]any{
		"base_url":         "https://logs.example.com",
		"app_id":           "test-app",
		"max_queue_size":   int64(50),
		"flush_interval_s": 5,
		"print_to_console": false,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://logs.example.com", cfg.BaseURL)
	assert.Equal(t, int64(50), cfg.MaxQueueSize)
	assert.Equal(t, int64(5), cfg.FlushIntervalS)
	assert.False(t, cfg.PrintToConsole)
}

// TestNewConfigFromDefaultsRejectsUnknownKey verifies typo protection
func TestNewConfigFromDefaultsRejectsUnknownKey(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{
		"base_url":    "https://logs.example.com",
		"app_id":      "test-app",
		"unknown_key": "value",
	})
	assert.Error(t, err)
}

// TestNewConfigFromDefaultsRejectsWrongType verifies type conversion errors
func TestNewConfigFromDefaultsRejectsWrongType(t *testing.T) {
	_, err := NewConfigFromDefaults(map[string]any{
		"base_url":       "https://logs.example.com",
		"app_id":         "test-app",
		"max_queue_size": "not a number",
	})
	assert.Error(t, err)
}

// TestNewConfigFromFile verifies TOML loading through lixenwraith/config
func TestNewConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logship.toml")

	content := `[logship]
base_url = "https://logs.example.com"
app_id = "file-app"
max_queue_size = 25
flush_interval_s = 15
print_to_console = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewConfigFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://logs.example.com", cfg.BaseURL)
	assert.Equal(t, "file-app", cfg.AppID)
	assert.Equal(t, int64(25), cfg.MaxQueueSize)
	assert.Equal(t, int64(15), cfg.FlushIntervalS)
	assert.False(t, cfg.PrintToConsole)
	// Untouched keys keep defaults
	assert.Equal(t, int64(10), cfg.HTTPTimeoutS)
}

// TestConfigClone verifies Clone returns an independent copy
func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseURL = "https://logs.example.com"

	clone := cfg.Clone()
	clone.BaseURL = "https://other.example.com"

	assert.Equal(t, "https://logs.example.com", cfg.BaseURL)
}
