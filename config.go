// FILE: config.go
package logship

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"
)

// Config holds all shipper configuration values
type Config struct {
	// Endpoint settings
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	AppID        string `toml:"app_id"`
	AppVersion   string `toml:"app_version"`
	EndpointPath string `toml:"endpoint_path"`

	// Filtering
	Level int64 `toml:"level"`

	// Buffer and size limits
	MaxQueueSize int64 `toml:"max_queue_size"` // Bound of the pending queue
	BufferSize   int64 `toml:"buffer_size"`    // Producer channel buffer size

	// Timers
	FlushIntervalS     int64 `toml:"flush_interval_s"`     // Interval between scheduled flushes
	HTTPTimeoutS       int64 `toml:"http_timeout_s"`       // Bound on a single send attempt
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // 0=disabled

	// Persistence
	StorageDirectory string `toml:"storage_directory"` // Empty resolves to ~/.logship

	// Console mirroring (debug concern only, never affects shipping)
	PrintToConsole bool   `toml:"print_to_console"`
	ConsoleTarget  string `toml:"console_target"` // "stdout" or "stderr"

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	// Endpoint settings
	BaseURL:      "",
	APIKey:       "",
	AppID:        "",
	AppVersion:   "",
	EndpointPath: defaultEndpointPath,

	// Filtering
	Level: LevelDebug,

	// Buffer and size limits
	MaxQueueSize: 100,
	BufferSize:   1024,

	// Timers
	FlushIntervalS:     30,
	HTTPTimeoutS:       10,
	HeartbeatIntervalS: 0,

	// Persistence
	StorageDirectory: "",

	// Console settings
	PrintToConsole: true,
	ConsoleTarget:  "stdout",

	// Internal error handling
	InternalErrorsToStderr: false,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("logship.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "logship.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	// Validate the loaded configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewConfigFromDefaults creates a Config with default values and applies overrides
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	// Apply overrides using reflection
	if err := applyOverrides(cfg, overrides); err != nil {
		return nil, fmt.Errorf("failed to apply overrides: %w", err)
	}

	// Validate the configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Get the toml tag to determine the config key
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		key := prefix + tomlTag

		// Get value from loader
		val, found := loader.Get(key)
		if !found {
			continue // Use default value
		}

		// Set the field value with type conversion
		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// applyOverrides applies a map of overrides to the Config struct
func applyOverrides(cfg *Config, overrides map[string]any) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	// Create a map of field names to field values for efficient lookup
	fieldMap := make(map[string]reflect.Value)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tomlTag := field.Tag.Get("toml")
		if tomlTag != "" {
			fieldMap[tomlTag] = v.Field(i)
		}
	}

	for key, value := range overrides {
		fieldValue, exists := fieldMap[key]
		if !exists {
			return fmt.Errorf("unknown config key: %s", key)
		}

		if err := setFieldValue(fieldValue, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	// String validations
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmtErrorf("base_url cannot be empty")
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmtErrorf("invalid base_url: '%s'", c.BaseURL)
	}

	if strings.TrimSpace(c.AppID) == "" {
		return fmtErrorf("app_id cannot be empty")
	}

	if !strings.HasPrefix(c.EndpointPath, "/") {
		return fmtErrorf("endpoint_path must start with slash: '%s'", c.EndpointPath)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	// Numeric validations
	if c.MaxQueueSize <= 0 {
		return fmtErrorf("max_queue_size must be positive: %d", c.MaxQueueSize)
	}

	if c.BufferSize <= 0 {
		return fmtErrorf("buffer_size must be positive: %d", c.BufferSize)
	}

	if c.FlushIntervalS <= 0 || c.HTTPTimeoutS <= 0 {
		return fmtErrorf("interval settings must be positive")
	}

	if c.HeartbeatIntervalS < 0 {
		return fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS)
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// configRequiresRestart reports whether changing between the two
// configurations requires the processor to be restarted
func configRequiresRestart(oldCfg, newCfg *Config) bool {
	return oldCfg.BufferSize != newCfg.BufferSize ||
		oldCfg.MaxQueueSize != newCfg.MaxQueueSize ||
		oldCfg.FlushIntervalS != newCfg.FlushIntervalS ||
		oldCfg.HeartbeatIntervalS != newCfg.HeartbeatIntervalS ||
		oldCfg.StorageDirectory != newCfg.StorageDirectory
}
