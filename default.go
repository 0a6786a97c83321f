// FILE: default.go
package logship

import (
	"time"
)

// Global instance for package-level functions
var defaultShipper = NewShipper()

// Default package-level functions that delegate to the default shipper

// Init configures and starts the package-level shipper. Must be called once
// before any logging call has effect; logging calls before Init are silently
// ignored.
func Init(baseURL, apiKey, appID string, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	cfg.BaseURL = baseURL
	cfg.APIKey = apiKey
	cfg.AppID = appID

	if err := defaultShipper.ApplyConfig(cfg); err != nil {
		return err
	}
	return defaultShipper.Start()
}

// IsInitialized reports whether Init has been called and Shutdown has not.
func IsInitialized() bool {
	return defaultShipper.IsInitialized()
}

// Shutdown gracefully closes the shipper, attempting one last flush and
// persisting whatever remains
func Shutdown(timeout ...time.Duration) error {
	return defaultShipper.Shutdown(timeout...)
}

// Flush manually requests a flush and waits for it to complete
func Flush(timeout time.Duration) error {
	return defaultShipper.Flush(timeout)
}

// Debug logs a message at debug level
func Debug(message string, metadata ...map[string]any) {
	defaultShipper.Debug(message, metadata...)
}

// Info logs a message at info level
func Info(message string, metadata ...map[string]any) {
	defaultShipper.Info(message, metadata...)
}

// Warn logs a message at warning level
func Warn(message string, metadata ...map[string]any) {
	defaultShipper.Warn(message, metadata...)
}

// Error logs a message at error level and requests an immediate flush
func Error(message string, metadata ...map[string]any) {
	defaultShipper.Error(message, metadata...)
}

// GetStats returns counters for the package-level shipper
func GetStats() Stats {
	return defaultShipper.Stats()
}
