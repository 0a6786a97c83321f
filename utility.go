// FILE: utility.go
package logship

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "logship: ") {
		format = "logship: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// Level converts level string to numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use debug, info, warn, error)", levelStr)
	}
}

// levelName converts a numeric level to its wire name.
func levelName(level int64) string {
	switch {
	case level <= LevelDebug:
		return "debug"
	case level <= LevelInfo:
		return "info"
	case level <= LevelWarn:
		return "warn"
	default:
		return "error"
	}
}

// resolveStorageDir returns the configured storage directory, falling back
// to a dot directory under the user home when unset.
func resolveStorageDir(cfg *Config) string {
	if cfg.StorageDirectory != "" {
		return cfg.StorageDirectory
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultStorageDirName
	}
	return filepath.Join(home, defaultStorageDirName)
}
