// FILE: utility_test.go
package logship

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevelParsing verifies the string-to-level conversion
func TestLevelParsing(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"info", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"error", LevelError, false},
		{"ERROR", LevelError, false},
		{" info ", LevelInfo, false},
		{"trace", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Level(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestLevelNameRoundTrip verifies the wire names map back to themselves
func TestLevelNameRoundTrip(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error"} {
		level, err := Level(name)
		require.NoError(t, err)
		assert.Equal(t, name, levelName(level))
	}
}

// TestFmtErrorfPrefix verifies errors carry the package prefix exactly once
func TestFmtErrorfPrefix(t *testing.T) {
	err := fmtErrorf("something failed")
	assert.Equal(t, "logship: something failed", err.Error())

	wrapped := fmtErrorf("outer: %w", err)
	assert.Equal(t, "logship: outer: logship: something failed", wrapped.Error())
	assert.ErrorIs(t, wrapped, err)
}

// TestCombineErrors verifies nil handling and wrapping
func TestCombineErrors(t *testing.T) {
	e1 := errors.New("first")
	e2 := errors.New("second")

	assert.Nil(t, combineErrors(nil, nil))
	assert.Equal(t, e1, combineErrors(e1, nil))
	assert.Equal(t, e2, combineErrors(nil, e2))

	both := combineErrors(e1, e2)
	require.Error(t, both)
	assert.Contains(t, both.Error(), "first")
	assert.Contains(t, both.Error(), "second")
	assert.ErrorIs(t, both, e2)
}

// TestResolveStorageDir verifies the configured directory wins over the
// home fallback
func TestResolveStorageDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDirectory = "/var/lib/app"
	assert.Equal(t, "/var/lib/app", resolveStorageDir(cfg))

	cfg.StorageDirectory = ""
	dir := resolveStorageDir(cfg)
	assert.Equal(t, defaultStorageDirName, filepath.Base(dir))
}
