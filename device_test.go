// FILE: device_test.go
package logship

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHostInfoProviderSnapshot verifies the default snapshot fields
func TestHostInfoProviderSnapshot(t *testing.T) {
	provider := NewHostInfoProvider(t.TempDir(), "1.2.3")

	snap, err := provider.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, runtime.GOOS, snap["platform"])
	assert.Equal(t, runtime.GOARCH, snap["arch"])
	assert.Equal(t, runtime.Version(), snap["runtime_version"])
	assert.Equal(t, "1.2.3", snap["app_version"])
	assert.Equal(t, true, snap["physical_device"])
	assert.NotEmpty(t, snap["instance_id"])
	assert.NotEmpty(t, snap["hostname"])
}

// TestHostInfoProviderOmitsEmptyVersion verifies app_version is absent when
// not configured
func TestHostInfoProviderOmitsEmptyVersion(t *testing.T) {
	provider := NewHostInfoProvider(t.TempDir(), "")

	snap, err := provider.Snapshot()
	require.NoError(t, err)

	_, present := snap["app_version"]
	assert.False(t, present)
}

// TestInstanceIDPersists verifies the identifier survives across provider
// instances sharing a storage directory
func TestInstanceIDPersists(t *testing.T) {
	dir := t.TempDir()

	first, err := NewHostInfoProvider(dir, "").Snapshot()
	require.NoError(t, err)
	second, err := NewHostInfoProvider(dir, "").Snapshot()
	require.NoError(t, err)

	assert.Equal(t, first["instance_id"], second["instance_id"])
}

// TestInstanceIDEphemeralWithoutStorage verifies the fallback when no
// storage directory is available
func TestInstanceIDEphemeralWithoutStorage(t *testing.T) {
	provider := NewHostInfoProvider("", "")

	first, err := provider.Snapshot()
	require.NoError(t, err)
	second, err := provider.Snapshot()
	require.NoError(t, err)

	assert.NotEmpty(t, first["instance_id"])
	assert.NotEqual(t, first["instance_id"], second["instance_id"])
}
