// FILE: device.go
package logship

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

// DeviceInfoProvider supplies a flat snapshot of platform/app metadata. The
// snapshot is fetched once at startup and merged verbatim into every record;
// the shipper treats its content as opaque.
type DeviceInfoProvider interface {
	Snapshot() (map[string]any, error)
}

// HostInfoProvider is the default provider, describing the local host and
// Go runtime. It also carries a persistent per-host instance identifier
// stored alongside the backlog.
type HostInfoProvider struct {
	storageDir string
	appVersion string
}

func NewHostInfoProvider(storageDir, appVersion string) *HostInfoProvider {
	return &HostInfoProvider{
		storageDir: storageDir,
		appVersion: appVersion,
	}
}

// Snapshot gathers the host metadata. All fields are local lookups; the
// call does not touch the network.
func (p *HostInfoProvider) Snapshot() (map[string]any, error) {
	hostname, _ := os.Hostname()

	snap := map[string]any{
		"platform":        runtime.GOOS,
		"arch":            runtime.GOARCH,
		"runtime_version": runtime.Version(),
		"hostname":        hostname,
		"physical_device": true,
		"instance_id":     p.ensureInstanceID(),
	}
	if p.appVersion != "" {
		snap["app_version"] = p.appVersion
	}
	return snap, nil
}

// ensureInstanceID reads the stored instance identifier, creating one on
// first use. Any storage failure falls back to an ephemeral identifier.
func (p *HostInfoProvider) ensureInstanceID() string {
	if p.storageDir == "" {
		return uuid.New().String()
	}

	idFile := filepath.Join(p.storageDir, instanceIDFileName)
	if data, err := os.ReadFile(idFile); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	newID := uuid.New().String()
	if err := os.MkdirAll(p.storageDir, 0755); err != nil {
		return newID
	}
	_ = os.WriteFile(idFile, []byte(newID), 0644)
	return newID
}
