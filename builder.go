// FILE: builder.go
package logship

// Builder provides a fluent API for building shipper configurations.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg       *Config
	transport Transport
	store     BacklogStore
	device    DeviceInfoProvider
	err       error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Shipper instance with the specified configuration.
func (b *Builder) Build() (*Shipper, error) {
	if b.err != nil {
		return nil, b.err
	}

	shipper := NewShipper()

	// Custom collaborators must be in place before ApplyConfig wires defaults
	if b.transport != nil {
		shipper.transport = b.transport
		shipper.customTransport = true
	}
	if b.store != nil {
		shipper.store = b.store
		shipper.customStore = true
	}
	if b.device != nil {
		shipper.device = b.device
		shipper.customDevice = true
	}

	// Apply the built configuration. ApplyConfig handles all initialization and validation.
	if err := shipper.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return shipper, nil
}

// BaseURL sets the ingestion endpoint base URL.
func (b *Builder) BaseURL(url string) *Builder {
	b.cfg.BaseURL = url
	return b
}

// APIKey sets the API key credential.
func (b *Builder) APIKey(key string) *Builder {
	b.cfg.APIKey = key
	return b
}

// AppID sets the owning application identifier.
func (b *Builder) AppID(id string) *Builder {
	b.cfg.AppID = id
	return b
}

// AppVersion sets the application version reported in the device snapshot.
func (b *Builder) AppVersion(version string) *Builder {
	b.cfg.AppVersion = version
	return b
}

// Level sets the minimum level to ship.
func (b *Builder) Level(level int64) *Builder {
	b.cfg.Level = level
	return b
}

// LevelString sets the minimum level from a string.
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	levelVal, err := Level(level)
	if err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = levelVal
	return b
}

// MaxQueueSize sets the pending queue bound.
func (b *Builder) MaxQueueSize(size int64) *Builder {
	b.cfg.MaxQueueSize = size
	return b
}

// BufferSize sets the producer channel buffer size.
func (b *Builder) BufferSize(size int64) *Builder {
	b.cfg.BufferSize = size
	return b
}

// FlushIntervalS sets the scheduled flush interval in seconds.
func (b *Builder) FlushIntervalS(interval int64) *Builder {
	b.cfg.FlushIntervalS = interval
	return b
}

// HTTPTimeoutS sets the bound on a single send attempt in seconds.
func (b *Builder) HTTPTimeoutS(timeout int64) *Builder {
	b.cfg.HTTPTimeoutS = timeout
	return b
}

// StorageDirectory sets where the backlog and instance ID are persisted.
func (b *Builder) StorageDirectory(dir string) *Builder {
	b.cfg.StorageDirectory = dir
	return b
}

// PrintToConsole enables mirroring records to stdout/stderr.
func (b *Builder) PrintToConsole(enable bool) *Builder {
	b.cfg.PrintToConsole = enable
	return b
}

// HeartbeatIntervalS sets the self-diagnostic heartbeat interval in seconds.
func (b *Builder) HeartbeatIntervalS(interval int64) *Builder {
	b.cfg.HeartbeatIntervalS = interval
	return b
}

// Transport replaces the default HTTP transport.
func (b *Builder) Transport(t Transport) *Builder {
	b.transport = t
	return b
}

// Store replaces the default file-backed backlog store.
func (b *Builder) Store(store BacklogStore) *Builder {
	b.store = store
	return b
}

// Device replaces the default host info provider.
func (b *Builder) Device(provider DeviceInfoProvider) *Builder {
	b.device = provider
	return b
}

// Example usage:
// shipper, err := logship.NewBuilder().
//
//	BaseURL("https://logs.example.com").
//	APIKey("secret").
//	AppID("checkout").
//	LevelString("info").
//	StorageDirectory("/var/lib/checkout/logship").
//	Build()
//
// if err == nil {
//
//	 defer shipper.Shutdown()
//	 shipper.Start()
//	 shipper.Info("shipper initialized")
//
// }
