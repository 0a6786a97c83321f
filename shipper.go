// FILE: shipper.go
package logship

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Shipper is the core struct that accumulates structured log events, batches
// them, and delivers them to a remote ingestion endpoint. It owns the pending
// queue, the flush scheduler, the transport, and the persisted backlog.
type Shipper struct {
	currentConfig atomic.Value // stores *Config
	state         State
	initMu        sync.Mutex

	// Injected collaborator overrides, set before ApplyConfig wires defaults
	transport       Transport
	store           BacklogStore
	device          DeviceInfoProvider
	customTransport bool
	customStore     bool
	customDevice    bool

	// Active collaborator set, swapped atomically on reconfiguration
	collab atomic.Value // stores *collabSet

	// Console serializer, touched only by the processor goroutine
	console *consoleSerializer
}

// collabSet bundles the transport, store, and device provider so a
// reconfiguration publishes all three in one atomic store and the processor
// never observes a half-updated set.
type collabSet struct {
	transport Transport
	store     BacklogStore
	device    DeviceInfoProvider
}

// NewShipper creates a new Shipper instance with default settings
func NewShipper() *Shipper {
	s := &Shipper{}

	// Set default configuration
	s.currentConfig.Store(DefaultConfig())

	// Initialize the state
	s.state.IsInitialized.Store(false)
	s.state.ShipperDisabled.Store(false)
	s.state.ShutdownCalled.Store(false)
	s.state.ProcessorExited.Store(true)
	s.state.StartTime.Store(time.Now())
	s.state.DeviceSnapshot.Store(map[string]any{})
	s.state.ConsoleWriter.Store(&sink{w: io.Discard})

	// Create a closed channel initially to prevent nil pointer issues
	initialChan := make(chan Record)
	close(initialChan)
	s.state.ActiveRecordChannel.Store(initialChan)

	s.state.flushRequestChan = make(chan chan struct{}, 1)

	s.collab.Store(&collabSet{})

	return s
}

// ApplyConfig applies a validated configuration to the shipper.
// This is the primary way applications should configure the shipper.
func (s *Shipper) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	s.initMu.Lock()
	defer s.initMu.Unlock()

	return s.applyConfig(cfg.Clone())
}

// GetConfig returns a copy of current configuration
func (s *Shipper) GetConfig() *Config {
	return s.getConfig().Clone()
}

// IsInitialized reports whether the shipper has been configured and not yet
// shut down. Logging calls in any other state are silent no-ops.
func (s *Shipper) IsInitialized() bool {
	return s.state.IsInitialized.Load()
}

// Start begins record processing and triggers the one-time asynchronous
// device snapshot fetch. Safe to call multiple times.
// Returns error if the shipper is not initialized.
func (s *Shipper) Start() error {
	if !s.state.IsInitialized.Load() {
		return fmtErrorf("shipper not initialized, call ApplyConfig first")
	}

	// Check if processor didn't exit cleanly last time
	if s.state.Started.Load() && !s.state.ProcessorExited.Load() {
		s.internalLog("warning - processor still running from previous start, forcing stop\n")
		if err := s.Stop(); err != nil {
			return fmtErrorf("failed to stop hung processor: %w", err)
		}
	}

	// Only start if not already started
	if s.state.Started.CompareAndSwap(false, true) {
		cfg := s.getConfig()

		// Fetch the device snapshot once per process lifetime, before any
		// record can be enriched, so every record of the lifetime carries
		// the same snapshot
		if s.state.SnapshotFetched.CompareAndSwap(false, true) {
			snap, err := s.collaborators().device.Snapshot()
			if err != nil {
				s.internalLog("warning - device snapshot fetch failed: %v\n", err)
				snap = map[string]any{}
			}
			s.state.DeviceSnapshot.Store(snap)
		}

		// Create record channel
		recordChannel := make(chan Record, cfg.BufferSize)
		s.state.ActiveRecordChannel.Store(recordChannel)

		// Start processor
		s.state.ProcessorExited.Store(false)
		go s.processRecords(recordChannel)
	}

	return nil
}

// Stop halts record processing after a final flush attempt; whatever the
// attempt leaves behind is persisted. Can be restarted with Start().
// Returns nil if already stopped.
func (s *Shipper) Stop(timeout ...time.Duration) error {
	if !s.state.Started.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	// Calculate effective timeout: the final flush may spend a full
	// transport timeout on the wire before the processor can exit
	var effectiveTimeout time.Duration
	if len(timeout) > 0 {
		effectiveTimeout = timeout[0]
	} else {
		cfg := s.getConfig()
		effectiveTimeout = time.Duration(cfg.HTTPTimeoutS)*time.Second + shutdownGracePeriod
	}

	// Get current channel and close it
	ch := s.getCurrentRecordChannel()
	if ch != nil {
		// Create closed channel for immediate replacement
		closedChan := make(chan Record)
		close(closedChan)
		s.state.ActiveRecordChannel.Store(closedChan)

		if ch != closedChan {
			// Close the actual channel to signal the processor
			close(ch)
		}
	}

	// Wait for processor to exit (with timeout)
	deadline := time.Now().Add(effectiveTimeout)
	for time.Now().Before(deadline) {
		if s.state.ProcessorExited.Load() {
			return nil
		}
		time.Sleep(minWaitTime)
	}

	return fmtErrorf("processor did not exit within timeout (%v)", effectiveTimeout)
}

// Shutdown gracefully closes the shipper: it performs one last flush attempt
// and persists whatever remains. After Shutdown all logging calls are no-ops.
func (s *Shipper) Shutdown(timeout ...time.Duration) error {
	if !s.state.ShutdownCalled.CompareAndSwap(false, true) {
		return nil
	}

	s.state.ShipperDisabled.Store(true)

	if !s.state.IsInitialized.Load() {
		s.state.ShutdownCalled.Store(false)
		s.state.ShipperDisabled.Store(false)
		s.state.ProcessorExited.Store(true)
		return nil
	}

	var stopErr error
	if s.state.Started.Load() {
		stopErr = s.Stop(timeout...)
	}

	s.state.IsInitialized.Store(false)

	return stopErr
}

// Flush manually requests a flush and waits for the processor to complete it
// or for the timeout to expire. The flush itself follows the same
// single-flight discipline as the scheduled one; a send failure is handled
// internally (requeue + persist) and is not reported here.
func (s *Shipper) Flush(timeout time.Duration) error {
	s.state.flushMutex.Lock()
	defer s.state.flushMutex.Unlock()

	// State checks
	if !s.state.IsInitialized.Load() || s.state.ShutdownCalled.Load() {
		return fmtErrorf("shipper not initialized or already shut down")
	}
	if !s.state.Started.Load() {
		return fmtErrorf("shipper not started")
	}

	// One deadline covers both waits so the caller never blocks past the
	// stated bound
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	// Create a channel to wait for confirmation from the processor
	confirmChan := make(chan struct{})

	// Send the request with the confirmation channel
	select {
	case s.state.flushRequestChan <- confirmChan:
		// Request sent
	case <-deadline.C: // Prevent blocking if the processor is mid-send
		return fmtErrorf("failed to send flush request to processor (possible in-flight send or high load)")
	}

	select {
	case <-confirmChan:
		return nil
	case <-deadline.C:
		return fmtErrorf("timeout waiting for flush confirmation (%v)", timeout)
	}
}

// Stats returns a snapshot of the shipper's counters.
func (s *Shipper) Stats() Stats {
	var uptime time.Duration
	if startTime, ok := s.state.StartTime.Load().(time.Time); ok && !startTime.IsZero() {
		uptime = time.Since(startTime)
	}

	return Stats{
		Pending:       s.state.PendingRecords.Load(),
		Shipped:       s.state.TotalShipped.Load(),
		Dropped:       s.state.DroppedRecords.Load(),
		Flushes:       s.state.TotalFlushes.Load(),
		FlushFailures: s.state.FlushFailures.Load(),
		Uptime:        uptime,
	}
}

// Debug logs a message at debug level
func (s *Shipper) Debug(message string, metadata ...map[string]any) {
	s.log(LevelDebug, message, firstMetadata(metadata))
}

// Info logs a message at info level
func (s *Shipper) Info(message string, metadata ...map[string]any) {
	s.log(LevelInfo, message, firstMetadata(metadata))
}

// Warn logs a message at warning level
func (s *Shipper) Warn(message string, metadata ...map[string]any) {
	s.log(LevelWarn, message, firstMetadata(metadata))
}

// Error logs a message at error level and requests an immediate flush
func (s *Shipper) Error(message string, metadata ...map[string]any) {
	s.log(LevelError, message, firstMetadata(metadata))
}

// Log logs a message at an explicit level
func (s *Shipper) Log(level int64, message string, metadata map[string]any) {
	s.log(level, message, metadata)
}

// getConfig returns the current configuration (thread-safe)
func (s *Shipper) getConfig() *Config {
	return s.currentConfig.Load().(*Config)
}

// applyConfig is the internal implementation for applying configuration, assuming initMu is held
func (s *Shipper) applyConfig(cfg *Config) error {
	oldCfg := s.getConfig()
	s.currentConfig.Store(cfg)

	s.wireCollaborators(cfg)

	// Setup console writer based on config
	if cfg.PrintToConsole {
		var writer io.Writer
		if cfg.ConsoleTarget == "stderr" {
			writer = os.Stderr
		} else {
			writer = os.Stdout
		}
		s.state.ConsoleWriter.Store(&sink{w: writer})
	} else {
		s.state.ConsoleWriter.Store(&sink{w: io.Discard})
	}

	// Get current state
	wasInitialized := s.state.IsInitialized.Load()
	wasStarted := s.state.Started.Load()

	// Determine if restart is needed
	needsRestart := wasStarted && wasInitialized && configRequiresRestart(oldCfg, cfg)

	if needsRestart {
		if err := s.Stop(); err != nil {
			s.rollbackConfig(oldCfg)
			return fmtErrorf("failed to stop processor for restart: %w", err)
		}
	}

	// Mark as initialized
	s.state.IsInitialized.Store(true)
	s.state.ShutdownCalled.Store(false)
	s.state.ShipperDisabled.Store(false)

	// Restart processor if it was running and needs restart
	if needsRestart {
		return s.Start()
	}

	return nil
}

// wireCollaborators builds the collaborator set for cfg, keeping injected
// replacements, and publishes it atomically.
func (s *Shipper) wireCollaborators(cfg *Config) {
	set := &collabSet{
		transport: s.transport,
		store:     s.store,
		device:    s.device,
	}
	if !s.customTransport {
		set.transport = NewHTTPTransport(cfg)
	}
	if !s.customStore {
		set.store = NewFileStore(resolveStorageDir(cfg))
	}
	if !s.customDevice {
		set.device = NewHostInfoProvider(resolveStorageDir(cfg), cfg.AppVersion)
	}
	s.collab.Store(set)
}

// collaborators returns the active collaborator set.
func (s *Shipper) collaborators() *collabSet {
	return s.collab.Load().(*collabSet)
}

// rollbackConfig restores the previous configuration and rewires the
// collaborators to match it after a failed restart.
func (s *Shipper) rollbackConfig(oldCfg *Config) {
	s.currentConfig.Store(oldCfg)
	s.wireCollaborators(oldCfg)
}

// firstMetadata unwraps the optional variadic metadata parameter
func firstMetadata(metadata []map[string]any) map[string]any {
	if len(metadata) > 0 {
		return metadata[0]
	}
	return nil
}
