// FILE: record.go
package logship

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// getCurrentRecordChannel safely retrieves the current record channel
func (s *Shipper) getCurrentRecordChannel() chan Record {
	chVal := s.state.ActiveRecordChannel.Load()
	return chVal.(chan Record)
}

// deviceSnapshot returns the snapshot captured at startup; empty until the
// one-time fetch completes.
func (s *Shipper) deviceSnapshot() map[string]any {
	snap, _ := s.state.DeviceSnapshot.Load().(map[string]any)
	return snap
}

// log handles the core logging logic: enrich the event into a Record and
// hand it to the processor. Calls before init or after shutdown are no-ops;
// no error from this path ever reaches the caller.
func (s *Shipper) log(level int64, message string, metadata map[string]any) {
	if !s.state.IsInitialized.Load() {
		return
	}

	cfg := s.getConfig()
	if level < cfg.Level {
		return
	}

	record := Record{
		AppID:     cfg.AppID,
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Device:    s.deviceSnapshot(),
		Metadata:  metadata,
	}
	s.sendRecord(record)
}

// sendRecord handles safe sending to the active channel
func (s *Shipper) sendRecord(record Record) {
	defer func() {
		if r := recover(); r != nil { // Catch panic on send to closed channel
			s.handleFailedSend()
		}
	}()

	if s.state.ShutdownCalled.Load() || s.state.ShipperDisabled.Load() {
		s.handleFailedSend()
		return
	}

	ch := s.getCurrentRecordChannel()

	// Non-blocking send; the queue bound is enforced by the processor, the
	// channel only smooths producer bursts
	select {
	case ch <- record:
	default:
		s.handleFailedSend()
	}
}

// handleFailedSend counts a record lost to backpressure. The count is
// surfaced through Stats and the heartbeat, never to the caller.
func (s *Shipper) handleFailedSend() {
	s.state.DroppedRecords.Add(1)
}

// internalLog handles writing internal shipper diagnostics to stderr, if enabled.
func (s *Shipper) internalLog(format string, args ...any) {
	cfg := s.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}

	// Ensure consistent "logship: " prefix
	if !strings.HasPrefix(format, "logship: ") {
		format = "logship: " + format
	}

	fmt.Fprintf(os.Stderr, format, args...)
}
