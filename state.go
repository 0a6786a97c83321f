// FILE: state.go
package logship

import (
	"sync"
	"sync/atomic"
)

// State encapsulates the runtime state of the shipper
type State struct {
	IsInitialized   atomic.Bool
	ShipperDisabled atomic.Bool
	ShutdownCalled  atomic.Bool
	Started         atomic.Bool
	ProcessorExited atomic.Bool // Tracks if the processor goroutine is running or has exited
	SnapshotFetched atomic.Bool // Device snapshot is fetched once per process lifetime

	flushRequestChan chan chan struct{} // Channel to request a flush
	flushMutex       sync.Mutex         // Protect concurrent Flush calls

	ActiveRecordChannel atomic.Value // stores chan Record
	DeviceSnapshot      atomic.Value // stores map[string]any
	ConsoleWriter       atomic.Value // stores *sink
	StartTime           atomic.Value // stores time.Time

	// Counters surfaced through Stats
	PendingRecords atomic.Int64  // Queue length as of the last processor touch
	DroppedRecords atomic.Uint64 // Records lost to channel backpressure
	TotalShipped   atomic.Uint64 // Records confirmed delivered
	TotalFlushes   atomic.Uint64 // Flush attempts that reached the transport
	FlushFailures  atomic.Uint64 // Flush attempts that ended in requeue

	HeartbeatSequence atomic.Uint64
}
