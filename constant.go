// FILE: constant.go
package logship

import (
	"time"
)

// Log level constants
const (
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
)

// Remote endpoint
const (
	defaultEndpointPath = "/api/logs/batch"
	apiKeyHeader        = "X-API-Key"
)

// Storage
const (
	// Fixed key for the persisted backlog, private to this subsystem
	backlogFileName = "pending.json"
	// Persistent per-host instance identifier
	instanceIDFileName = "instance-id"
	// Directory under the user home when no storage directory is configured
	defaultStorageDirName = ".logship"
)

// Timers
const (
	// Minimum wait time used throughout the package
	minWaitTime = 10 * time.Millisecond
	// Grace period added to the transport timeout when waiting for shutdown
	shutdownGracePeriod = 5 * time.Second
)
