// FILE: type.go
package logship

import (
	"encoding/json"
	"io"
	"time"
)

// Record represents a single log event as it travels through the queue,
// over the wire, and through the persisted backlog.
type Record struct {
	AppID     string
	Level     int64
	Message   string
	Timestamp time.Time
	Device    map[string]any // snapshot captured once at startup, merged verbatim
	Metadata  map[string]any // caller-supplied fields, attached verbatim
}

// Reserved wire keys. Device snapshot fields are flattened alongside these,
// so a snapshot must not use them.
const (
	wireKeyAppID     = "app_id"
	wireKeyLevel     = "level"
	wireKeyMessage   = "message"
	wireKeyTimestamp = "timestamp"
	wireKeyMetadata  = "metadata"
)

// MarshalJSON flattens the device snapshot into the top-level object:
// {app_id, ...device fields, level, message, timestamp, metadata?}
func (r Record) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(r.Device)+5)
	for k, v := range r.Device {
		obj[k] = v
	}
	obj[wireKeyAppID] = r.AppID
	obj[wireKeyLevel] = levelName(r.Level)
	obj[wireKeyMessage] = r.Message
	obj[wireKeyTimestamp] = r.Timestamp.UTC().Format(time.RFC3339Nano)
	if r.Metadata != nil {
		obj[wireKeyMetadata] = r.Metadata
	}
	return json.Marshal(obj)
}

// UnmarshalJSON reverses the flattening; unknown top-level keys are
// restored into the device snapshot.
func (r *Record) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	if v, ok := obj[wireKeyAppID].(string); ok {
		r.AppID = v
	}
	if v, ok := obj[wireKeyLevel].(string); ok {
		if lvl, err := Level(v); err == nil {
			r.Level = lvl
		}
	}
	if v, ok := obj[wireKeyMessage].(string); ok {
		r.Message = v
	}
	if v, ok := obj[wireKeyTimestamp].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			r.Timestamp = ts
		}
	}
	if v, ok := obj[wireKeyMetadata].(map[string]any); ok {
		r.Metadata = v
	}

	delete(obj, wireKeyAppID)
	delete(obj, wireKeyLevel)
	delete(obj, wireKeyMessage)
	delete(obj, wireKeyTimestamp)
	delete(obj, wireKeyMetadata)
	if len(obj) > 0 {
		r.Device = obj
	}
	return nil
}

// batchEnvelope is the request body shape for the ingestion endpoint.
type batchEnvelope struct {
	Logs []Record `json:"logs"`
}

// Stats is a point-in-time snapshot of shipper counters.
type Stats struct {
	Pending       int64  // records currently buffered in the queue
	Shipped       uint64 // records confirmed delivered
	Dropped       uint64 // records lost to channel backpressure
	Flushes       uint64 // flush attempts that reached the transport
	FlushFailures uint64 // flush attempts that ended in requeue
	Uptime        time.Duration
}

// sink is a wrapper around an io.Writer, atomic value type change workaround
type sink struct {
	w io.Writer
}
