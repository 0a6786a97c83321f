// FILE: heartbeat.go
package logship

import (
	"fmt"
	"time"
)

// appendHeartbeat queues a self-diagnostic record so shipper health travels
// the same pipeline as application events. Disabled unless
// heartbeat_interval_s is set.
func (s *Shipper) appendHeartbeat(queue *recordQueue) {
	if s.state.ShipperDisabled.Load() || s.state.ShutdownCalled.Load() {
		return
	}

	cfg := s.getConfig()
	sequence := s.state.HeartbeatSequence.Add(1)

	var uptimeHours float64
	if startTime, ok := s.state.StartTime.Load().(time.Time); ok && !startTime.IsZero() {
		uptimeHours = time.Since(startTime).Hours()
	}

	record := Record{
		AppID:     cfg.AppID,
		Level:     LevelInfo,
		Message:   "shipper heartbeat",
		Timestamp: time.Now().UTC(),
		Device:    s.deviceSnapshot(),
		Metadata: map[string]any{
			"type":           "proc",
			"sequence":       sequence,
			"uptime_hours":   fmt.Sprintf("%.2f", uptimeHours),
			"shipped":        s.state.TotalShipped.Load(),
			"dropped":        s.state.DroppedRecords.Load(),
			"flush_failures": s.state.FlushFailures.Load(),
			"pending":        int64(queue.length()),
		},
	}

	s.ingest(queue, record)
}
