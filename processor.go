// FILE: processor.go
package logship

import (
	"time"
)

// processRecords is the main processing loop running in a separate goroutine.
// It has exclusive ownership of the pending queue: appends, the
// snapshot-and-clear, and the requeue all happen on this goroutine, and the
// send runs inline, so one flush can never interleave with another
// (single-flight by construction). Triggers arriving while a send is on the
// wire are dropped, not queued; the next tick or error record tries again.
func (s *Shipper) processRecords(ch chan Record) {
	defer s.state.ProcessorExited.Store(true)

	cfg := s.getConfig()
	queue := newRecordQueue(int(cfg.MaxQueueSize))

	// Restore any backlog persisted by a previous run. The store clears the
	// key on a successful load so a backlog is never replayed twice.
	s.restoreBacklog(queue)

	flushTicker := time.NewTicker(time.Duration(cfg.FlushIntervalS) * time.Second)
	defer flushTicker.Stop()

	var heartbeatChan <-chan time.Time
	if cfg.HeartbeatIntervalS > 0 {
		heartbeatTicker := time.NewTicker(time.Duration(cfg.HeartbeatIntervalS) * time.Second)
		defer heartbeatTicker.Stop()
		heartbeatChan = heartbeatTicker.C
	}

	for {
		select {
		case record, ok := <-ch:
			if !ok {
				// Channel closed: final flush attempt, persist the rest, exit
				s.flushQueue(queue, ch)
				s.persistQueue(queue)
				return
			}

			s.ingest(queue, record)

			// A severe event does not wait for the periodic tick
			if record.Level >= LevelError {
				s.flushQueue(queue, ch)
			}

		case <-flushTicker.C:
			s.flushQueue(queue, ch)

		case confirmChan := <-s.state.flushRequestChan:
			s.flushQueue(queue, ch)
			close(confirmChan) // Signal completion back to the Flush caller

		case <-heartbeatChan:
			s.appendHeartbeat(queue)
		}
	}
}

// ingest appends one record to the queue and mirrors it to the console
func (s *Shipper) ingest(queue *recordQueue, record Record) {
	s.echoToConsole(record)
	queue.append(record)
	s.state.PendingRecords.Store(int64(queue.length()))
}

// flushQueue runs one complete flush cycle: drain pending arrivals, take the
// snapshot, send, and on failure requeue ahead of anything that arrived
// during the send, then persist. All transport failure kinds collapse into
// this one retry path; there is no backoff and no retry cap, so a sustained
// outage degrades to oldest-first eviction once the queue bound is hit.
func (s *Shipper) flushQueue(queue *recordQueue, ch chan Record) {
	s.drainPending(queue, ch)

	if queue.isEmpty() {
		return
	}

	batch := queue.snapshotAndClear()
	err := s.collaborators().transport.Send(batch)
	s.state.TotalFlushes.Add(1)

	if err == nil {
		s.state.TotalShipped.Add(uint64(len(batch)))
		s.state.PendingRecords.Store(int64(queue.length()))
		return
	}

	s.state.FlushFailures.Add(1)
	s.internalLog("flush failed, requeueing %d records: %v\n", len(batch), err)

	// Records that arrived while the send was on the wire go behind the
	// failed batch, preserving chronological order across retries
	s.drainPending(queue, ch)
	queue.requeueFront(batch)
	s.state.PendingRecords.Store(int64(queue.length()))

	s.persistQueue(queue)
}

// drainPending moves records buffered in the channel into the queue without
// blocking
func (s *Shipper) drainPending(queue *recordQueue, ch chan Record) {
	for {
		select {
		case record, ok := <-ch:
			if !ok {
				return
			}
			s.ingest(queue, record)
		default:
			return
		}
	}
}

// restoreBacklog loads the persisted backlog into the queue. Best-effort: a
// load failure costs the backlog, never the host application.
func (s *Shipper) restoreBacklog(queue *recordQueue) {
	batch, err := s.collaborators().store.Load()
	if err != nil {
		s.internalLog("warning - failed to load persisted backlog: %v\n", err)
		return
	}
	for _, record := range batch {
		queue.append(record)
	}
	s.state.PendingRecords.Store(int64(queue.length()))
}

// persistQueue saves the queue to the backlog store. Best-effort: a save
// failure is reported only to the diagnostic channel.
func (s *Shipper) persistQueue(queue *recordQueue) {
	if queue.isEmpty() {
		return
	}
	if err := s.collaborators().store.Save(queue.contents()); err != nil {
		s.internalLog("warning - failed to persist backlog: %v\n", err)
	}
}
