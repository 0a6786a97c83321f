// FILE: queue.go
package logship

// recordQueue is a bounded FIFO buffer of pending records. It is owned
// exclusively by the processor goroutine; none of its methods are safe for
// concurrent use.
type recordQueue struct {
	records []Record
	bound   int
}

func newRecordQueue(bound int) *recordQueue {
	if bound <= 0 {
		bound = int(defaultConfig.MaxQueueSize)
	}
	return &recordQueue{
		records: make([]Record, 0, bound),
		bound:   bound,
	}
}

// append inserts at the tail, silently evicting the oldest records when the
// bound is exceeded. Data loss under backpressure is deliberate policy.
func (q *recordQueue) append(rec Record) {
	q.records = append(q.records, rec)
	q.evict()
}

// snapshotAndClear returns the full ordered content and resets the queue to
// empty in one step.
func (q *recordQueue) snapshotAndClear() []Record {
	snapshot := q.records
	q.records = make([]Record, 0, q.bound)
	return snapshot
}

// requeueFront prepends a previously taken batch, keeping the batch ahead of
// anything appended since the snapshot, then applies the eviction rule.
func (q *recordQueue) requeueFront(batch []Record) {
	if len(batch) == 0 {
		return
	}
	merged := make([]Record, 0, len(batch)+len(q.records))
	merged = append(merged, batch...)
	merged = append(merged, q.records...)
	q.records = merged
	q.evict()
}

// contents returns a copy of the current queue for persistence.
func (q *recordQueue) contents() []Record {
	out := make([]Record, len(q.records))
	copy(out, q.records)
	return out
}

func (q *recordQueue) isEmpty() bool {
	return len(q.records) == 0
}

func (q *recordQueue) length() int {
	return len(q.records)
}

func (q *recordQueue) evict() {
	if over := len(q.records) - q.bound; over > 0 {
		q.records = append(q.records[:0], q.records[over:]...)
	}
}
