// Package eventlog implements Grove's append-only structured event stream
// (spec.md §4.9): every significant state transition and I/O event is
// recorded as {id, ts, kind, data} for telemetry, debugging, and test
// assertions.
package eventlog

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is one structured log entry.
type Event struct {
	ID   string          `json:"id"`
	TS   time.Time       `json:"ts"`
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Log is an append-only event stream, optionally mirrored to a JSONL file,
// and always retained in a bounded in-memory ring for test assertions and
// the debug overlay.
type Log struct {
	mu      sync.Mutex
	ring    []Event
	ringCap int
	writer  *bufio.Writer
	file    *os.File
	encoder *json.Encoder
}

// DefaultRingCapacity bounds the in-memory event ring kept for UI/test
// inspection.
const DefaultRingCapacity = 2000

// New returns a Log with no file sink; events are only kept in the ring.
// Use Open to additionally persist to disk.
func New() *Log {
	return &Log{ringCap: DefaultRingCapacity}
}

// Open returns a Log that also appends each event as one JSON line to the
// file at path.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	return &Log{
		ringCap: DefaultRingCapacity,
		file:    f,
		writer:  w,
		encoder: json.NewEncoder(w),
	}, nil
}

// Close flushes and closes the backing file, if any.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.writer != nil {
		l.writer.Flush()
	}
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Append records kind with the given JSON-marshalable payload. A marshal
// failure on data is swallowed into a {"marshal_error": "..."} payload
// rather than dropping the event outright, since the event itself (kind +
// timestamp) is still informative.
func (l *Log) Append(kind string, data any) Event {
	payload, err := json.Marshal(data)
	if err != nil {
		payload, _ = json.Marshal(map[string]string{"marshal_error": err.Error()})
	}

	ev := Event{
		ID:   uuid.NewString(),
		TS:   time.Now(),
		Kind: kind,
		Data: payload,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ring = append(l.ring, ev)
	if len(l.ring) > l.ringCap {
		l.ring = l.ring[len(l.ring)-l.ringCap:]
	}
	if l.encoder != nil {
		_ = l.encoder.Encode(ev)
		l.writer.Flush()
	}
	return ev
}

// Recent returns up to n of the most recently appended events, oldest
// first.
func (l *Log) Recent(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.ring) {
		n = len(l.ring)
	}
	out := make([]Event, n)
	copy(out, l.ring[len(l.ring)-n:])
	return out
}

// CountKind returns how many events of the given kind are currently
// retained in the ring — used by tests asserting, e.g., that exactly one
// stale_result_dropped event was logged (spec.md testable property 2/E4).
func (l *Log) CountKind(kind string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	count := 0
	for _, ev := range l.ring {
		if ev.Kind == kind {
			count++
		}
	}
	return count
}
