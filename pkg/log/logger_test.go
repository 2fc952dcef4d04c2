package log

import (
	"sync"
	"testing"
	"time"
)

// recordingLogger collects events for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestNoopLoggerDiscards(t *testing.T) {
	var l Logger = NoopLogger{}
	l.Log(Event{Timestamp: time.Now(), NodeID: "n"})
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}

	rec := &recordingLogger{}
	if OrNoop(rec) != Logger(rec) {
		t.Error("OrNoop should return non-nil loggers unchanged")
	}
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	m := NewMultiLogger(a, nil, b)

	m.Log(Event{NodeID: "n1"})
	m.Log(Event{NodeID: "n2"})

	if a.count() != 2 || b.count() != 2 {
		t.Errorf("counts = %d, %d; want 2, 2", a.count(), b.count())
	}
	if a.events[1].NodeID != "n2" {
		t.Errorf("order not preserved: %q", a.events[1].NodeID)
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	NewMultiLogger().Log(Event{})
}
