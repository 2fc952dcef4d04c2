package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

func logToJSON(t *testing.T, event Event) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	NewSlogAdapter(slog.New(handler)).Log(event)

	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func TestSlogAdapterLogsNegotiation(t *testing.T) {
	payload := typedesc.TypeDetail{TypeName: "u32", Size: 4, Alignment: 4}
	entry := logToJSON(t, Event{
		Timestamp:   time.Now(),
		NodeID:      "node-1",
		ServiceName: "sensor/imu",
		ServiceType: "ipc",
		Category:    CategoryNegotiation,
		Negotiation: &NegotiationEvent{
			Operation: OperationOpenOrCreate,
			Branch:    OperationOpen,
			Attempts:  2,
			Payload:   &payload,
			Success:   true,
		},
	})

	checks := map[string]any{
		"node_id":      "node-1",
		"service":      "sensor/imu",
		"service_type": "ipc",
		"operation":    "OPEN_OR_CREATE",
		"branch":       "OPEN",
		"success":      true,
		"attempts":     float64(2),
		"level":        "DEBUG",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s: got %v, want %v", k, entry[k], want)
		}
	}
	if _, ok := entry["status"]; ok {
		t.Error("status should be omitted on success")
	}
}

func TestSlogAdapterFailureIsWarning(t *testing.T) {
	entry := logToJSON(t, Event{
		NodeID:   "node-1",
		Category: CategoryNegotiation,
		Negotiation: &NegotiationEvent{
			Operation: OperationOpen,
			Branch:    OperationOpen,
			Status:    "OPEN:DOES_NOT_EXIST",
		},
	})

	if entry["level"] != "WARN" {
		t.Errorf("level: got %v, want WARN", entry["level"])
	}
	if entry["status"] != "OPEN:DOES_NOT_EXIST" {
		t.Errorf("status: got %v", entry["status"])
	}
}

func TestSlogAdapterLogsLifecycleAndError(t *testing.T) {
	entry := logToJSON(t, Event{
		NodeID:    "node-1",
		Category:  CategoryLifecycle,
		Lifecycle: &LifecycleEvent{State: ServiceDestroyed, Reason: "last node released"},
	})
	if entry["state"] != "DESTROYED" || entry["reason"] != "last node released" {
		t.Errorf("lifecycle attrs: %v", entry)
	}

	entry = logToJSON(t, Event{
		NodeID:   "node-1",
		Category: CategoryError,
		Error:    &ErrorEventData{Message: "boom", Context: "remove"},
	})
	if entry["error_msg"] != "boom" || entry["error_context"] != "remove" {
		t.Errorf("error attrs: %v", entry)
	}
}
