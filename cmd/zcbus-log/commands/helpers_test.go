package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/zcbus/zcbus-go/pkg/log"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExtension)

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

var baseTime = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func negotiation(node, svc string, op, branch log.Operation, status string, offset time.Duration) log.Event {
	return log.Event{
		Timestamp:   baseTime.Add(offset),
		NodeID:      node,
		ServiceName: svc,
		ServiceType: "ipc",
		Category:    log.CategoryNegotiation,
		Negotiation: &log.NegotiationEvent{
			Operation: op,
			Branch:    branch,
			Payload:   &typedesc.TypeDetail{Variant: typedesc.FixedSize, TypeName: "u32", Size: 4, Alignment: 4},
			Success:   status == "",
			Status:    status,
			Duration:  1500 * time.Microsecond,
		},
	}
}

func lifecycle(node, svc string, state log.ServiceState, offset time.Duration) log.Event {
	return log.Event{
		Timestamp:   baseTime.Add(offset),
		NodeID:      node,
		ServiceName: svc,
		Category:    log.CategoryLifecycle,
		Lifecycle:   &log.LifecycleEvent{State: state, Nodes: 1},
	}
}

func sampleEvents() []log.Event {
	return []log.Event{
		negotiation("aaaaaaaa-1111", "sensor/imu", log.OperationCreate, log.OperationCreate, "", 0),
		lifecycle("aaaaaaaa-1111", "sensor/imu", log.ServiceCreated, time.Millisecond),
		negotiation("bbbbbbbb-2222", "sensor/imu", log.OperationOpen, log.OperationOpen, "OPEN:INCOMPATIBLE_TYPES", 2*time.Millisecond),
		negotiation("bbbbbbbb-2222", "sensor/gps", log.OperationOpenOrCreate, log.OperationCreate, "", 3*time.Millisecond),
		{
			Timestamp:   baseTime.Add(4 * time.Millisecond),
			NodeID:      "aaaaaaaa-1111",
			ServiceName: "sensor/imu",
			Category:    log.CategoryError,
			Error:       &log.ErrorEventData{Message: "permission denied", Context: "remove static config"},
		},
	}
}
