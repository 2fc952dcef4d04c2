package registry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/log"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

var (
	u32Detail = typedesc.TypeDetail{Variant: typedesc.FixedSize, TypeName: "u32", Size: 4, Alignment: 4}
	u8Detail  = typedesc.TypeDetail{Variant: typedesc.FixedSize, TypeName: "u8", Size: 1, Alignment: 1}
)

var serviceTypes = []service.ServiceType{service.Ipc, service.Local}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Global.RootPath = t.TempDir()
	cfg.Global.Service.CreationTimeout = 50 * time.Millisecond
	return cfg
}

func newTestRegistry(t *testing.T, st service.ServiceType, cfg *config.Config) *Registry {
	t.Helper()
	r, err := New(st, cfg, Options{})
	require.NoError(t, err)
	return r
}

// pending returns a pending config with u32 payload details installed.
func pending(t *testing.T, r *Registry, name string) *PendingConfig {
	t.Helper()
	p, err := r.PublishSubscribe(name)
	require.NoError(t, err)
	require.Equal(t, StatusOK, p.SetPayloadTypeDetails(u32Detail))
	return p
}

func closeFactory(t *testing.T, f *PortFactory) {
	t.Helper()
	require.NoError(t, f.Close())
}

// recordingLogger collects events.
type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) snapshot() []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]log.Event(nil), r.events...)
}
