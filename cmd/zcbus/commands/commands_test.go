package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/pubsub"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
)

func newTestRegistry(t *testing.T, st service.ServiceType) *registry.Registry {
	t.Helper()
	cfg := config.Default()
	cfg.Global.RootPath = t.TempDir()
	cfg.Global.Service.CreationTimeout = 50 * time.Millisecond
	r, err := registry.New(st, cfg, registry.Options{})
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}
	return r
}

func attach(t *testing.T, r *registry.Registry, opts ProbeOptions) Factory {
	t.Helper()
	f, err := Attach(r, opts)
	if err != nil {
		t.Fatalf("Attach(%+v) failed: %v", opts, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestFlagValues(t *testing.T) {
	var opts ProbeOptions
	fs := flag.NewFlagSet("probe", flag.ContinueOnError)
	fs.Var(&opts.MaxSubscribers, "max-subscribers", "")
	fs.Var(&opts.SafeOverflow, "safe-overflow", "")
	fs.Var(&opts.Attributes, "attr", "")

	err := fs.Parse([]string{"-max-subscribers", "4", "-safe-overflow", "-attr", "camera=front", "-attr", "fps=30"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if !opts.MaxSubscribers.IsSet || opts.MaxSubscribers.Value != 4 {
		t.Errorf("MaxSubscribers = %+v, want set 4", opts.MaxSubscribers)
	}
	if opts.MaxPublishers.IsSet {
		t.Error("MaxPublishers must stay unset")
	}
	if !opts.SafeOverflow.IsSet || !opts.SafeOverflow.Value {
		t.Errorf("SafeOverflow = %+v, want set true", opts.SafeOverflow)
	}
	if got := opts.Attributes.String(); got != "camera=front,fps=30" {
		t.Errorf("Attributes = %q", got)
	}

	if err := opts.Attributes.Set("novalue"); err == nil {
		t.Error("expected error for attribute without '='")
	}
}

func TestAttachCreateThenOpen(t *testing.T) {
	r := newTestRegistry(t, service.Local)

	maxSubs := OptionalUint{Value: 4, IsSet: true}
	f := attach(t, r, ProbeOptions{Service: "sensor/counter", Mode: ModeCreate, Payload: "u32", MaxSubscribers: maxSubs})
	if !f.Created() {
		t.Error("expected creator")
	}

	_, err := Attach(r, ProbeOptions{Service: "sensor/counter", Mode: ModeOpen, Payload: "u32", MaxSubscribers: OptionalUint{Value: 8, IsSet: true}})
	if !errors.Is(err, pubsub.ErrDoesNotSupportRequestedAmountOfSubscribers) {
		t.Errorf("open with 8 subscribers: got %v", err)
	}

	_, err = Attach(r, ProbeOptions{Service: "sensor/counter", Mode: ModeOpen, Payload: "u32", Slice: true})
	if !errors.Is(err, pubsub.ErrIncompatibleTypes) {
		t.Errorf("open as slice: got %v", err)
	}

	g := attach(t, r, ProbeOptions{Service: "sensor/counter", Mode: ModeOpenOrCreate, Payload: "u32"})
	if g.Created() {
		t.Error("open-or-create must open the existing service")
	}
	if g.NumberOfNodes() != 2 {
		t.Errorf("NumberOfNodes = %d, want 2", g.NumberOfNodes())
	}
}

func TestAttachWithAttributes(t *testing.T) {
	r := newTestRegistry(t, service.Local)
	attrs := Attributes{{Key: "camera", Value: "front"}}

	attach(t, r, ProbeOptions{Service: "cam", Mode: ModeCreate, Payload: "u8", Slice: true, Attributes: attrs})
	attach(t, r, ProbeOptions{Service: "cam", Mode: ModeOpen, Payload: "u8", Slice: true, Attributes: attrs})

	_, err := Attach(r, ProbeOptions{Service: "cam", Mode: ModeOpen, Payload: "u8", Slice: true, Attributes: Attributes{{Key: "camera", Value: "rear"}}})
	if !errors.Is(err, pubsub.ErrIncompatibleAttributes) {
		t.Errorf("got %v, want ErrIncompatibleAttributes", err)
	}
}

func TestAttachRejectsBadInput(t *testing.T) {
	r := newTestRegistry(t, service.Local)

	if _, err := Attach(r, ProbeOptions{Service: "x", Mode: "delete", Payload: "u32"}); err == nil {
		t.Error("expected error for invalid mode")
	}
	if _, err := Attach(r, ProbeOptions{Service: "x", Mode: ModeOpen, Payload: "string"}); err == nil {
		t.Error("expected error for unsupported payload")
	}
	if _, err := Attach(r, ProbeOptions{Service: "", Mode: ModeOpen, Payload: "u32"}); !errors.Is(err, service.ErrInvalidName) {
		t.Errorf("got %v, want ErrInvalidName", err)
	}
}

func TestPayloadNames(t *testing.T) {
	names := PayloadNames()
	if len(names) != 13 {
		t.Errorf("got %d payload names, want 13: %v", len(names), names)
	}
	for _, n := range names {
		if strings.HasSuffix(n, "[]") {
			t.Errorf("slice variant %q listed", n)
		}
	}
}

func TestRunProbeReleases(t *testing.T) {
	r := newTestRegistry(t, service.Ipc)

	var buf bytes.Buffer
	err := RunProbe(context.Background(), r, ProbeOptions{Service: "probe/me", Mode: ModeCreate, Payload: "f64"}, &buf)
	if err != nil {
		t.Fatalf("RunProbe failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Created probe/me") || !strings.Contains(buf.String(), "f64") {
		t.Errorf("unexpected output: %s", buf.String())
	}

	exists, err := r.Exists("probe/me")
	if err != nil || exists {
		t.Errorf("service must be removed after probe: exists=%v err=%v", exists, err)
	}
}

func TestRunList(t *testing.T) {
	r := newTestRegistry(t, service.Ipc)

	var buf bytes.Buffer
	if err := RunList(r, &buf); err != nil {
		t.Fatalf("RunList failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No services.") {
		t.Errorf("unexpected output: %s", buf.String())
	}

	attach(t, r, ProbeOptions{Service: "b/second", Mode: ModeCreate, Payload: "u16", Slice: true})
	attach(t, r, ProbeOptions{Service: "a/first", Mode: ModeCreate, Payload: "u32"})

	buf.Reset()
	if err := RunList(r, &buf); err != nil {
		t.Fatalf("RunList failed: %v", err)
	}
	output := buf.String()
	first := strings.Index(output, "a/first")
	second := strings.Index(output, "b/second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected services sorted by name:\n%s", output)
	}
	if !strings.Contains(output, "u16[]") || !strings.Contains(output, "1/20") {
		t.Errorf("missing payload or node count:\n%s", output)
	}
}

func TestRunDetails(t *testing.T) {
	r := newTestRegistry(t, service.Local)
	attach(t, r, ProbeOptions{
		Service:     "detail",
		Mode:        ModeCreate,
		Payload:     "u64",
		HistorySize: OptionalUint{Value: 1, IsSet: true},
		Attributes:  Attributes{{Key: "owner", Value: "test"}},
	})

	var buf bytes.Buffer
	if err := RunDetails(r, "detail", false, &buf); err != nil {
		t.Fatalf("RunDetails failed: %v", err)
	}
	for _, want := range []string{"Service:  detail", "owner=test", "HistorySize:              1", "Nodes:    1/20"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := RunDetails(r, "detail", true, &buf); err != nil {
		t.Fatalf("RunDetails -json failed: %v", err)
	}
	var d registry.ServiceDetails
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if d.Static.PublishSubscribe.Payload.TypeName != "u64" {
		t.Errorf("payload = %q, want u64", d.Static.PublishSubscribe.Payload.TypeName)
	}

	if err := RunDetails(r, "missing", false, &buf); err == nil {
		t.Error("expected error for missing service")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zcbus.yaml")

	if err := RunConfigInit(path, false); err != nil {
		t.Fatalf("RunConfigInit failed: %v", err)
	}
	if err := RunConfigInit(path, false); err == nil {
		t.Error("expected error when the file exists")
	}
	if err := RunConfigInit(path, true); err != nil {
		t.Errorf("RunConfigInit -force failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	var buf bytes.Buffer
	if err := RunConfigShow(cfg, &buf); err != nil {
		t.Fatalf("RunConfigShow failed: %v", err)
	}
	if !strings.Contains(buf.String(), "type_name_policy: strict") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestOpenEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "zcbus.yaml")
	cfg := config.Default()
	cfg.Global.RootPath = dir
	if err := cfg.Save(cfgPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	eventLog := filepath.Join(dir, "events.zlog")

	var logs bytes.Buffer
	env, err := Open(GlobalOptions{ConfigPath: cfgPath, ServiceType: "local", LogLevel: "debug", EventLog: eventLog}, &logs)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer env.Close()

	if env.Registry.ServiceType() != service.Local {
		t.Errorf("ServiceType = %v, want local", env.Registry.ServiceType())
	}
	attach(t, env.Registry, ProbeOptions{Service: "env", Mode: ModeOpenOrCreate, Payload: "bool"})

	if !strings.Contains(logs.String(), "NEGOTIATION") {
		t.Errorf("expected negotiation event in debug log:\n%s", logs.String())
	}
	if info, err := os.Stat(eventLog); err != nil || info.Size() == 0 {
		t.Errorf("event log not written: %v", err)
	}

	if _, err := Open(GlobalOptions{ConfigPath: cfgPath, LogLevel: "loud"}, &logs); err == nil {
		t.Error("expected error for invalid log level")
	}
	if _, err := Open(GlobalOptions{ConfigPath: cfgPath, ServiceType: "shm"}, &logs); !errors.Is(err, service.ErrInvalidServiceType) {
		t.Errorf("got %v, want ErrInvalidServiceType", err)
	}
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	r := newTestRegistry(t, service.Ipc)
	ctx, cancel := context.WithCancel(context.Background())

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- RunWatch(ctx, r, &out) }()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "Watching") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	f, err := Attach(r, ProbeOptions{Service: "watched", Mode: ModeCreate, Payload: "u32"})
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	for !strings.Contains(out.String(), "ADDED") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	f.Close()
	for !strings.Contains(out.String(), "REMOVED") && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("RunWatch returned %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "ADDED") || !strings.Contains(output, "REMOVED") {
		t.Errorf("expected ADDED and REMOVED events:\n%s", output)
	}
}

func TestRunWatchLocalUnsupported(t *testing.T) {
	r := newTestRegistry(t, service.Local)
	if err := RunWatch(context.Background(), r, &bytes.Buffer{}); !errors.Is(err, registry.ErrWatchUnsupported) {
		t.Errorf("got %v, want ErrWatchUnsupported", err)
	}
}
