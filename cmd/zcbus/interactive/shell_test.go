package interactive

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.Global.RootPath = t.TempDir()
	cfg.Global.Service.CreationTimeout = 50 * time.Millisecond
	r, err := registry.New(service.Local, cfg, registry.Options{})
	if err != nil {
		t.Fatalf("registry.New failed: %v", err)
	}

	var out bytes.Buffer
	s := newShell(r, nil, &out)
	t.Cleanup(s.releaseAll)
	return s, &out
}

func TestShellAttachAndRelease(t *testing.T) {
	s, out := newTestShell(t)
	ctx := context.Background()

	s.Exec(ctx, "create -payload u32 -max-subscribers 4 sensor/counter")
	if !strings.Contains(out.String(), "Created sensor/counter") {
		t.Fatalf("unexpected output: %s", out.String())
	}

	out.Reset()
	s.Exec(ctx, "create sensor/counter")
	if !strings.Contains(out.String(), "Already holding") {
		t.Errorf("expected duplicate hold to be refused: %s", out.String())
	}

	out.Reset()
	s.Exec(ctx, "held")
	if !strings.Contains(out.String(), "sensor/counter created=true nodes=1") {
		t.Errorf("unexpected held output: %s", out.String())
	}

	out.Reset()
	s.Exec(ctx, "release sensor/counter")
	if !strings.Contains(out.String(), "Released sensor/counter") {
		t.Errorf("unexpected release output: %s", out.String())
	}

	out.Reset()
	s.Exec(ctx, "open sensor/counter")
	if !strings.Contains(out.String(), "service does not exist") {
		t.Errorf("released service must be gone: %s", out.String())
	}
}

func TestShellCommands(t *testing.T) {
	s, out := newTestShell(t)
	ctx := context.Background()

	s.Exec(ctx, "open-or-create -payload f32 -slice -attr owner=shell shared")
	s.Exec(ctx, "list")
	s.Exec(ctx, "details shared")
	output := out.String()
	for _, want := range []string{"Created shared", "f32[]", "owner=shell"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	out.Reset()
	s.Exec(ctx, "bogus")
	if !strings.Contains(out.String(), "Unknown command: bogus") {
		t.Errorf("unexpected output: %s", out.String())
	}

	if s.Exec(ctx, "exit") {
		t.Error("exit must stop the shell")
	}
	if !s.Exec(ctx, "   ") {
		t.Error("blank lines must be ignored")
	}
}

func TestShellReleaseAll(t *testing.T) {
	s, out := newTestShell(t)
	ctx := context.Background()

	s.Exec(ctx, "create a")
	s.Exec(ctx, "create b")
	s.Exec(ctx, "release all")

	out.Reset()
	s.Exec(ctx, "held")
	if !strings.Contains(out.String(), "Holding no services.") {
		t.Errorf("unexpected output: %s", out.String())
	}
}
