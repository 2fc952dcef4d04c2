package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
global:
  root_path: /dev/shm/zcbus
  type_name_policy: permissive
  service:
    creation_timeout: 2s
defaults:
  publish_subscribe:
    max_subscribers: 16
    enable_safe_overflow: false
    unable_to_deliver_strategy: discard_sample
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := Default()
	want.Global.RootPath = "/dev/shm/zcbus"
	want.Global.TypeNamePolicy = TypeNamePolicyPermissive
	want.Global.Service.CreationTimeout = 2 * time.Second
	want.Defaults.PublishSubscribe.MaxSubscribers = 16
	want.Defaults.PublishSubscribe.EnableSafeOverflow = false
	want.Defaults.PublishSubscribe.UnableToDeliverStrategy = StrategyDiscardSample

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"EmptyRoot", "global:\n  root_path: \"\"\n"},
		{"SameSuffix", "global:\n  service:\n    static_config_suffix: .x\n    dynamic_config_suffix: .x\n"},
		{"UnknownPolicy", "global:\n  type_name_policy: loose\n"},
		{"UnknownStrategy", "defaults:\n  publish_subscribe:\n    unable_to_deliver_strategy: drop\n"},
		{"NoRetries", "global:\n  service:\n    open_or_create_retries: 0\n"},
		{"NegativeTimeout", "global:\n  service:\n    creation_timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("global: [unterminated"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("syntax errors should not be reported as ErrInvalidConfig")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zcbus.yaml")

	cfg := Default()
	cfg.Global.Prefix = "test_"
	cfg.Defaults.PublishSubscribe.MaxNodes = 3

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("Unset", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv failed: %v", err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("expected defaults (-want +got):\n%s", diff)
		}
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "zcbus.yaml")
		if err := os.WriteFile(path, []byte("global:\n  prefix: env_\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvConfigPath, path)

		cfg, err := LoadFromEnv()
		if err != nil {
			t.Fatalf("LoadFromEnv failed: %v", err)
		}
		if cfg.Global.Prefix != "env_" {
			t.Errorf("Prefix = %q, want %q", cfg.Global.Prefix, "env_")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "missing.yaml"))
		if _, err := LoadFromEnv(); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
