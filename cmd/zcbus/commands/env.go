// Package commands implements the zcbus CLI commands.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/log"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
)

// GlobalOptions are the flags shared by every command.
type GlobalOptions struct {
	// ConfigPath overrides the ZCBUS_CONFIG environment variable.
	ConfigPath string

	// ServiceType is "ipc" or "local".
	ServiceType string

	// LogLevel is debug, info, warn or error.
	LogLevel string

	// EventLog is an optional file receiving negotiation events.
	EventLog string
}

// Env is an opened participant with its configuration.
type Env struct {
	Config   *config.Config
	Registry *registry.Registry
	Logger   *slog.Logger

	eventLog *log.FileLogger
}

// LoadConfig loads path, or the file named by ZCBUS_CONFIG if path is empty.
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

// ParseLogLevel parses a log level name.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
}

// Open creates the registry described by opts. Operational logs go to
// logOut.
func Open(opts GlobalOptions, logOut io.Writer) (*Env, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	st := service.Ipc
	if opts.ServiceType != "" {
		if st, err = service.ParseServiceType(opts.ServiceType); err != nil {
			return nil, err
		}
	}

	level, err := ParseLogLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	env := &Env{Config: cfg, Logger: logger}
	events := []log.Logger{log.NewSlogAdapter(logger)}
	if opts.EventLog != "" {
		env.eventLog, err = log.NewFileLogger(opts.EventLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open event log: %w", err)
		}
		events = append(events, env.eventLog)
	}

	env.Registry, err = registry.New(st, cfg, registry.Options{
		Logger:      logger,
		EventLogger: log.NewMultiLogger(events...),
	})
	if err != nil {
		env.Close()
		return nil, err
	}
	return env, nil
}

// Close releases the event log.
func (e *Env) Close() error {
	if e.eventLog != nil {
		return e.eventLog.Close()
	}
	return nil
}
