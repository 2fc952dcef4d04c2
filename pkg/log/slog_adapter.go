package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Useful for development when you want to see negotiations in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or Warn level for failures.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("node_id", event.NodeID),
		slog.String("category", event.Category.String()),
	}
	if event.ServiceName != "" {
		attrs = append(attrs, slog.String("service", event.ServiceName))
	}
	if event.ServiceID != "" {
		attrs = append(attrs, slog.String("service_id", event.ServiceID))
	}
	if event.ServiceType != "" {
		attrs = append(attrs, slog.String("service_type", event.ServiceType))
	}

	switch {
	case event.Negotiation != nil:
		n := event.Negotiation
		attrs = append(attrs,
			slog.String("operation", n.Operation.String()),
			slog.String("branch", n.Branch.String()),
			slog.Bool("success", n.Success),
		)
		if n.Status != "" {
			attrs = append(attrs, slog.String("status", n.Status))
		}
		if n.Attempts > 0 {
			attrs = append(attrs, slog.Int("attempts", n.Attempts))
		}
		if n.Payload != nil {
			attrs = append(attrs, slog.String("payload", n.Payload.String()))
		}
		if n.UserHeader != nil {
			attrs = append(attrs, slog.String("user_header", n.UserHeader.String()))
		}
		if n.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", n.Duration))
		}
	case event.Lifecycle != nil:
		attrs = append(attrs,
			slog.String("state", event.Lifecycle.State.String()),
			slog.Uint64("nodes", event.Lifecycle.Nodes),
		)
		if event.Lifecycle.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Lifecycle.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	level := slog.LevelDebug
	if isFailure(event) {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, "zcbus", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
