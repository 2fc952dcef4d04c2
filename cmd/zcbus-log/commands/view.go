// Package commands implements the zcbus-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/zcbus/zcbus-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [node:id] CATEGORY service
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [node:%s] %-11s %s", ts, shortenID(event.NodeID), event.Category.String(), event.ServiceName)
	if event.ServiceType != "" {
		fmt.Fprintf(w, " (%s)", event.ServiceType)
	}
	fmt.Fprintln(w)

	switch {
	case event.Negotiation != nil:
		formatNegotiationDetails(w, event.Negotiation)
	case event.Lifecycle != nil:
		formatLifecycleDetails(w, event.Lifecycle)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenID returns the first 8 characters of an id.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatNegotiationDetails(w io.Writer, n *log.NegotiationEvent) {
	fmt.Fprintf(w, "  Operation: %s", n.Operation)
	if n.Branch != n.Operation {
		fmt.Fprintf(w, " via %s", n.Branch)
	}
	if n.Attempts > 1 {
		fmt.Fprintf(w, " (%d attempts)", n.Attempts)
	}
	fmt.Fprintln(w)

	if n.Payload != nil {
		fmt.Fprintf(w, "  Payload: %s\n", n.Payload)
	}
	if n.UserHeader != nil {
		fmt.Fprintf(w, "  UserHeader: %s\n", n.UserHeader)
	}

	if n.Success {
		fmt.Fprintln(w, "  Result: OK")
	} else {
		fmt.Fprintf(w, "  Result: %s\n", n.Status)
	}
	if n.Duration > 0 {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(n.Duration))
	}
}

func formatLifecycleDetails(w io.Writer, l *log.LifecycleEvent) {
	fmt.Fprintf(w, "  State: %s\n", l.State)
	if l.Nodes > 0 {
		fmt.Fprintf(w, "  Nodes: %d\n", l.Nodes)
	}
	if l.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", l.Reason)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView writes the selected events of path to output.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	sel, err := parseSelection(opts)
	if err != nil {
		return err
	}

	reader, err := sel.open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		event, err := sel.next(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
	return nil
}
