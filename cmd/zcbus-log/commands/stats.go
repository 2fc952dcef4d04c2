package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zcbus/zcbus-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Outcomes         map[string]int
	Services         map[string]*ServiceStats
	Nodes            map[string]struct{}
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// ServiceStats holds statistics for a single service.
type ServiceStats struct {
	FirstSeen    time.Time
	LastSeen     time.Time
	Negotiations int
	Failures     int
	Created      int
	Destroyed    int
	Slowest      time.Duration
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Outcomes:         make(map[string]int),
		Services:         make(map[string]*ServiceStats),
		Nodes:            make(map[string]struct{}),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	if event.NodeID != "" {
		s.Nodes[event.NodeID] = struct{}{}
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	svc, ok := s.Services[event.ServiceName]
	if !ok {
		svc = &ServiceStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Services[event.ServiceName] = svc
	}
	if event.Timestamp.After(svc.LastSeen) {
		svc.LastSeen = event.Timestamp
	}

	switch {
	case event.Negotiation != nil:
		n := event.Negotiation
		svc.Negotiations++
		if n.Success {
			s.Outcomes["OK"]++
		} else {
			svc.Failures++
			s.Outcomes[n.Status]++
		}
		svc.Slowest = max(svc.Slowest, n.Duration)
	case event.Lifecycle != nil:
		switch event.Lifecycle.State {
		case log.ServiceCreated:
			svc.Created++
		case log.ServiceDestroyed:
			svc.Destroyed++
		}
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== zcbus Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %s\n", humanize.Comma(int64(stats.TotalEvents)))
	fmt.Fprintf(w, "Nodes:        %d\n", len(stats.Nodes))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryNegotiation, log.CategoryLifecycle, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-13s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Outcomes) > 0 {
		fmt.Fprintln(w, "Negotiation Outcomes:")
		outcomes := make([]string, 0, len(stats.Outcomes))
		for o := range stats.Outcomes {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)
		for _, o := range outcomes {
			fmt.Fprintf(w, "  %-40s %d\n", o+":", stats.Outcomes[o])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Services: %d\n", len(stats.Services))
	names := make([]string, 0, len(stats.Services))
	for name := range stats.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		svc := stats.Services[name]
		fmt.Fprintf(w, "  [%s] %d negotiations, %d failed\n", name, svc.Negotiations, svc.Failures)
		if svc.Created > 0 || svc.Destroyed > 0 {
			fmt.Fprintf(w, "           Created: %d  Destroyed: %d\n", svc.Created, svc.Destroyed)
		}
		if svc.Slowest > 0 {
			fmt.Fprintf(w, "           Slowest: %s\n", formatDuration(svc.Slowest))
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
