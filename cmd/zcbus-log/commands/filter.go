package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/zcbus/zcbus-go/pkg/log"
)

// FilterOptions specifies the event selection shared by view and filter.
type FilterOptions struct {
	Output       string
	NodeID       string
	Service      string
	Category     string
	Operation    string
	FailuresOnly bool
	TimeStart    string
	TimeEnd      string
}

// selection is a parsed FilterOptions. Node ids match by prefix because
// view prints them shortened.
type selection struct {
	filter     log.Filter
	nodePrefix string
}

func (s selection) matches(event log.Event) bool {
	return strings.HasPrefix(event.NodeID, s.nodePrefix)
}

func (s selection) open(path string) (*log.Reader, error) {
	reader, err := log.NewFilteredReader(path, s.filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return reader, nil
}

// next returns the next selected event, or io.EOF.
func (s selection) next(reader *log.Reader) (log.Event, error) {
	for {
		event, err := reader.Next()
		if err != nil {
			return log.Event{}, err
		}
		if s.matches(event) {
			return event, nil
		}
	}
}

func parseSelection(opts FilterOptions) (selection, error) {
	s := selection{
		filter: log.Filter{
			ServiceName:  opts.Service,
			FailuresOnly: opts.FailuresOnly,
		},
		nodePrefix: opts.NodeID,
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return selection{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		s.filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return selection{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		s.filter.TimeEnd = &t
	}

	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return selection{}, err
		}
		s.filter.Category = &c
	}

	if opts.Operation != "" {
		o, err := parseOperation(opts.Operation)
		if err != nil {
			return selection{}, err
		}
		s.filter.Operation = &o
	}

	return s, nil
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	c, ok := log.ParseCategory(strings.ToUpper(s))
	if !ok {
		return 0, fmt.Errorf("invalid category: %s (must be negotiation, lifecycle, or error)", s)
	}
	return c, nil
}

// parseOperation parses an operation string (case-insensitive, "-" or "_").
func parseOperation(s string) (log.Operation, error) {
	o, ok := log.ParseOperation(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	if !ok {
		return 0, fmt.Errorf("invalid operation: %s (must be open, create, or open_or_create)", s)
	}
	return o, nil
}

// RunFilter writes the selected events of path to opts.Output and returns
// how many were written.
func RunFilter(path string, opts FilterOptions) (int, error) {
	sel, err := parseSelection(opts)
	if err != nil {
		return 0, err
	}

	reader, err := sel.open(path)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := sel.next(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}
	return count, nil
}
