// Command zcbus-log views and analyzes zcbus negotiation event logs.
//
// Event logs are written by participants started with an event log path,
// for example "zcbus probe -event-log events.zlog".
//
// Usage:
//
//	zcbus-log <command> [flags] <file.zlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL or CSV format
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View failed negotiations only
//	zcbus-log view -failures events.zlog
//
//	# View events of one service
//	zcbus-log view -service sensor/imu events.zlog
//
//	# Export to CSV
//	zcbus-log export -format csv events.zlog
//
//	# Keep only open-or-create attempts of one node
//	zcbus-log filter -operation open_or_create -node 1b4e28ba -o subset.zlog events.zlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zcbus/zcbus-go/cmd/zcbus-log/commands"
)

const usage = `zcbus-log - zcbus Event Log Analyzer

Usage:
  zcbus-log <command> [flags] <file.zlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL or CSV format
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "zcbus-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// selectionFlags registers the flags shared by view and filter.
func selectionFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.NodeID, "node", "", "Filter by node ID (prefix)")
	fs.StringVar(&opts.Service, "service", "", "Filter by service name")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (negotiation, lifecycle, error)")
	fs.StringVar(&opts.Operation, "operation", "", "Filter by operation (open, create, open_or_create)")
	fs.BoolVar(&opts.FailuresOnly, "failures", false, "Only failed negotiations and errors")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	return opts
}

func requirePath(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `zcbus-log view - View log file in human-readable format

Usage:
  zcbus-log view [flags] <file.zlog>

Flags:
`)
		fs.PrintDefaults()
	}
	opts := selectionFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunView(path, *opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `zcbus-log export - Export log file to JSONL or CSV format

Usage:
  zcbus-log export [flags] <file.zlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `zcbus-log filter - Filter log file and write to new file

Usage:
  zcbus-log filter [flags] <file.zlog>

Flags:
`)
		fs.PrintDefaults()
	}
	opts := selectionFlags(fs)
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := commands.RunFilter(path, *opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", n, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `zcbus-log stats - Show statistics about the log file

Usage:
  zcbus-log stats <file.zlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requirePath(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
