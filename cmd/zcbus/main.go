// Command zcbus inspects and exercises zcbus publish-subscribe services.
//
// Usage:
//
//	zcbus <command> [flags] [args]
//
// Commands:
//
//	list     List published services
//	details  Show the configuration and node count of a service
//	probe    Open, create or open-or-create a service and report the result
//	watch    Print services as they appear and disappear
//	config   Show or initialize the configuration file
//	shell    Interactive shell that can hold services attached
//
// The configuration file is taken from -config or the ZCBUS_CONFIG
// environment variable.
//
// Examples:
//
//	# Create a service with four subscriber slots and hold it
//	zcbus probe -mode create -payload u32 -max-subscribers 4 -hold 30s sensor/counter
//
//	# Check whether a participant needing eight subscribers could attach
//	zcbus probe -mode open -payload u32 -max-subscribers 8 sensor/counter
//
//	# Show the service as JSON
//	zcbus details -json sensor/counter
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/zcbus/zcbus-go/cmd/zcbus/commands"
	"github.com/zcbus/zcbus-go/cmd/zcbus/interactive"
)

const usage = `zcbus - zcbus Service Tool

Usage:
  zcbus <command> [flags] [args]

Commands:
  list     List published services
  details  Show the configuration and node count of a service
  probe    Open, create or open-or-create a service and report the result
  watch    Print services as they appear and disappear
  config   Show or initialize the configuration file
  shell    Interactive shell that can hold services attached

Use "zcbus <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch cmd {
	case "list":
		runList(args)
	case "details":
		runDetails(args)
	case "probe":
		runProbe(ctx, args)
	case "watch":
		runWatch(ctx, args)
	case "config":
		runConfig(args)
	case "shell":
		runShell(ctx, args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "zcbus %s - %s\n\nUsage:\n  zcbus %s [flags] %s\n\nFlags:\n", name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func globalFlags(fs *flag.FlagSet) *commands.GlobalOptions {
	opts := &commands.GlobalOptions{}
	fs.StringVar(&opts.ConfigPath, "config", "", "Configuration file (default: $ZCBUS_CONFIG or built-in)")
	fs.StringVar(&opts.ServiceType, "type", "ipc", "Service type: ipc, local")
	fs.StringVar(&opts.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.EventLog, "event-log", "", "Append negotiation events to this file")
	return opts
}

func parse(fs *flag.FlagSet, args []string, nargs int) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != nargs {
		fs.Usage()
		os.Exit(1)
	}
}

func open(opts *commands.GlobalOptions) *commands.Env {
	env, err := commands.Open(*opts, os.Stderr)
	if err != nil {
		fail(err)
	}
	return env
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runList(args []string) {
	fs := newFlagSet("list", "List published services", "")
	opts := globalFlags(fs)
	parse(fs, args, 0)

	env := open(opts)
	defer env.Close()
	if err := commands.RunList(env.Registry, os.Stdout); err != nil {
		fail(err)
	}
}

func runDetails(args []string) {
	fs := newFlagSet("details", "Show the configuration and node count of a service", "<service>")
	opts := globalFlags(fs)
	asJSON := fs.Bool("json", false, "Print as JSON")
	parse(fs, args, 1)

	env := open(opts)
	defer env.Close()
	if err := commands.RunDetails(env.Registry, fs.Arg(0), *asJSON, os.Stdout); err != nil {
		fail(err)
	}
}

func runProbe(ctx context.Context, args []string) {
	fs := newFlagSet("probe", "Open, create or open-or-create a service and report the result", "<service>")
	opts := globalFlags(fs)

	var p commands.ProbeOptions
	fs.StringVar(&p.Mode, "mode", commands.ModeOpenOrCreate, "Operation: open, create, open-or-create")
	fs.StringVar(&p.Payload, "payload", "u32", "Payload type: "+strings.Join(commands.PayloadNames(), ", "))
	fs.BoolVar(&p.Slice, "slice", false, "Payload is a slice of the payload type")
	fs.Var(&p.MaxSubscribers, "max-subscribers", "Maximum subscribers")
	fs.Var(&p.MaxPublishers, "max-publishers", "Maximum publishers")
	fs.Var(&p.MaxNodes, "max-nodes", "Maximum nodes")
	fs.Var(&p.HistorySize, "history", "History size")
	fs.Var(&p.SubscriberMaxBufferSize, "buffer", "Subscriber buffer size")
	fs.Var(&p.SubscriberMaxBorrowedSamples, "borrowed", "Subscriber borrowed samples")
	fs.Var(&p.PayloadAlignment, "alignment", "Payload alignment")
	fs.Var(&p.SafeOverflow, "safe-overflow", "Enable safe overflow")
	fs.Var(&p.Attributes, "attr", "Attribute key=value (repeatable)")
	fs.DurationVar(&p.Hold, "hold", 0, "Keep the service attached this long (-1s: until interrupted)")
	parse(fs, args, 1)
	p.Service = fs.Arg(0)

	env := open(opts)
	defer env.Close()
	if err := commands.RunProbe(ctx, env.Registry, p, os.Stdout); err != nil {
		env.Close()
		fail(err)
	}
}

func runWatch(ctx context.Context, args []string) {
	fs := newFlagSet("watch", "Print services as they appear and disappear", "")
	opts := globalFlags(fs)
	parse(fs, args, 0)

	env := open(opts)
	defer env.Close()
	if err := commands.RunWatch(ctx, env.Registry, os.Stdout); err != nil {
		fail(err)
	}
}

func runConfig(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: zcbus config show|init [flags]")
		os.Exit(1)
	}

	switch args[0] {
	case "show":
		fs := newFlagSet("config show", "Show the effective configuration", "")
		path := fs.String("config", "", "Configuration file (default: $ZCBUS_CONFIG or built-in)")
		parse(fs, args[1:], 0)

		cfg, err := commands.LoadConfig(*path)
		if err != nil {
			fail(err)
		}
		if err := commands.RunConfigShow(cfg, os.Stdout); err != nil {
			fail(err)
		}
	case "init":
		fs := newFlagSet("config init", "Write the built-in configuration", "<file>")
		force := fs.Bool("force", false, "Overwrite an existing file")
		parse(fs, args[1:], 1)

		if err := commands.RunConfigInit(fs.Arg(0), *force); err != nil {
			fail(err)
		}
		fmt.Printf("Wrote %s\n", fs.Arg(0))
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		os.Exit(1)
	}
}

func runShell(ctx context.Context, args []string) {
	fs := newFlagSet("shell", "Interactive shell that can hold services attached", "")
	opts := globalFlags(fs)
	parse(fs, args, 0)

	env := open(opts)
	defer env.Close()

	shell, err := interactive.New(env.Registry)
	if err != nil {
		fail(err)
	}
	shell.Run(ctx)
}
