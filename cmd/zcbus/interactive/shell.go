// Package interactive provides the interactive shell of the zcbus CLI.
package interactive

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/zcbus/zcbus-go/cmd/zcbus/commands"
	"github.com/zcbus/zcbus-go/pkg/registry"
)

// Shell is a readline loop that attaches to services and keeps them
// attached until they are released or the shell exits.
type Shell struct {
	reg *registry.Registry
	rl  *readline.Instance
	out io.Writer

	// held maps service names to attached factories.
	held map[string]commands.Factory
}

// New creates a shell for r.
func New(r *registry.Registry) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "zcbus> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("list"),
			readline.PcItem("details"),
			readline.PcItem("open"),
			readline.PcItem("create"),
			readline.PcItem("open-or-create"),
			readline.PcItem("release"),
			readline.PcItem("held"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return newShell(r, rl, rl.Stdout()), nil
}

func newShell(r *registry.Registry, rl *readline.Instance, out io.Writer) *Shell {
	return &Shell{reg: r, rl: rl, out: out, held: make(map[string]commands.Factory)}
}

// Stdout returns a writer that coordinates with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run reads commands until exit, EOF or ctx is done. Held services are
// released on return.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()
	defer s.releaseAll()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if !s.Exec(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
	}
}

// Exec runs one command line. It returns false when the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "list", "ls":
		s.report(commands.RunList(s.reg, s.out))
	case "details", "d":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: details <service>")
			return true
		}
		s.report(commands.RunDetails(s.reg, args[0], false, s.out))
	case commands.ModeOpen, commands.ModeCreate, commands.ModeOpenOrCreate:
		s.cmdAttach(cmd, args)
	case "release", "r":
		s.cmdRelease(args)
	case "held":
		s.cmdHeld()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdAttach(mode string, args []string) {
	opts := commands.ProbeOptions{Mode: mode}
	fs := flag.NewFlagSet(mode, flag.ContinueOnError)
	fs.SetOutput(s.out)
	fs.StringVar(&opts.Payload, "payload", "u32", "Payload type")
	fs.BoolVar(&opts.Slice, "slice", false, "Payload is a slice")
	fs.Var(&opts.MaxSubscribers, "max-subscribers", "Maximum subscribers")
	fs.Var(&opts.MaxPublishers, "max-publishers", "Maximum publishers")
	fs.Var(&opts.MaxNodes, "max-nodes", "Maximum nodes")
	fs.Var(&opts.HistorySize, "history", "History size")
	fs.Var(&opts.SubscriberMaxBufferSize, "buffer", "Subscriber buffer size")
	fs.Var(&opts.SubscriberMaxBorrowedSamples, "borrowed", "Subscriber borrowed samples")
	fs.Var(&opts.PayloadAlignment, "alignment", "Payload alignment")
	fs.Var(&opts.SafeOverflow, "safe-overflow", "Enable safe overflow")
	fs.Var(&opts.Attributes, "attr", "Attribute key=value (repeatable)")

	if err := fs.Parse(args); err != nil {
		return
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(s.out, "Usage: %s [flags] <service>\n", mode)
		return
	}
	opts.Service = fs.Arg(0)

	if _, ok := s.held[opts.Service]; ok {
		fmt.Fprintf(s.out, "Already holding %s (release it first)\n", opts.Service)
		return
	}

	f, err := commands.Attach(s.reg, opts)
	if err != nil {
		s.report(err)
		return
	}
	s.held[opts.Service] = f
	commands.PrintFactory(s.out, f)
}

func (s *Shell) cmdRelease(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: release <service>|all")
		return
	}
	if args[0] == "all" {
		s.releaseAll()
		return
	}

	f, ok := s.held[args[0]]
	if !ok {
		fmt.Fprintf(s.out, "Not holding %s\n", args[0])
		return
	}
	delete(s.held, args[0])
	s.report(f.Close())
	fmt.Fprintf(s.out, "Released %s\n", args[0])
}

func (s *Shell) cmdHeld() {
	if len(s.held) == 0 {
		fmt.Fprintln(s.out, "Holding no services.")
		return
	}
	for _, name := range s.heldNames() {
		f := s.held[name]
		fmt.Fprintf(s.out, "  %s created=%t nodes=%d\n", name, f.Created(), f.NumberOfNodes())
	}
}

func (s *Shell) heldNames() []string {
	names := make([]string, 0, len(s.held))
	for name := range s.held {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Shell) releaseAll() {
	for _, name := range s.heldNames() {
		s.report(s.held[name].Close())
		delete(s.held, name)
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
zcbus Shell Commands:
  Inspection:
    list                          - List services
    details <service>             - Show service details
    held                          - List services held by this shell

  Attaching:
    open [flags] <service>        - Open an existing service
    create [flags] <service>      - Create a service
    open-or-create [flags] <svc>  - Open or create a service
    release <service>|all         - Release held services

  Flags: -payload u32 -slice -max-subscribers N -max-publishers N
         -max-nodes N -history N -buffer N -borrowed N -alignment N
         -safe-overflow[=false] -attr key=value

  Other:
    help                          - Show this help
    exit                          - Release everything and exit`)
}
