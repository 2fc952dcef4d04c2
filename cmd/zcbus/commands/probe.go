package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/pubsub"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// Probe modes.
const (
	ModeOpen         = "open"
	ModeCreate       = "create"
	ModeOpenOrCreate = "open-or-create"
)

// OptionalUint is a flag.Value that remembers whether it was set.
type OptionalUint struct {
	Value uint64
	IsSet bool
}

// String implements flag.Value.
func (o *OptionalUint) String() string {
	if o == nil || !o.IsSet {
		return ""
	}
	return strconv.FormatUint(o.Value, 10)
}

// Set implements flag.Value.
func (o *OptionalUint) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	o.Value, o.IsSet = v, true
	return nil
}

// OptionalBool is a boolean flag.Value that remembers whether it was set.
type OptionalBool struct {
	Value bool
	IsSet bool
}

// String implements flag.Value.
func (o *OptionalBool) String() string {
	if o == nil || !o.IsSet {
		return ""
	}
	return strconv.FormatBool(o.Value)
}

// Set implements flag.Value.
func (o *OptionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	o.Value, o.IsSet = v, true
	return nil
}

// IsBoolFlag lets the flag be given without a value.
func (o *OptionalBool) IsBoolFlag() bool { return true }

// Attributes is a repeatable key=value flag.
type Attributes []attribute.Attribute

// String implements flag.Value.
func (a *Attributes) String() string {
	parts := make([]string, 0, len(*a))
	for _, attr := range *a {
		parts = append(parts, attr.String())
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value.
func (a *Attributes) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("invalid attribute %q (want key=value)", s)
	}
	*a = append(*a, attribute.Attribute{Key: key, Value: value})
	return nil
}

// ProbeOptions describes one builder run.
type ProbeOptions struct {
	Service string
	Mode    string

	// Payload is a primitive type name such as "u32". Slice selects the
	// dynamic variant.
	Payload string
	Slice   bool

	MaxSubscribers               OptionalUint
	MaxPublishers                OptionalUint
	MaxNodes                     OptionalUint
	HistorySize                  OptionalUint
	SubscriberMaxBufferSize      OptionalUint
	SubscriberMaxBorrowedSamples OptionalUint
	PayloadAlignment             OptionalUint
	SafeOverflow                 OptionalBool

	Attributes Attributes

	// Hold keeps the service attached for this long. Zero releases it
	// immediately; a negative value holds until ctx is done.
	Hold time.Duration
}

// Factory is the part of a typed port factory the CLI reports on.
type Factory interface {
	Name() service.Name
	ServiceID() service.ID
	StaticConfig() registry.PublishSubscribeConfig
	Created() bool
	NumberOfNodes() uint64
	Close() error
}

type probeFunc func(*registry.PendingConfig, ProbeOptions) (Factory, error)

var probes = map[string]probeFunc{
	"u8":     probe[uint8],
	"u16":    probe[uint16],
	"u32":    probe[uint32],
	"u64":    probe[uint64],
	"i8":     probe[int8],
	"i16":    probe[int16],
	"i32":    probe[int32],
	"i64":    probe[int64],
	"f32":    probe[float32],
	"f64":    probe[float64],
	"bool":   probe[bool],
	"usize":  probe[uint],
	"isize":  probe[int],
	"u8[]":   probe[[]uint8],
	"u16[]":  probe[[]uint16],
	"u32[]":  probe[[]uint32],
	"u64[]":  probe[[]uint64],
	"i8[]":   probe[[]int8],
	"i16[]":  probe[[]int16],
	"i32[]":  probe[[]int32],
	"i64[]":  probe[[]int64],
	"f32[]":  probe[[]float32],
	"f64[]":  probe[[]float64],
	"bool[]": probe[[]bool],
}

// PayloadNames returns the payload names accepted by RunProbe.
func PayloadNames() []string {
	names := make([]string, 0, len(probes))
	for name := range probes {
		if !strings.HasSuffix(name, "[]") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func probe[P any](pending *registry.PendingConfig, opts ProbeOptions) (Factory, error) {
	b := pubsub.New[P](pending)
	if opts.SafeOverflow.IsSet {
		b.EnableSafeOverflow(opts.SafeOverflow.Value)
	}
	for _, o := range []struct {
		v   OptionalUint
		set func(uint64) *pubsub.Builder[P, typedesc.NoHeader]
	}{
		{opts.SubscriberMaxBorrowedSamples, b.SubscriberMaxBorrowedSamples},
		{opts.HistorySize, b.HistorySize},
		{opts.SubscriberMaxBufferSize, b.SubscriberMaxBufferSize},
		{opts.MaxSubscribers, b.MaxSubscribers},
		{opts.MaxPublishers, b.MaxPublishers},
		{opts.PayloadAlignment, b.PayloadAlignment},
		{opts.MaxNodes, b.MaxNodes},
	} {
		if o.v.IsSet {
			o.set(o.v.Value)
		}
	}

	switch opts.Mode {
	case ModeOpen:
		if len(opts.Attributes) == 0 {
			return attached(b.Open())
		}
		return attached(b.OpenWithAttributes(opts.verifier()))
	case ModeCreate:
		if len(opts.Attributes) == 0 {
			return attached(b.Create())
		}
		return attached(b.CreateWithAttributes(opts.specifier()))
	default:
		if len(opts.Attributes) == 0 {
			return attached(b.OpenOrCreate())
		}
		return attached(b.OpenOrCreateWithAttributes(opts.verifier()))
	}
}

// attached converts a typed result without turning a nil factory into a
// non-nil interface.
func attached[P, H any](f *pubsub.PortFactory[P, H], err error) (Factory, error) {
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (o ProbeOptions) verifier() *attribute.Verifier {
	v := attribute.NewVerifier()
	for _, a := range o.Attributes {
		v.Require(a.Key, a.Value)
	}
	return v
}

func (o ProbeOptions) specifier() *attribute.Specifier {
	s := attribute.NewSpecifier()
	for _, a := range o.Attributes {
		s.Define(a.Key, a.Value)
	}
	return s
}

// Attach runs the builder described by opts and returns the attached
// factory.
func Attach(r *registry.Registry, opts ProbeOptions) (Factory, error) {
	switch opts.Mode {
	case ModeOpen, ModeCreate, ModeOpenOrCreate:
	default:
		return nil, fmt.Errorf("invalid mode: %s (must be %s, %s, or %s)", opts.Mode, ModeOpen, ModeCreate, ModeOpenOrCreate)
	}

	key := opts.Payload
	if opts.Slice {
		key += "[]"
	}
	run, ok := probes[key]
	if !ok {
		return nil, fmt.Errorf("unsupported payload: %s (must be one of %s)", opts.Payload, strings.Join(PayloadNames(), ", "))
	}

	pending, err := r.PublishSubscribe(opts.Service)
	if err != nil {
		return nil, err
	}
	return run(pending, opts)
}

// RunProbe attaches to a service, reports the result and releases it after
// opts.Hold.
func RunProbe(ctx context.Context, r *registry.Registry, opts ProbeOptions, w io.Writer) error {
	f, err := Attach(r, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	PrintFactory(w, f)

	switch {
	case opts.Hold < 0:
		fmt.Fprintln(w, "Holding until interrupted...")
		<-ctx.Done()
	case opts.Hold > 0:
		fmt.Fprintf(w, "Holding for %s...\n", opts.Hold)
		select {
		case <-ctx.Done():
		case <-time.After(opts.Hold):
		}
	}
	return nil
}

// PrintFactory writes a one-line summary and the effective settings.
func PrintFactory(w io.Writer, f Factory) {
	action := "Opened"
	if f.Created() {
		action = "Created"
	}
	cfg := f.StaticConfig()
	fmt.Fprintf(w, "%s %s [%s] payload=%s header=%s nodes=%d\n",
		action, f.Name(), shortenID(string(f.ServiceID())), cfg.Payload, cfg.UserHeader.TypeName, f.NumberOfNodes())
	fmt.Fprintf(w, "  subscribers=%d publishers=%d nodes=%d buffer=%d history=%d borrowed=%d safe_overflow=%t\n",
		cfg.MaxSubscribers, cfg.MaxPublishers, cfg.MaxNodes, cfg.SubscriberMaxBufferSize,
		cfg.HistorySize, cfg.SubscriberMaxBorrowedSamples, cfg.EnableSafeOverflow)
}
