package pubsub

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// ErrBuilderConsumed is the panic value raised when a Builder is used after
// a terminal operation or WithHeader.
var ErrBuilderConsumed = errors.New("pubsub: builder already consumed")

type optional[T any] struct {
	value T
	set   bool
}

func some[T any](v T) optional[T] {
	return optional[T]{value: v, set: true}
}

// parameters holds the optional settings of a builder. Unset values are left
// to the registry.
type parameters struct {
	enableSafeOverflow           optional[bool]
	subscriberMaxBorrowedSamples optional[uint64]
	historySize                  optional[uint64]
	subscriberMaxBufferSize      optional[uint64]
	maxSubscribers               optional[uint64]
	maxPublishers                optional[uint64]
	payloadAlignment             optional[uint64]
	maxNodes                     optional[uint64]
}

// apply pushes every set value into h with one call per key.
func (p parameters) apply(h Handle) {
	if p.enableSafeOverflow.set {
		h.SetEnableSafeOverflow(p.enableSafeOverflow.value)
	}
	if p.subscriberMaxBorrowedSamples.set {
		h.SetSubscriberMaxBorrowedSamples(p.subscriberMaxBorrowedSamples.value)
	}
	if p.historySize.set {
		h.SetHistorySize(p.historySize.value)
	}
	if p.subscriberMaxBufferSize.set {
		h.SetSubscriberMaxBufferSize(p.subscriberMaxBufferSize.value)
	}
	if p.maxSubscribers.set {
		h.SetMaxSubscribers(p.maxSubscribers.value)
	}
	if p.maxPublishers.set {
		h.SetMaxPublishers(p.maxPublishers.value)
	}
	if p.payloadAlignment.set {
		h.SetPayloadAlignment(p.payloadAlignment.value)
	}
	if p.maxNodes.set {
		h.SetMaxNodes(p.maxNodes.value)
	}
}

// Options configures a Builder created with NewFromHandle.
type Options struct {
	// Policy decides whether types without a portable description are
	// accepted. Empty means config.TypeNamePolicyStrict.
	Policy config.TypeNamePolicy

	// Logger receives warnings. If nil, logging is disabled.
	Logger *slog.Logger

	// ServiceName is reported in errors.
	ServiceName service.Name
}

// Builder configures a publish-subscribe service with payload type P and
// user header type H. It must not be shared between goroutines.
type Builder[P any, H any] struct {
	handle   Handle
	params   parameters
	opts     Options
	logger   *slog.Logger
	consumed bool
}

// New returns a builder without user header for the selected service.
func New[P any](pending *registry.PendingConfig) *Builder[P, typedesc.NoHeader] {
	r := pending.Registry()
	return NewFromHandle[P](pending, Options{
		Policy:      r.Config().Global.TypeNamePolicy,
		Logger:      r.Logger(),
		ServiceName: pending.Name(),
	})
}

// NewFromHandle returns a builder without user header on top of any Handle.
func NewFromHandle[P any](h Handle, opts Options) *Builder[P, typedesc.NoHeader] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder[P, typedesc.NoHeader]{handle: h, opts: opts, logger: logger}
}

// WithHeader consumes b and returns a builder for user header type NewH
// that carries over the handle and all parameters of b.
func WithHeader[NewH any, P any, H any](b *Builder[P, H]) *Builder[P, NewH] {
	b.consume()
	h := b.handle
	b.handle = nil
	return &Builder[P, NewH]{handle: h, params: b.params, opts: b.opts, logger: b.logger}
}

func (b *Builder[P, H]) consume() {
	if b.consumed {
		panic(ErrBuilderConsumed)
	}
	b.consumed = true
}

func (b *Builder[P, H]) configuring() {
	if b.consumed {
		panic(ErrBuilderConsumed)
	}
}

// PayloadAlignment sets the minimum payload alignment. The effective
// alignment is at least the alignment of P.
func (b *Builder[P, H]) PayloadAlignment(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.payloadAlignment = some(v)
	return b
}

// EnableSafeOverflow sets whether publishers overwrite the oldest sample of
// a full subscriber buffer instead of applying the unable-to-deliver
// strategy. On open the value must match the service.
func (b *Builder[P, H]) EnableSafeOverflow(v bool) *Builder[P, H] {
	b.configuring()
	b.params.enableSafeOverflow = some(v)
	return b
}

// SubscriberMaxBorrowedSamples sets how many samples a subscriber may hold
// at the same time.
func (b *Builder[P, H]) SubscriberMaxBorrowedSamples(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.subscriberMaxBorrowedSamples = some(v)
	return b
}

// HistorySize sets how many past samples a new subscriber receives.
func (b *Builder[P, H]) HistorySize(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.historySize = some(v)
	return b
}

// SubscriberMaxBufferSize sets the receive buffer size of a subscriber.
func (b *Builder[P, H]) SubscriberMaxBufferSize(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.subscriberMaxBufferSize = some(v)
	return b
}

// MaxSubscribers sets the maximum number of subscribers.
func (b *Builder[P, H]) MaxSubscribers(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.maxSubscribers = some(v)
	return b
}

// MaxPublishers sets the maximum number of publishers.
func (b *Builder[P, H]) MaxPublishers(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.maxPublishers = some(v)
	return b
}

// MaxNodes sets the maximum number of nodes attached to the service.
func (b *Builder[P, H]) MaxNodes(v uint64) *Builder[P, H] {
	b.configuring()
	b.params.maxNodes = some(v)
	return b
}

// Open opens the existing service.
func (b *Builder[P, H]) Open() (*PortFactory[P, H], error) {
	if err := b.prepare(); err != nil {
		return nil, &OpenError{Kind: OpenUnsupportedType, Service: b.opts.ServiceName, Detail: err.Error()}
	}
	return b.openResult(b.handle.Open())
}

// OpenWithAttributes opens the existing service if its attributes satisfy v.
func (b *Builder[P, H]) OpenWithAttributes(v *attribute.Verifier) (*PortFactory[P, H], error) {
	if err := b.prepare(); err != nil {
		return nil, &OpenError{Kind: OpenUnsupportedType, Service: b.opts.ServiceName, Detail: err.Error()}
	}
	return b.openResult(b.handle.OpenWithAttributes(v))
}

// Create creates the service.
func (b *Builder[P, H]) Create() (*PortFactory[P, H], error) {
	if err := b.prepare(); err != nil {
		return nil, &CreateError{Kind: CreateUnsupportedType, Service: b.opts.ServiceName, Detail: err.Error()}
	}
	return b.createResult(b.handle.Create())
}

// CreateWithAttributes creates the service with the attributes defined by s.
func (b *Builder[P, H]) CreateWithAttributes(s *attribute.Specifier) (*PortFactory[P, H], error) {
	if err := b.prepare(); err != nil {
		return nil, &CreateError{Kind: CreateUnsupportedType, Service: b.opts.ServiceName, Detail: err.Error()}
	}
	return b.createResult(b.handle.CreateWithAttributes(s))
}

// OpenOrCreate opens the service, or creates it if it does not exist.
func (b *Builder[P, H]) OpenOrCreate() (*PortFactory[P, H], error) {
	if err := b.prepare(); err != nil {
		return nil, &OpenOrCreateError{Kind: OpenOrCreateUnsupportedType, Service: b.opts.ServiceName, Detail: err.Error()}
	}
	return b.openOrCreateResult(b.handle.OpenOrCreate())
}

// OpenOrCreateWithAttributes opens the service if its attributes satisfy v,
// or creates it with the required key-value pairs of v.
func (b *Builder[P, H]) OpenOrCreateWithAttributes(v *attribute.Verifier) (*PortFactory[P, H], error) {
	if err := b.prepare(); err != nil {
		return nil, &OpenOrCreateError{Kind: OpenOrCreateUnsupportedType, Service: b.opts.ServiceName, Detail: err.Error()}
	}
	return b.openOrCreateResult(b.handle.OpenOrCreateWithAttributes(v))
}

// prepare consumes the builder, checks the types against the policy and
// pushes parameters and type details into the handle. Type details go last.
func (b *Builder[P, H]) prepare() error {
	b.consume()

	payload := typedesc.PayloadOf[P]()
	header := typedesc.UserHeaderOf[H]()
	if err := b.checkPortable("payload", payload); err != nil {
		return err
	}
	if err := b.checkPortable("user header", header); err != nil {
		return err
	}

	b.params.apply(b.handle)
	install("SetPayloadTypeDetails", payload.TypeDetail, b.handle.SetPayloadTypeDetails)
	install("SetUserHeaderTypeDetails", header.TypeDetail, b.handle.SetUserHeaderTypeDetails)
	return nil
}

// install panics if the registry rejects details derived by typedesc.
func install(setter string, d typedesc.TypeDetail, set func(typedesc.TypeDetail) registry.Status) {
	if status := set(d); !status.OK() {
		panic(InvariantViolation{Setter: setter, Status: status, Value: d})
	}
}

// checkPortable applies the type name policy to a descriptor.
func (b *Builder[P, H]) checkPortable(role string, d typedesc.Descriptor) error {
	if d.Portable() {
		return nil
	}

	reason := fmt.Sprintf("%s type %q has no declared type name", role, d.TypeName)
	if d.HasPointers {
		reason = fmt.Sprintf("%s type %q contains pointers", role, d.TypeName)
	}

	if b.opts.Policy == config.TypeNamePolicyPermissive {
		b.logger.Warn("accepting non-portable type",
			slog.String("service", string(b.opts.ServiceName)),
			slog.String("reason", reason))
		return nil
	}
	return errors.New(reason)
}

func (b *Builder[P, H]) openResult(f *registry.PortFactory, status registry.Status) (*PortFactory[P, H], error) {
	if !status.OK() {
		return nil, openError(b.opts.ServiceName, status)
	}
	if f == nil {
		return nil, &OpenError{Kind: OpenInternalFailure, Service: b.opts.ServiceName, Detail: "registry returned no port factory"}
	}
	return &PortFactory[P, H]{inner: f}, nil
}

func (b *Builder[P, H]) createResult(f *registry.PortFactory, status registry.Status) (*PortFactory[P, H], error) {
	if !status.OK() {
		return nil, createError(b.opts.ServiceName, status)
	}
	if f == nil {
		return nil, &CreateError{Kind: CreateInternalFailure, Service: b.opts.ServiceName, Detail: "registry returned no port factory"}
	}
	return &PortFactory[P, H]{inner: f}, nil
}

func (b *Builder[P, H]) openOrCreateResult(f *registry.PortFactory, status registry.Status) (*PortFactory[P, H], error) {
	if !status.OK() {
		return nil, openOrCreateError(b.opts.ServiceName, status)
	}
	if f == nil {
		return nil, &OpenOrCreateError{
			Kind:    OpenOrCreateOpenFailed,
			Service: b.opts.ServiceName,
			Open:    &OpenError{Kind: OpenInternalFailure, Service: b.opts.ServiceName, Detail: "registry returned no port factory"},
		}
	}
	return &PortFactory[P, H]{inner: f}, nil
}
