package registry

import (
	"errors"
	"io/fs"
	"log/slog"
	"math/bits"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/log"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
	"github.com/zcbus/zcbus-go/pkg/version"
)

// errCreationPending is returned while a service has a dynamic config but
// no published static config yet.
var errCreationPending = errors.New("service creation pending")

// PendingConfig collects the settings of one participant for one
// publish-subscribe service. On create, set values define the service and
// unset values fall back to the configured defaults. On open, set values are
// minimum requirements the existing service must meet; the safe overflow
// flag must match exactly.
//
// A PendingConfig is not safe for concurrent use.
type PendingConfig struct {
	reg *Registry
	ref serviceRef

	enableSafeOverflow           *bool
	subscriberMaxBorrowedSamples *uint64
	historySize                  *uint64
	subscriberMaxBufferSize      *uint64
	maxSubscribers               *uint64
	maxPublishers                *uint64
	payloadAlignment             *uint64
	maxNodes                     *uint64

	payload    *typedesc.TypeDetail
	userHeader *typedesc.TypeDetail
}

func newPendingConfig(r *Registry, name service.Name) *PendingConfig {
	return &PendingConfig{
		reg: r,
		ref: serviceRef{name: name, id: service.MakeID(name, service.PublishSubscribe)},
	}
}

// Registry returns the registry the service was selected from.
func (p *PendingConfig) Registry() *Registry { return p.reg }

// Name returns the service name.
func (p *PendingConfig) Name() service.Name { return p.ref.name }

// ServiceID returns the service id.
func (p *PendingConfig) ServiceID() service.ID { return p.ref.id }

// SetEnableSafeOverflow sets whether publishers overwrite the oldest sample
// of a full subscriber buffer.
func (p *PendingConfig) SetEnableSafeOverflow(v bool) { p.enableSafeOverflow = &v }

// SetSubscriberMaxBorrowedSamples sets how many samples a subscriber may
// hold at once.
func (p *PendingConfig) SetSubscriberMaxBorrowedSamples(v uint64) { p.subscriberMaxBorrowedSamples = &v }

// SetHistorySize sets how many samples late joiners receive.
func (p *PendingConfig) SetHistorySize(v uint64) { p.historySize = &v }

// SetSubscriberMaxBufferSize sets the subscriber receive buffer size.
func (p *PendingConfig) SetSubscriberMaxBufferSize(v uint64) { p.subscriberMaxBufferSize = &v }

// SetMaxSubscribers sets the subscriber capacity.
func (p *PendingConfig) SetMaxSubscribers(v uint64) { p.maxSubscribers = &v }

// SetMaxPublishers sets the publisher capacity.
func (p *PendingConfig) SetMaxPublishers(v uint64) { p.maxPublishers = &v }

// SetPayloadAlignment sets the minimum payload alignment. Values that are
// not a power of two are rounded up.
func (p *PendingConfig) SetPayloadAlignment(v uint64) { p.payloadAlignment = &v }

// SetMaxNodes sets the node capacity.
func (p *PendingConfig) SetMaxNodes(v uint64) { p.maxNodes = &v }

// SetPayloadTypeDetails installs the payload type.
func (p *PendingConfig) SetPayloadTypeDetails(d typedesc.TypeDetail) Status {
	if !validTypeDetail(d) {
		return MakeStatus(StageConfigure, CodeInvalidTypeDetails)
	}
	p.payload = &d
	return StatusOK
}

// SetUserHeaderTypeDetails installs the user header type. Headers are
// always FixedSize.
func (p *PendingConfig) SetUserHeaderTypeDetails(d typedesc.TypeDetail) Status {
	if !validTypeDetail(d) || d.Variant != typedesc.FixedSize {
		return MakeStatus(StageConfigure, CodeInvalidTypeDetails)
	}
	p.userHeader = &d
	return StatusOK
}

func validTypeDetail(d typedesc.TypeDetail) bool {
	switch {
	case d.TypeName == "":
		return false
	case d.Variant != typedesc.FixedSize && d.Variant != typedesc.Dynamic:
		return false
	case !typedesc.IsPowerOfTwo(d.Alignment):
		return false
	case d.Size%d.Alignment != 0:
		return false
	}
	return true
}

// Open opens the existing service.
func (p *PendingConfig) Open() (*PortFactory, Status) {
	return p.OpenWithAttributes(nil)
}

// OpenWithAttributes opens the existing service if its attributes satisfy
// v. A nil v accepts any attributes.
func (p *PendingConfig) OpenWithAttributes(v *attribute.Verifier) (*PortFactory, Status) {
	start := time.Now()
	f, code := p.open(v)
	status := MakeStatus(StageOpen, code)
	p.logNegotiation(log.OperationOpen, log.OperationOpen, 0, status, start)
	return f, status
}

// Create creates the service.
func (p *PendingConfig) Create() (*PortFactory, Status) {
	return p.CreateWithAttributes(nil)
}

// CreateWithAttributes creates the service with the attributes of s. A nil
// s defines no attributes.
func (p *PendingConfig) CreateWithAttributes(s *attribute.Specifier) (*PortFactory, Status) {
	start := time.Now()
	f, code := p.create(s.Attributes())
	status := MakeStatus(StageCreate, code)
	p.logNegotiation(log.OperationCreate, log.OperationCreate, 0, status, start)
	return f, status
}

// OpenOrCreate opens the service or creates it if it does not exist.
func (p *PendingConfig) OpenOrCreate() (*PortFactory, Status) {
	return p.OpenOrCreateWithAttributes(nil)
}

// OpenOrCreateWithAttributes opens the service if its attributes satisfy v,
// or creates it with the required key-value pairs of v as its attributes.
// Open and create alternate while other participants create and remove the
// service concurrently, up to the configured number of retries.
func (p *PendingConfig) OpenOrCreateWithAttributes(v *attribute.Verifier) (*PortFactory, Status) {
	start := time.Now()
	f, status, attempts := p.openOrCreate(v)

	branch := log.OperationOpen
	switch {
	case f != nil && f.Created():
		branch = log.OperationCreate
	case status.Stage() == StageCreate:
		branch = log.OperationCreate
	}
	p.logNegotiation(log.OperationOpenOrCreate, branch, attempts, status, start)
	return f, status
}

func (p *PendingConfig) openOrCreate(v *attribute.Verifier) (*PortFactory, Status, int) {
	retries := p.reg.cfg.Global.Service.OpenOrCreateRetries
	attempts := 0
	final := StatusOK

	operation := func() (*PortFactory, error) {
		attempts++

		f, code := p.open(v)
		switch code {
		case CodeOK:
			return f, nil
		case CodeDoesNotExist, CodeIsMarkedForDestruction:
		case CodeHangsInCreation:
			// Another participant is between creating the dynamic config and
			// publishing the static one, or is removing the service.
			p.reg.logger.Debug("service creation pending, retrying",
				slog.String("service", string(p.ref.name)), slog.Int("attempt", attempts))
			return nil, errors.New(code.String())
		default:
			final = MakeStatus(StageOpen, code)
			return nil, backoff.Permanent(errors.New(final.String()))
		}

		f, code = p.create(v.Attributes())
		switch code {
		case CodeOK:
			return f, nil
		case CodeAlreadyExists, CodeIsBeingCreatedByAnotherInstance:
			p.reg.logger.Debug("service in flux, retrying",
				slog.String("service", string(p.ref.name)), slog.Int("attempt", attempts))
			return nil, errors.New(code.String())
		default:
			final = MakeStatus(StageCreate, code)
			return nil, backoff.Permanent(errors.New(final.String()))
		}
	}

	b := backoff.WithMaxRetries(retryBackOff(), uint64(retries-1))
	f, err := backoff.RetryWithData[*PortFactory](operation, b)
	if err == nil {
		return f, StatusOK, attempts
	}
	if final != StatusOK {
		return nil, final, attempts
	}
	return nil, MakeStatus(StageOpenOrCreate, CodeSystemInFlux), attempts
}

// create publishes a new service: the dynamic config is created exclusively
// with the creator registered, then the static config is published.
func (p *PendingConfig) create(attrs attribute.Set) (*PortFactory, Code) {
	r := p.reg
	if p.payload == nil {
		r.logger.Error("create without payload type details", slog.String("service", string(p.ref.name)))
		return nil, CodeInternalFailure
	}

	ps, code := p.creationSettings()
	if code != CodeOK {
		return nil, code
	}

	seg, err := r.dynamic.create(p.ref.id, ps.MaxNodes)
	if err != nil {
		if errors.Is(err, errExists) {
			if r.static.exists(p.ref.id) {
				return nil, CodeAlreadyExists
			}
			return nil, CodeIsBeingCreatedByAnotherInstance
		}
		r.logger.Error("failed to create dynamic config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		return nil, codeFromError(err, CodeInternalFailure)
	}

	sc := &StaticConfig{
		Version:          version.Current,
		ServiceID:        p.ref.id,
		ServiceName:      p.ref.name,
		Pattern:          service.PublishSubscribe,
		Attributes:       attrs,
		PublishSubscribe: ps,
		CreatedAt:        time.Now(),
		CreatorNode:      r.nodeID,
	}

	abort := func() {
		seg.close()
		if err := r.dynamic.remove(p.ref.id); err != nil {
			r.logger.Warn("failed to remove dynamic config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		}
	}

	data, err := EncodeStaticConfig(sc)
	if err != nil {
		abort()
		r.logger.Error("failed to encode static config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		return nil, CodeInternalFailure
	}

	if err := r.static.create(p.ref.id, data); err != nil {
		abort()
		if errors.Is(err, errExists) {
			// A static config without a dynamic config is left over from a
			// creator that died before cleaning up.
			return nil, CodeServiceInCorruptedState
		}
		r.logger.Error("failed to publish static config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		return nil, codeFromError(err, CodeInternalFailure)
	}

	f := newPortFactory(r, p.ref, sc, seg, true)
	r.emit(p.ref, log.Event{
		Category:  log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{State: log.ServiceCreated, Nodes: 1},
	})
	return f, CodeOK
}

// creationSettings merges the set values into the configured defaults.
func (p *PendingConfig) creationSettings() (*PublishSubscribeConfig, Code) {
	d := p.reg.cfg.Defaults.PublishSubscribe
	ps := &PublishSubscribeConfig{
		MaxSubscribers:                    d.MaxSubscribers,
		MaxPublishers:                     d.MaxPublishers,
		MaxNodes:                          d.MaxNodes,
		HistorySize:                       d.PublisherHistorySize,
		SubscriberMaxBufferSize:           d.SubscriberMaxBufferSize,
		SubscriberMaxBorrowedSamples:      d.SubscriberMaxBorrowedSamples,
		PublisherMaxLoanedSamples:         d.PublisherMaxLoanedSamples,
		EnableSafeOverflow:                d.EnableSafeOverflow,
		UnableToDeliverStrategy:           d.UnableToDeliverStrategy,
		SubscriberExpiredConnectionBuffer: d.SubscriberExpiredConnectionBuffer,
	}
	if ps.UnableToDeliverStrategy == "" {
		ps.UnableToDeliverStrategy = config.StrategyBlock
	}

	setIf(&ps.EnableSafeOverflow, p.enableSafeOverflow)
	setIf(&ps.SubscriberMaxBorrowedSamples, p.subscriberMaxBorrowedSamples)
	setIf(&ps.HistorySize, p.historySize)
	setIf(&ps.SubscriberMaxBufferSize, p.subscriberMaxBufferSize)
	setIf(&ps.MaxSubscribers, p.maxSubscribers)
	setIf(&ps.MaxPublishers, p.maxPublishers)
	setIf(&ps.MaxNodes, p.maxNodes)

	p.atLeastOne("max_subscribers", &ps.MaxSubscribers)
	p.atLeastOne("max_publishers", &ps.MaxPublishers)
	p.atLeastOne("max_nodes", &ps.MaxNodes)
	p.atLeastOne("subscriber_max_buffer_size", &ps.SubscriberMaxBufferSize)
	p.atLeastOne("subscriber_max_borrowed_samples", &ps.SubscriberMaxBorrowedSamples)

	if ps.HistorySize > ps.SubscriberMaxBufferSize {
		return nil, CodeSubscriberBufferMustBeLargerThanHistorySize
	}

	ps.Payload = *p.payload
	ps.Payload.Alignment = p.requiredPayloadAlignment()
	ps.UserHeader = p.header()
	return ps, CodeOK
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// atLeastOne raises a zero capacity to one.
func (p *PendingConfig) atLeastOne(key string, v *uint64) {
	if *v == 0 {
		p.reg.logger.Warn("capacity of zero raised to one",
			slog.String("service", string(p.ref.name)), slog.String("setting", key))
		*v = 1
	}
}

// requiredPayloadAlignment is the larger of the type alignment and the
// requested alignment rounded up to a power of two.
func (p *PendingConfig) requiredPayloadAlignment() uint64 {
	align := p.payload.Alignment
	if p.payloadAlignment != nil {
		align = max(align, roundUpPowerOfTwo(*p.payloadAlignment))
	}
	return align
}

func roundUpPowerOfTwo(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	if v > 1<<63 {
		return 1 << 63
	}
	return 1 << bits.Len64(v-1)
}

// header returns the installed user header, or the empty header.
func (p *PendingConfig) header() typedesc.TypeDetail {
	if p.userHeader != nil {
		return *p.userHeader
	}
	return typedesc.TypeDetail{Variant: typedesc.FixedSize, TypeName: typedesc.NoHeaderTypeName, Size: 0, Alignment: 1}
}

// open attaches to the existing service after verifying it against the set
// values.
func (p *PendingConfig) open(v *attribute.Verifier) (*PortFactory, Code) {
	r := p.reg
	if p.payload == nil {
		r.logger.Error("open without payload type details", slog.String("service", string(p.ref.name)))
		return nil, CodeInternalFailure
	}

	data, code := p.awaitStatic()
	if code != CodeOK {
		return nil, code
	}

	sc, err := DecodeStaticConfig(data)
	if err != nil {
		r.logger.Warn("corrupted static config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		return nil, CodeServiceInCorruptedState
	}
	if sc.ServiceName != p.ref.name {
		return nil, CodeServiceInCorruptedState
	}

	if code := p.verify(sc, v); code != CodeOK {
		return nil, code
	}

	seg, err := r.dynamic.open(p.ref.id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, CodeIsMarkedForDestruction
		}
		if errors.Is(err, errCorrupted) {
			return nil, CodeServiceInCorruptedState
		}
		r.logger.Error("failed to open dynamic config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		return nil, codeFromError(err, CodeInternalFailure)
	}

	t := seg.table()
	if !t.ready() {
		seg.close()
		return nil, CodeServiceInCorruptedState
	}
	if !t.libraryVersion().Compatible(version.MustCurrent()) {
		seg.close()
		return nil, CodeIncompatibleVersion
	}
	if code := t.register(); code != CodeOK {
		seg.close()
		return nil, code
	}

	f := newPortFactory(r, p.ref, sc, seg, false)
	r.emit(p.ref, log.Event{
		Category:  log.CategoryLifecycle,
		Lifecycle: &log.LifecycleEvent{State: log.ServiceOpened, Nodes: t.nodes()},
	})
	return f, CodeOK
}

// awaitStatic reads the static config. A service whose dynamic config
// exists without a static config is still being created; it is polled until
// the creation timeout expires.
func (p *PendingConfig) awaitStatic() ([]byte, Code) {
	r := p.reg
	operation := func() ([]byte, error) {
		data, err := r.static.read(p.ref.id)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, backoff.Permanent(err)
		}
		if !r.dynamic.exists(p.ref.id) {
			return nil, backoff.Permanent(ErrNotFound)
		}
		return nil, errCreationPending
	}

	var b backoff.BackOff = &backoff.StopBackOff{}
	if timeout := r.cfg.Global.Service.CreationTimeout; timeout > 0 {
		eb := retryBackOff()
		eb.MaxElapsedTime = timeout
		b = eb
	}

	data, err := backoff.RetryWithData[[]byte](operation, b)
	switch {
	case err == nil:
		return data, CodeOK
	case errors.Is(err, ErrNotFound):
		return nil, CodeDoesNotExist
	case errors.Is(err, errCreationPending):
		return nil, CodeHangsInCreation
	default:
		r.logger.Error("failed to read static config", slog.String("service", string(p.ref.name)), slog.Any("error", err))
		return nil, codeFromError(err, CodeInternalFailure)
	}
}

// verify checks the existing service against the requirements.
func (p *PendingConfig) verify(sc *StaticConfig, v *attribute.Verifier) Code {
	r := p.reg
	if sc.Pattern != service.PublishSubscribe || sc.PublishSubscribe == nil {
		return CodeIncompatibleMessagingPattern
	}

	created, err := version.Parse(sc.Version)
	if err != nil {
		return CodeServiceInCorruptedState
	}
	if !created.Compatible(version.MustCurrent()) {
		r.logger.Debug("incompatible service version",
			slog.String("service", string(p.ref.name)), slog.String("version", sc.Version))
		return CodeIncompatibleVersion
	}

	if key, ok := v.Verify(sc.Attributes); !ok {
		r.logger.Debug("attribute requirement not met",
			slog.String("service", string(p.ref.name)), slog.String("key", key))
		return CodeIncompatibleAttributes
	}

	ps := sc.PublishSubscribe
	payload := *p.payload
	payload.Alignment = p.requiredPayloadAlignment()
	if !ps.Payload.IsCompatibleTo(payload) || !ps.UserHeader.IsCompatibleTo(p.header()) {
		r.logger.Debug("incompatible types",
			slog.String("service", string(p.ref.name)),
			slog.String("offered_payload", ps.Payload.String()),
			slog.String("required_payload", payload.String()),
			slog.String("offered_header", ps.UserHeader.String()),
			slog.String("required_header", p.header().String()))
		return CodeIncompatibleTypes
	}

	if p.enableSafeOverflow != nil && *p.enableSafeOverflow != ps.EnableSafeOverflow {
		return CodeIncompatibleOverflowBehavior
	}

	checks := []struct {
		required *uint64
		offered  uint64
		code     Code
	}{
		{p.maxSubscribers, ps.MaxSubscribers, CodeDoesNotSupportRequestedAmountOfSubscribers},
		{p.maxPublishers, ps.MaxPublishers, CodeDoesNotSupportRequestedAmountOfPublishers},
		{p.subscriberMaxBufferSize, ps.SubscriberMaxBufferSize, CodeDoesNotSupportRequestedMinBufferSize},
		{p.historySize, ps.HistorySize, CodeDoesNotSupportRequestedMinHistorySize},
		{p.subscriberMaxBorrowedSamples, ps.SubscriberMaxBorrowedSamples, CodeDoesNotSupportRequestedMinSubscriberBorrowedSamples},
		{p.maxNodes, ps.MaxNodes, CodeDoesNotSupportRequestedAmountOfNodes},
	}
	for _, c := range checks {
		if c.required != nil && *c.required > c.offered {
			return c.code
		}
	}
	return CodeOK
}

// logNegotiation emits the outcome of a terminal call.
func (p *PendingConfig) logNegotiation(op, branch log.Operation, attempts int, status Status, start time.Time) {
	ev := &log.NegotiationEvent{
		Operation:  op,
		Branch:     branch,
		Attempts:   attempts,
		Payload:    p.payload,
		Success:    status.OK(),
		Duration:   time.Since(start),
		UserHeader: p.userHeader,
	}
	if !status.OK() {
		ev.Status = status.String()
		p.reg.logger.Debug("negotiation failed",
			slog.String("service", string(p.ref.name)),
			slog.String("operation", op.String()),
			slog.String("status", status.String()))
	}
	p.reg.emit(p.ref, log.Event{Category: log.CategoryNegotiation, Negotiation: ev})
}

// retryBackOff is the schedule used while waiting for other participants.
func retryBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond
	b.MaxInterval = 50 * time.Millisecond
	return b
}

// codeFromError maps permission errors to CodeInsufficientPermissions.
func codeFromError(err error, fallback Code) Code {
	if errors.Is(err, fs.ErrPermission) {
		return CodeInsufficientPermissions
	}
	return fallback
}
