package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/log"
	"github.com/zcbus/zcbus-go/pkg/service"
)

// Options configures a Registry.
type Options struct {
	// Logger receives operational messages. If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives negotiation and lifecycle events. If nil, events
	// are discarded.
	EventLogger log.Logger
}

// Registry gives one participant access to the services of a service type.
// It is safe for concurrent use.
type Registry struct {
	serviceType service.ServiceType
	cfg         *config.Config
	nodeID      string
	logger      *slog.Logger
	events      log.Logger

	static  staticStorage
	dynamic dynamicStorage
}

// New creates a registry. A nil cfg uses config.Default().
func New(st service.ServiceType, cfg *config.Config, opts Options) (*Registry, error) {
	if st != service.Ipc && st != service.Local {
		return nil, fmt.Errorf("%w: %d", service.ErrInvalidServiceType, st)
	}
	if cfg == nil {
		cfg = config.Default()
	} else {
		cfg = cfg.Clone()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	static, dynamic := newStorage(st, cfg)
	r := &Registry{
		serviceType: st,
		cfg:         cfg,
		nodeID:      uuid.NewString(),
		events:      log.OrNoop(opts.EventLogger),
		static:      static,
		dynamic:     dynamic,
	}
	r.logger = logger.With(slog.String("node_id", r.nodeID), slog.String("service_type", st.String()))
	return r, nil
}

// NodeID returns the id of this participant.
func (r *Registry) NodeID() string {
	return r.nodeID
}

// ServiceType returns the service type the registry operates on.
func (r *Registry) ServiceType() service.ServiceType {
	return r.serviceType
}

// Config returns the configuration of the registry. It must not be modified.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// Logger returns the operational logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// EventLogger returns the event logger.
func (r *Registry) EventLogger() log.Logger {
	return r.events
}

// PublishSubscribe selects the publish-subscribe service with the given
// name and returns its pending configuration.
func (r *Registry) PublishSubscribe(name string) (*PendingConfig, error) {
	n, err := service.NewName(name)
	if err != nil {
		return nil, err
	}
	return newPendingConfig(r, n), nil
}

// ServiceDetails is the state of a service as seen by an observer.
type ServiceDetails struct {
	Static *StaticConfig `json:"static"`

	// Nodes is the number of attached nodes. It is zero if the dynamic
	// config could not be read.
	Nodes uint64 `json:"nodes"`

	// MaxNodes is the node limit of the dynamic config.
	MaxNodes uint64 `json:"max_nodes"`
}

// List returns the static configs of all services, sorted by name. Services
// that disappear or cannot be decoded while listing are skipped.
func (r *Registry) List() ([]*StaticConfig, error) {
	ids, err := r.static.list()
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	var configs []*StaticConfig
	for _, id := range ids {
		sc, err := r.readStatic(id)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				r.logger.Warn("skipping unreadable service", slog.String("service_id", string(id)), slog.Any("error", err))
			}
			continue
		}
		configs = append(configs, sc)
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ServiceName < configs[j].ServiceName
	})
	return configs, nil
}

// Details returns the static config and node count of the
// publish-subscribe service with the given name.
func (r *Registry) Details(name string) (*ServiceDetails, error) {
	n, err := service.NewName(name)
	if err != nil {
		return nil, err
	}
	return r.DetailsByID(service.MakeID(n, service.PublishSubscribe))
}

// DetailsByID returns the details of the service with the given id.
func (r *Registry) DetailsByID(id service.ID) (*ServiceDetails, error) {
	sc, err := r.readStatic(id)
	if err != nil {
		return nil, err
	}

	details := &ServiceDetails{Static: sc}
	seg, err := r.dynamic.open(id)
	if err != nil {
		r.logger.Debug("dynamic config unavailable", slog.String("service_id", string(id)), slog.Any("error", err))
		return details, nil
	}
	defer seg.close()

	details.Nodes = seg.table().nodes()
	details.MaxNodes = seg.table().maxNodes()
	return details, nil
}

// Exists reports whether a publish-subscribe service with the given name
// has been published.
func (r *Registry) Exists(name string) (bool, error) {
	n, err := service.NewName(name)
	if err != nil {
		return false, err
	}
	return r.static.exists(service.MakeID(n, service.PublishSubscribe)), nil
}

func (r *Registry) readStatic(id service.ID) (*StaticConfig, error) {
	data, err := r.static.read(id)
	if err != nil {
		return nil, err
	}
	return DecodeStaticConfig(data)
}

// emit sends an event stamped with the node id and service.
func (r *Registry) emit(sc serviceRef, event log.Event) {
	event.Timestamp = time.Now()
	event.NodeID = r.nodeID
	event.ServiceName = string(sc.name)
	event.ServiceID = string(sc.id)
	event.ServiceType = r.serviceType.String()
	r.events.Log(event)
}

// serviceRef names a service in events.
type serviceRef struct {
	name service.Name
	id   service.ID
}

// removeService deletes both parts of a service. The static config goes
// first so new openers stop finding the service before its node table
// disappears.
func (r *Registry) removeService(ref serviceRef) {
	if err := r.static.remove(ref.id); err != nil && !errors.Is(err, ErrNotFound) {
		r.logger.Error("failed to remove static config", slog.String("service", string(ref.name)), slog.Any("error", err))
		r.emit(ref, log.Event{
			Category: log.CategoryError,
			Error:    &log.ErrorEventData{Message: err.Error(), Context: "remove static config"},
		})
	}
	if err := r.dynamic.remove(ref.id); err != nil && !errors.Is(err, ErrNotFound) {
		r.logger.Error("failed to remove dynamic config", slog.String("service", string(ref.name)), slog.Any("error", err))
		r.emit(ref, log.Event{
			Category: log.CategoryError,
			Error:    &log.ErrorEventData{Message: err.Error(), Context: "remove dynamic config"},
		})
	}
}
