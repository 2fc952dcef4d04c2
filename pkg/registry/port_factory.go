package registry

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/zcbus/zcbus-go/pkg/log"
)

// PortFactory is the handle of one node attached to a service. Publishers
// and subscribers of the node are derived from it. Close detaches the node;
// the last node to detach removes the service.
type PortFactory struct {
	reg     *Registry
	ref     serviceRef
	static  *StaticConfig
	segment dynamicSegment
	created bool

	closeOnce sync.Once
	closed    atomic.Bool
	closeErr  error
}

func newPortFactory(r *Registry, ref serviceRef, sc *StaticConfig, seg dynamicSegment, created bool) *PortFactory {
	return &PortFactory{
		reg:     r,
		ref:     ref,
		static:  sc,
		segment: seg,
		created: created,
	}
}

// StaticConfig returns the effective settings of the service. It must not be
// modified.
func (f *PortFactory) StaticConfig() *StaticConfig {
	return f.static
}

// NodeID returns the id of the node holding the factory.
func (f *PortFactory) NodeID() string {
	return f.reg.nodeID
}

// Created reports whether this factory created the service.
func (f *PortFactory) Created() bool {
	return f.created
}

// NumberOfNodes returns the number of nodes attached to the service, or zero
// after Close.
func (f *PortFactory) NumberOfNodes() uint64 {
	if f.closed.Load() {
		return 0
	}
	return f.segment.table().nodes()
}

// Close detaches the node. If it was the last node, the service is removed.
// Close is safe to call more than once and on a nil factory.
func (f *PortFactory) Close() error {
	if f == nil || f.segment == nil {
		return nil
	}

	f.closeOnce.Do(func() {
		f.closed.Store(true)
		remaining, last := f.segment.table().deregister()
		f.closeErr = f.segment.close()

		r := f.reg
		r.emit(f.ref, log.Event{
			Category:  log.CategoryLifecycle,
			Lifecycle: &log.LifecycleEvent{State: log.ServiceReleased, Nodes: remaining},
		})
		if !last {
			return
		}

		r.removeService(f.ref)
		r.logger.Debug("service removed", slog.String("service", string(f.ref.name)))
		r.emit(f.ref, log.Event{
			Category:  log.CategoryLifecycle,
			Lifecycle: &log.LifecycleEvent{State: log.ServiceDestroyed, Reason: "last node released"},
		})
	})
	return f.closeErr
}
