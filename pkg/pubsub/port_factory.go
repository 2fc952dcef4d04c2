package pubsub

import (
	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// PortFactory is an attached publish-subscribe service with payload type P
// and user header type H. Close releases it.
type PortFactory[P any, H any] struct {
	inner *registry.PortFactory
}

// Name returns the service name.
func (f *PortFactory[P, H]) Name() service.Name {
	return f.inner.StaticConfig().ServiceName
}

// ServiceID returns the service id.
func (f *PortFactory[P, H]) ServiceID() service.ID {
	return f.inner.StaticConfig().ServiceID
}

// Attributes returns a copy of the service attributes.
func (f *PortFactory[P, H]) Attributes() attribute.Set {
	return append(attribute.Set(nil), f.inner.StaticConfig().Attributes...)
}

// StaticConfig returns the effective settings of the service.
func (f *PortFactory[P, H]) StaticConfig() registry.PublishSubscribeConfig {
	return *f.inner.StaticConfig().PublishSubscribe
}

// PayloadTypeDetails returns the payload type of the service.
func (f *PortFactory[P, H]) PayloadTypeDetails() typedesc.TypeDetail {
	return f.inner.StaticConfig().PublishSubscribe.Payload
}

// UserHeaderTypeDetails returns the user header type of the service.
func (f *PortFactory[P, H]) UserHeaderTypeDetails() typedesc.TypeDetail {
	return f.inner.StaticConfig().PublishSubscribe.UserHeader
}

// NodeID returns the id of the node holding the factory.
func (f *PortFactory[P, H]) NodeID() string {
	return f.inner.NodeID()
}

// Created reports whether this factory created the service.
func (f *PortFactory[P, H]) Created() bool {
	return f.inner.Created()
}

// NumberOfNodes returns the number of nodes attached to the service.
func (f *PortFactory[P, H]) NumberOfNodes() uint64 {
	return f.inner.NumberOfNodes()
}

// Registry returns the untyped factory.
func (f *PortFactory[P, H]) Registry() *registry.PortFactory {
	return f.inner
}

// Close releases the factory. The last factory of a service removes it.
func (f *PortFactory[P, H]) Close() error {
	if f == nil {
		return nil
	}
	return f.inner.Close()
}
