package pubsub

import (
	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// Handle is the pending configuration of a service inside the registry.
// *registry.PendingConfig implements it.
type Handle interface {
	SetEnableSafeOverflow(bool)
	SetSubscriberMaxBorrowedSamples(uint64)
	SetHistorySize(uint64)
	SetSubscriberMaxBufferSize(uint64)
	SetMaxSubscribers(uint64)
	SetMaxPublishers(uint64)
	SetPayloadAlignment(uint64)
	SetMaxNodes(uint64)

	// SetPayloadTypeDetails and SetUserHeaderTypeDetails must succeed for
	// details produced by package typedesc.
	SetPayloadTypeDetails(typedesc.TypeDetail) registry.Status
	SetUserHeaderTypeDetails(typedesc.TypeDetail) registry.Status

	Open() (*registry.PortFactory, registry.Status)
	OpenWithAttributes(*attribute.Verifier) (*registry.PortFactory, registry.Status)
	Create() (*registry.PortFactory, registry.Status)
	CreateWithAttributes(*attribute.Specifier) (*registry.PortFactory, registry.Status)
	OpenOrCreate() (*registry.PortFactory, registry.Status)
	OpenOrCreateWithAttributes(*attribute.Verifier) (*registry.PortFactory, registry.Status)
}

// Compile-time interface satisfaction check.
var _ Handle = (*registry.PendingConfig)(nil)
