package log

import (
	"time"

	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// Event represents a negotiation log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// NodeID identifies the participant that emitted the event (UUID).
	NodeID string `cbor:"2,keyasint"`

	// ServiceName is the human-readable service name.
	ServiceName string `cbor:"3,keyasint,omitempty"`

	// ServiceID is the id derived from name and messaging pattern.
	ServiceID string `cbor:"4,keyasint,omitempty"`

	// ServiceType is "ipc" or "local".
	ServiceType string `cbor:"5,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"6,keyasint"`

	// Type-specific payload (one of these will be set).
	Negotiation *NegotiationEvent `cbor:"10,keyasint,omitempty"`
	Lifecycle   *LifecycleEvent   `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"12,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryNegotiation indicates an open/create attempt and its outcome.
	CategoryNegotiation Category = 0
	// CategoryLifecycle indicates a service state change.
	CategoryLifecycle Category = 1
	// CategoryError indicates an error outside of a negotiation.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryNegotiation:
		return "NEGOTIATION"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as produced by String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryNegotiation, CategoryLifecycle, CategoryError} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Operation identifies the terminal builder operation.
type Operation uint8

const (
	// OperationOpen opens an existing service.
	OperationOpen Operation = 0
	// OperationCreate creates a new service.
	OperationCreate Operation = 1
	// OperationOpenOrCreate opens the service or creates it if missing.
	OperationOpenOrCreate Operation = 2
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OperationOpen:
		return "OPEN"
	case OperationCreate:
		return "CREATE"
	case OperationOpenOrCreate:
		return "OPEN_OR_CREATE"
	default:
		return "UNKNOWN"
	}
}

// ParseOperation parses an operation name as produced by String.
func ParseOperation(s string) (Operation, bool) {
	for _, o := range []Operation{OperationOpen, OperationCreate, OperationOpenOrCreate} {
		if o.String() == s {
			return o, true
		}
	}
	return 0, false
}

// NegotiationEvent captures one terminal operation.
type NegotiationEvent struct {
	// Operation requested by the caller.
	Operation Operation `cbor:"1,keyasint"`

	// Branch is the operation that produced the outcome. It differs from
	// Operation only for open-or-create.
	Branch Operation `cbor:"2,keyasint"`

	// Attempts is the number of open/create rounds of open-or-create.
	Attempts int `cbor:"3,keyasint,omitempty"`

	// Payload is the payload type requested by the participant.
	Payload *typedesc.TypeDetail `cbor:"4,keyasint,omitempty"`

	// UserHeader is the user header type requested by the participant.
	UserHeader *typedesc.TypeDetail `cbor:"5,keyasint,omitempty"`

	// Success reports whether a port factory was returned.
	Success bool `cbor:"6,keyasint"`

	// Status is the registry status name (empty on success).
	Status string `cbor:"7,keyasint,omitempty"`

	// Duration of the operation, stored as nanoseconds.
	Duration time.Duration `cbor:"8,keyasint,omitempty"`
}

// LifecycleEvent captures service state changes seen by one participant.
type LifecycleEvent struct {
	// State is the new state.
	State ServiceState `cbor:"1,keyasint"`

	// Nodes is the number of attached participants after the change.
	Nodes uint64 `cbor:"2,keyasint,omitempty"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ServiceState is the lifecycle state reported in a LifecycleEvent.
type ServiceState uint8

const (
	// ServiceCreated indicates the participant created the service.
	ServiceCreated ServiceState = 0
	// ServiceOpened indicates the participant attached to an existing service.
	ServiceOpened ServiceState = 1
	// ServiceReleased indicates the participant detached.
	ServiceReleased ServiceState = 2
	// ServiceDestroyed indicates the last participant detached and the
	// service storage was removed.
	ServiceDestroyed ServiceState = 3
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case ServiceCreated:
		return "CREATED"
	case ServiceOpened:
		return "OPENED"
	case ServiceReleased:
		return "RELEASED"
	case ServiceDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors outside of negotiation outcomes, such as a
// failure to remove service storage.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
