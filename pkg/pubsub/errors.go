package pubsub

import (
	"errors"
	"fmt"

	"github.com/zcbus/zcbus-go/pkg/registry"
	"github.com/zcbus/zcbus-go/pkg/service"
)

// Builder errors. Typed errors unwrap to one of these, so callers can test
// with errors.Is(err, pubsub.ErrDoesNotExist).
var (
	ErrDoesNotExist                                        = errors.New("service does not exist")
	ErrInternalFailure                                     = errors.New("internal failure")
	ErrIncompatibleTypes                                   = errors.New("incompatible payload or user header type")
	ErrIncompatibleMessagingPattern                        = errors.New("incompatible messaging pattern")
	ErrIncompatibleAttributes                              = errors.New("incompatible attributes")
	ErrDoesNotSupportRequestedMinBufferSize                = errors.New("subscriber buffer smaller than requested")
	ErrDoesNotSupportRequestedMinHistorySize               = errors.New("history smaller than requested")
	ErrDoesNotSupportRequestedMinSubscriberBorrowedSamples = errors.New("fewer borrowed samples than requested")
	ErrDoesNotSupportRequestedAmountOfPublishers           = errors.New("fewer publishers than requested")
	ErrDoesNotSupportRequestedAmountOfSubscribers          = errors.New("fewer subscribers than requested")
	ErrDoesNotSupportRequestedAmountOfNodes                = errors.New("fewer nodes than requested")
	ErrIncompatibleOverflowBehavior                        = errors.New("incompatible overflow behavior")
	ErrInsufficientPermissions                             = errors.New("insufficient permissions")
	ErrServiceInCorruptedState                             = errors.New("service in corrupted state")
	ErrHangsInCreation                                     = errors.New("service hangs in creation")
	ErrExceedsMaxNumberOfNodes                             = errors.New("exceeds max number of nodes")
	ErrIsMarkedForDestruction                              = errors.New("service is marked for destruction")
	ErrIncompatibleVersion                                 = errors.New("incompatible library version")
	ErrUnsupportedType                                     = errors.New("type cannot be shared between processes")
	ErrSubscriberBufferMustBeLargerThanHistorySize         = errors.New("subscriber buffer must be larger than history size")
	ErrAlreadyExists                                       = errors.New("service already exists")
	ErrIsBeingCreatedByAnotherInstance                     = errors.New("service is being created by another instance")
	ErrSystemInFlux                                        = errors.New("system in flux")
)

// OpenErrorKind is the reason an open failed.
type OpenErrorKind uint8

const (
	OpenDoesNotExist OpenErrorKind = iota
	OpenInternalFailure
	OpenIncompatibleTypes
	OpenIncompatibleMessagingPattern
	OpenIncompatibleAttributes
	OpenDoesNotSupportRequestedMinBufferSize
	OpenDoesNotSupportRequestedMinHistorySize
	OpenDoesNotSupportRequestedMinSubscriberBorrowedSamples
	OpenDoesNotSupportRequestedAmountOfPublishers
	OpenDoesNotSupportRequestedAmountOfSubscribers
	OpenDoesNotSupportRequestedAmountOfNodes
	OpenIncompatibleOverflowBehavior
	OpenInsufficientPermissions
	OpenServiceInCorruptedState
	OpenHangsInCreation
	OpenExceedsMaxNumberOfNodes
	OpenIsMarkedForDestruction
	OpenIncompatibleVersion
	OpenUnsupportedType
)

var openKinds = []struct {
	code registry.Code
	name string
	err  error
}{
	OpenDoesNotExist:                                        {registry.CodeDoesNotExist, "DOES_NOT_EXIST", ErrDoesNotExist},
	OpenInternalFailure:                                     {registry.CodeInternalFailure, "INTERNAL_FAILURE", ErrInternalFailure},
	OpenIncompatibleTypes:                                   {registry.CodeIncompatibleTypes, "INCOMPATIBLE_TYPES", ErrIncompatibleTypes},
	OpenIncompatibleMessagingPattern:                        {registry.CodeIncompatibleMessagingPattern, "INCOMPATIBLE_MESSAGING_PATTERN", ErrIncompatibleMessagingPattern},
	OpenIncompatibleAttributes:                              {registry.CodeIncompatibleAttributes, "INCOMPATIBLE_ATTRIBUTES", ErrIncompatibleAttributes},
	OpenDoesNotSupportRequestedMinBufferSize:                {registry.CodeDoesNotSupportRequestedMinBufferSize, "DOES_NOT_SUPPORT_REQUESTED_MIN_BUFFER_SIZE", ErrDoesNotSupportRequestedMinBufferSize},
	OpenDoesNotSupportRequestedMinHistorySize:               {registry.CodeDoesNotSupportRequestedMinHistorySize, "DOES_NOT_SUPPORT_REQUESTED_MIN_HISTORY_SIZE", ErrDoesNotSupportRequestedMinHistorySize},
	OpenDoesNotSupportRequestedMinSubscriberBorrowedSamples: {registry.CodeDoesNotSupportRequestedMinSubscriberBorrowedSamples, "DOES_NOT_SUPPORT_REQUESTED_MIN_SUBSCRIBER_BORROWED_SAMPLES", ErrDoesNotSupportRequestedMinSubscriberBorrowedSamples},
	OpenDoesNotSupportRequestedAmountOfPublishers:           {registry.CodeDoesNotSupportRequestedAmountOfPublishers, "DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_PUBLISHERS", ErrDoesNotSupportRequestedAmountOfPublishers},
	OpenDoesNotSupportRequestedAmountOfSubscribers:          {registry.CodeDoesNotSupportRequestedAmountOfSubscribers, "DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_SUBSCRIBERS", ErrDoesNotSupportRequestedAmountOfSubscribers},
	OpenDoesNotSupportRequestedAmountOfNodes:                {registry.CodeDoesNotSupportRequestedAmountOfNodes, "DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_NODES", ErrDoesNotSupportRequestedAmountOfNodes},
	OpenIncompatibleOverflowBehavior:                        {registry.CodeIncompatibleOverflowBehavior, "INCOMPATIBLE_OVERFLOW_BEHAVIOR", ErrIncompatibleOverflowBehavior},
	OpenInsufficientPermissions:                             {registry.CodeInsufficientPermissions, "INSUFFICIENT_PERMISSIONS", ErrInsufficientPermissions},
	OpenServiceInCorruptedState:                             {registry.CodeServiceInCorruptedState, "SERVICE_IN_CORRUPTED_STATE", ErrServiceInCorruptedState},
	OpenHangsInCreation:                                     {registry.CodeHangsInCreation, "HANGS_IN_CREATION", ErrHangsInCreation},
	OpenExceedsMaxNumberOfNodes:                             {registry.CodeExceedsMaxNumberOfNodes, "EXCEEDS_MAX_NUMBER_OF_NODES", ErrExceedsMaxNumberOfNodes},
	OpenIsMarkedForDestruction:                              {registry.CodeIsMarkedForDestruction, "IS_MARKED_FOR_DESTRUCTION", ErrIsMarkedForDestruction},
	OpenIncompatibleVersion:                                 {registry.CodeIncompatibleVersion, "INCOMPATIBLE_VERSION", ErrIncompatibleVersion},
	OpenUnsupportedType:                                     {0, "UNSUPPORTED_TYPE", ErrUnsupportedType},
}

// String returns the kind name.
func (k OpenErrorKind) String() string {
	if int(k) < len(openKinds) {
		return openKinds[k].name
	}
	return "UNKNOWN"
}

// openKindOf maps a registry code. Unknown codes map to OpenInternalFailure.
func openKindOf(code registry.Code) OpenErrorKind {
	for k, e := range openKinds {
		if e.code == code && e.code != 0 {
			return OpenErrorKind(k)
		}
	}
	return OpenInternalFailure
}

// OpenError is returned when an existing service cannot be opened.
type OpenError struct {
	Kind    OpenErrorKind
	Service service.Name

	// Status is the raw registry status, zero for failures detected by the
	// builder.
	Status registry.Status

	// Detail describes builder-side failures.
	Detail string
}

func (e *OpenError) Error() string {
	msg := fmt.Sprintf("failed to open service %q: %v", e.Service, e.Unwrap())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the sentinel of the kind.
func (e *OpenError) Unwrap() error {
	if int(e.Kind) < len(openKinds) {
		return openKinds[e.Kind].err
	}
	return ErrInternalFailure
}

// Is reports whether target is an *OpenError of the same kind.
func (e *OpenError) Is(target error) bool {
	t, ok := target.(*OpenError)
	return ok && t.Kind == e.Kind
}

// CreateErrorKind is the reason a create failed.
type CreateErrorKind uint8

const (
	CreateServiceInCorruptedState CreateErrorKind = iota
	CreateSubscriberBufferMustBeLargerThanHistorySize
	CreateAlreadyExists
	CreateInsufficientPermissions
	CreateInternalFailure
	CreateIsBeingCreatedByAnotherInstance
	CreateHangsInCreation
	CreateUnsupportedType
)

var createKinds = []struct {
	code registry.Code
	name string
	err  error
}{
	CreateServiceInCorruptedState:                     {registry.CodeServiceInCorruptedState, "SERVICE_IN_CORRUPTED_STATE", ErrServiceInCorruptedState},
	CreateSubscriberBufferMustBeLargerThanHistorySize: {registry.CodeSubscriberBufferMustBeLargerThanHistorySize, "SUBSCRIBER_BUFFER_MUST_BE_LARGER_THAN_HISTORY_SIZE", ErrSubscriberBufferMustBeLargerThanHistorySize},
	CreateAlreadyExists:                               {registry.CodeAlreadyExists, "ALREADY_EXISTS", ErrAlreadyExists},
	CreateInsufficientPermissions:                     {registry.CodeInsufficientPermissions, "INSUFFICIENT_PERMISSIONS", ErrInsufficientPermissions},
	CreateInternalFailure:                             {registry.CodeInternalFailure, "INTERNAL_FAILURE", ErrInternalFailure},
	CreateIsBeingCreatedByAnotherInstance:             {registry.CodeIsBeingCreatedByAnotherInstance, "IS_BEING_CREATED_BY_ANOTHER_INSTANCE", ErrIsBeingCreatedByAnotherInstance},
	CreateHangsInCreation:                             {registry.CodeHangsInCreation, "HANGS_IN_CREATION", ErrHangsInCreation},
	CreateUnsupportedType:                             {0, "UNSUPPORTED_TYPE", ErrUnsupportedType},
}

// String returns the kind name.
func (k CreateErrorKind) String() string {
	if int(k) < len(createKinds) {
		return createKinds[k].name
	}
	return "UNKNOWN"
}

// createKindOf maps a registry code. Unknown codes map to
// CreateInternalFailure.
func createKindOf(code registry.Code) CreateErrorKind {
	for k, e := range createKinds {
		if e.code == code && e.code != 0 {
			return CreateErrorKind(k)
		}
	}
	return CreateInternalFailure
}

// CreateError is returned when a service cannot be created.
type CreateError struct {
	Kind    CreateErrorKind
	Service service.Name
	Status  registry.Status
	Detail  string
}

func (e *CreateError) Error() string {
	msg := fmt.Sprintf("failed to create service %q: %v", e.Service, e.Unwrap())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the sentinel of the kind.
func (e *CreateError) Unwrap() error {
	if int(e.Kind) < len(createKinds) {
		return createKinds[e.Kind].err
	}
	return ErrInternalFailure
}

// Is reports whether target is a *CreateError of the same kind.
func (e *CreateError) Is(target error) bool {
	t, ok := target.(*CreateError)
	return ok && t.Kind == e.Kind
}

// OpenOrCreateErrorKind is the reason an open-or-create failed.
type OpenOrCreateErrorKind uint8

const (
	// OpenOrCreateOpenFailed means the open branch failed; see Open.
	OpenOrCreateOpenFailed OpenOrCreateErrorKind = iota

	// OpenOrCreateCreateFailed means the create branch failed; see Create.
	OpenOrCreateCreateFailed

	// OpenOrCreateSystemInFlux means the service kept appearing and
	// disappearing until the retries were used up.
	OpenOrCreateSystemInFlux

	// OpenOrCreateUnsupportedType means the payload or header type was
	// rejected before the registry was contacted.
	OpenOrCreateUnsupportedType
)

// String returns the kind name.
func (k OpenOrCreateErrorKind) String() string {
	switch k {
	case OpenOrCreateOpenFailed:
		return "OPEN_FAILED"
	case OpenOrCreateCreateFailed:
		return "CREATE_FAILED"
	case OpenOrCreateSystemInFlux:
		return "SYSTEM_IN_FLUX"
	case OpenOrCreateUnsupportedType:
		return "UNSUPPORTED_TYPE"
	default:
		return "UNKNOWN"
	}
}

// OpenOrCreateError is returned when open-or-create fails. Open or Create
// is set for the branch that failed.
type OpenOrCreateError struct {
	Kind    OpenOrCreateErrorKind
	Service service.Name
	Open    *OpenError
	Create  *CreateError
	Status  registry.Status
	Detail  string
}

func (e *OpenOrCreateError) Error() string {
	switch {
	case e.Open != nil:
		return "open-or-create: " + e.Open.Error()
	case e.Create != nil:
		return "open-or-create: " + e.Create.Error()
	}
	msg := fmt.Sprintf("failed to open or create service %q: %v", e.Service, e.Unwrap())
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the branch error, or the sentinel of the kind.
func (e *OpenOrCreateError) Unwrap() error {
	switch {
	case e.Open != nil:
		return e.Open
	case e.Create != nil:
		return e.Create
	case e.Kind == OpenOrCreateSystemInFlux:
		return ErrSystemInFlux
	case e.Kind == OpenOrCreateUnsupportedType:
		return ErrUnsupportedType
	default:
		return ErrInternalFailure
	}
}

// Is reports whether target is an *OpenOrCreateError of the same kind.
func (e *OpenOrCreateError) Is(target error) bool {
	t, ok := target.(*OpenOrCreateError)
	return ok && t.Kind == e.Kind
}

// openError translates a failed open status.
func openError(name service.Name, status registry.Status) *OpenError {
	return &OpenError{Kind: openKindOf(status.Code()), Service: name, Status: status}
}

// createError translates a failed create status.
func createError(name service.Name, status registry.Status) *CreateError {
	return &CreateError{Kind: createKindOf(status.Code()), Service: name, Status: status}
}

// openOrCreateError translates a failed open-or-create status by the stage
// that produced it.
func openOrCreateError(name service.Name, status registry.Status) *OpenOrCreateError {
	e := &OpenOrCreateError{Service: name, Status: status}
	switch {
	case status.Stage() == registry.StageCreate:
		e.Kind = OpenOrCreateCreateFailed
		e.Create = createError(name, status)
	case status.Stage() == registry.StageOpenOrCreate && status.Code() == registry.CodeSystemInFlux:
		e.Kind = OpenOrCreateSystemInFlux
	default:
		e.Kind = OpenOrCreateOpenFailed
		e.Open = openError(name, status)
	}
	return e
}

// InvariantViolation is the panic value raised when the registry rejects
// type details produced by package typedesc. It indicates a bug, not a
// caller error, and is never returned as an error.
type InvariantViolation struct {
	// Setter is the rejected call.
	Setter string
	Status registry.Status
	Value  fmt.Stringer
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("pubsub: invariant violated: %s(%v) returned %v", v.Setter, v.Value, v.Status)
}
