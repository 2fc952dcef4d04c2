package registry

import "fmt"

// Stage identifies which registry operation produced a status.
type Stage uint8

const (
	// StageOpen is the open entry point or the open branch of open-or-create.
	StageOpen Stage = 1

	// StageCreate is the create entry point or the create branch of
	// open-or-create.
	StageCreate Stage = 2

	// StageOpenOrCreate is a failure of open-or-create as a whole.
	StageOpenOrCreate Stage = 3

	// StageConfigure is a rejected setter on the pending configuration.
	StageConfigure Stage = 4
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageOpen:
		return "OPEN"
	case StageCreate:
		return "CREATE"
	case StageOpenOrCreate:
		return "OPEN_OR_CREATE"
	case StageConfigure:
		return "CONFIGURE"
	default:
		return "UNKNOWN"
	}
}

// Code is the reason of a status, independent of the stage.
type Code uint8

const (
	// CodeOK indicates success.
	CodeOK Code = 0

	// CodeInternalFailure indicates an unexpected storage or system error.
	CodeInternalFailure Code = 1

	// CodeDoesNotExist indicates no service with the name exists.
	CodeDoesNotExist Code = 2

	// CodeIncompatibleTypes indicates a payload or user header mismatch.
	CodeIncompatibleTypes Code = 3

	// CodeIncompatibleMessagingPattern indicates the service uses another pattern.
	CodeIncompatibleMessagingPattern Code = 4

	// CodeIncompatibleAttributes indicates unmet attribute requirements.
	CodeIncompatibleAttributes Code = 5

	// CodeDoesNotSupportRequestedMinBufferSize indicates the subscriber buffer
	// of the service is smaller than requested.
	CodeDoesNotSupportRequestedMinBufferSize Code = 6

	// CodeDoesNotSupportRequestedMinHistorySize indicates the history of the
	// service is smaller than requested.
	CodeDoesNotSupportRequestedMinHistorySize Code = 7

	// CodeDoesNotSupportRequestedMinSubscriberBorrowedSamples indicates fewer
	// borrowable samples per subscriber than requested.
	CodeDoesNotSupportRequestedMinSubscriberBorrowedSamples Code = 8

	// CodeDoesNotSupportRequestedAmountOfPublishers indicates fewer publishers
	// than requested.
	CodeDoesNotSupportRequestedAmountOfPublishers Code = 9

	// CodeDoesNotSupportRequestedAmountOfSubscribers indicates fewer
	// subscribers than requested.
	CodeDoesNotSupportRequestedAmountOfSubscribers Code = 10

	// CodeDoesNotSupportRequestedAmountOfNodes indicates fewer nodes than
	// requested.
	CodeDoesNotSupportRequestedAmountOfNodes Code = 11

	// CodeIncompatibleOverflowBehavior indicates a different safe-overflow setting.
	CodeIncompatibleOverflowBehavior Code = 12

	// CodeInsufficientPermissions indicates the service files are not accessible.
	CodeInsufficientPermissions Code = 13

	// CodeServiceInCorruptedState indicates unreadable or inconsistent storage.
	CodeServiceInCorruptedState Code = 14

	// CodeHangsInCreation indicates the service did not finish creation
	// within the creation timeout.
	CodeHangsInCreation Code = 15

	// CodeExceedsMaxNumberOfNodes indicates the node table is full.
	CodeExceedsMaxNumberOfNodes Code = 16

	// CodeIsMarkedForDestruction indicates the last node is removing the service.
	CodeIsMarkedForDestruction Code = 17

	// CodeIncompatibleVersion indicates the service was created by an
	// incompatible library version.
	CodeIncompatibleVersion Code = 18

	// CodeAlreadyExists indicates a service with the name exists.
	CodeAlreadyExists Code = 19

	// CodeIsBeingCreatedByAnotherInstance indicates a concurrent creator holds
	// the service.
	CodeIsBeingCreatedByAnotherInstance Code = 20

	// CodeSubscriberBufferMustBeLargerThanHistorySize indicates a history
	// larger than the subscriber buffer.
	CodeSubscriberBufferMustBeLargerThanHistorySize Code = 21

	// CodeSystemInFlux indicates open-or-create gave up because the service
	// kept appearing and disappearing.
	CodeSystemInFlux Code = 22

	// CodeInvalidTypeDetails indicates malformed type details.
	CodeInvalidTypeDetails Code = 23
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeInternalFailure:
		return "INTERNAL_FAILURE"
	case CodeDoesNotExist:
		return "DOES_NOT_EXIST"
	case CodeIncompatibleTypes:
		return "INCOMPATIBLE_TYPES"
	case CodeIncompatibleMessagingPattern:
		return "INCOMPATIBLE_MESSAGING_PATTERN"
	case CodeIncompatibleAttributes:
		return "INCOMPATIBLE_ATTRIBUTES"
	case CodeDoesNotSupportRequestedMinBufferSize:
		return "DOES_NOT_SUPPORT_REQUESTED_MIN_BUFFER_SIZE"
	case CodeDoesNotSupportRequestedMinHistorySize:
		return "DOES_NOT_SUPPORT_REQUESTED_MIN_HISTORY_SIZE"
	case CodeDoesNotSupportRequestedMinSubscriberBorrowedSamples:
		return "DOES_NOT_SUPPORT_REQUESTED_MIN_SUBSCRIBER_BORROWED_SAMPLES"
	case CodeDoesNotSupportRequestedAmountOfPublishers:
		return "DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_PUBLISHERS"
	case CodeDoesNotSupportRequestedAmountOfSubscribers:
		return "DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_SUBSCRIBERS"
	case CodeDoesNotSupportRequestedAmountOfNodes:
		return "DOES_NOT_SUPPORT_REQUESTED_AMOUNT_OF_NODES"
	case CodeIncompatibleOverflowBehavior:
		return "INCOMPATIBLE_OVERFLOW_BEHAVIOR"
	case CodeInsufficientPermissions:
		return "INSUFFICIENT_PERMISSIONS"
	case CodeServiceInCorruptedState:
		return "SERVICE_IN_CORRUPTED_STATE"
	case CodeHangsInCreation:
		return "HANGS_IN_CREATION"
	case CodeExceedsMaxNumberOfNodes:
		return "EXCEEDS_MAX_NUMBER_OF_NODES"
	case CodeIsMarkedForDestruction:
		return "IS_MARKED_FOR_DESTRUCTION"
	case CodeIncompatibleVersion:
		return "INCOMPATIBLE_VERSION"
	case CodeAlreadyExists:
		return "ALREADY_EXISTS"
	case CodeIsBeingCreatedByAnotherInstance:
		return "IS_BEING_CREATED_BY_ANOTHER_INSTANCE"
	case CodeSubscriberBufferMustBeLargerThanHistorySize:
		return "SUBSCRIBER_BUFFER_MUST_BE_LARGER_THAN_HISTORY_SIZE"
	case CodeSystemInFlux:
		return "SYSTEM_IN_FLUX"
	case CodeInvalidTypeDetails:
		return "INVALID_TYPE_DETAILS"
	default:
		return fmt.Sprintf("CODE_%d", uint8(c))
	}
}

// Status is the raw result of a registry call: the stage in the high byte
// and the code in the low byte. The zero value is StatusOK.
type Status uint16

// StatusOK indicates success.
const StatusOK Status = 0

// MakeStatus combines stage and code. Any stage combined with CodeOK yields
// StatusOK.
func MakeStatus(stage Stage, code Code) Status {
	if code == CodeOK {
		return StatusOK
	}
	return Status(stage)<<8 | Status(code)
}

// Stage returns the stage that produced the status.
func (s Status) Stage() Stage {
	return Stage(s >> 8)
}

// Code returns the reason.
func (s Status) Code() Code {
	return Code(s & 0xff)
}

// OK reports whether the status indicates success.
func (s Status) OK() bool {
	return s == StatusOK
}

// String returns "STAGE:CODE", or "OK".
func (s Status) String() string {
	if s.OK() {
		return "OK"
	}
	return s.Stage().String() + ":" + s.Code().String()
}
