package registry

import (
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/zcbus/zcbus-go/pkg/attribute"
	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/service"
	"github.com/zcbus/zcbus-go/pkg/typedesc"
)

// ErrInvalidStaticConfig is returned when a stored service description cannot
// be used.
var ErrInvalidStaticConfig = errors.New("invalid static config")

// StaticConfig is the immutable description of a created service. It is
// written once by the creator and read by every opener.
// CBOR encoding uses integer keys for compactness.
type StaticConfig struct {
	// Version is the library version of the creator.
	Version string `cbor:"1,keyasint" json:"version"`

	ServiceID   service.ID               `cbor:"2,keyasint" json:"service_id"`
	ServiceName service.Name             `cbor:"3,keyasint" json:"service_name"`
	Pattern     service.MessagingPattern `cbor:"4,keyasint" json:"messaging_pattern"`

	// Attributes defined at creation.
	Attributes attribute.Set `cbor:"5,keyasint,omitempty" json:"attributes,omitempty"`

	// PublishSubscribe is set for publish-subscribe services.
	PublishSubscribe *PublishSubscribeConfig `cbor:"6,keyasint,omitempty" json:"publish_subscribe,omitempty"`

	// CreatedAt is when the creator published the service.
	CreatedAt time.Time `cbor:"7,keyasint" json:"created_at"`

	// CreatorNode is the node id of the creating registry.
	CreatorNode string `cbor:"8,keyasint,omitempty" json:"creator_node,omitempty"`
}

// PublishSubscribeConfig holds the effective settings of a publish-subscribe
// service.
type PublishSubscribeConfig struct {
	MaxSubscribers                    uint64                         `cbor:"1,keyasint" json:"max_subscribers"`
	MaxPublishers                     uint64                         `cbor:"2,keyasint" json:"max_publishers"`
	MaxNodes                          uint64                         `cbor:"3,keyasint" json:"max_nodes"`
	HistorySize                       uint64                         `cbor:"4,keyasint" json:"history_size"`
	SubscriberMaxBufferSize           uint64                         `cbor:"5,keyasint" json:"subscriber_max_buffer_size"`
	SubscriberMaxBorrowedSamples      uint64                         `cbor:"6,keyasint" json:"subscriber_max_borrowed_samples"`
	PublisherMaxLoanedSamples         uint64                         `cbor:"7,keyasint" json:"publisher_max_loaned_samples"`
	EnableSafeOverflow                bool                           `cbor:"8,keyasint" json:"enable_safe_overflow"`
	UnableToDeliverStrategy           config.UnableToDeliverStrategy `cbor:"9,keyasint" json:"unable_to_deliver_strategy"`
	SubscriberExpiredConnectionBuffer uint64                         `cbor:"10,keyasint" json:"subscriber_expired_connection_buffer"`

	// Payload describes the message body type.
	Payload typedesc.TypeDetail `cbor:"11,keyasint" json:"payload"`

	// UserHeader describes the user header type.
	UserHeader typedesc.TypeDetail `cbor:"12,keyasint" json:"user_header"`
}

// staticEncMode and staticDecMode mirror the event log codec. The decoder
// rejects duplicate keys: a static config is written once by one creator.
var (
	staticEncMode cbor.EncMode
	staticDecMode cbor.DecMode
)

func init() {
	var err error

	staticEncMode, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create static config CBOR encoder mode: %v", err))
	}

	staticDecMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create static config CBOR decoder mode: %v", err))
	}
}

// EncodeStaticConfig encodes a static config to CBOR bytes.
func EncodeStaticConfig(sc *StaticConfig) ([]byte, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return staticEncMode.Marshal(sc)
}

// DecodeStaticConfig decodes and validates CBOR bytes.
func DecodeStaticConfig(data []byte) (*StaticConfig, error) {
	var sc StaticConfig
	if err := staticDecMode.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStaticConfig, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the internal consistency of the config.
func (sc *StaticConfig) Validate() error {
	if sc.ServiceName == "" {
		return fmt.Errorf("%w: missing service name", ErrInvalidStaticConfig)
	}
	if sc.ServiceID != service.MakeID(sc.ServiceName, sc.Pattern) {
		return fmt.Errorf("%w: service id does not match name", ErrInvalidStaticConfig)
	}
	if sc.Pattern == service.PublishSubscribe {
		ps := sc.PublishSubscribe
		if ps == nil {
			return fmt.Errorf("%w: missing publish-subscribe settings", ErrInvalidStaticConfig)
		}
		if !typedesc.IsPowerOfTwo(ps.Payload.Alignment) || !typedesc.IsPowerOfTwo(ps.UserHeader.Alignment) {
			return fmt.Errorf("%w: alignment is not a power of two", ErrInvalidStaticConfig)
		}
	}
	return nil
}
