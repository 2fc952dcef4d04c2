// Package pubsub builds publish-subscribe services.
//
// A Builder is obtained from the pending configuration of a named service
// and is parameterized by the payload type and the user header type:
//
//	pending, err := reg.PublishSubscribe("sensor/imu")
//	factory, err := pubsub.New[ImuSample](pending).
//		MaxPublishers(1).
//		MaxSubscribers(4).
//		OpenOrCreate()
//
// The payload and header types are described by a canonical TypeDetail
// (see package typedesc). Every participant of a service must describe its
// types identically, otherwise opening fails with IncompatibleTypes.
//
// On create, each set parameter defines the permanent value of the service.
// On open, each set parameter is a minimum the existing service must meet.
// Open-or-create applies whichever of the two applies.
//
// A Builder is single use. Calling a terminal operation or WithHeader
// consumes it; any further use panics with ErrBuilderConsumed.
package pubsub
