// Package registry is the service registry behind the publish-subscribe
// builder.
//
// A Registry belongs to one participant. It selects a service by name and
// hands out a PendingConfig, which collects the settings and type details of
// the participant and then creates or opens the service:
//
//	reg, err := registry.New(service.Ipc, cfg, registry.Options{})
//	pending, err := reg.PublishSubscribe("sensor/imu")
//	pending.SetMaxSubscribers(4)
//	pending.SetPayloadTypeDetails(detail)
//	factory, status := pending.OpenOrCreate()
//
// Every service consists of two parts:
//
//   - The static config: the immutable settings and type details, CBOR
//     encoded and published atomically by the creator.
//   - The dynamic config: a small shared table counting the attached nodes.
//     Creating it exclusively decides which of several concurrent creators
//     wins. The node that detaches last removes the service.
//
// Ipc services live in files below the configured root path and are visible
// to every process using the same configuration. Local services live in
// process memory.
package registry
