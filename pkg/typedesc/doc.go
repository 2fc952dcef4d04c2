// Package typedesc derives the canonical type descriptors used to negotiate
// binary compatibility between participants of a publish-subscribe service.
//
// A descriptor is the tuple (name, size, alignment, variant) of a payload or
// user header type. Two participants can only exchange data through the same
// service if their descriptors agree, so the name has to be identical in every
// process and in every language binding that attaches to the service.
//
// # Name Resolution
//
// Payload names are resolved in this order:
//
//  1. The type declares its own name by implementing PayloadTypeNamer.
//  2. The type is a primitive scalar and gets its canonical name
//     ("u8", "i32", "f64", "bool", ...).
//  3. The type is a slice. The element type is resolved by rules 1, 2 and 4
//     and the descriptor describes one element with the Dynamic variant.
//  4. Anything else falls back to the Go runtime type identity. Such names are
//     only meaningful inside Go programs built from the same sources and are
//     reported as not portable.
//
// User headers follow the same rules with UserHeaderTypeNamer and are always
// FixedSize. NoHeader stands for "no user header" and resolves to "()".
//
// # Example
//
//	type Transmission struct {
//	    X, Y, Z int32
//	}
//
//	func (Transmission) PayloadTypeName() string { return "Transmission" }
//
//	d := typedesc.PayloadOf[Transmission]()
//	// d.TypeName == "Transmission", d.Size == 12, d.Alignment == 4
package typedesc
