package typedesc

import "fmt"

// TypeVariant describes whether a payload has a fixed size or is a
// runtime-length sequence of elements.
type TypeVariant uint8

const (
	// FixedSize indicates a single value of the described type.
	FixedSize TypeVariant = 0

	// Dynamic indicates a runtime-length sequence. Size and alignment
	// describe one element.
	Dynamic TypeVariant = 1
)

// String returns the variant name.
func (v TypeVariant) String() string {
	switch v {
	case FixedSize:
		return "FIXED_SIZE"
	case Dynamic:
		return "DYNAMIC"
	default:
		return "UNKNOWN"
	}
}

// TypeDetail is the layout information exchanged with the service registry.
// CBOR encoding uses integer keys for compactness.
type TypeDetail struct {
	// Variant is FixedSize or Dynamic.
	Variant TypeVariant `cbor:"1,keyasint" json:"variant"`

	// TypeName identifies the type across processes and languages.
	TypeName string `cbor:"2,keyasint" json:"type_name"`

	// Size of one element in bytes.
	Size uint64 `cbor:"3,keyasint" json:"size"`

	// Alignment of one element in bytes.
	Alignment uint64 `cbor:"4,keyasint" json:"alignment"`
}

// String returns a compact human-readable form.
func (d TypeDetail) String() string {
	return fmt.Sprintf("%s (size=%d align=%d %s)", d.TypeName, d.Size, d.Alignment, d.Variant)
}

// IsCompatibleTo reports whether a service offering d can serve a participant
// requiring required. Name, variant and size must match exactly; the offered
// alignment must be at least the required one.
func (d TypeDetail) IsCompatibleTo(required TypeDetail) bool {
	return d.Variant == required.Variant &&
		d.TypeName == required.TypeName &&
		d.Size == required.Size &&
		d.Alignment >= required.Alignment
}

// Source records which resolution rule produced a descriptor name.
type Source uint8

const (
	// SourceSelfDeclared means the type declared its own name.
	SourceSelfDeclared Source = 0

	// SourcePrimitive means the canonical primitive table was used.
	SourcePrimitive Source = 1

	// SourceRuntimeIdentity means the Go runtime type identity was used.
	SourceRuntimeIdentity Source = 2

	// SourceNoHeader means the header type is NoHeader.
	SourceNoHeader Source = 3
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceSelfDeclared:
		return "SELF_DECLARED"
	case SourcePrimitive:
		return "PRIMITIVE"
	case SourceRuntimeIdentity:
		return "RUNTIME_IDENTITY"
	case SourceNoHeader:
		return "NO_HEADER"
	default:
		return "UNKNOWN"
	}
}

// Descriptor is a resolved TypeDetail together with how it was obtained.
type Descriptor struct {
	TypeDetail

	// Source is the rule that produced TypeName.
	Source Source

	// HasPointers is set when the element type contains Go pointers, slices,
	// strings, maps, interfaces, channels or funcs. Such values cannot be
	// placed in memory shared with another process.
	HasPointers bool
}

// Portable reports whether the descriptor can safely cross a process or
// language boundary.
func (d Descriptor) Portable() bool {
	return d.Source != SourceRuntimeIdentity && !d.HasPointers
}

// IsPowerOfTwo reports whether v is a valid alignment.
func IsPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}
