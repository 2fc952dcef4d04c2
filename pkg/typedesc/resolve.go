package typedesc

import "reflect"

// PayloadTypeNamer is implemented by payload types that declare a name which
// is stable across builds and language bindings.
type PayloadTypeNamer interface {
	PayloadTypeName() string
}

// UserHeaderTypeNamer is implemented by user header types that declare a
// stable name.
type UserHeaderTypeNamer interface {
	UserHeaderTypeName() string
}

// NoHeader is the user header type of services without a user header.
type NoHeader struct{}

// NoHeaderTypeName is the descriptor name of NoHeader.
const NoHeaderTypeName = "()"

var (
	payloadNamerType    = reflect.TypeFor[PayloadTypeNamer]()
	userHeaderNamerType = reflect.TypeFor[UserHeaderTypeNamer]()
	noHeaderType        = reflect.TypeFor[NoHeader]()
)

// primitiveNames maps the primitive scalars to the names every language
// binding agrees on. Aliases such as byte and rune are the same reflect.Type
// as uint8 and int32 and resolve identically.
var primitiveNames = map[reflect.Type]string{
	reflect.TypeFor[uint8]():   "u8",
	reflect.TypeFor[uint16]():  "u16",
	reflect.TypeFor[uint32]():  "u32",
	reflect.TypeFor[uint64]():  "u64",
	reflect.TypeFor[int8]():    "i8",
	reflect.TypeFor[int16]():   "i16",
	reflect.TypeFor[int32]():   "i32",
	reflect.TypeFor[int64]():   "i64",
	reflect.TypeFor[float32](): "f32",
	reflect.TypeFor[float64](): "f64",
	reflect.TypeFor[bool]():    "bool",
	reflect.TypeFor[uint]():    "usize",
	reflect.TypeFor[int]():     "isize",
}

// PrimitiveName returns the canonical name of a primitive scalar type.
func PrimitiveName(t reflect.Type) (string, bool) {
	name, ok := primitiveNames[t]
	return name, ok
}

// PayloadOf resolves the payload descriptor of T.
func PayloadOf[T any]() Descriptor {
	return ResolvePayload(reflect.TypeFor[T]())
}

// UserHeaderOf resolves the user header descriptor of H.
func UserHeaderOf[H any]() Descriptor {
	return ResolveUserHeader(reflect.TypeFor[H]())
}

// ResolvePayload resolves the payload descriptor of t. A slice resolves to the
// layout of its element with the Dynamic variant.
func ResolvePayload(t reflect.Type) Descriptor {
	elem := t
	variant := FixedSize
	if t.Kind() == reflect.Slice {
		elem = t.Elem()
		variant = Dynamic
	}

	var (
		name string
		src  Source
	)
	switch n, ok := declaredName(t, payloadNamerType); {
	case ok:
		name, src = n, SourceSelfDeclared
	case variant == Dynamic:
		name, src = resolveName(elem, payloadNamerType)
	default:
		name, src = resolveName(t, payloadNamerType)
	}

	return Descriptor{
		TypeDetail: TypeDetail{
			Variant:   variant,
			TypeName:  name,
			Size:      uint64(elem.Size()),
			Alignment: uint64(elem.Align()),
		},
		Source:      src,
		HasPointers: hasPointers(elem),
	}
}

// ResolveUserHeader resolves the user header descriptor of t. Headers are
// never sliced: a slice header type describes the slice value itself and is
// reported as carrying pointers.
func ResolveUserHeader(t reflect.Type) Descriptor {
	if t == noHeaderType {
		return Descriptor{
			TypeDetail: TypeDetail{
				Variant:   FixedSize,
				TypeName:  NoHeaderTypeName,
				Size:      0,
				Alignment: 1,
			},
			Source: SourceNoHeader,
		}
	}

	name, src := resolveName(t, userHeaderNamerType)
	return Descriptor{
		TypeDetail: TypeDetail{
			Variant:   FixedSize,
			TypeName:  name,
			Size:      uint64(t.Size()),
			Alignment: uint64(t.Align()),
		},
		Source:      src,
		HasPointers: hasPointers(t),
	}
}

// resolveName applies the self-declared, primitive and runtime identity rules
// in that order.
func resolveName(t, namer reflect.Type) (string, Source) {
	if name, ok := declaredName(t, namer); ok {
		return name, SourceSelfDeclared
	}
	if name, ok := primitiveNames[t]; ok {
		return name, SourcePrimitive
	}
	return runtimeIdentity(t), SourceRuntimeIdentity
}

// declaredName calls the naming method of namer on a zero value of t. Both
// value and pointer receivers are accepted.
func declaredName(t, namer reflect.Type) (string, bool) {
	var v reflect.Value
	switch {
	case t.Kind() == reflect.Interface:
		return "", false
	case t.Kind() == reflect.Pointer:
		if !t.Implements(namer) {
			return "", false
		}
		v = reflect.New(t.Elem())
	case t.Implements(namer):
		v = reflect.Zero(t)
	case reflect.PointerTo(t).Implements(namer):
		v = reflect.New(t)
	default:
		return "", false
	}

	switch namer {
	case payloadNamerType:
		return v.Interface().(PayloadTypeNamer).PayloadTypeName(), true
	case userHeaderNamerType:
		return v.Interface().(UserHeaderTypeNamer).UserHeaderTypeName(), true
	}
	return "", false
}

// runtimeIdentity returns the fully qualified Go name of t.
func runtimeIdentity(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// hasPointers reports whether values of t reference memory outside
// themselves.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Slice, reflect.String,
		reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
