// Package attribute provides the key-value attributes attached to a service.
//
// A Specifier defines the attributes of a service when it is created. A
// Verifier states the attributes a participant requires when it opens an
// existing service. Keys may carry multiple values.
package attribute

import (
	"sort"
	"strings"
)

// Attribute is a single key-value pair.
type Attribute struct {
	Key   string `cbor:"1,keyasint" json:"key"`
	Value string `cbor:"2,keyasint" json:"value"`
}

// String returns "key=value".
func (a Attribute) String() string {
	return a.Key + "=" + a.Value
}

// Set is an ordered collection of attributes. The same key may appear more
// than once with different values.
type Set []Attribute

// Get returns all values stored under key, in definition order.
func (s Set) Get(key string) []string {
	var values []string
	for _, a := range s {
		if a.Key == key {
			values = append(values, a.Value)
		}
	}
	return values
}

// Has reports whether the set contains the exact key-value pair.
func (s Set) Has(key, value string) bool {
	for _, a := range s {
		if a.Key == key && a.Value == value {
			return true
		}
	}
	return false
}

// HasKey reports whether any attribute uses key.
func (s Set) HasKey(key string) bool {
	for _, a := range s {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Sorted returns a copy ordered by key, then value.
func (s Set) Sorted() Set {
	out := make(Set, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// String returns the attributes as a comma separated list.
func (s Set) String() string {
	parts := make([]string, len(s))
	for i, a := range s {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}

// Specifier collects the attributes a new service is created with.
type Specifier struct {
	attributes Set
}

// NewSpecifier creates an empty Specifier.
func NewSpecifier() *Specifier {
	return &Specifier{}
}

// Define adds a key-value pair. Defining the same pair twice stores it once.
func (s *Specifier) Define(key, value string) *Specifier {
	if !s.attributes.Has(key, value) {
		s.attributes = append(s.attributes, Attribute{Key: key, Value: value})
	}
	return s
}

// Attributes returns a copy of the defined attributes.
func (s *Specifier) Attributes() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s.attributes))
	copy(out, s.attributes)
	return out
}

// Verifier collects the attribute requirements of a participant opening a
// service.
type Verifier struct {
	required Set
	keys     []string
}

// NewVerifier creates a Verifier without requirements.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Require demands that the service defines key with value.
func (v *Verifier) Require(key, value string) *Verifier {
	if !v.required.Has(key, value) {
		v.required = append(v.required, Attribute{Key: key, Value: value})
	}
	return v
}

// RequireKey demands that the service defines key with any value.
func (v *Verifier) RequireKey(key string) *Verifier {
	for _, k := range v.keys {
		if k == key {
			return v
		}
	}
	v.keys = append(v.keys, key)
	return v
}

// Attributes returns a copy of the required key-value pairs.
func (v *Verifier) Attributes() Set {
	if v == nil {
		return nil
	}
	out := make(Set, len(v.required))
	copy(out, v.required)
	return out
}

// Keys returns a copy of the required keys.
func (v *Verifier) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Verify checks the requirements against the attributes of a service. On
// failure it returns the first key that is not satisfied.
func (v *Verifier) Verify(service Set) (string, bool) {
	if v == nil {
		return "", true
	}
	for _, a := range v.required {
		if !service.Has(a.Key, a.Value) {
			return a.Key, false
		}
	}
	for _, k := range v.keys {
		if !service.HasKey(k) {
			return k, false
		}
	}
	return "", true
}
