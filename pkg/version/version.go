// Package version provides the library version and the compatibility rule for
// data structures shared between processes.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the version of this library. It is stamped into every shared
// segment and static service description.
const Current = "0.4.0"

// Version represents a parsed "major.minor.patch" version.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var out [3]uint16
	for i, name := range []string{"major", "minor", "patch"} {
		v, err := strconv.ParseUint(parts[i], 10, 16)
		if err != nil || parts[i] == "" {
			return Version{}, fmt.Errorf("invalid version %q: bad %s component", s, name)
		}
		out[i] = uint16(v)
	}

	return Version{Major: out[0], Minor: out[1], Patch: out[2]}, nil
}

// MustCurrent returns the parsed Current version.
func MustCurrent() Version {
	v, err := Parse(Current)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible returns true if shared data written by other can be used by v.
// Layouts may change between minor versions, so major and minor must match.
func (v Version) Compatible(other Version) bool {
	return v.Major == other.Major && v.Minor == other.Minor
}

// Pack encodes the version into a single word: major<<32 | minor<<16 | patch.
// The packed value of a valid version is never zero, so zero can mark an
// uninitialized segment.
func (v Version) Pack() uint64 {
	return uint64(v.Major)<<32 | uint64(v.Minor)<<16 | uint64(v.Patch) | 1<<63
}

// Unpack decodes a value produced by Pack.
func Unpack(packed uint64) Version {
	return Version{
		Major: uint16(packed >> 32),
		Minor: uint16(packed >> 16),
		Patch: uint16(packed),
	}
}
