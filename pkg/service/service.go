// Package service defines the identity of a service: its name, the messaging
// pattern it implements, the service type that selects how participants find
// each other, and the id derived from name and pattern.
package service

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/blake2b"
)

// MaxNameLength is the maximum length of a service name in bytes.
const MaxNameLength = 255

// Service errors.
var (
	ErrInvalidName        = errors.New("invalid service name")
	ErrInvalidServiceType = errors.New("invalid service type")
)

// Name is a validated service name such as "My/Funk/ServiceName".
type Name string

// NewName validates s and returns it as a Name.
func NewName(s string) (Name, error) {
	switch {
	case s == "":
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	case len(s) > MaxNameLength:
		return "", fmt.Errorf("%w: name exceeds %d bytes", ErrInvalidName, MaxNameLength)
	case !utf8.ValidString(s):
		return "", fmt.Errorf("%w: name is not valid UTF-8", ErrInvalidName)
	case strings.ContainsRune(s, 0):
		return "", fmt.Errorf("%w: name contains NUL", ErrInvalidName)
	}
	return Name(s), nil
}

// String returns the name.
func (n Name) String() string {
	return string(n)
}

// ServiceType selects the mechanism participants use to find each other.
type ServiceType uint8

const (
	// Ipc services are visible to every process using the same root path.
	Ipc ServiceType = 0

	// Local services are only visible inside the creating process.
	Local ServiceType = 1
)

// String returns the service type name.
func (t ServiceType) String() string {
	switch t {
	case Ipc:
		return "ipc"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// ParseServiceType parses "ipc" or "local".
func ParseServiceType(s string) (ServiceType, error) {
	switch strings.ToLower(s) {
	case "ipc":
		return Ipc, nil
	case "local":
		return Local, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidServiceType, s)
	}
}

// MessagingPattern identifies how participants of a service communicate.
type MessagingPattern uint8

const (
	// PublishSubscribe is the one-to-many sample distribution pattern.
	PublishSubscribe MessagingPattern = 0

	// Event is the notification pattern.
	Event MessagingPattern = 1

	// RequestResponse is the client-server pattern.
	RequestResponse MessagingPattern = 2
)

// String returns the pattern name.
func (p MessagingPattern) String() string {
	switch p {
	case PublishSubscribe:
		return "PublishSubscribe"
	case Event:
		return "Event"
	case RequestResponse:
		return "RequestResponse"
	default:
		return "Unknown"
	}
}

// ID uniquely identifies a service by name and messaging pattern. It is safe
// to use as a file name.
type ID string

// MakeID derives the id of the service with the given name and pattern. The
// same name used with two patterns yields two different services.
func MakeID(name Name, pattern MessagingPattern) ID {
	h, _ := blake2b.New(20, nil)
	h.Write([]byte{byte(pattern)})
	h.Write([]byte(name))
	return ID(hex.EncodeToString(h.Sum(nil)))
}

// String returns the id.
func (id ID) String() string {
	return string(id)
}
