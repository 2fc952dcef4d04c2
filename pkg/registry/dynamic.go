package registry

import (
	"sync/atomic"

	"github.com/zcbus/zcbus-go/pkg/version"
)

// Dynamic segment layout. All words are little-endian on the platforms that
// support mapping, and naturally aligned.
const (
	segmentSize = 64

	offMagic   = 0
	offVersion = 8
	offState   = 16
	offLimit   = 24
)

// segmentMagic identifies a dynamic config segment.
var segmentMagic = [8]byte{'Z', 'C', 'B', 'U', 'S', 'D', 'Y', 'N'}

// destructionFlag is set in the state word once the last node has left.
// The low bits hold the node count.
const destructionFlag = uint64(1) << 63

// nodeTable counts the nodes attached to a service. The words may live in
// memory shared between processes, so every access is atomic.
type nodeTable struct {
	version *atomic.Uint64
	state   *atomic.Uint64
	limit   *atomic.Uint64
}

// heapWords backs a node table of a local service.
type heapWords struct {
	version atomic.Uint64
	state   atomic.Uint64
	limit   atomic.Uint64
}

func newHeapNodeTable() *nodeTable {
	w := &heapWords{}
	return &nodeTable{version: &w.version, state: &w.state, limit: &w.limit}
}

// init prepares a fresh table with the creator as the only node. The
// version word is stored last and marks the table as ready.
func (t *nodeTable) init(maxNodes uint64) {
	t.limit.Store(maxNodes)
	t.state.Store(1)
	t.version.Store(version.MustCurrent().Pack())
}

// ready reports whether init has completed.
func (t *nodeTable) ready() bool {
	return t.version.Load() != 0
}

// libraryVersion returns the version of the creator.
func (t *nodeTable) libraryVersion() version.Version {
	return version.Unpack(t.version.Load())
}

// register adds a node.
func (t *nodeTable) register() Code {
	limit := t.limit.Load()
	for {
		s := t.state.Load()
		if s&destructionFlag != 0 {
			return CodeIsMarkedForDestruction
		}
		if s >= limit {
			return CodeExceedsMaxNumberOfNodes
		}
		if t.state.CompareAndSwap(s, s+1) {
			return CodeOK
		}
	}
}

// deregister removes a node. It returns the remaining node count and whether
// the caller was the last node, in which case the table is marked for
// destruction and the caller owns removal of the service.
func (t *nodeTable) deregister() (uint64, bool) {
	for {
		s := t.state.Load()
		n := s &^ destructionFlag
		if n == 0 {
			return 0, false
		}
		next := n - 1
		if next == 0 {
			next = destructionFlag
		}
		if t.state.CompareAndSwap(s, next) {
			return n - 1, n == 1
		}
	}
}

// nodes returns the current node count.
func (t *nodeTable) nodes() uint64 {
	return t.state.Load() &^ destructionFlag
}

// markedForDestruction reports whether the last node has left.
func (t *nodeTable) markedForDestruction() bool {
	return t.state.Load()&destructionFlag != 0
}

// maxNodes returns the node limit.
func (t *nodeTable) maxNodes() uint64 {
	return t.limit.Load()
}
