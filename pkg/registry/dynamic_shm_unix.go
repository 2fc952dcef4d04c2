//go:build unix

package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/zcbus/zcbus-go/pkg/service"
)

// shmDynamic stores node tables in memory mapped files next to the static
// configs. Creating the file with O_EXCL is the arbitration point between
// concurrent creators.
type shmDynamic struct {
	dir    string
	prefix string
	suffix string
}

func newShmDynamic(dir, prefix, suffix string) dynamicStorage {
	return &shmDynamic{dir: dir, prefix: prefix, suffix: suffix}
}

// shmSegment is a mapped dynamic config.
type shmSegment struct {
	mem []byte
	t   *nodeTable
}

func (s *shmSegment) table() *nodeTable { return s.t }

func (s *shmSegment) close() error {
	if s.mem == nil {
		return nil
	}
	err := unix.Munmap(s.mem)
	s.mem = nil
	return err
}

func (d *shmDynamic) path(id service.ID) string {
	return filepath.Join(d.dir, d.prefix+string(id)+d.suffix)
}

func (d *shmDynamic) create(id service.ID, maxNodes uint64) (dynamicSegment, error) {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return nil, err
	}

	path := d.path(id)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, errExists
		}
		return nil, err
	}
	defer file.Close()

	cleanup := func() {
		os.Remove(path)
	}

	if err := file.Truncate(segmentSize); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to resize segment: %w", err)
	}

	seg, err := mapSegment(file)
	if err != nil {
		cleanup()
		return nil, err
	}

	copy(seg.mem[offMagic:offMagic+8], segmentMagic[:])
	seg.t.init(maxNodes)
	return seg, nil
}

func (d *shmDynamic) open(id service.ID) (dynamicSegment, error) {
	file, err := os.OpenFile(d.path(id), os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat segment: %w", err)
	}
	if info.Size() < segmentSize {
		return nil, fmt.Errorf("%w: segment too small: %d bytes", errCorrupted, info.Size())
	}

	seg, err := mapSegment(file)
	if err != nil {
		return nil, err
	}
	if [8]byte(seg.mem[offMagic:offMagic+8]) != segmentMagic {
		seg.close()
		return nil, fmt.Errorf("%w: bad segment magic", errCorrupted)
	}
	return seg, nil
}

func (d *shmDynamic) exists(id service.ID) bool {
	_, err := os.Stat(d.path(id))
	return err == nil
}

func (d *shmDynamic) remove(id service.ID) error {
	err := os.Remove(d.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// mapSegment maps the first segmentSize bytes of file.
func mapSegment(file *os.File) (*shmSegment, error) {
	mem, err := unix.Mmap(int(file.Fd()), 0, segmentSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	word := func(off int) *atomic.Uint64 {
		return (*atomic.Uint64)(unsafe.Pointer(&mem[off]))
	}
	return &shmSegment{
		mem: mem,
		t: &nodeTable{
			version: word(offVersion),
			state:   word(offState),
			limit:   word(offLimit),
		},
	}, nil
}
