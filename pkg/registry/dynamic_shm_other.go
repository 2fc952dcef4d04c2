//go:build !unix

package registry

import "github.com/zcbus/zcbus-go/pkg/service"

// shmDynamic is unavailable without mmap; ipc services fail to create and
// open, local services work everywhere.
type shmDynamic struct{}

func newShmDynamic(dir, prefix, suffix string) dynamicStorage {
	return shmDynamic{}
}

func (shmDynamic) create(service.ID, uint64) (dynamicSegment, error) { return nil, errUnsupported }
func (shmDynamic) open(service.ID) (dynamicSegment, error)           { return nil, errUnsupported }
func (shmDynamic) exists(service.ID) bool                            { return false }
func (shmDynamic) remove(service.ID) error                           { return errUnsupported }
