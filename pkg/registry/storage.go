package registry

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zcbus/zcbus-go/pkg/config"
	"github.com/zcbus/zcbus-go/pkg/service"
)

// Storage errors.
var (
	// ErrNotFound is returned when a service or one of its files does not exist.
	ErrNotFound = errors.New("service not found")

	errExists      = errors.New("already exists")
	errUnsupported = errors.New("not supported on this platform")
	errCorrupted   = errors.New("corrupted dynamic config")
)

// staticStorage holds the encoded static configs of all services.
type staticStorage interface {
	// create publishes data under id. It fails with errExists if id is taken.
	create(id service.ID, data []byte) error
	read(id service.ID) ([]byte, error)
	exists(id service.ID) bool
	remove(id service.ID) error
	list() ([]service.ID, error)
}

// dynamicStorage holds the node tables of all services.
type dynamicStorage interface {
	// create allocates an initialized table for id with the creator
	// registered. It fails with errExists if id is taken.
	create(id service.ID, maxNodes uint64) (dynamicSegment, error)
	open(id service.ID) (dynamicSegment, error)
	exists(id service.ID) bool
	remove(id service.ID) error
}

// dynamicSegment is one mapped node table.
type dynamicSegment interface {
	table() *nodeTable
	close() error
}

// serviceDir returns the directory holding all service files.
func serviceDir(cfg *config.Config) string {
	return filepath.Join(cfg.Global.RootPath, cfg.Global.Service.Directory)
}

// newStorage returns the storages for a service type.
func newStorage(st service.ServiceType, cfg *config.Config) (staticStorage, dynamicStorage) {
	g := cfg.Global
	dir := serviceDir(cfg)
	if st == service.Local {
		base := filepath.Join(dir, g.Prefix)
		return &memStatic{base: base}, &memDynamic{base: base}
	}
	return &fileStatic{dir: dir, prefix: g.Prefix, suffix: g.Service.StaticConfigSuffix},
		newShmDynamic(dir, g.Prefix, g.Service.DynamicConfigSuffix)
}

// fileStatic stores static configs as files. A config becomes visible
// atomically: it is written to a temporary file which is then hard linked to
// its final name. link fails if the name exists, so concurrent creators
// cannot overwrite each other.
type fileStatic struct {
	dir    string
	prefix string
	suffix string
}

func (s *fileStatic) path(id service.ID) string {
	return filepath.Join(s.dir, s.prefix+string(id)+s.suffix)
}

func (s *fileStatic) create(id service.ID, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-"+string(id)+"-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return err
	}

	if err := os.Link(tmpPath, s.path(id)); err != nil {
		if errors.Is(err, os.ErrExist) {
			return errExists
		}
		return err
	}
	return nil
}

func (s *fileStatic) read(id service.ID) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *fileStatic) exists(id service.ID) bool {
	_, err := os.Stat(s.path(id))
	return err == nil
}

func (s *fileStatic) remove(id service.ID) error {
	err := os.Remove(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

func (s *fileStatic) list() ([]service.ID, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []service.ID
	for _, e := range entries {
		if id, ok := s.idFromFile(e.Name()); ok && !e.IsDir() {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// idFromFile extracts the service id from a static config file name.
func (s *fileStatic) idFromFile(name string) (service.ID, bool) {
	if !strings.HasPrefix(name, s.prefix) || !strings.HasSuffix(name, s.suffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, s.prefix), s.suffix)
	if id == "" {
		return "", false
	}
	return service.ID(id), true
}

// localStore backs local services. Entries are keyed by the full path the
// service would have as an ipc service, so registries with different
// configurations stay apart.
var localStore = struct {
	mu      sync.Mutex
	static  map[string][]byte
	dynamic map[string]*nodeTable
}{
	static:  make(map[string][]byte),
	dynamic: make(map[string]*nodeTable),
}

type memStatic struct {
	base string
}

func (s *memStatic) key(id service.ID) string {
	return s.base + string(id)
}

func (s *memStatic) create(id service.ID, data []byte) error {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	if _, ok := localStore.static[s.key(id)]; ok {
		return errExists
	}
	localStore.static[s.key(id)] = append([]byte(nil), data...)
	return nil
}

func (s *memStatic) read(id service.ID) ([]byte, error) {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	data, ok := localStore.static[s.key(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *memStatic) exists(id service.ID) bool {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	_, ok := localStore.static[s.key(id)]
	return ok
}

func (s *memStatic) remove(id service.ID) error {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	if _, ok := localStore.static[s.key(id)]; !ok {
		return ErrNotFound
	}
	delete(localStore.static, s.key(id))
	return nil
}

func (s *memStatic) list() ([]service.ID, error) {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	var ids []service.ID
	for k := range localStore.static {
		if id, ok := strings.CutPrefix(k, s.base); ok {
			ids = append(ids, service.ID(id))
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type memDynamic struct {
	base string
}

// memSegment is a heap node table. Closing it has no effect.
type memSegment struct {
	t *nodeTable
}

func (m memSegment) table() *nodeTable { return m.t }
func (m memSegment) close() error      { return nil }

func (d *memDynamic) key(id service.ID) string {
	return d.base + string(id)
}

func (d *memDynamic) create(id service.ID, maxNodes uint64) (dynamicSegment, error) {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	if _, ok := localStore.dynamic[d.key(id)]; ok {
		return nil, errExists
	}
	t := newHeapNodeTable()
	t.init(maxNodes)
	localStore.dynamic[d.key(id)] = t
	return memSegment{t: t}, nil
}

func (d *memDynamic) open(id service.ID) (dynamicSegment, error) {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	t, ok := localStore.dynamic[d.key(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return memSegment{t: t}, nil
}

func (d *memDynamic) exists(id service.ID) bool {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	_, ok := localStore.dynamic[d.key(id)]
	return ok
}

func (d *memDynamic) remove(id service.ID) error {
	localStore.mu.Lock()
	defer localStore.mu.Unlock()

	if _, ok := localStore.dynamic[d.key(id)]; !ok {
		return ErrNotFound
	}
	delete(localStore.dynamic, d.key(id))
	return nil
}
