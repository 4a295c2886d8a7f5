package cache

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// DefaultCacherID is the id used for an empty registry id.
const DefaultCacherID = "objectcache/internal/cache.Cacher"

// Manager hands out named Cachers, creating each on first request. Exactly
// one Cacher exists per id for the life of the Manager.
type Manager struct {
	mu      sync.Mutex
	cachers map[string]configurable
	presets map[string][]Option
}

func NewManager() *Manager {
	return &Manager{
		cachers: make(map[string]configurable),
		presets: make(map[string][]Option),
	}
}

var instance *Manager
var once sync.Once

// Instance returns the process-wide Manager. It is created on first use and
// lives until the process exits; it is never torn down.
func Instance() *Manager {
	once.Do(func() {
		instance = NewManager()
	})
	return instance
}

// GetCacher returns the Cacher registered under id, creating it with the
// default timeout and unit if absent. An empty id means DefaultCacherID.
func GetCacher[T any](m *Manager, id string, opts ...Option) (*Cacher[T], error) {
	if id == "" {
		id = DefaultCacherID
	}

	m.mu.Lock()
	store, ok := m.cachers[id]
	if !ok {
		store = newCacher[T](id)
		apply(store, m.presets[id])
		m.cachers[id] = store
	}
	m.mu.Unlock()

	c, ok := store.(*Cacher[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %q does not hold %T", ErrCacherTypeMismatch, id, zero)
	}
	apply(c, opts)
	return c, nil
}

// GetCacherByType is GetCacher keyed by the fully-qualified name of typ.
// A nil typ yields a nil Cacher and creates nothing.
func GetCacherByType[T any](m *Manager, typ reflect.Type, opts ...Option) (*Cacher[T], error) {
	if typ == nil {
		return nil, nil
	}
	return GetCacher[T](m, TypeName(typ), opts...)
}

func GetDefaultCacher[T any](m *Manager) (*Cacher[T], error) {
	return GetCacher[T](m, DefaultCacherID)
}

// TypeName is the registry id for typ: import path plus name for named
// types, pointers resolved to their element.
func TypeName(typ reflect.Type) string {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() != "" && typ.PkgPath() != "" {
		return typ.PkgPath() + "." + typ.Name()
	}
	return typ.String()
}

// Preset records opts for id. An existing Cacher is configured at once;
// otherwise opts are applied when the Cacher is created, before any options
// passed to that first GetCacher call.
func (m *Manager) Preset(id string, opts ...Option) {
	if id == "" {
		id = DefaultCacherID
	}
	m.mu.Lock()
	store, ok := m.cachers[id]
	if !ok {
		m.presets[id] = append(m.presets[id], opts...)
	}
	m.mu.Unlock()
	if ok {
		apply(store, opts)
	}
}

// Lookup returns the Cacher registered under id without creating one.
func (m *Manager) Lookup(id string) (Store, bool) {
	if id == "" {
		id = DefaultCacherID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.cachers[id]
	return store, ok
}

// Configure applies opts to an existing Cacher. Unknown ids are not created.
func (m *Manager) Configure(id string, opts ...Option) (Store, bool) {
	if id == "" {
		id = DefaultCacherID
	}
	m.mu.Lock()
	store, ok := m.cachers[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	apply(store, opts)
	return store, true
}

// Caches snapshots every registered Cacher, ordered by id.
func (m *Manager) Caches() []Info {
	m.mu.Lock()
	stores := make([]configurable, 0, len(m.cachers))
	for _, store := range m.cachers {
		stores = append(stores, store)
	}
	m.mu.Unlock()

	infos := make([]Info, 0, len(stores))
	for _, store := range stores {
		infos = append(infos, store.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// ExpireAll expires every registered Cacher.
func (m *Manager) ExpireAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, store := range m.cachers {
		store.Expire()
	}
}
