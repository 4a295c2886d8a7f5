package cache

import (
	"sync"
	"time"
)

// CachedObject wraps a cacheable value with its identity and timing metadata.
// Timestamps are written by the owning Cacher and may be read concurrently.
type CachedObject[T any] struct {
	id string

	mu         sync.RWMutex
	content    T
	cacheDate  time.Time
	lastAccess *time.Time
	attached   bool
}

// NewCachedObject returns a detached object ready to be added to a Cacher.
func NewCachedObject[T any](id string, content T) *CachedObject[T] {
	return &CachedObject[T]{id: id, content: content}
}

func (o *CachedObject[T]) ID() string {
	return o.id
}

func (o *CachedObject[T]) Content() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.content
}

// SetContent replaces the payload in place. It does not refresh the cache
// date; use Cacher.Set for that.
func (o *CachedObject[T]) SetContent(content T) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.content = content
}

// CacheDate is the zero time until the object is added or set.
func (o *CachedObject[T]) CacheDate() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cacheDate
}

// LastAccess is nil until the first successful Get after an Add or Set.
func (o *CachedObject[T]) LastAccess() *time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.lastAccess == nil {
		return nil
	}
	t := *o.lastAccess
	return &t
}

// IsCached reports whether the object currently lives in a Cacher.
func (o *CachedObject[T]) IsCached() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.attached
}

// stamp resets the timing metadata on insertion or update.
func (o *CachedObject[T]) stamp(at time.Time) {
	o.mu.Lock()
	o.cacheDate = at
	o.lastAccess = nil
	o.attached = true
	o.mu.Unlock()
}

// claim stamps and attaches the object unless some Cacher already holds it.
func (o *CachedObject[T]) claim(at time.Time) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attached {
		return false
	}
	o.cacheDate = at
	o.lastAccess = nil
	o.attached = true
	return true
}

func (o *CachedObject[T]) touch(at time.Time) {
	o.mu.Lock()
	o.lastAccess = &at
	o.mu.Unlock()
}

func (o *CachedObject[T]) detach() {
	o.mu.Lock()
	o.attached = false
	o.mu.Unlock()
}

// anchor is the instant expiration is measured from.
func (o *CachedObject[T]) anchor() time.Time {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.lastAccess != nil {
		return *o.lastAccess
	}
	return o.cacheDate
}
