package cache

import (
	"sync"
	"time"
)

// DefaultTimeout disables expiration.
const DefaultTimeout int64 = 0

// now is a small indirection to allow test stubbing.
var now = time.Now

// Info is a point-in-time view of a Cacher's configuration and size.
type Info struct {
	ID          string   `json:"id"`
	Timeout     int64    `json:"timeout"`
	TimeoutType TimeUnit `json:"timeoutType"`
	Size        int      `json:"size"`
}

// Cacher is a named collection of CachedObjects sharing one TTL policy.
// Expiration is sliding and lazy: an entry is judged stale only when Get
// reads it, measured from its last successful read or, failing that, from
// when it was stored. A timeout of 0 never expires anything.
type Cacher[T any] struct {
	mu sync.RWMutex

	id          string
	timeout     int64
	timeoutType TimeUnit
	history     map[string]*CachedObject[T]
}

func newCacher[T any](id string) *Cacher[T] {
	return &Cacher[T]{
		id:          id,
		timeout:     DefaultTimeout,
		timeoutType: DefaultTimeoutType,
		history:     make(map[string]*CachedObject[T]),
	}
}

func (c *Cacher[T]) lockR() func() {
	c.mu.RLock()
	return c.mu.RUnlock
}

func (c *Cacher[T]) lockW() func() {
	c.mu.Lock()
	return c.mu.Unlock
}

func (c *Cacher[T]) ID() string {
	return c.id
}

func (c *Cacher[T]) Timeout() int64 {
	unlock := c.lockR()
	defer unlock()
	return c.timeout
}

func (c *Cacher[T]) TimeoutType() TimeUnit {
	unlock := c.lockR()
	defer unlock()
	return c.timeoutType
}

func (c *Cacher[T]) setTimeout(timeout int64) {
	unlock := c.lockW()
	defer unlock()
	c.timeout = timeout
}

func (c *Cacher[T]) setTimeoutType(unit TimeUnit) {
	unlock := c.lockW()
	defer unlock()
	c.timeoutType = unit
}

// Add stores a new object. A nil object is ignored.
func (c *Cacher[T]) Add(object *CachedObject[T]) error {
	if object == nil {
		return nil
	}
	if object.ID() == "" {
		return ErrInvalidID
	}

	unlock := c.lockW()
	defer unlock()

	if c.contains(object) || !object.claim(now()) {
		return ErrItemAlreadyExists
	}
	c.history[object.ID()] = object
	return nil
}

// Set replaces the object stored under the same id and restarts its
// expiration window. A nil object is ignored. Replacing with an object held
// by another Cacher fails with ErrItemAlreadyExists.
func (c *Cacher[T]) Set(object *CachedObject[T]) error {
	if object == nil {
		return nil
	}

	unlock := c.lockW()
	defer unlock()

	if len(c.history) == 0 || !c.contains(object) {
		return ErrItemNotFound
	}
	at := now()
	current := c.history[object.ID()]
	if current == object {
		object.stamp(at)
		return nil
	}
	if !object.claim(at) {
		return ErrItemAlreadyExists
	}
	current.detach()
	c.history[object.ID()] = object
	return nil
}

// Remove deletes the object stored under the same id. A nil object is ignored.
func (c *Cacher[T]) Remove(object *CachedObject[T]) error {
	if object == nil {
		return nil
	}

	unlock := c.lockW()
	defer unlock()

	if len(c.history) == 0 || !c.contains(object) {
		return ErrItemNotFound
	}
	c.evict(object.ID())
	return nil
}

// Get returns the object stored under id and records the access. An object
// found stale is removed and reported as not found.
func (c *Cacher[T]) Get(id string) (*CachedObject[T], error) {
	if id == "" {
		return nil, ErrItemNotFound
	}

	unlock := c.lockW()
	defer unlock()

	object, ok := c.history[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	at := now()
	if c.timeout > 0 && elapsed(at, object.anchor(), c.timeoutType) >= c.timeout {
		c.evict(id)
		return nil, ErrItemNotFound
	}
	object.touch(at)
	return object, nil
}

// Contains reports whether an object with the same id is stored, stale or not.
func (c *Cacher[T]) Contains(object *CachedObject[T]) bool {
	if object == nil {
		return false
	}
	unlock := c.lockR()
	defer unlock()
	return c.contains(object)
}

func (c *Cacher[T]) contains(object *CachedObject[T]) bool {
	if len(c.history) == 0 {
		return false
	}
	_, ok := c.history[object.ID()]
	return ok
}

// Expire discards every entry regardless of age.
func (c *Cacher[T]) Expire() {
	c.Clear()
}

func (c *Cacher[T]) Clear() {
	unlock := c.lockW()
	defer unlock()
	for id := range c.history {
		c.evict(id)
	}
}

// Size counts stored entries, including stale ones no Get has evicted yet.
func (c *Cacher[T]) Size() int {
	unlock := c.lockR()
	defer unlock()
	return len(c.history)
}

func (c *Cacher[T]) Info() Info {
	unlock := c.lockR()
	defer unlock()
	return Info{
		ID:          c.id,
		Timeout:     c.timeout,
		TimeoutType: c.timeoutType,
		Size:        len(c.history),
	}
}

// evict must be called with the write lock held.
func (c *Cacher[T]) evict(id string) {
	if object, ok := c.history[id]; ok {
		object.detach()
		delete(c.history, id)
	}
}
