package cache

import "errors"

var (
	// ErrItemAlreadyExists is returned by Add when the id is already stored,
	// or when the object is already held by a cache.
	ErrItemAlreadyExists = errors.New("cache: item already exists")

	// ErrItemNotFound is returned by Set, Remove and Get when the id is not
	// stored. Get also returns it for an entry it has just expired.
	ErrItemNotFound = errors.New("cache: item not found")

	// ErrInvalidID is returned by Add for an object with an empty id.
	ErrInvalidID = errors.New("cache: item id is empty")

	// ErrCacherTypeMismatch is returned by the registry when an id is already
	// bound to a Cacher of another content type.
	ErrCacherTypeMismatch = errors.New("cache: cacher content type mismatch")
)
