package cache

// Store is the content-type independent view of a Cacher, used by code that
// manages caches without knowing what they hold.
type Store interface {
	ID() string
	Timeout() int64
	TimeoutType() TimeUnit
	Size() int
	Info() Info
	Clear()
	Expire()
}

// configurable is implemented by every Cacher; only the registry reconfigures.
type configurable interface {
	Store
	setTimeout(int64)
	setTimeoutType(TimeUnit)
}

type Option func(*options)

type options struct {
	timeout     int64
	timeoutType TimeUnit
}

// WithTimeout overwrites the timeout of the returned Cacher when timeout > 0.
// The Cacher is shared, so every holder of it sees the new value.
func WithTimeout(timeout int64) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithTimeoutType overwrites the unit of the returned Cacher when unit is valid.
func WithTimeoutType(unit TimeUnit) Option {
	return func(o *options) {
		o.timeoutType = unit
	}
}

func apply(c configurable, opts []Option) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout > 0 {
		c.setTimeout(o.timeout)
	}
	if o.timeoutType.Valid() {
		c.setTimeoutType(o.timeoutType)
	}
}

// Ensure Cacher implements Store at compile time.
var _ configurable = (*Cacher[any])(nil)
