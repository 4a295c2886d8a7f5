package cache

import (
	"fmt"
	"strings"
	"time"
)

// TimeUnit is the unit a Cacher timeout is expressed in.
type TimeUnit int

const (
	Seconds TimeUnit = iota + 1
	Minutes
	Hours
	Days
)

// DefaultTimeoutType is the unit of a freshly created Cacher.
const DefaultTimeoutType = Seconds

var timeUnitNames = map[TimeUnit]string{
	Seconds: "seconds",
	Minutes: "minutes",
	Hours:   "hours",
	Days:    "days",
}

// Valid reports whether u is one of the declared units. The zero value is not.
func (u TimeUnit) Valid() bool {
	_, ok := timeUnitNames[u]
	return ok
}

func (u TimeUnit) String() string {
	if name, ok := timeUnitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

// Duration returns the length of one unit. Days are 24 hours here; elapsed
// computes calendar days separately.
func (u TimeUnit) Duration() time.Duration {
	switch u {
	case Seconds:
		return time.Second
	case Minutes:
		return time.Minute
	case Hours:
		return time.Hour
	case Days:
		return 24 * time.Hour
	}
	return 0
}

// ParseTimeUnit accepts the unit names case-insensitively, singular or plural.
func ParseTimeUnit(s string) (TimeUnit, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.TrimSuffix(name, "s")
	for u, n := range timeUnitNames {
		if strings.TrimSuffix(n, "s") == name {
			return u, nil
		}
	}
	return 0, fmt.Errorf("unknown time unit %q", s)
}

func (u TimeUnit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("invalid time unit %d", int(u))
	}
	return []byte(u.String()), nil
}

func (u *TimeUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// elapsed returns the whole number of units between from and to, truncated
// toward zero. Days count calendar days between the two local dates.
func elapsed(to, from time.Time, unit TimeUnit) int64 {
	if unit == Days {
		to = midnight(to)
		from = midnight(from)
	}
	d := unit.Duration()
	if d == 0 {
		return 0
	}
	return int64(to.Sub(from) / d)
}

// midnight keeps t's local date but pins it to UTC so no DST shift lands
// between two dates.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
