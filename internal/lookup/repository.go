package lookup

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"objectcache/internal/cache"
	"objectcache/internal/models"
)

var (
	ErrNotFound   = errors.New("lookup not found")
	ErrInvalidKey = errors.New("lookup category and code are required")
)

// Metrics receives cache hit and miss events for lookups.
type Metrics interface {
	Hit()
	Miss()
}

// NoopMetrics ignores every event.
type NoopMetrics struct{}

func (NoopMetrics) Hit()  {}
func (NoopMetrics) Miss() {}

// Repository reads lookups through a cacher registered under its own type.
// Reads are served from the cache until the entry goes stale; writes go to
// the database first and then refresh or drop the cached copy.
//
// Every write bumps a per-key generation. A load only caches its row if no
// write to the key landed while it ran.
type Repository struct {
	db      *gorm.DB
	cacher  *cache.Cacher[models.Lookup]
	loads   singleflight.Group
	metrics Metrics

	mu   sync.Mutex
	gens map[string]uint64
}

// NewRepository wires the repository's cacher from m. opts configure it the
// same way GetCacher options do.
func NewRepository(db *gorm.DB, m *cache.Manager, metrics Metrics, opts ...cache.Option) (*Repository, error) {
	c, err := cache.GetCacherByType[models.Lookup](m, reflect.TypeOf((*Repository)(nil)), opts...)
	if err != nil {
		return nil, fmt.Errorf("lookup cacher: %w", err)
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Repository{db: db, cacher: c, metrics: metrics, gens: make(map[string]uint64)}, nil
}

// CacherID is the registry id of the repository's cacher.
func (r *Repository) CacherID() string {
	return r.cacher.ID()
}

func (r *Repository) Find(ctx context.Context, category, code string) (models.Lookup, error) {
	if category == "" || code == "" {
		return models.Lookup{}, ErrInvalidKey
	}
	key := models.LookupKey(category, code)

	obj, err := r.cacher.Get(key)
	if err == nil {
		r.metrics.Hit()
		return obj.Content(), nil
	}
	if !errors.Is(err, cache.ErrItemNotFound) {
		return models.Lookup{}, err
	}
	r.metrics.Miss()

	// Concurrent misses on one key share a single query, detached from the
	// cancellation of whichever caller started it.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.loads.Do(key, func() (any, error) {
		gen := r.generation(key)
		var l models.Lookup
		err := r.db.WithContext(loadCtx).First(&l, "category = ? AND code = ?", category, code).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load lookup %s: %w", key, err)
		}
		if err := r.fill(key, gen, l); err != nil {
			return nil, err
		}
		return l, nil
	})
	if err != nil {
		return models.Lookup{}, err
	}
	return v.(models.Lookup), nil
}

// Save upserts l. A cached copy is replaced; a cold key stays cold.
func (r *Repository) Save(ctx context.Context, l models.Lookup) (models.Lookup, error) {
	if l.Category == "" || l.Code == "" {
		return models.Lookup{}, ErrInvalidKey
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&l).Error
	if err != nil {
		return models.Lookup{}, fmt.Errorf("save lookup %s: %w", l.Key(), err)
	}

	unlock := r.written(l.Key())
	defer unlock()
	if err := r.cacher.Set(cache.NewCachedObject(l.Key(), l)); err != nil && !errors.Is(err, cache.ErrItemNotFound) {
		return models.Lookup{}, err
	}
	return l, nil
}

func (r *Repository) Delete(ctx context.Context, category, code string) error {
	if category == "" || code == "" {
		return ErrInvalidKey
	}
	key := models.LookupKey(category, code)

	res := r.db.WithContext(ctx).Where("category = ? AND code = ?", category, code).Delete(&models.Lookup{})
	if res.Error != nil {
		return fmt.Errorf("delete lookup %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	unlock := r.written(key)
	defer unlock()
	if err := r.cacher.Remove(cache.NewCachedObject(key, models.Lookup{})); err != nil && !errors.Is(err, cache.ErrItemNotFound) {
		return err
	}
	return nil
}

func (r *Repository) generation(key string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gens[key]
}

// fill caches a loaded row unless a write to key happened after gen was read.
func (r *Repository) fill(key string, gen uint64, l models.Lookup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gens[key] != gen {
		return nil
	}
	if err := r.cacher.Add(cache.NewCachedObject(key, l)); err != nil && !errors.Is(err, cache.ErrItemAlreadyExists) {
		return err
	}
	return nil
}

// written marks key as changed in the database and holds the generation lock
// until the returned func is called, so the cache update cannot interleave
// with a fill.
func (r *Repository) written(key string) func() {
	r.mu.Lock()
	r.gens[key]++
	r.loads.Forget(key)
	return r.mu.Unlock
}
