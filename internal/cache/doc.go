// Package cache is an in-process object cache with per-instance TTL.
//
// A [Manager] hands out named [Cacher] instances; each Cacher stores
// [CachedObject] values by id. Expiration is sliding and lazy: an entry goes
// stale once the configured timeout has elapsed since it was last read (or
// stored, if never read), and it is only removed when a Get finds it stale.
// There is no background sweeper.
//
//	m := cache.NewManager()
//	c, _ := cache.GetCacher[string](m, "messages", cache.WithTimeout(5), cache.WithTimeoutType(cache.Minutes))
//	_ = c.Add(cache.NewCachedObject("greeting", "hello"))
//	obj, err := c.Get("greeting")
//	if errors.Is(err, cache.ErrItemNotFound) {
//	    // absent or expired
//	}
package cache
