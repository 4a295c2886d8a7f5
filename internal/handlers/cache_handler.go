package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"objectcache/internal/cache"
	"objectcache/internal/realtime"
)

// ConfigureCacheRequest changes the TTL policy of an existing cacher.
type ConfigureCacheRequest struct {
	Timeout int64  `json:"timeout" binding:"required"`
	Unit    string `json:"unit"`
}

// ListCaches handles GET /api/caches
func (h *Handler) ListCaches(c *gin.Context) {
	caches := h.manager.Caches()
	c.JSON(http.StatusOK, gin.H{
		"caches": caches,
		"count":  len(caches),
	})
}

// GetCache handles GET /api/caches/:id. Unknown ids are not created.
func (h *Handler) GetCache(c *gin.Context) {
	store, ok := h.manager.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cacher not found"})
		return
	}
	c.JSON(http.StatusOK, store.Info())
}

// ConfigureCache handles PUT /api/caches/:id/config
func (h *Handler) ConfigureCache(c *gin.Context) {
	var req ConfigureCacheRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. A timeout is required."})
		return
	}
	if req.Timeout <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Timeout must be positive"})
		return
	}

	opts := []cache.Option{cache.WithTimeout(req.Timeout)}
	if req.Unit != "" {
		unit, err := cache.ParseTimeUnit(req.Unit)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts = append(opts, cache.WithTimeoutType(unit))
	}

	store, ok := h.manager.Configure(c.Param("id"), opts...)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cacher not found"})
		return
	}

	info := store.Info()
	log.WithFields(log.Fields{
		"cacher":  info.ID,
		"timeout": info.Timeout,
		"unit":    info.TimeoutType,
	}).Info("cacher reconfigured")
	h.publish(c, realtime.Event{Type: realtime.EventCacherConfigured, Cacher: info.ID})

	c.JSON(http.StatusOK, info)
}

// ExpireCache handles POST /api/caches/:id/expire
func (h *Handler) ExpireCache(c *gin.Context) {
	store, ok := h.manager.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cacher not found"})
		return
	}

	discarded := store.Size()
	store.Expire()

	log.WithFields(log.Fields{"cacher": store.ID(), "discarded": discarded}).Info("cacher expired")
	h.publish(c, realtime.Event{Type: realtime.EventCacherExpired, Cacher: store.ID()})

	c.JSON(http.StatusOK, gin.H{
		"id":        store.ID(),
		"discarded": discarded,
	})
}

// ExpireAllCaches handles POST /api/caches/expire
func (h *Handler) ExpireAllCaches(c *gin.Context) {
	h.manager.ExpireAll()

	log.Info("all cachers expired")
	h.publish(c, realtime.Event{Type: realtime.EventCacherExpired})

	c.JSON(http.StatusOK, gin.H{"message": "All cachers expired"})
}
