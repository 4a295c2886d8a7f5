package handlers

import (
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"objectcache/internal/auth"
	"objectcache/internal/cache"
	"objectcache/internal/lookup"
	"objectcache/internal/middleware"
	"objectcache/internal/realtime"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	manager *cache.Manager
	lookups *lookup.Repository
	issuer  *auth.Issuer
	hub     *realtime.Hub
}

func New(manager *cache.Manager, lookups *lookup.Repository, issuer *auth.Issuer, hub *realtime.Hub) *Handler {
	return &Handler{manager: manager, lookups: lookups, issuer: issuer, hub: hub}
}

// respondError maps domain errors onto status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lookup.ErrNotFound), errors.Is(err, cache.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cache.ErrItemAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, lookup.ErrInvalidKey), errors.Is(err, cache.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) publish(c *gin.Context, e realtime.Event) {
	e.By = c.GetString(middleware.UsernameKey)
	h.hub.Publish(e)
}
