package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"objectcache/internal/models"
	"objectcache/internal/realtime"
)

// SaveLookupRequest represents the request payload for upserting a lookup
type SaveLookupRequest struct {
	Label       string `json:"label" binding:"required"`
	Description string `json:"description"`
}

// GetLookup handles GET /api/lookups/:category/:code
func (h *Handler) GetLookup(c *gin.Context) {
	l, err := h.lookups.Find(c.Request.Context(), c.Param("category"), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// SaveLookup handles PUT /api/lookups/:category/:code
func (h *Handler) SaveLookup(c *gin.Context) {
	var req SaveLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request. A label is required."})
		return
	}

	l, err := h.lookups.Save(c.Request.Context(), models.Lookup{
		Category:    c.Param("category"),
		Code:        c.Param("code"),
		Label:       req.Label,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.publish(c, realtime.Event{Type: realtime.EventLookupSaved, Cacher: h.lookups.CacherID(), Key: l.Key()})
	c.JSON(http.StatusOK, l)
}

// DeleteLookup handles DELETE /api/lookups/:category/:code
func (h *Handler) DeleteLookup(c *gin.Context) {
	category, code := c.Param("category"), c.Param("code")
	if err := h.lookups.Delete(c.Request.Context(), category, code); err != nil {
		respondError(c, err)
		return
	}

	h.publish(c, realtime.Event{Type: realtime.EventLookupDeleted, Cacher: h.lookups.CacherID(), Key: models.LookupKey(category, code)})
	c.Status(http.StatusNoContent)
}
