// Package cacheops is the authenticated cache management surface: stats,
// full flush, and per-user purge.
package cacheops

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"habitflow/internal/cache"
	"habitflow/internal/pkg/response"
)

type Handler struct {
	store *cache.Store
}

func NewHandler(store *cache.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts under an authenticated group only.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/cache")
	{
		group.GET("/stats", h.Stats)
		group.POST("/clear", h.Clear)
		group.POST("/stats/reset", h.ResetStats)
		group.DELETE("/user/:id", h.ClearUser)
	}
}

func (h *Handler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, h.store.Stats(c.Request.Context()))
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.store.FlushAll(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, "CACHE_FLUSH_FAILED", "Failed to clear cache")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}

func (h *Handler) ResetStats(c *gin.Context) {
	h.store.ResetStats()
	response.Success(c, http.StatusOK, gin.H{"message": "Cache statistics reset"})
}

// ClearUser purges one user's namespace. Callers may only clear their own.
func (h *Handler) ClearUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}
	if userID != c.GetInt64("user_id") {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot clear another user's cache")
		return
	}

	deleted := h.store.DeleteMatching(c.Request.Context(), cache.AllUserKeys(userID))
	response.Success(c, http.StatusOK, gin.H{
		"message":     "User cache cleared",
		"keysDeleted": deleted,
	})
}
