// Package health exposes the liveness probe. A cache outage degrades the
// report, a database outage fails it.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"habitflow/internal/cache"
)

type Handler struct {
	db    *gorm.DB
	store *cache.Store
}

type status struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

func NewHandler(db *gorm.DB, store *cache.Store) *Handler {
	return &Handler{db: db, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Check)
}

func (h *Handler) Check(c *gin.Context) {
	ctx := c.Request.Context()

	var cached status
	if h.store.Get(ctx, cache.HealthStatus, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	st := status{Status: "ok", Database: "up", Cache: "up"}

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		st.Status = "degraded"
		st.Database = "down"
		c.JSON(http.StatusServiceUnavailable, st)
		return
	}

	if h.store.Ping(ctx) != nil {
		st.Status = "degraded"
		st.Cache = "down"
	}

	if st.Cache == "up" {
		h.store.Set(ctx, cache.HealthStatus, st, cache.TTLHealth)
	}
	c.JSON(http.StatusOK, st)
}
