package habit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"habitflow/internal/pkg/response"
)

// Handler exposes the habit and check-in routes. All of them require an
// authenticated user; the middleware puts user_id on the context.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	habits := protected.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/stats", h.OverviewStats)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
		habits.POST("/:id/checkin", h.CheckIn)
		habits.GET("/:id/checkins", h.ListCheckIns)
		habits.GET("/:id/streak", h.Streak)
		habits.GET("/:id/stats", h.Stats)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Name is required", err.Error())
		return
	}

	habit, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrInvalidKind) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create habit")
		return
	}

	response.Success(c, http.StatusCreated, habit)
}

func (h *Handler) List(c *gin.Context) {
	habits, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to fetch habits")
		return
	}
	response.Success(c, http.StatusOK, habits)
}

func (h *Handler) Get(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	habit, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), habitID)
	if err != nil {
		respondServiceErr(c, err, "Failed to fetch habit")
		return
	}
	response.Success(c, http.StatusOK, habit)
}

func (h *Handler) Update(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body", err.Error())
		return
	}

	habit, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), habitID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoFields), errors.Is(err, ErrInvalidKind):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Habit not found")
		default:
			response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update habit")
		}
		return
	}
	response.Success(c, http.StatusOK, habit)
}

func (h *Handler) Delete(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), habitID); err != nil {
		respondServiceErr(c, err, "Failed to delete habit")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CheckIn(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	checkIn, err := h.service.CheckIn(c.Request.Context(), c.GetInt64("user_id"), habitID)
	if err != nil {
		if errors.Is(err, ErrAlreadyCheckedIn) {
			response.Error(c, http.StatusBadRequest, "ALREADY_CHECKED_IN", "Already checked in today")
			return
		}
		respondServiceErr(c, err, "Failed to check in")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Check-in successful!",
		"checkIn": checkIn,
	})
}

func (h *Handler) ListCheckIns(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	checkIns, err := h.service.ListCheckIns(c.Request.Context(), c.GetInt64("user_id"), habitID)
	if err != nil {
		respondServiceErr(c, err, "Failed to fetch check-ins")
		return
	}
	response.Success(c, http.StatusOK, checkIns)
}

func (h *Handler) Streak(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	streakResp, err := h.service.Streak(c.Request.Context(), c.GetInt64("user_id"), habitID)
	if err != nil {
		respondServiceErr(c, err, "Failed to fetch streak")
		return
	}
	response.Success(c, http.StatusOK, streakResp)
}

func (h *Handler) Stats(c *gin.Context) {
	habitID, ok := habitParam(c)
	if !ok {
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), c.GetInt64("user_id"), habitID)
	if err != nil {
		respondServiceErr(c, err, "Failed to fetch habit stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) OverviewStats(c *gin.Context) {
	stats, err := h.service.OverviewStats(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STATS_FAILED", "Failed to fetch habit stats")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func habitParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid habit ID")
		return 0, false
	}
	return id, true
}

func respondServiceErr(c *gin.Context, err error, fallback string) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Habit not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
}
