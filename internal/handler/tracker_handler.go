package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Soozu/client-wertigo-sub000/internal/client"
	"github.com/Soozu/client-wertigo-sub000/internal/service"
	"github.com/Soozu/client-wertigo-sub000/pkg/response"
)

// TrackerHandler handles HTTP requests for trip trackers.
type TrackerHandler struct {
	service *service.PlannerService
}

// NewTrackerHandler creates a new tracker handler.
func NewTrackerHandler(service *service.PlannerService) *TrackerHandler {
	return &TrackerHandler{service: service}
}

// CreateTracker handles POST /api/v1/trackers
func (h *TrackerHandler) CreateTracker(c *gin.Context) {
	var req client.CreateTrackerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	tracker, err := h.service.CreateTracker(c.Request.Context(), credentials(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, tracker)
}

// GetTrackedTrip handles GET /api/v1/trackers/:id?email=
func (h *TrackerHandler) GetTrackedTrip(c *gin.Context) {
	snap, err := h.service.LoadTrackedTrip(c.Request.Context(), credentials(c), c.Param("id"), c.Query("email"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}
