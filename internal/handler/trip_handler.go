package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Soozu/client-wertigo-sub000/internal/client"
	"github.com/Soozu/client-wertigo-sub000/internal/middleware"
	"github.com/Soozu/client-wertigo-sub000/internal/models"
	"github.com/Soozu/client-wertigo-sub000/internal/service"
	"github.com/Soozu/client-wertigo-sub000/pkg/response"
)

// TripHandler handles HTTP requests for trip planning sessions.
type TripHandler struct {
	service *service.PlannerService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(service *service.PlannerService) *TripHandler {
	return &TripHandler{service: service}
}

func credentials(c *gin.Context) client.Credentials {
	return client.Credentials{Token: c.GetString(middleware.ContextTokenKey)}
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req service.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	snap, err := h.service.CreateTrip(req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, snap)
}

// GetTrip handles GET /api/v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// DeleteTrip handles DELETE /api/v1/trips/:id — discards the live session.
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	if err := h.service.DeleteSession(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Trip session discarded"})
}

// AddDestination handles POST /api/v1/trips/:id/destinations
func (h *TripHandler) AddDestination(c *gin.Context) {
	var dest models.Destination
	if err := c.ShouldBindJSON(&dest); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	snap, err := h.service.AddDestination(c.Request.Context(), c.Param("id"), dest)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// RemoveDestination handles DELETE /api/v1/trips/:id/destinations/:destId
func (h *TripHandler) RemoveDestination(c *gin.Context) {
	snap, err := h.service.RemoveDestination(c.Param("id"), c.Param("destId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// ClearDestinations handles DELETE /api/v1/trips/:id/destinations
func (h *TripHandler) ClearDestinations(c *gin.Context) {
	snap, err := h.service.ClearDestinations(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// MoveDestination handles POST /api/v1/trips/:id/destinations/:destId/move
func (h *TripHandler) MoveDestination(c *gin.Context) {
	var req struct {
		ToIndex *int `json:"to_index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ToIndex == nil {
		response.Error(c, http.StatusBadRequest, "to_index is required")
		return
	}

	snap, err := h.service.MoveDestination(c.Param("id"), c.Param("destId"), *req.ToIndex)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// RecalculateRoute handles POST /api/v1/trips/:id/route — manual retry.
func (h *TripHandler) RecalculateRoute(c *gin.Context) {
	snap, err := h.service.RecalculateRoute(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// GetBudget handles GET /api/v1/trips/:id/budget
func (h *TripHandler) GetBudget(c *gin.Context) {
	agg, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	budget := agg.BudgetRange()
	if budget == nil {
		response.Success(c, gin.H{"budget": nil, "message": "no budget set"})
		return
	}
	response.Success(c, gin.H{"budget": budget})
}

// SaveTrip handles POST /api/v1/trips/:id/save — persists to the trip store.
func (h *TripHandler) SaveTrip(c *gin.Context) {
	snap, err := h.service.SaveTrip(c.Request.Context(), credentials(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}

// LoadTrip handles GET /api/v1/saved/:id — opens a session from the store.
func (h *TripHandler) LoadTrip(c *gin.Context) {
	snap, err := h.service.LoadTrip(c.Request.Context(), credentials(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, snap)
}
