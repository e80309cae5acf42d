package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Soozu/client-wertigo-sub000/internal/service"
	"github.com/Soozu/client-wertigo-sub000/pkg/response"
)

// GeocodeHandler handles HTTP requests for geocoding lookups.
type GeocodeHandler struct {
	geocoder service.Geocoder
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(geocoder service.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: geocoder}
}

// Geocode handles GET /api/v1/geocode?q=
// A blank query is a 400; a query with no results is a success with an empty
// list, so callers can tell the two apart.
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	results, err := h.geocoder.Geocode(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, gin.H{"results": results})
}
