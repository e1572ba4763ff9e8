package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/precrime-dept/precrime-backend-go/internal/models"
	"github.com/precrime-dept/precrime-backend-go/internal/repository"
	"github.com/precrime-dept/precrime-backend-go/internal/service"
	"github.com/precrime-dept/precrime-backend-go/pkg/response"
)

// LocationHandler handles HTTP requests for city locations
type LocationHandler struct {
	service *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service *service.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// GetLocations handles GET /locations
func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.service.GetLocations(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get locations")
		return
	}

	response.Success(c, gin.H{
		"locations": locations,
		"total":     len(locations),
	})
}

// GetHotspots handles GET /locations/hotspots
func (h *LocationHandler) GetHotspots(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	hotspots, err := h.service.GetHotspots(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, "Failed to get hotspots")
		return
	}

	response.Success(c, gin.H{
		"hotspots": hotspots,
		"total":    len(hotspots),
	})
}

// SearchLocation handles GET /locations/search?q=
func (h *LocationHandler) SearchLocation(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Missing search query")
		return
	}

	loc, err := h.service.SearchLocation(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "No location matches the query")
			return
		}
		response.InternalError(c, "Failed to search locations")
		return
	}

	response.Success(c, loc)
}

// GetLocationByID handles GET /locations/:id
func (h *LocationHandler) GetLocationByID(c *gin.Context) {
	loc, err := h.service.GetLocationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Location not found")
			return
		}
		response.InternalError(c, "Failed to get location")
		return
	}

	response.Success(c, loc)
}

// GetLocationCrimes handles GET /locations/:id/crimes
func (h *LocationHandler) GetLocationCrimes(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 730 {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	crimes, err := h.service.GetLocationCrimes(c.Request.Context(), c.Param("id"), days)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Location not found")
			return
		}
		response.InternalError(c, "Failed to get location crimes")
		return
	}

	response.Success(c, gin.H{
		"crimes":      crimes,
		"total":       len(crimes),
		"period_days": days,
	})
}

// CreateLocation handles POST /locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req models.LocationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	loc, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLocationType) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(c, "Failed to create location")
		return
	}

	response.Created(c, loc)
}

// GetStatistics handles GET /locations/admin/statistics
func (h *LocationHandler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get location statistics")
		return
	}

	response.Success(c, stats)
}
