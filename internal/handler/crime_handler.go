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

// CrimeHandler handles HTTP requests for recorded crimes
type CrimeHandler struct {
	service *service.CrimeService
}

// NewCrimeHandler creates a new crime handler
func NewCrimeHandler(service *service.CrimeService) *CrimeHandler {
	return &CrimeHandler{service: service}
}

// GetCrimes handles GET /crimes
func (h *CrimeHandler) GetCrimes(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	crimes, err := h.service.GetCrimes(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, "Failed to get crimes")
		return
	}

	response.Success(c, gin.H{
		"crimes": crimes,
		"total":  len(crimes),
	})
}

// GetRecentCrimes handles GET /crimes/recent
func (h *CrimeHandler) GetRecentCrimes(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 730 {
		response.BadRequest(c, "Invalid days parameter")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	crimes, err := h.service.GetRecentCrimes(c.Request.Context(), days, limit)
	if err != nil {
		response.InternalError(c, "Failed to get recent crimes")
		return
	}

	response.Success(c, gin.H{
		"crimes":      crimes,
		"total":       len(crimes),
		"period_days": days,
	})
}

// GetCrimesByType handles GET /crimes/type/:type
func (h *CrimeHandler) GetCrimesByType(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "365"))
	if err != nil || days < 1 {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	crimes, err := h.service.GetCrimesByType(c.Request.Context(), c.Param("type"), days)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCrimeType) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(c, "Failed to get crimes by type")
		return
	}

	response.Success(c, gin.H{
		"crimes": crimes,
		"total":  len(crimes),
	})
}

// GetCrimesByLocation handles GET /crimes/location/:id
func (h *CrimeHandler) GetCrimesByLocation(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	crimes, err := h.service.GetCrimesByLocation(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		response.InternalError(c, "Failed to get crimes by location")
		return
	}

	response.Success(c, gin.H{
		"crimes": crimes,
		"total":  len(crimes),
	})
}

// GetCrimesByPerpetrator handles GET /crimes/perpetrator/:id
func (h *CrimeHandler) GetCrimesByPerpetrator(c *gin.Context) {
	citizenID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid citizen ID")
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	crimes, err := h.service.GetCrimesByPerpetrator(c.Request.Context(), citizenID, limit)
	if err != nil {
		response.InternalError(c, "Failed to get criminal record")
		return
	}

	response.Success(c, gin.H{
		"crimes": crimes,
		"total":  len(crimes),
	})
}

// GetCrimeByID handles GET /crimes/:id
func (h *CrimeHandler) GetCrimeByID(c *gin.Context) {
	report, err := h.service.GetCrimeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Crime not found")
			return
		}
		response.InternalError(c, "Failed to get crime")
		return
	}

	response.Success(c, report)
}

// ReportCrime handles POST /crimes
func (h *CrimeHandler) ReportCrime(c *gin.Context) {
	var req models.CrimeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	report, err := h.service.ReportCrime(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCrimeType), errors.Is(err, service.ErrFutureDate):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c, "Location not found")
		default:
			response.InternalError(c, "Failed to report crime")
		}
		return
	}

	response.Created(c, report)
}

// MarkInvestigated handles POST /crimes/:id/mark-investigated
func (h *CrimeHandler) MarkInvestigated(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.MarkInvestigated(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Crime not found")
			return
		}
		response.InternalError(c, "Failed to mark crime investigated")
		return
	}

	response.Success(c, gin.H{
		"id":           id,
		"investigated": true,
	})
}

// GetStatistics handles GET /crimes/admin/statistics
func (h *CrimeHandler) GetStatistics(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "365"))
	if err != nil || days < 1 {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), days)
	if err != nil {
		response.InternalError(c, "Failed to get crime statistics")
		return
	}

	response.Success(c, stats)
}

// GetTimeline handles GET /crimes/admin/timeline
func (h *CrimeHandler) GetTimeline(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 2 || days > 730 {
		response.BadRequest(c, "Invalid days parameter")
		return
	}

	timeline, err := h.service.GetTimeline(c.Request.Context(), days)
	if err != nil {
		response.InternalError(c, "Failed to get crime timeline")
		return
	}

	response.Success(c, timeline)
}
