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

// CitizenHandler handles HTTP requests for registered citizens
type CitizenHandler struct {
	service *service.CitizenService
}

// NewCitizenHandler creates a new citizen handler
func NewCitizenHandler(service *service.CitizenService) *CitizenHandler {
	return &CitizenHandler{service: service}
}

// GetCitizens handles GET /citizens
func (h *CitizenHandler) GetCitizens(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 || limit > 1000 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		response.BadRequest(c, "Invalid offset parameter")
		return
	}

	citizens, total, err := h.service.GetCitizens(c.Request.Context(), limit, offset)
	if err != nil {
		response.InternalError(c, "Failed to get citizens")
		return
	}

	response.Success(c, gin.H{
		"citizens": citizens,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// SearchCitizens handles GET /citizens/search?name=
func (h *CitizenHandler) SearchCitizens(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.BadRequest(c, "Missing name parameter")
		return
	}

	citizens, err := h.service.SearchCitizens(c.Request.Context(), name, 50)
	if err != nil {
		response.InternalError(c, "Failed to search citizens")
		return
	}

	response.Success(c, gin.H{
		"citizens": citizens,
		"total":    len(citizens),
	})
}

// GetSuspects handles GET /citizens/suspects
func (h *CitizenHandler) GetSuspects(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		response.BadRequest(c, "Invalid limit parameter")
		return
	}

	suspects, err := h.service.GetSuspects(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c, "Failed to get suspects")
		return
	}

	response.Success(c, gin.H{
		"suspects": suspects,
		"total":    len(suspects),
	})
}

// GetCitizenByID handles GET /citizens/:id
func (h *CitizenHandler) GetCitizenByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid citizen ID")
		return
	}

	citizen, err := h.service.GetCitizenByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Citizen not found")
			return
		}
		response.InternalError(c, "Failed to get citizen")
		return
	}

	response.Success(c, citizen)
}

// GetNetwork handles GET /citizens/:id/network
func (h *CitizenHandler) GetNetwork(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid citizen ID")
		return
	}
	depth, err := strconv.Atoi(c.DefaultQuery("depth", "1"))
	if err != nil {
		response.BadRequest(c, "Invalid depth parameter")
		return
	}

	network, err := h.service.GetNetwork(c.Request.Context(), id, depth, 200)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDepth):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c, "Citizen not found")
		default:
			response.InternalError(c, "Failed to get citizen network")
		}
		return
	}

	response.Success(c, network)
}

// RegisterCitizen handles POST /citizens
func (h *CitizenHandler) RegisterCitizen(c *gin.Context) {
	var req models.CitizenCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	citizen, err := h.service.RegisterCitizen(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBirthYear) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.InternalError(c, "Failed to register citizen")
		return
	}

	response.Created(c, citizen)
}

// UpdateStatus handles PATCH /citizens/:id/status
func (h *CitizenHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid citizen ID")
		return
	}

	var req models.CitizenStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c, "Citizen not found")
		default:
			response.InternalError(c, "Failed to update citizen status")
		}
		return
	}

	response.Success(c, gin.H{
		"id":     id,
		"status": req.Status,
	})
}
