package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xcribe/internal/api/errors"
	"xcribe/internal/api/middleware"
	"xcribe/internal/api/v1/dto"
	"xcribe/internal/api/v1/services"
)

// ProfileHandler handles profile CRUD endpoints.
type ProfileHandler struct {
	service services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// List handles GET /api/v1/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List())
}

// Get handles GET /api/v1/profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Create handles POST /api/v1/profiles
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.ProfilePayload
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	saved, err := h.service.Save(req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Update handles PUT /api/v1/profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfilePayload
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	id := c.Param("id")
	if req.ID != "" && req.ID != id {
		middleware.HandleError(c, errors.NewBadRequestError("profile id in body does not match URL"))
		return
	}
	req.ID = id

	saved, err := h.service.Save(req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /api/v1/profiles/:id. Deleting an unknown id is a
// no-op and still returns 204.
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
