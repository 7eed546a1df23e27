package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"xcribe/internal/api/auth"
	"xcribe/internal/api/errors"
	"xcribe/internal/api/middleware"
	"xcribe/internal/api/v1/dto"
)

// AuthHandler handles the login gate.
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		middleware.HandleError(c, errors.NewUnauthorizedError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}
