package handler

import (
	"github.com/Shrey0428/ExoticBill/internal/application/service"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/request"
	"github.com/Shrey0428/ExoticBill/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
// @Summary Login
// @Description Authenticate one of the configured accounts and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"principal":    output.Principal,
		"access_token": output.AccessToken,
		"expires_in":   output.ExpiresIn,
		"token_type":   "Bearer",
	})
}

// Me returns the principal behind the bearer token
// @Summary Current principal
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal := GetPrincipal(c)
	if principal == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"principal": principal,
		"is_admin":  principal.IsAdmin(),
	})
}
