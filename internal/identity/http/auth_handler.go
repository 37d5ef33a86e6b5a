package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/credvault/internal/httputil"
	"github.com/allisson/credvault/internal/identity/http/dto"
	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	authUseCase       identityUseCase.AuthUseCase
	passwordMinLength int
	logger            *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authUseCase identityUseCase.AuthUseCase,
	passwordMinLength int,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase:       authUseCase,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

// Register handles POST /v1/auth/register requests.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.passwordMinLength); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, token, err := h.authUseCase.Register(c.Request.Context(), req.ToRegisterInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		User:  dto.MapUserToResponse(user),
		Token: token,
	})
}

// Login handles POST /v1/auth/login requests. The credential field accepts
// either a username or an email address.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, token, err := h.authUseCase.Login(c.Request.Context(), req.Credential, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		User:  dto.MapUserToResponse(user),
		Token: token,
	})
}
