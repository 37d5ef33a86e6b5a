package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/httputil"
	"github.com/allisson/credvault/internal/vault/http/dto"
	vaultUseCase "github.com/allisson/credvault/internal/vault/usecase"
)

// SecretHandler handles HTTP requests for system passwords.
type SecretHandler struct {
	secretUseCase     vaultUseCase.SecretUseCase
	passwordMinLength int
	logger            *slog.Logger
}

// NewSecretHandler creates a new SecretHandler.
func NewSecretHandler(
	secretUseCase vaultUseCase.SecretUseCase,
	passwordMinLength int,
	logger *slog.Logger,
) *SecretHandler {
	return &SecretHandler{
		secretUseCase:     secretUseCase,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

// Create handles POST /v1/system-passwords requests. The plaintext password
// must satisfy the category's policy; only its hash is stored.
func (h *SecretHandler) Create(c *gin.Context) {
	var req dto.CreateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.passwordMinLength); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secret, err := h.secretUseCase.Create(c.Request.Context(), req.ToCreateSecretInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSecretToResponse(secret))
}

// Get handles GET /v1/system-passwords/:id requests.
func (h *SecretHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secret, err := h.secretUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToResponse(secret))
}

// List handles GET /v1/system-passwords requests.
func (h *SecretHandler) List(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secrets, err := h.secretUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretsToListResponse(secrets))
}

// Update handles PATCH /v1/system-passwords/:id requests. A new password is
// checked against the effective category's policy before hashing.
func (h *SecretHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.passwordMinLength); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	secret, err := h.secretUseCase.Update(c.Request.Context(), id, req.ToUpdateSecretInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSecretToResponse(secret))
}

// Delete handles DELETE /v1/system-passwords/:id requests. User assignments
// pointing at the system password are removed with it.
func (h *SecretHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.secretUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
