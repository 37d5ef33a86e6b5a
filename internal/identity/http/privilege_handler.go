package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/httputil"
	"github.com/allisson/credvault/internal/identity/http/dto"
	identityUseCase "github.com/allisson/credvault/internal/identity/usecase"
)

// PrivilegeHandler handles HTTP requests for privilege management.
type PrivilegeHandler struct {
	privilegeUseCase identityUseCase.PrivilegeUseCase
	logger           *slog.Logger
}

// NewPrivilegeHandler creates a new PrivilegeHandler.
func NewPrivilegeHandler(privilegeUseCase identityUseCase.PrivilegeUseCase, logger *slog.Logger) *PrivilegeHandler {
	return &PrivilegeHandler{privilegeUseCase: privilegeUseCase, logger: logger}
}

// Create handles POST /v1/privileges requests.
func (h *PrivilegeHandler) Create(c *gin.Context) {
	var req dto.CreatePrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	privilege, err := h.privilegeUseCase.Create(c.Request.Context(), req.ToCreatePrivilegeInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapPrivilegeToResponse(privilege))
}

// Get handles GET /v1/privileges/:id requests.
func (h *PrivilegeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	privilege, err := h.privilegeUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrivilegeToResponse(privilege))
}

// List handles GET /v1/privileges requests.
func (h *PrivilegeHandler) List(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	privileges, err := h.privilegeUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrivilegesToListResponse(privileges))
}

// Update handles PATCH /v1/privileges/:id requests.
func (h *PrivilegeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdatePrivilegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	privilege, err := h.privilegeUseCase.Update(c.Request.Context(), id, req.ToUpdatePrivilegeInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrivilegeToResponse(privilege))
}

// Delete handles DELETE /v1/privileges/:id requests. Users holding the
// privilege keep working with their privilege reference cleared.
func (h *PrivilegeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.privilegeUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
