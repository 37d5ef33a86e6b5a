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

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	userUseCase       identityUseCase.UserUseCase
	passwordMinLength int
	logger            *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userUseCase identityUseCase.UserUseCase,
	passwordMinLength int,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase:       userUseCase,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

// Create handles POST /v1/users requests. The response carries the user's
// plain bearer token; it is not retrievable by any later request.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.passwordMinLength); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, token, err := h.userUseCase.Create(c.Request.Context(), req.ToCreateUserInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToCreateResponse(user, token))
}

// Get handles GET /v1/users/:id requests.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// List handles GET /v1/users requests.
func (h *UserHandler) List(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// Update handles PATCH /v1/users/:id requests.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.passwordMinLength); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), id, req.ToUpdateUserInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// Delete handles DELETE /v1/users/:id requests. Deleting a user removes the
// user's assignments but leaves the system passwords themselves in place.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
