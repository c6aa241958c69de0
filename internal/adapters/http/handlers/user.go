package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/pencil-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/pencil-api/internal/app"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
	"github.com/jsamuelsen/pencil-api/internal/ports"
)

// UserHandler handles registration, user lookup and credential checks.
type UserHandler struct {
	store *app.Store
	vault ports.CredentialVault
}

// NewUserHandler creates a user handler. vault may be nil, in which case
// passwords are rejected and the verify route is not registered.
func NewUserHandler(store *app.Store, vault ports.CredentialVault) *UserHandler {
	return &UserHandler{store: store, vault: vault}
}

// RegisterUser handles POST /api/v1/users.
//
// The user is committed before the password is hashed. If storing the
// password then fails the user still exists and the response says so.
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	if req.Password != nil && h.vault == nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "passwords are not supported")
		return
	}

	ctx := c.Request.Context()

	u, err := h.store.RegisterUser(ctx, req.Username)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	message := "user registered"

	if req.Password != nil {
		if err := h.vault.Set(ctx, u.ID, *req.Password); err != nil {
			logging.FromContext(ctx).ErrorContext(ctx, "failed to store credential",
				slog.Uint64("user_id", uint64(u.ID)),
				slog.Any("error", err),
			)

			message = "user registered; password not saved"
		}
	}

	c.JSON(http.StatusCreated, dto.MessageResponse[dto.UserResponse]{
		Message: message,
		Data:    dto.NewUserResponse(u),
	})
}

// GetUser handles GET /api/v1/users/:id and returns the user with quotes
// and collections resolved.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	details, found, err := h.store.UserWithDetails(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if !found {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "user "+c.Param("id")+" not found")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserDetailsResponse(details))
}

// VerifyCredentials handles POST /api/v1/users/:id/credentials/verify.
func (h *UserHandler) VerifyCredentials(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyCredentialsRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleBindError(c, err)
		return
	}

	ctx := c.Request.Context()

	if _, found := h.store.UserByID(ctx, id); !found {
		dto.RespondWithErrorCode(c, dto.ErrorCodeNotFound, "user "+c.Param("id")+" not found")
		return
	}

	valid, err := h.vault.Verify(ctx, id, req.Password)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyCredentialsResponse{Valid: valid})
}

// RegisterUserRoutes registers user routes on the given router group.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.RegisterUser)
	users.GET("/:id", h.GetUser)

	if h.vault != nil {
		users.POST("/:id/credentials/verify", h.VerifyCredentials)
	}
}

// parseUserID reads the :id path parameter as a u32 user id and writes a
// 400 when it is not one.
func parseUserID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "invalid user id")
		return 0, false
	}

	return uint32(id), true
}
