package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/constants"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
	"github.com/yukikurage/kanban-web/internal/middleware"
	"github.com/yukikurage/kanban-web/internal/repository"
	"github.com/yukikurage/kanban-web/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	auth       repository.AuthRepository
	workspaces *services.WorkspaceRegistry
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth repository.AuthRepository, workspaces *services.WorkspaceRegistry, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		auth:       auth,
		workspaces: workspaces,
		logger:     logger,
	}
}

// session builds the auth session of the request, backed by the cookie session.
func (h *AuthHandler) session(c *gin.Context) *services.Session {
	return services.NewSession(h.auth, middleware.NewSessionTokenStore(sessions.Default(c)), h.logger)
}

// Register creates an account on the board API.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.session(c).Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login authenticates against the board API and stores the tokens in the
// session. Any workspace of a previous login is dropped.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	h.dropWorkspace(c)
	user, err := h.session(c).Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout removes the tokens and the workspace from the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.dropWorkspace(c)
	if err := h.session(c).Teardown(c.Request.Context()); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Refresh rotates the token pair. A rejected refresh token logs out.
func (h *AuthHandler) Refresh(c *gin.Context) {
	session := h.session(c)
	if err := session.Refresh(c.Request.Context()); err != nil {
		h.dropWorkspace(c)
		if saveErr := sessions.Default(c).Save(); saveErr != nil {
			h.logger.Error("failed to save session", slog.String("error", saveErr.Error()))
		}
		respondError(c, err)
		return
	}

	user, err := session.User()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetCurrentUser returns the user owning the session's token. A token the
// board API rejects is cleared.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	session := h.session(c)
	if err := session.Init(c.Request.Context()); err != nil {
		apierrors.InternalError(c, "Failed to read session")
		return
	}

	user, err := session.User()
	if err != nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) dropWorkspace(c *gin.Context) {
	session := sessions.Default(c)
	if id, ok := session.Get(constants.KeyWorkspaceID).(string); ok {
		h.workspaces.Remove(id)
		session.Delete(constants.KeyWorkspaceID)
	}
}
