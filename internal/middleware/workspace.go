package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/constants"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
	"github.com/yukikurage/kanban-web/internal/services"
)

// AttachWorkspace binds the session's workspace to the request, creating one
// on first use.
func AttachWorkspace(registry *services.WorkspaceRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		id, _ := session.Get(constants.KeyWorkspaceID).(string)

		entry := registry.Acquire(id)
		if entry.ID != id {
			session.Set(constants.KeyWorkspaceID, entry.ID)
			if err := session.Save(); err != nil {
				apierrors.InternalError(c, "Failed to save session")
				c.Abort()
				return
			}
		}

		c.Set(constants.ContextWorkspaceKey, entry)
		c.Next()
	}
}

// GetWorkspace retrieves the workspace attached to the request
func GetWorkspace(c *gin.Context) (*services.WorkspaceEntry, bool) {
	v, exists := c.Get(constants.ContextWorkspaceKey)
	if !exists {
		return nil, false
	}
	entry, ok := v.(*services.WorkspaceEntry)
	return entry, ok
}
