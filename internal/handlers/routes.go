package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/middleware"
	"github.com/yukikurage/kanban-web/internal/services"
)

// RegisterRoutes mounts the BFF routes. Session and token middleware must
// already be installed on r.
func RegisterRoutes(r gin.IRouter, authHandler *AuthHandler, boardHandler *BoardHandler, workspaces *services.WorkspaceRegistry) {
	// Health check endpoint
	r.GET("/health", Health)

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
	}

	// Workspace routes (protected)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth(), middleware.AttachWorkspace(workspaces))
	{
		protected.GET("/projects", boardHandler.ListProjects)
		protected.POST("/projects", boardHandler.CreateProject)
		protected.DELETE("/projects/:id", boardHandler.DeleteProject)
		protected.POST("/projects/:id/select", boardHandler.SelectProject)

		protected.GET("/board", boardHandler.GetBoard)
		protected.POST("/board/sync", boardHandler.SyncBoard)
		protected.POST("/board/retry", boardHandler.RetryBoard)
		protected.POST("/board/tasks", boardHandler.CreateTask)
		protected.PATCH("/board/tasks/:id/move", boardHandler.MoveTask)
		protected.DELETE("/board/tasks/:id", boardHandler.DeleteTask)

		protected.GET("/reports", boardHandler.GetReport)
	}
}
