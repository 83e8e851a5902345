package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/dto"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
	"github.com/yukikurage/kanban-web/internal/middleware"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/services"
	"github.com/yukikurage/kanban-web/internal/utils"
)

// BoardHandler serves the projects and the board of the session's workspace.
type BoardHandler struct {
	logger *slog.Logger
}

func NewBoardHandler(logger *slog.Logger) *BoardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardHandler{logger: logger}
}

// boardView is the board as rendered by the UI.
type boardView struct {
	Project      *models.Project     `json:"project"`
	Board        *models.KanbanBoard `json:"board"`
	Loading      bool                `json:"loading"`
	Error        string              `json:"error,omitempty"`
	MovingTaskID string              `json:"moving_task_id,omitempty"`
	Filtered     bool                `json:"filtered"`
	Notices      []services.Notice   `json:"notices"`
}

type moveTaskRequest struct {
	Status models.ColumnStatus `json:"status" binding:"required,oneof=backlog a-fazer em-progresso concluido"`
}

func workspace(c *gin.Context) (*services.WorkspaceEntry, bool) {
	entry, ok := middleware.GetWorkspace(c)
	if !ok {
		apierrors.InternalError(c, "Workspace not attached")
		return nil, false
	}
	return entry, true
}

func renderBoard(c *gin.Context, status int, entry *services.WorkspaceEntry, filter models.TaskFilter) {
	ws := entry.Workspace
	view := boardView{
		Project:      ws.CurrentProject(),
		Loading:      ws.Loading(),
		Error:        ws.Err(),
		MovingTaskID: ws.MovingTaskID(),
		Filtered:     filter.Active(),
	}
	if board := ws.Board(); board != nil {
		view.Board = board.Filtered(filter)
	}
	view.Notices = entry.Notices.Drain()
	c.JSON(status, view)
}

// ListProjects returns the user's projects, selecting the first one when
// nothing is selected yet.
func (h *BoardHandler) ListProjects(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	if err := entry.Workspace.LoadProjects(c.Request.Context(), utils.GetListParams(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":        entry.Workspace.Projects(),
		"current_project": entry.Workspace.CurrentProject(),
		"notices":         entry.Notices.Drain(),
	})
}

// CreateProject creates a project and selects it.
func (h *BoardHandler) CreateProject(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	var req services.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := entry.Workspace.CreateProject(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	renderBoard(c, http.StatusCreated, entry, models.TaskFilter{})
}

// DeleteProject deletes a project.
func (h *BoardHandler) DeleteProject(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	if err := entry.Workspace.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
		"notices": entry.Notices.Drain(),
	})
}

// SelectProject makes a project current and returns its board.
func (h *BoardHandler) SelectProject(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	if err := entry.Workspace.SelectProject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	renderBoard(c, http.StatusOK, entry, models.TaskFilter{})
}

// GetBoard returns the current board, optionally filtered by q and priority.
// A fresh workspace loads the project list first.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	filter := models.TaskFilter{
		Query:    c.Query("q"),
		Priority: models.Priority(c.DefaultQuery("priority", "all")),
	}
	if filter.Priority != "all" && !filter.Priority.Valid() {
		apierrors.BadRequest(c, "priority must be one of: all, baixa, media, alta, urgente")
		return
	}

	ws := entry.Workspace
	if ws.CurrentProject() == nil && ws.Err() == "" {
		if err := ws.LoadProjects(c.Request.Context(), dto.ListParams{}); err != nil {
			h.logger.Warn("initial project load failed", slog.String("error", err.Error()))
		}
	}

	renderBoard(c, http.StatusOK, entry, filter)
}

// SyncBoard refetches the board.
func (h *BoardHandler) SyncBoard(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	if err := entry.Workspace.SyncBoard(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	renderBoard(c, http.StatusOK, entry, models.TaskFilter{})
}

// RetryBoard reloads everything after a failed load. Load failures are
// reported through the view's error field.
func (h *BoardHandler) RetryBoard(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	if err := entry.Workspace.Refresh(c.Request.Context()); err != nil {
		h.logger.Warn("board retry failed", slog.String("error", err.Error()))
	}

	renderBoard(c, http.StatusOK, entry, models.TaskFilter{})
}

// CreateTask creates a task in the column matching its status.
func (h *BoardHandler) CreateTask(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	var req services.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := entry.Workspace.CreateTask(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	renderBoard(c, http.StatusCreated, entry, models.TaskFilter{})
}

// MoveTask moves a task to the column with the requested status.
func (h *BoardHandler) MoveTask(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := entry.Workspace.MoveTask(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}

	renderBoard(c, http.StatusOK, entry, models.TaskFilter{})
}

// DeleteTask deletes a task.
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	if err := entry.Workspace.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	renderBoard(c, http.StatusOK, entry, models.TaskFilter{})
}

// GetReport summarizes the current board.
func (h *BoardHandler) GetReport(c *gin.Context) {
	entry, ok := workspace(c)
	if !ok {
		return
	}

	report, err := entry.Workspace.Report()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":  report,
		"notices": entry.Notices.Drain(),
	})
}
