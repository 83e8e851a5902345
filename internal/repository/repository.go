package repository

import (
	"context"

	"github.com/yukikurage/kanban-web/internal/dto"
)

// AuthRepository defines the interface for the authentication endpoints
type AuthRepository interface {
	// Register creates a new account
	Register(ctx context.Context, user dto.UserCreate) (*dto.UserResponse, error)

	// Login exchanges credentials for a token pair
	Login(ctx context.Context, credentials dto.UserLogin) (*dto.Token, error)

	// Me returns the user owning accessToken
	Me(ctx context.Context, accessToken string) (*dto.UserResponse, error)

	// Refresh exchanges a refresh token for a new token pair
	Refresh(ctx context.Context, refreshToken string) (*dto.Token, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	List(ctx context.Context, params dto.ListParams) ([]dto.ProjectResponse, error)
	FindByID(ctx context.Context, id string) (*dto.ProjectResponse, error)
	Create(ctx context.Context, project dto.ProjectCreate) (*dto.ProjectResponse, error)
	Update(ctx context.Context, id string, project dto.ProjectUpdate) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, id string) error
}

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	List(ctx context.Context) ([]dto.BoardResponse, error)
	ListByProject(ctx context.Context, projectID string) ([]dto.BoardResponse, error)
	FindByID(ctx context.Context, id string) (*dto.BoardResponse, error)
	Create(ctx context.Context, board dto.BoardCreate) (*dto.BoardResponse, error)
	Update(ctx context.Context, id string, board dto.BoardUpdate) (*dto.BoardResponse, error)
	Delete(ctx context.Context, id string) error
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	List(ctx context.Context) ([]dto.ColumnResponse, error)
	ListByBoard(ctx context.Context, boardID string) ([]dto.ColumnResponse, error)
	FindByID(ctx context.Context, id string) (*dto.ColumnResponse, error)
	Create(ctx context.Context, column dto.ColumnCreate) (*dto.ColumnResponse, error)
	Update(ctx context.Context, id string, column dto.ColumnUpdate) (*dto.ColumnResponse, error)
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List retrieves every task visible to the caller, optionally filtered
	List(ctx context.Context, filter dto.TaskListFilter) ([]dto.TaskResponse, error)
	FindByID(ctx context.Context, id string) (*dto.TaskResponse, error)
	Create(ctx context.Context, task dto.TaskCreate) (*dto.TaskResponse, error)
	Update(ctx context.Context, id string, task dto.TaskUpdate) (*dto.TaskResponse, error)

	// Move relocates a task to another column and position
	Move(ctx context.Context, id string, move dto.TaskMove) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

// StateRepository persists client-side key/value state such as tokens
type StateRepository interface {
	// Get returns the value stored under key, ok=false when absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes keys; missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
}
