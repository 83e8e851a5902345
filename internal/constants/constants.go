package constants

import "time"

const (
	// SessionCookieName is the BFF session cookie
	SessionCookieName = "kanban_session"
	// SessionMaxAge is the lifetime of the BFF session in seconds
	SessionMaxAge = 7 * 24 * 60 * 60

	// Keys of the session cookie and of the persisted CLI state
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyWorkspaceID  = "workspace_id"
	KeyProjectID    = "project_id"

	// ContextWorkspaceKey holds the *services.WorkspaceEntry in gin contexts
	ContextWorkspaceKey = "workspace"
)

const (
	// DefaultBoardSuffix is appended to the project name for the board
	// created when a project has none
	DefaultBoardSuffix = " - Board Principal"

	// WorkspaceIdleTTL evicts BFF workspaces not touched for this long
	WorkspaceIdleTTL = 12 * time.Hour
)

// Pagination defaults for project listing
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)
