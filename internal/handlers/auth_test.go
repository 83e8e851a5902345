package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/testutil"
)

func TestAuthHandler_Register(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", map[string]string{
		"username":         "newuser",
		"email":            "newuser@example.com",
		"full_name":        "New User",
		"password":         "supersecret",
		"confirm_password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode[models.User](t, w)
	require.Equal(t, "newuser", user.Username)
	require.Equal(t, "New User", user.FullName)

	// registering does not log in
	w = env.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(http.MethodPost, "/auth/register", map[string]string{
		"username":         "nu",
		"email":            "not-an-email",
		"password":         "supersecret",
		"confirm_password": "different",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	require.Contains(t, body.Detail, "confirm_password does not match")
	require.Contains(t, body.Detail, "email must be a valid email")
	require.Contains(t, body.Detail, "username must be at least 3 characters")
	require.Zero(t, env.api.TotalCalls())
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.api.SeedUser("existing", "supersecret")

	w := env.do(http.MethodPost, "/auth/register", map[string]string{
		"username":         "existing",
		"email":            "existing@example.com",
		"password":         "supersecret",
		"confirm_password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Username already registered", decode[errorBody](t, w).Detail)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.login("existing", "supersecret")

	w := env.do(http.MethodGet, "/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "existing", decode[models.User](t, w).Username)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.api.SeedUser("existing", "supersecret")

	w := env.do(http.MethodPost, "/auth/login", map[string]string{
		"username": "existing",
		"password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Incorrect username or password", decode[errorBody](t, w).Detail)

	w = env.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(http.MethodPost, "/auth/login", map[string]string{"username": "existing"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "password is required", decode[errorBody](t, w).Detail)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.login("existing", "supersecret")
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/board", nil).Code)
	require.Equal(t, 1, env.registry.Len())

	w := env.do(http.MethodPost, "/auth/logout", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, env.registry.Len())
	require.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/auth/me", nil).Code)
	require.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/board", nil).Code)
}

func TestAuthHandler_LoginDropsPreviousWorkspace(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.login("alice", "supersecret")
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/board", nil).Code)
	require.Equal(t, 1, env.registry.Len())

	env.login("bob", "supersecret")

	require.Zero(t, env.registry.Len())
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.login("existing", "supersecret")

	w := env.do(http.MethodPost, "/auth/refresh", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "existing", decode[models.User](t, w).Username)

	// the rotated access token is the one in use
	require.Equal(t, http.StatusOK, env.do(http.MethodGet, "/auth/me", nil).Code)
}

func TestAuthHandler_RefreshWithoutSession(t *testing.T) {
	env := setupHandlerTestEnv(t)

	w := env.do(http.MethodPost, "/auth/refresh", nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Zero(t, env.api.TotalCalls())
}

func TestAuthHandler_GetCurrentUserClearsRejectedToken(t *testing.T) {
	env := setupHandlerTestEnv(t)
	env.login("existing", "supersecret")
	env.api.Intercept(http.MethodGet, "/auth/me", testutil.Fail(http.StatusUnauthorized, "Could not validate credentials"))

	w := env.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// the token was cleared, so RequireAuth now rejects without calling the API
	env.api.Intercept(http.MethodGet, "/auth/me", nil)
	env.api.ResetCalls()
	require.Equal(t, http.StatusUnauthorized, env.do(http.MethodGet, "/auth/me", nil).Code)
	require.Zero(t, env.api.TotalCalls())
}
