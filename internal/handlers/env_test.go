package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/middleware"
	"github.com/yukikurage/kanban-web/internal/repository"
	"github.com/yukikurage/kanban-web/internal/services"
	"github.com/yukikurage/kanban-web/internal/testutil"
)

// handlerTestEnv serves the BFF routes against a FakeAPI and carries the
// session cookie between requests like a browser would.
type handlerTestEnv struct {
	t        *testing.T
	api      *testutil.FakeAPI
	router   *gin.Engine
	registry *services.WorkspaceRegistry
	cookies  map[string]*http.Cookie
}

func setupHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ConfigureBinding()

	api := testutil.NewFakeAPI(t)
	client := repository.NewClient(api.URL(), nil, repository.TokenSourceFunc(middleware.AccessToken), nil)
	repos := services.Repositories{
		Projects: repository.NewProjectRepository(client),
		Boards:   repository.NewBoardRepository(client),
		Columns:  repository.NewColumnRepository(client),
		Tasks:    repository.NewTaskRepository(client),
	}
	registry := services.NewWorkspaceRegistry(func(n services.Notifier) *services.Workspace {
		return services.NewWorkspace(repos, services.WithNotifier(n))
	}, time.Hour)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.InjectTokens())
	RegisterRoutes(r,
		NewAuthHandler(repository.NewAuthRepository(client), registry, nil),
		NewBoardHandler(nil),
		registry,
	)

	return &handlerTestEnv{
		t:        t,
		api:      api,
		router:   r,
		registry: registry,
		cookies:  make(map[string]*http.Cookie),
	}
}

func (env *handlerTestEnv) do(method, path string, payload any) *httptest.ResponseRecorder {
	env.t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(env.t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(env.cookies, c.Name)
			continue
		}
		env.cookies[c.Name] = c
	}
	return w
}

// login seeds a user and logs the env's session in as that user.
func (env *handlerTestEnv) login(username, password string) {
	env.t.Helper()
	env.api.SeedUser(username, password)
	w := env.do(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(env.t, http.StatusOK, w.Code, w.Body.String())
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}
