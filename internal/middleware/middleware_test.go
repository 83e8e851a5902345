package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/kanban-web/internal/config"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	return r
}

// withSession runs a request that stores values in the session and returns
// the resulting cookies.
func withSession(t *testing.T, r *gin.Engine, values map[string]string) []*http.Cookie {
	t.Helper()
	r.GET("/_seed", func(c *gin.Context) {
		session := sessions.Default(c)
		for k, v := range values {
			session.Set(k, v)
		}
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/_seed", nil))
	return w.Result().Cookies()
}

func serve(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r := newTestRouter()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	cookies := withSession(t, r, map[string]string{constants.KeyAccessToken: "access-1"})

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/protected", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, "/protected", cookies).Code)
}

func TestInjectTokens(t *testing.T) {
	r := newTestRouter()
	r.Use(InjectTokens())
	r.GET("/token", func(c *gin.Context) {
		c.String(http.StatusOK, AccessToken(c.Request.Context()))
	})
	cookies := withSession(t, r, map[string]string{constants.KeyAccessToken: "access-1"})

	assert.Equal(t, "access-1", serve(r, "/token", cookies).Body.String())
	assert.Empty(t, serve(r, "/token", nil).Body.String())
}

func TestAccessToken(t *testing.T) {
	assert.Empty(t, AccessToken(context.Background()))
	assert.Equal(t, "tok", AccessToken(WithAccessToken(context.Background(), "tok")))
}

func TestSessionKeys(t *testing.T) {
	authKey, encKey, err := SessionKeys("secret")
	require.NoError(t, err)
	assert.Len(t, authKey, 32)
	assert.Len(t, encKey, 32)
	assert.NotEqual(t, authKey, encKey)

	again, _, err := SessionKeys("secret")
	require.NoError(t, err)
	assert.Equal(t, authKey, again)

	other, _, err := SessionKeys("other")
	require.NoError(t, err)
	assert.NotEqual(t, authKey, other)
}

func TestNewSessionStoreCookie(t *testing.T) {
	cfg := &config.Config{SessionStore: "cookie", SessionSecret: "secret", GinMode: gin.ReleaseMode}

	store, err := NewSessionStore(cfg)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.GET("/", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.KeyAccessToken, "access-1")
		require.NoError(t, session.Save())
		c.Status(http.StatusNoContent)
	})

	w := serve(r, "/", nil)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.NotContains(t, cookies[0].Value, "access-1")
}

func TestSessionTokenStore(t *testing.T) {
	r := newTestRouter()
	r.GET("/save", func(c *gin.Context) {
		store := NewSessionTokenStore(sessions.Default(c))
		require.NoError(t, store.Save(c.Request.Context(), models.Tokens{AccessToken: "a", RefreshToken: "r"}))
		c.Status(http.StatusNoContent)
	})
	r.GET("/load", func(c *gin.Context) {
		tokens, err := NewSessionTokenStore(sessions.Default(c)).Load(c.Request.Context())
		require.NoError(t, err)
		c.String(http.StatusOK, tokens.AccessToken+"/"+tokens.RefreshToken)
	})
	r.GET("/clear", func(c *gin.Context) {
		require.NoError(t, NewSessionTokenStore(sessions.Default(c)).Clear(c.Request.Context()))
		c.Status(http.StatusNoContent)
	})

	saved := serve(r, "/save", nil).Result().Cookies()
	assert.Equal(t, "a/r", serve(r, "/load", saved).Body.String())

	cleared := serve(r, "/clear", saved).Result().Cookies()
	assert.Equal(t, "/", serve(r, "/load", cleared).Body.String())
}

func TestAttachWorkspace(t *testing.T) {
	registry := services.NewWorkspaceRegistry(func(n services.Notifier) *services.Workspace {
		return services.NewWorkspace(services.Repositories{}, services.WithNotifier(n))
	}, time.Hour)

	r := newTestRouter()
	r.GET("/ws", AttachWorkspace(registry), func(c *gin.Context) {
		entry, ok := GetWorkspace(c)
		require.True(t, ok)
		c.String(http.StatusOK, entry.ID)
	})

	first := serve(r, "/ws", nil)
	require.Equal(t, http.StatusOK, first.Code)
	id := first.Body.String()
	require.NotEmpty(t, id)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	// the same session keeps its workspace and does not rewrite the cookie
	second := serve(r, "/ws", cookies)
	assert.Equal(t, id, second.Body.String())
	assert.Empty(t, second.Result().Cookies())
	assert.Equal(t, 1, registry.Len())

	// a workspace evicted server-side is replaced
	registry.Remove(id)
	third := serve(r, "/ws", cookies)
	assert.NotEqual(t, id, third.Body.String())
	assert.NotEmpty(t, third.Result().Cookies())
}

func TestGetWorkspaceMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetWorkspace(c)

	assert.False(t, ok)
}
