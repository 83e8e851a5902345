package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/yukikurage/kanban-web/internal/config"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/models"
	"golang.org/x/crypto/hkdf"
)

const sessionKeyInfo = "kanban-web session keys"

// SessionKeys derives the cookie authentication key (32 bytes) and
// encryption key (32 bytes) from secret.
func SessionKeys(secret string) ([]byte, []byte, error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	authKey := make([]byte, 32)
	encKey := make([]byte, 32)
	if _, err := io.ReadFull(r, authKey); err != nil {
		return nil, nil, fmt.Errorf("failed to derive session keys: %w", err)
	}
	if _, err := io.ReadFull(r, encKey); err != nil {
		return nil, nil, fmt.Errorf("failed to derive session keys: %w", err)
	}
	return authKey, encKey, nil
}

// NewSessionStore builds the session store selected by cfg.SessionStore.
// Tokens live in the session, so cookies are encrypted as well as signed.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	authKey, encKey, err := SessionKeys(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}

	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err = redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			authKey, encKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
	default:
		store = cookie.NewStore(authKey, encKey)
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// SessionTokenStore keeps the token pair in a gin session.
type SessionTokenStore struct {
	session sessions.Session
}

func NewSessionTokenStore(session sessions.Session) *SessionTokenStore {
	return &SessionTokenStore{session: session}
}

func (s *SessionTokenStore) Load(context.Context) (models.Tokens, error) {
	access, _ := s.session.Get(constants.KeyAccessToken).(string)
	refresh, _ := s.session.Get(constants.KeyRefreshToken).(string)
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *SessionTokenStore) Save(_ context.Context, tokens models.Tokens) error {
	s.session.Set(constants.KeyAccessToken, tokens.AccessToken)
	s.session.Set(constants.KeyRefreshToken, tokens.RefreshToken)
	return s.session.Save()
}

func (s *SessionTokenStore) Clear(context.Context) error {
	s.session.Delete(constants.KeyAccessToken)
	s.session.Delete(constants.KeyRefreshToken)
	return s.session.Save()
}
