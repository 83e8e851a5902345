package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/yukikurage/kanban-web/internal/dto"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/repository"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoRefreshToken   = errors.New("no refresh token available")
)

// LoginInput holds login credentials.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterInput holds the registration form.
type RegisterInput struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Email           string `json:"email" binding:"required,email"`
	FullName        string `json:"full_name"`
	Password        string `json:"password" binding:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// Session is the authentication context of one client. It owns the token
// pair through a TokenStore and caches the current user. Call Init before use
// and Teardown when done.
type Session struct {
	auth   repository.AuthRepository
	store  TokenStore
	logger *slog.Logger

	mu   sync.RWMutex
	user *models.User
}

// NewSession creates a new Session.
func NewSession(auth repository.AuthRepository, store TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		auth:   auth,
		store:  store,
		logger: logger,
	}
}

// Init restores the user from stored tokens. A stored token the API rejects
// is cleared and the session stays unauthenticated; only storage failures
// are returned.
func (s *Session) Init(ctx context.Context) error {
	tokens, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tokens: %w", err)
	}
	if tokens.AccessToken == "" {
		s.setUser(nil)
		return nil
	}

	me, err := s.auth.Me(ctx, tokens.AccessToken)
	if err != nil {
		s.logger.Info("stored token rejected, clearing", slog.String("error", err.Error()))
		s.setUser(nil)
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("failed to clear tokens: %w", clearErr)
		}
		return nil
	}

	user := dto.UserFromAPI(*me)
	s.setUser(&user)
	return nil
}

// Teardown drops the cached user and the stored tokens.
func (s *Session) Teardown(ctx context.Context) error {
	return s.Logout(ctx)
}

// Login exchanges credentials for tokens, stores them and loads the user.
func (s *Session) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	token, err := s.auth.Login(ctx, dto.UserLogin{
		Username: strings.TrimSpace(input.Username),
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	tokens := models.Tokens{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	if err := s.store.Save(ctx, tokens); err != nil {
		return nil, fmt.Errorf("failed to store tokens: %w", err)
	}

	me, err := s.auth.Me(ctx, token.AccessToken)
	if err != nil {
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.logger.Error("failed to clear tokens", slog.String("error", clearErr.Error()))
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}

	user := dto.UserFromAPI(*me)
	s.setUser(&user)
	s.logger.Info("user logged in", slog.String("username", user.Username))
	return &user, nil
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	payload := dto.UserCreate{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	}
	if name := strings.TrimSpace(input.FullName); name != "" {
		payload.FullName = &name
	}

	created, err := s.auth.Register(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	user := dto.UserFromAPI(*created)
	return &user, nil
}

// Refresh trades the stored refresh token for a new pair. Any failure logs
// the session out.
func (s *Session) Refresh(ctx context.Context) error {
	tokens, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tokens: %w", err)
	}
	if tokens.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	token, err := s.auth.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		s.logger.Info("token refresh failed, logging out", slog.String("error", err.Error()))
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.logger.Error("failed to clear tokens", slog.String("error", logoutErr.Error()))
		}
		return fmt.Errorf("refresh failed: %w", err)
	}

	tokens = models.Tokens{AccessToken: token.AccessToken, RefreshToken: token.RefreshToken}
	if err := s.store.Save(ctx, tokens); err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}

	me, err := s.auth.Me(ctx, token.AccessToken)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	user := dto.UserFromAPI(*me)
	s.setUser(&user)
	return nil
}

// Logout clears the stored tokens and the cached user.
func (s *Session) Logout(ctx context.Context) error {
	s.setUser(nil)
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

// User returns a copy of the current user, or ErrNotAuthenticated.
func (s *Session) User() (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrNotAuthenticated
	}
	u := *s.user
	return &u, nil
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) setUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}
