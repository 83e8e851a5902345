package services

import (
	"context"
	"log/slog"

	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/repository"
)

// TokenStore persists the access/refresh token pair between runs.
type TokenStore interface {
	Load(ctx context.Context) (models.Tokens, error)
	Save(ctx context.Context, tokens models.Tokens) error
	Clear(ctx context.Context) error
}

// StateTokenStore keeps tokens in a StateRepository under the
// access_token/refresh_token keys. It doubles as the client's TokenSource.
type StateTokenStore struct {
	state  repository.StateRepository
	logger *slog.Logger
}

func NewStateTokenStore(state repository.StateRepository, logger *slog.Logger) *StateTokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateTokenStore{state: state, logger: logger}
}

func (s *StateTokenStore) Load(ctx context.Context) (models.Tokens, error) {
	access, _, err := s.state.Get(ctx, constants.KeyAccessToken)
	if err != nil {
		return models.Tokens{}, err
	}
	refresh, _, err := s.state.Get(ctx, constants.KeyRefreshToken)
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *StateTokenStore) Save(ctx context.Context, tokens models.Tokens) error {
	if err := s.state.Set(ctx, constants.KeyAccessToken, tokens.AccessToken); err != nil {
		return err
	}
	return s.state.Set(ctx, constants.KeyRefreshToken, tokens.RefreshToken)
}

func (s *StateTokenStore) Clear(ctx context.Context) error {
	return s.state.Delete(ctx, constants.KeyAccessToken, constants.KeyRefreshToken)
}

// AccessToken returns the stored access token, or "" when absent or
// unreadable.
func (s *StateTokenStore) AccessToken(ctx context.Context) string {
	token, _, err := s.state.Get(ctx, constants.KeyAccessToken)
	if err != nil {
		s.logger.Warn("failed to read access token", slog.String("error", err.Error()))
		return ""
	}
	return token
}

// MemoryTokenStore keeps tokens in memory.
type MemoryTokenStore struct {
	tokens models.Tokens
}

func (m *MemoryTokenStore) Load(context.Context) (models.Tokens, error) {
	return m.tokens, nil
}

func (m *MemoryTokenStore) Save(_ context.Context, tokens models.Tokens) error {
	m.tokens = tokens
	return nil
}

func (m *MemoryTokenStore) Clear(context.Context) error {
	m.tokens = models.Tokens{}
	return nil
}

func (m *MemoryTokenStore) AccessToken(context.Context) string {
	return m.tokens.AccessToken
}
