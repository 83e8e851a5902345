package repository

import (
	"context"

	"github.com/yukikurage/kanban-web/internal/dto"
)

// HTTPAuthRepository is an HTTP implementation of AuthRepository
type HTTPAuthRepository struct {
	client *Client
}

// NewAuthRepository creates a new AuthRepository
func NewAuthRepository(client *Client) AuthRepository {
	return &HTTPAuthRepository{client: client}
}

// Register sends no Authorization header.
func (r *HTTPAuthRepository) Register(ctx context.Context, user dto.UserCreate) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := r.client.post(ctx, "/auth/register", user, &out, WithBearer("")); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login sends no Authorization header.
func (r *HTTPAuthRepository) Login(ctx context.Context, credentials dto.UserLogin) (*dto.Token, error) {
	var out dto.Token
	if err := r.client.post(ctx, "/auth/login", credentials, &out, WithBearer("")); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPAuthRepository) Me(ctx context.Context, accessToken string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := r.client.get(ctx, "/auth/me", &out, WithBearer(accessToken)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh authenticates with the refresh token as bearer.
func (r *HTTPAuthRepository) Refresh(ctx context.Context, refreshToken string) (*dto.Token, error) {
	var out dto.Token
	if err := r.client.post(ctx, "/auth/refresh", nil, &out, WithBearer(refreshToken)); err != nil {
		return nil, err
	}
	return &out, nil
}
