package repository

import (
	"context"

	"github.com/yukikurage/kanban-web/internal/dto"
)

// HTTPBoardRepository is an HTTP implementation of BoardRepository
type HTTPBoardRepository struct {
	client *Client
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(client *Client) BoardRepository {
	return &HTTPBoardRepository{client: client}
}

func (r *HTTPBoardRepository) List(ctx context.Context) ([]dto.BoardResponse, error) {
	var out []dto.BoardResponse
	if err := r.client.get(ctx, "/boards", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPBoardRepository) ListByProject(ctx context.Context, projectID string) ([]dto.BoardResponse, error) {
	var out []dto.BoardResponse
	if err := r.client.get(ctx, resourcePath("/boards/project", projectID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPBoardRepository) FindByID(ctx context.Context, id string) (*dto.BoardResponse, error) {
	var out dto.BoardResponse
	if err := r.client.get(ctx, resourcePath("/boards", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPBoardRepository) Create(ctx context.Context, board dto.BoardCreate) (*dto.BoardResponse, error) {
	var out dto.BoardResponse
	if err := r.client.post(ctx, "/boards", board, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPBoardRepository) Update(ctx context.Context, id string, board dto.BoardUpdate) (*dto.BoardResponse, error) {
	var out dto.BoardResponse
	if err := r.client.put(ctx, resourcePath("/boards", id), board, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPBoardRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, resourcePath("/boards", id))
}
