package repository

import (
	"context"

	"github.com/yukikurage/kanban-web/internal/dto"
)

// HTTPColumnRepository is an HTTP implementation of ColumnRepository
type HTTPColumnRepository struct {
	client *Client
}

// NewColumnRepository creates a new ColumnRepository
func NewColumnRepository(client *Client) ColumnRepository {
	return &HTTPColumnRepository{client: client}
}

func (r *HTTPColumnRepository) List(ctx context.Context) ([]dto.ColumnResponse, error) {
	var out []dto.ColumnResponse
	if err := r.client.get(ctx, "/columns", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPColumnRepository) ListByBoard(ctx context.Context, boardID string) ([]dto.ColumnResponse, error) {
	var out []dto.ColumnResponse
	if err := r.client.get(ctx, resourcePath("/columns/board", boardID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPColumnRepository) FindByID(ctx context.Context, id string) (*dto.ColumnResponse, error) {
	var out dto.ColumnResponse
	if err := r.client.get(ctx, resourcePath("/columns", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPColumnRepository) Create(ctx context.Context, column dto.ColumnCreate) (*dto.ColumnResponse, error) {
	var out dto.ColumnResponse
	if err := r.client.post(ctx, "/columns", column, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPColumnRepository) Update(ctx context.Context, id string, column dto.ColumnUpdate) (*dto.ColumnResponse, error) {
	var out dto.ColumnResponse
	if err := r.client.put(ctx, resourcePath("/columns", id), column, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPColumnRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, resourcePath("/columns", id))
}
