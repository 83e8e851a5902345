package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yukikurage/kanban-web/internal/dto"
)

// HTTPProjectRepository is an HTTP implementation of ProjectRepository
type HTTPProjectRepository struct {
	client *Client
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(client *Client) ProjectRepository {
	return &HTTPProjectRepository{client: client}
}

func (r *HTTPProjectRepository) List(ctx context.Context, params dto.ListParams) ([]dto.ProjectResponse, error) {
	q := url.Values{}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var out []dto.ProjectResponse
	if err := r.client.get(ctx, "/projects", &out, WithQuery(q)); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPProjectRepository) FindByID(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := r.client.get(ctx, resourcePath("/projects", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPProjectRepository) Create(ctx context.Context, project dto.ProjectCreate) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := r.client.post(ctx, "/projects", project, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPProjectRepository) Update(ctx context.Context, id string, project dto.ProjectUpdate) (*dto.ProjectResponse, error) {
	var out dto.ProjectResponse
	if err := r.client.put(ctx, resourcePath("/projects", id), project, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPProjectRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, resourcePath("/projects", id))
}
