package repository

import (
	"context"
	"net/url"
	"strconv"

	"github.com/yukikurage/kanban-web/internal/dto"
)

// HTTPTaskRepository is an HTTP implementation of TaskRepository
type HTTPTaskRepository struct {
	client *Client
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(client *Client) TaskRepository {
	return &HTTPTaskRepository{client: client}
}

// List retrieves tasks with filtering and pagination
func (r *HTTPTaskRepository) List(ctx context.Context, filter dto.TaskListFilter) ([]dto.TaskResponse, error) {
	q := url.Values{}
	if filter.ColumnID != "" {
		q.Set("column_id", filter.ColumnID)
	}
	if filter.Priority != "" {
		q.Set("priority", string(filter.Priority))
	}
	if filter.AssigneeID != "" {
		q.Set("assignee_id", filter.AssigneeID)
	}
	if filter.Skip > 0 {
		q.Set("skip", strconv.Itoa(filter.Skip))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	var out []dto.TaskResponse
	if err := r.client.get(ctx, "/tasks", &out, WithQuery(q)); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *HTTPTaskRepository) FindByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := r.client.get(ctx, resourcePath("/tasks", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPTaskRepository) Create(ctx context.Context, task dto.TaskCreate) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := r.client.post(ctx, "/tasks", task, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPTaskRepository) Update(ctx context.Context, id string, task dto.TaskUpdate) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := r.client.put(ctx, resourcePath("/tasks", id), task, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Move relocates a task via PATCH /tasks/{id}/move
func (r *HTTPTaskRepository) Move(ctx context.Context, id string, move dto.TaskMove) (*dto.TaskResponse, error) {
	var out dto.TaskResponse
	if err := r.client.patch(ctx, resourcePath("/tasks", id)+"/move", move, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *HTTPTaskRepository) Delete(ctx context.Context, id string) error {
	return r.client.delete(ctx, resourcePath("/tasks", id))
}
