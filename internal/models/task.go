package models

import "time"

// Priority is the four-level priority shown in the UI. The remote API only
// knows three levels, see dto.TaskToAPI.
type Priority string

const (
	PriorityBaixa   Priority = "baixa"
	PriorityMedia   Priority = "media"
	PriorityAlta    Priority = "alta"
	PriorityUrgente Priority = "urgente"
)

// Priorities lists every UI priority from most to least pressing.
var Priorities = []Priority{PriorityUrgente, PriorityAlta, PriorityMedia, PriorityBaixa}

// Valid reports whether p is one of the known UI priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityBaixa, PriorityMedia, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// Label returns the display label of the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityBaixa:
		return "Baixa"
	case PriorityMedia:
		return "Média"
	case PriorityAlta:
		return "Alta"
	case PriorityUrgente:
		return "Urgente"
	}
	return string(p)
}

// Task is a task as held by a board. Status always mirrors the status of the
// column that owns it.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Priority    Priority     `json:"priority"`
	Status      ColumnStatus `json:"status"`
	ColumnID    string       `json:"column_id"`
	Position    int          `json:"position"`
	AssigneeID  string       `json:"assignee_id,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedBy   string       `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
