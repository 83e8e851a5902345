package models

import "time"

// ColumnStatus is the UI status derived from a column title.
type ColumnStatus string

const (
	StatusBacklog     ColumnStatus = "backlog"
	StatusAFazer      ColumnStatus = "a-fazer"
	StatusEmProgresso ColumnStatus = "em-progresso"
	StatusConcluido   ColumnStatus = "concluido"
)

// Statuses lists the statuses in board order.
var Statuses = []ColumnStatus{StatusBacklog, StatusAFazer, StatusEmProgresso, StatusConcluido}

// Valid reports whether s is one of the known statuses.
func (s ColumnStatus) Valid() bool {
	switch s {
	case StatusBacklog, StatusAFazer, StatusEmProgresso, StatusConcluido:
		return true
	}
	return false
}

// Title returns the column title expected for the status.
func (s ColumnStatus) Title() string {
	switch s {
	case StatusBacklog:
		return "Backlog"
	case StatusAFazer:
		return "A Fazer"
	case StatusEmProgresso:
		return "Em Progresso"
	case StatusConcluido:
		return "Concluído"
	}
	return string(s)
}

// KanbanColumn is a positioned bucket of tasks.
type KanbanColumn struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    ColumnStatus `json:"status"`
	Position  int          `json:"position"`
	WIPLimit  *int         `json:"wip_limit"`
	BoardID   string       `json:"board_id"`
	Tasks     []Task       `json:"tasks"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// OverWIP reports whether the column holds more tasks than its WIP limit.
// The limit is advisory.
func (c KanbanColumn) OverWIP() bool {
	return c.WIPLimit != nil && len(c.Tasks) > *c.WIPLimit
}
