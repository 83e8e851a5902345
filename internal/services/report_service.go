package services

import (
	"strconv"

	"github.com/yukikurage/kanban-web/internal/models"
)

type StatusCount struct {
	Status models.ColumnStatus `json:"status"`
	Title  string              `json:"title"`
	Count  int                 `json:"count"`
}

type PriorityCount struct {
	Priority models.Priority `json:"priority"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
}

// ColumnCount is one point of the per-column series.
type ColumnCount struct {
	ColumnID string `json:"column_id"`
	Title    string `json:"title"`
	Count    int    `json:"count"`
}

// Report summarizes the tasks of a board.
type Report struct {
	Total      int             `json:"total"`
	Completed  int             `json:"completed"`
	ByStatus   []StatusCount   `json:"by_status"`
	ByPriority []PriorityCount `json:"by_priority"`
	Series     []ColumnCount   `json:"series"`

	// CompletionRate is completed/total as a percentage with one decimal,
	// or "0" for an empty board.
	CompletionRate string `json:"completion_rate"`
}

// BuildReport computes the report of board. Every status is listed; only
// priorities with at least one task are, most pressing first.
func BuildReport(board *models.KanbanBoard) Report {
	r := Report{
		ByStatus:   make([]StatusCount, 0, len(models.Statuses)),
		ByPriority: []PriorityCount{},
		Series:     []ColumnCount{},
	}
	if board == nil {
		r.CompletionRate = "0"
		for _, s := range models.Statuses {
			r.ByStatus = append(r.ByStatus, StatusCount{Status: s, Title: s.Title()})
		}
		return r
	}

	byStatus := make(map[models.ColumnStatus]int)
	byPriority := make(map[models.Priority]int)
	for _, col := range board.Columns {
		r.Series = append(r.Series, ColumnCount{ColumnID: col.ID, Title: col.Title, Count: len(col.Tasks)})
		for _, t := range col.Tasks {
			r.Total++
			byStatus[t.Status]++
			byPriority[t.Priority]++
		}
	}

	for _, s := range models.Statuses {
		r.ByStatus = append(r.ByStatus, StatusCount{Status: s, Title: s.Title(), Count: byStatus[s]})
	}
	for _, p := range models.Priorities {
		if n := byPriority[p]; n > 0 {
			r.ByPriority = append(r.ByPriority, PriorityCount{Priority: p, Label: p.Label(), Count: n})
		}
	}

	r.Completed = byStatus[models.StatusConcluido]
	r.CompletionRate = completionRate(r.Completed, r.Total)
	return r
}

func completionRate(done, total int) string {
	if total == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(done)/float64(total)*100, 'f', 1, 64)
}

// Report summarizes the current board.
func (w *Workspace) Report() (Report, error) {
	board := w.Board()
	if board == nil {
		return Report{}, ErrNoBoardSelected
	}
	return BuildReport(board), nil
}
