package models

import (
	"sort"
	"strings"
)

// KanbanBoard is the single board of a project. A *KanbanBoard held by a
// workspace is never mutated in place; every change produces a new board.
type KanbanBoard struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	ProjectID string         `json:"project_id"`
	Columns   []KanbanColumn `json:"columns"`
}

// SortColumns orders columns by position, keeping the received order for ties.
func SortColumns(columns []KanbanColumn) {
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Position < columns[j].Position
	})
}

// Clone returns a deep copy of the board.
func (b *KanbanBoard) Clone() *KanbanBoard {
	if b == nil {
		return nil
	}
	out := *b
	out.Columns = make([]KanbanColumn, len(b.Columns))
	for i, col := range b.Columns {
		out.Columns[i] = col
		out.Columns[i].Tasks = append(make([]Task, 0, len(col.Tasks)), col.Tasks...)
	}
	return &out
}

// AllTasks returns every task on the board in column order.
func (b *KanbanBoard) AllTasks() []Task {
	var tasks []Task
	for _, col := range b.Columns {
		tasks = append(tasks, col.Tasks...)
	}
	return tasks
}

// FindTask looks a task up by id across all columns.
func (b *KanbanBoard) FindTask(id string) (Task, bool) {
	for _, col := range b.Columns {
		for _, t := range col.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Task{}, false
}

// ColumnByStatus returns the first column whose derived status is s.
func (b *KanbanBoard) ColumnByStatus(s ColumnStatus) (KanbanColumn, bool) {
	for _, col := range b.Columns {
		if col.Status == s {
			return col, true
		}
	}
	return KanbanColumn{}, false
}

// ColumnTitles lists the column titles in board order.
func (b *KanbanBoard) ColumnTitles() []string {
	titles := make([]string, len(b.Columns))
	for i, col := range b.Columns {
		titles[i] = col.Title
	}
	return titles
}

// WithTaskMoved returns a new board where task id has been taken out of the
// column holding it and appended to target with target's status and id.
// Positions are left untouched; the server reassigns them.
func (b *KanbanBoard) WithTaskMoved(id string, target KanbanColumn) *KanbanBoard {
	task, ok := b.FindTask(id)
	if !ok {
		return b
	}
	task.Status = target.Status
	task.ColumnID = target.ID

	out := b.Clone()
	for i := range out.Columns {
		col := &out.Columns[i]
		if containsTask(col.Tasks, id) {
			col.Tasks = withoutTask(col.Tasks, id)
			continue
		}
		if col.ID == target.ID {
			col.Tasks = append(col.Tasks, task)
		}
	}
	return out
}

// WithoutTask returns a new board with task id removed from every column.
func (b *KanbanBoard) WithoutTask(id string) *KanbanBoard {
	out := b.Clone()
	for i := range out.Columns {
		out.Columns[i].Tasks = withoutTask(out.Columns[i].Tasks, id)
	}
	return out
}

// TaskFilter narrows the tasks displayed on a board.
type TaskFilter struct {
	Query    string
	Priority Priority // empty or "all" keeps every priority
}

// Active reports whether the filter hides anything.
func (f TaskFilter) Active() bool {
	return strings.TrimSpace(f.Query) != "" || (f.Priority != "" && f.Priority != "all")
}

// Filtered returns a copy of the board keeping only tasks matching f. The
// query matches title or description, case-insensitively.
func (b *KanbanBoard) Filtered(f TaskFilter) *KanbanBoard {
	out := b.Clone()
	if !f.Active() {
		return out
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	for i := range out.Columns {
		kept := make([]Task, 0, len(out.Columns[i].Tasks))
		for _, t := range out.Columns[i].Tasks {
			if f.Priority != "" && f.Priority != "all" && t.Priority != f.Priority {
				continue
			}
			if query != "" &&
				!strings.Contains(strings.ToLower(t.Title), query) &&
				!strings.Contains(strings.ToLower(t.Description), query) {
				continue
			}
			kept = append(kept, t)
		}
		out.Columns[i].Tasks = kept
	}
	return out
}

func containsTask(tasks []Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func withoutTask(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
