package dto

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/yukikurage/kanban-web/internal/models"
)

// columnStatusByTitle maps known column titles to their UI status.
var columnStatusByTitle = map[string]models.ColumnStatus{
	"Backlog":      models.StatusBacklog,
	"A Fazer":      models.StatusAFazer,
	"Em Progresso": models.StatusEmProgresso,
	"Concluído":    models.StatusConcluido,
	"Concluido":    models.StatusConcluido,
	"backlog":      models.StatusBacklog,
	"a-fazer":      models.StatusAFazer,
	"em-progresso": models.StatusEmProgresso,
	"concluido":    models.StatusConcluido,
}

var priorityToAPI = map[models.Priority]APIPriority{
	models.PriorityBaixa:   APIPriorityLow,
	models.PriorityMedia:   APIPriorityMedium,
	models.PriorityAlta:    APIPriorityHigh,
	models.PriorityUrgente: APIPriorityHigh,
}

var priorityFromAPI = map[APIPriority]models.Priority{
	APIPriorityLow:    models.PriorityBaixa,
	APIPriorityMedium: models.PriorityMedia,
	APIPriorityHigh:   models.PriorityAlta,
}

// StatusForTitle derives the status of a column from its title. Unknown
// titles yield StatusBacklog and ok=false.
func StatusForTitle(title string) (status models.ColumnStatus, ok bool) {
	status, ok = columnStatusByTitle[title]
	if !ok {
		return models.StatusBacklog, false
	}
	return status, true
}

// PriorityToAPI maps a UI priority to the API enum. Both alta and urgente
// become high, so urgente does not survive a round trip.
func PriorityToAPI(p models.Priority) APIPriority {
	if v, ok := priorityToAPI[p]; ok {
		return v
	}
	return APIPriorityMedium
}

// PriorityFromAPI maps an API priority to the UI enum.
func PriorityFromAPI(p APIPriority) models.Priority {
	if v, ok := priorityFromAPI[p]; ok {
		return v
	}
	return models.PriorityMedia
}

// TaskFromAPI converts an API task owned by the column titled columnTitle.
// The task status comes from the column title, never from the task itself.
func TaskFromAPI(t TaskResponse, columnTitle string) models.Task {
	status, ok := StatusForTitle(columnTitle)
	if !ok {
		slog.Warn("unmapped column title, using backlog", slog.String("title", columnTitle), slog.String("task_id", t.ID))
	}

	task := models.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: deref(t.Description),
		Priority:    PriorityFromAPI(t.Priority),
		Status:      status,
		ColumnID:    t.ColumnID,
		Position:    t.Position,
		AssigneeID:  deref(t.AssigneeID),
		CreatedBy:   t.CreatedBy,
		CreatedAt:   timeOf(t.CreatedAt),
		UpdatedAt:   timeOf(t.UpdatedAt),
	}
	if t.DueDate != nil && !t.DueDate.IsZero() {
		due := t.DueDate.Time
		task.DueDate = &due
	}
	return task
}

// TaskToAPI builds the create payload for task in column columnID. The
// column id is passed explicitly; the task status plays no part.
func TaskToAPI(task models.Task, columnID string) TaskCreate {
	payload := TaskCreate{
		Title:       task.Title,
		Description: ref(task.Description),
		Priority:    PriorityToAPI(task.Priority),
		ColumnID:    columnID,
		AssigneeID:  ref(task.AssigneeID),
	}
	if task.DueDate != nil {
		payload.DueDate = NewTimestamp(*task.DueDate)
	}
	return payload
}

// ColumnFromAPI converts an API column holding tasks. A non-empty status
// overrides the one derived from the title.
func ColumnFromAPI(c ColumnResponse, tasks []models.Task, status models.ColumnStatus) models.KanbanColumn {
	if status == "" {
		var ok bool
		status, ok = StatusForTitle(c.Title)
		if !ok {
			slog.Warn("cannot derive column status, using backlog", slog.String("title", c.Title), slog.String("column_id", c.ID))
		}
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return models.KanbanColumn{
		ID:        c.ID,
		Title:     c.Title,
		Status:    status,
		Position:  c.Position,
		WIPLimit:  c.WIPLimit,
		BoardID:   c.BoardID,
		Tasks:     tasks,
		CreatedAt: timeOf(c.CreatedAt),
		UpdatedAt: timeOf(c.UpdatedAt),
	}
}

// BuildBoard assembles a board from one fetch of the board, its columns and
// every visible task. Tasks are placed by column_id and ordered by position;
// tasks of other boards are ignored.
func BuildBoard(board BoardResponse, columns []ColumnResponse, tasks []TaskResponse) *models.KanbanBoard {
	byColumn := make(map[string][]TaskResponse, len(columns))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}

	out := &models.KanbanBoard{
		ID:        board.ID,
		Name:      board.Name,
		ProjectID: board.ProjectID,
		Columns:   make([]models.KanbanColumn, 0, len(columns)),
	}
	for _, col := range columns {
		apiTasks := byColumn[col.ID]
		sortTasksByPosition(apiTasks)
		colTasks := make([]models.Task, 0, len(apiTasks))
		for _, t := range apiTasks {
			colTasks = append(colTasks, TaskFromAPI(t, col.Title))
		}
		out.Columns = append(out.Columns, ColumnFromAPI(col, colTasks, ""))
	}
	models.SortColumns(out.Columns)
	return out
}

func ProjectFromAPI(p ProjectResponse) models.Project {
	return models.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: deref(p.Description),
		OwnerID:     p.OwnerID,
		CreatedAt:   timeOf(p.CreatedAt),
		UpdatedAt:   timeOf(p.UpdatedAt),
	}
}

func UserFromAPI(u UserResponse) models.User {
	return models.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    deref(u.FullName),
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   timeOf(u.CreatedAt),
		UpdatedAt:   timeOf(u.UpdatedAt),
	}
}

// ColumnMatch records which resolution tier picked a column.
type ColumnMatch int

const (
	MatchNone ColumnMatch = iota
	MatchStatus
	MatchTitle
	MatchSubstring
)

func (m ColumnMatch) String() string {
	switch m {
	case MatchStatus:
		return "status"
	case MatchTitle:
		return "title"
	case MatchSubstring:
		return "substring"
	}
	return "none"
}

// ColumnNotFoundError is returned when no column of a board matches a status.
type ColumnNotFoundError struct {
	Status    models.ColumnStatus
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("no column for status %q (available: %s)", e.Status, strings.Join(e.Available, ", "))
}

// ResolveColumn finds the column a task with status should be created in.
// Tiers are tried in order and the first column matching a tier wins:
// exact status, exact expected title, then case-insensitive substring of the
// status in the title, written either with spaces or with dashes.
func ResolveColumn(board *models.KanbanBoard, status models.ColumnStatus) (models.KanbanColumn, ColumnMatch, error) {
	for _, col := range board.Columns {
		if col.Status == status {
			return col, MatchStatus, nil
		}
	}

	expected := status.Title()
	for _, col := range board.Columns {
		if col.Title == expected {
			return col, MatchTitle, nil
		}
	}

	spaced := strings.ReplaceAll(string(status), "-", " ")
	for _, col := range board.Columns {
		title := strings.ToLower(col.Title)
		if strings.Contains(title, spaced) || strings.Contains(title, string(status)) {
			return col, MatchSubstring, nil
		}
	}

	return models.KanbanColumn{}, MatchNone, &ColumnNotFoundError{
		Status:    status,
		Available: board.ColumnTitles(),
	}
}

func sortTasksByPosition(tasks []TaskResponse) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Position < tasks[j].Position
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ref(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
