package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/dto"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoBoardSelected    = errors.New("no board selected")
	ErrTaskNotFound       = errors.New("task not found")
	ErrMoveInProgress     = errors.New("another task move is in progress")
	ErrInvalidStatus      = errors.New("invalid column status")
	ErrColumnProvisioning = errors.New("failed to create default columns")
)

func intPtr(v int) *int { return &v }

// DefaultColumns is the column set created on a board that has none.
var DefaultColumns = []dto.ColumnCreate{
	{Title: "Backlog", Position: 0, WIPLimit: nil},
	{Title: "A Fazer", Position: 1, WIPLimit: intPtr(5)},
	{Title: "Em Progresso", Position: 2, WIPLimit: intPtr(3)},
	{Title: "Concluído", Position: 3, WIPLimit: nil},
}

// Repositories groups the API resources a Workspace reads and writes.
type Repositories struct {
	Projects repository.ProjectRepository
	Boards   repository.BoardRepository
	Columns  repository.ColumnRepository
	Tasks    repository.TaskRepository
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithNotifier sets where operation outcomes are reported.
func WithNotifier(n Notifier) WorkspaceOption {
	return func(w *Workspace) { w.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) WorkspaceOption {
	return func(w *Workspace) { w.logger = l }
}

// WithMutationTimeout bounds each create, move and delete round trip. On
// expiry the mutation counts as failed and the board is reloaded.
func WithMutationTimeout(d time.Duration) WorkspaceOption {
	return func(w *Workspace) { w.mutationTimeout = d }
}

// TaskInput is the task creation form.
type TaskInput struct {
	Title       string              `json:"title" binding:"required,min=1,max=100"`
	Description string              `json:"description" binding:"max=500"`
	Priority    models.Priority     `json:"priority" binding:"required,oneof=baixa media alta urgente"`
	Status      models.ColumnStatus `json:"status" binding:"required,oneof=backlog a-fazer em-progresso concluido"`
	AssigneeID  string              `json:"assignee_id"`
	DueDate     *time.Time          `json:"due_date"`
}

// ProjectInput is the project creation form.
type ProjectInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// Workspace holds the projects of a user, the selected project and the
// board of that project, and keeps the board consistent with the API.
//
// Board snapshots are immutable. Optimistic edits publish a new snapshot
// before the API call; a failed call reloads everything from the API.
type Workspace struct {
	projects repository.ProjectRepository
	boards   repository.BoardRepository
	columns  repository.ColumnRepository
	tasks    repository.TaskRepository

	notifier        Notifier
	logger          *slog.Logger
	mutationTimeout time.Duration

	mu           sync.RWMutex
	projectList  []models.Project
	current      *models.Project
	board        *models.KanbanBoard
	loading      bool
	loadErr      string
	movingTaskID string
}

// NewWorkspace creates a new Workspace.
func NewWorkspace(repos Repositories, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		projects: repos.Projects,
		boards:   repos.Boards,
		columns:  repos.Columns,
		tasks:    repos.Tasks,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.notifier == nil {
		w.notifier = NotifierFunc(func(Notice) {})
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// Projects returns the loaded projects.
func (w *Workspace) Projects() []models.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append(make([]models.Project, 0, len(w.projectList)), w.projectList...)
}

// CurrentProject returns the selected project, or nil.
func (w *Workspace) CurrentProject() *models.Project {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.current == nil {
		return nil
	}
	p := *w.current
	return &p
}

// Board returns the current board snapshot, or nil. Callers must not modify it.
func (w *Workspace) Board() *models.KanbanBoard {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.board
}

func (w *Workspace) Loading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loading
}

// Err returns the message of the last failed load, or "".
func (w *Workspace) Err() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loadErr
}

// MovingTaskID returns the id of the task whose move is in flight, or "".
func (w *Workspace) MovingTaskID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.movingTaskID
}

// LoadProjects fetches the project list. When nothing is selected yet the
// first project is selected.
func (w *Workspace) LoadProjects(ctx context.Context, params dto.ListParams) error {
	list, err := w.projects.List(ctx, params)
	if err != nil {
		w.setLoadErr(err)
		w.logger.Error("failed to load projects", slog.String("error", err.Error()))
		w.notifyError("Failed to load projects", err)
		return fmt.Errorf("failed to load projects: %w", err)
	}

	projects := make([]models.Project, 0, len(list))
	for _, p := range list {
		projects = append(projects, dto.ProjectFromAPI(p))
	}

	w.mu.Lock()
	w.projectList = projects
	w.loadErr = ""
	selectFirst := w.current == nil && len(projects) > 0
	w.mu.Unlock()

	if selectFirst {
		return w.SelectProject(ctx, projects[0].ID)
	}
	return nil
}

// SelectProject makes id the current project and loads its board. A project
// without boards gets one named "<project> - Board Principal"; a board
// without columns gets DefaultColumns.
func (w *Workspace) SelectProject(ctx context.Context, id string) error {
	w.mu.Lock()
	w.loading = true
	w.loadErr = ""
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.loading = false
		w.mu.Unlock()
	}()

	board, err := w.loadProjectBoard(ctx, id)
	if err != nil {
		w.setLoadErr(err)
		w.logger.Error("failed to load board", slog.String("project_id", id), slog.String("error", err.Error()))
		w.notifyError("Failed to load board", err)
		return err
	}

	w.setBoard(board)
	return nil
}

// loadProjectBoard selects project id as soon as it is fetched, so a failed
// board load can be retried through Refresh.
func (w *Workspace) loadProjectBoard(ctx context.Context, id string) (*models.KanbanBoard, error) {
	resp, err := w.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	project := dto.ProjectFromAPI(*resp)

	w.mu.Lock()
	if w.current == nil || w.current.ID != project.ID {
		w.board = nil
	}
	w.current = &project
	w.mu.Unlock()

	boards, err := w.boards.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}

	var boardID string
	if len(boards) == 0 {
		created, err := w.boards.Create(ctx, dto.BoardCreate{
			Name:      project.Name + constants.DefaultBoardSuffix,
			ProjectID: project.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create board: %w", err)
		}
		w.logger.Info("created default board", slog.String("project_id", project.ID), slog.String("board_id", created.ID))
		boardID = created.ID
	} else {
		boardID = boards[0].ID
	}

	return w.loadBoard(ctx, boardID)
}

// loadBoard fetches a board and provisions the default columns if it has none.
func (w *Workspace) loadBoard(ctx context.Context, boardID string) (*models.KanbanBoard, error) {
	board, columns, tasks, err := w.fetchBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		if err := w.provisionColumns(ctx, boardID); err != nil {
			return nil, err
		}
		if columns, err = w.columns.ListByBoard(ctx, boardID); err != nil {
			return nil, fmt.Errorf("failed to list columns: %w", err)
		}
	}
	return dto.BuildBoard(*board, columns, tasks), nil
}

// fetchBoard reads the board, its columns and all visible tasks in parallel.
func (w *Workspace) fetchBoard(ctx context.Context, boardID string) (*dto.BoardResponse, []dto.ColumnResponse, []dto.TaskResponse, error) {
	var (
		board   *dto.BoardResponse
		columns []dto.ColumnResponse
		tasks   []dto.TaskResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if board, err = w.boards.FindByID(gctx, boardID); err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if columns, err = w.columns.ListByBoard(gctx, boardID); err != nil {
			return fmt.Errorf("failed to list columns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tasks, err = w.tasks.List(gctx, dto.TaskListFilter{}); err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return board, columns, tasks, nil
}

func (w *Workspace) provisionColumns(ctx context.Context, boardID string) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, col := range DefaultColumns {
		col.BoardID = boardID
		g.Go(func() error {
			_, err := w.columns.Create(gctx, col)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrColumnProvisioning, err)
	}
	w.logger.Info("created default columns", slog.String("board_id", boardID))
	return nil
}

// SyncBoard refetches the current board and replaces the snapshot. Without
// a selected project or board it does nothing.
func (w *Workspace) SyncBoard(ctx context.Context) error {
	w.mu.RLock()
	hasProject := w.current != nil
	current := w.board
	w.mu.RUnlock()
	if !hasProject || current == nil {
		return nil
	}

	board, columns, tasks, err := w.fetchBoard(ctx, current.ID)
	if err != nil {
		w.logger.Warn("board sync failed", slog.String("board_id", current.ID), slog.String("error", err.Error()))
		return err
	}
	w.setBoard(dto.BuildBoard(*board, columns, tasks))
	return nil
}

// Refresh reloads the current project and its board from scratch, or the
// project list when nothing is selected.
func (w *Workspace) Refresh(ctx context.Context) error {
	if p := w.CurrentProject(); p != nil {
		return w.SelectProject(ctx, p.ID)
	}
	return w.LoadProjects(ctx, dto.ListParams{})
}

// CreateProject creates a project and selects it.
func (w *Workspace) CreateProject(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	payload := dto.ProjectCreate{Name: strings.TrimSpace(input.Name)}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		payload.Description = &desc
	}

	created, err := w.projects.Create(ctx, payload)
	if err != nil {
		w.notifyError("Failed to create project", err)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project := dto.ProjectFromAPI(*created)

	w.mu.Lock()
	w.projectList = append(w.projectList, project)
	w.mu.Unlock()

	w.notify(Notice{Title: "Project created", Description: fmt.Sprintf("%q was created.", project.Name)})
	if err := w.SelectProject(ctx, project.ID); err != nil {
		return &project, err
	}
	return &project, nil
}

// DeleteProject deletes a project. Deleting the current project clears the
// selection and the board.
func (w *Workspace) DeleteProject(ctx context.Context, id string) error {
	if err := w.projects.Delete(ctx, id); err != nil {
		w.notifyError("Failed to delete project", err)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	w.mu.Lock()
	kept := make([]models.Project, 0, len(w.projectList))
	for _, p := range w.projectList {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	w.projectList = kept
	if w.current != nil && w.current.ID == id {
		w.current = nil
		w.board = nil
	}
	w.mu.Unlock()

	w.notify(Notice{Title: "Project deleted"})
	return nil
}

// CreateTask creates a task in the column resolved for input.Status. It is
// not optimistic: the board changes only through the following sync.
func (w *Workspace) CreateTask(ctx context.Context, input TaskInput) (*models.Task, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}
	board := w.Board()
	if board == nil {
		return nil, ErrNoBoardSelected
	}

	col, match, err := dto.ResolveColumn(board, input.Status)
	if err != nil {
		w.logger.Warn("no column for new task", slog.String("status", string(input.Status)), slog.String("error", err.Error()))
		w.notifyError("Failed to create task", err)
		return nil, err
	}
	if match != dto.MatchStatus {
		w.logger.Debug("column resolved by fallback", slog.String("status", string(input.Status)), slog.String("match", match.String()), slog.String("column", col.Title))
	}

	payload := dto.TaskToAPI(models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Priority:    input.Priority,
		AssigneeID:  input.AssigneeID,
		DueDate:     input.DueDate,
	}, col.ID)

	mctx, cancel := w.mutationContext(ctx)
	created, err := w.tasks.Create(mctx, payload)
	cancel()
	if err != nil {
		w.failMutation(ctx, "Failed to create task", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	task := dto.TaskFromAPI(*created, col.Title)
	w.syncAfterMutation(ctx)
	w.notify(Notice{Title: "Task created", Description: fmt.Sprintf("%q was added to %s.", task.Title, col.Title)})
	return &task, nil
}

// MoveTask moves a task to the column with status target. The snapshot is
// updated before the API call and reloaded if the call fails. Only one move
// may be in flight. Moving a task to its current column does nothing.
func (w *Workspace) MoveTask(ctx context.Context, taskID string, target models.ColumnStatus) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	w.mu.Lock()
	if w.board == nil {
		w.mu.Unlock()
		return ErrNoBoardSelected
	}
	if w.movingTaskID != "" {
		w.mu.Unlock()
		return ErrMoveInProgress
	}
	task, ok := w.board.FindTask(taskID)
	if !ok {
		w.mu.Unlock()
		return ErrTaskNotFound
	}
	col, ok := w.board.ColumnByStatus(target)
	if !ok {
		w.mu.Unlock()
		return &dto.ColumnNotFoundError{Status: target, Available: w.board.ColumnTitles()}
	}
	if task.Status == target {
		w.mu.Unlock()
		return nil
	}
	w.board = w.board.WithTaskMoved(taskID, col)
	w.movingTaskID = taskID
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.movingTaskID = ""
		w.mu.Unlock()
	}()

	mctx, cancel := w.mutationContext(ctx)
	_, err := w.tasks.Move(mctx, taskID, dto.TaskMove{ColumnID: col.ID, Position: 0})
	cancel()
	if err != nil {
		w.failMutation(ctx, "Failed to move task", err)
		return fmt.Errorf("failed to move task: %w", err)
	}

	w.syncAfterMutation(ctx)
	w.notify(Notice{Title: "Task moved", Description: fmt.Sprintf("%q moved to %s.", task.Title, col.Title)})
	return nil
}

// DeleteTask removes a task. The snapshot drops it before the API call and
// is reloaded if the call fails.
func (w *Workspace) DeleteTask(ctx context.Context, taskID string) error {
	w.mu.Lock()
	if w.board == nil {
		w.mu.Unlock()
		return ErrNoBoardSelected
	}
	task, ok := w.board.FindTask(taskID)
	if !ok {
		w.mu.Unlock()
		return ErrTaskNotFound
	}
	w.board = w.board.WithoutTask(taskID)
	w.mu.Unlock()

	mctx, cancel := w.mutationContext(ctx)
	err := w.tasks.Delete(mctx, taskID)
	cancel()
	if err != nil {
		w.failMutation(ctx, "Failed to delete task", err)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	w.syncAfterMutation(ctx)
	w.notify(Notice{Title: "Task deleted", Description: fmt.Sprintf("%q was deleted.", task.Title)})
	return nil
}

func (w *Workspace) mutationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.mutationTimeout > 0 {
		return context.WithTimeout(ctx, w.mutationTimeout)
	}
	return ctx, func() {}
}

// failMutation reloads the board from the API and reports err. The reload
// runs even if ctx has been cancelled or timed out.
func (w *Workspace) failMutation(ctx context.Context, title string, err error) {
	w.logger.Error(strings.ToLower(title), slog.String("error", err.Error()))

	if rerr := w.Refresh(context.WithoutCancel(ctx)); rerr != nil {
		w.logger.Error("reload after failed mutation failed", slog.String("error", rerr.Error()))
	}
	w.notifyError(title, err)
}

// syncAfterMutation refreshes the board after a successful mutation. A
// failed sync leaves the optimistic snapshot in place.
func (w *Workspace) syncAfterMutation(ctx context.Context) {
	if err := w.SyncBoard(ctx); err != nil {
		w.logger.Warn("sync after mutation failed", slog.String("error", err.Error()))
	}
}

func (w *Workspace) setBoard(b *models.KanbanBoard) {
	w.mu.Lock()
	w.board = b
	w.mu.Unlock()
}

func (w *Workspace) setLoadErr(err error) {
	w.mu.Lock()
	w.loadErr = err.Error()
	w.mu.Unlock()
}

func (w *Workspace) notify(n Notice) {
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	w.notifier.Notify(n)
}

func (w *Workspace) notifyError(title string, err error) {
	w.notify(Notice{Title: title, Description: err.Error(), Variant: VariantDestructive})
}
