package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/kanban-web/internal/config"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/dto"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
	"github.com/yukikurage/kanban-web/internal/repository"
	"github.com/yukikurage/kanban-web/internal/services"
	"gorm.io/gorm"
)

var (
	errNotLoggedIn = errors.New("not logged in, run `kanbanctl login` first")
	errNoProjects  = errors.New("no projects, create one with `kanbanctl projects create`")
)

// App is one kanbanctl invocation. Tokens and the selected project survive
// between invocations in the state store.
type App struct {
	out    io.Writer
	logger *slog.Logger
	styles styles

	state     repository.StateRepository
	session   *services.Session
	workspace *services.Workspace
	notices   *services.NoticeQueue

	projectID string
}

// NewApp wires an App writing to out against the board API of cfg, keeping
// its state in db.
func NewApp(cfg *config.Config, db *gorm.DB, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}

	state := repository.NewStateRepository(db, cfg.StateProfile)
	tokens := services.NewStateTokenStore(state, logger)
	client := repository.NewClient(cfg.APIBaseURL, &http.Client{Timeout: cfg.HTTPTimeout}, tokens, logger)
	notices := &services.NoticeQueue{}

	return &App{
		out:     out,
		logger:  logger,
		styles:  newStyles(lipgloss.NewRenderer(out)),
		state:   state,
		session: services.NewSession(repository.NewAuthRepository(client), tokens, logger),
		workspace: services.NewWorkspace(services.Repositories{
			Projects: repository.NewProjectRepository(client),
			Boards:   repository.NewBoardRepository(client),
			Columns:  repository.NewColumnRepository(client),
			Tasks:    repository.NewTaskRepository(client),
		},
			services.WithNotifier(notices),
			services.WithLogger(logger),
			services.WithMutationTimeout(cfg.MutationTimeout),
		),
		notices: notices,
	}
}

// requireLogin restores the session and fails when no valid token is stored.
func (a *App) requireLogin(ctx context.Context) error {
	if err := a.session.Init(ctx); err != nil {
		return err
	}
	if !a.session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}

// openBoard selects the project named by --project, else the one selected
// last time, else the first project, and remembers the choice.
func (a *App) openBoard(ctx context.Context) error {
	id := a.projectID
	if id == "" {
		stored, _, err := a.state.Get(ctx, constants.KeyProjectID)
		if err != nil {
			return fmt.Errorf("failed to read selected project: %w", err)
		}
		id = stored
	}

	if id != "" {
		err := a.workspace.SelectProject(ctx, id)
		if err == nil {
			return a.rememberProject(ctx)
		}
		// a remembered project deleted elsewhere falls back to the first one
		if a.projectID != "" || apierrors.StatusCode(err) != http.StatusNotFound {
			return err
		}
		a.logger.Info("selected project no longer exists", slog.String("project_id", id))
		a.notices.Drain()
	}

	if err := a.workspace.LoadProjects(ctx, dto.ListParams{}); err != nil {
		return err
	}
	if a.workspace.CurrentProject() == nil {
		return errNoProjects
	}
	return a.rememberProject(ctx)
}

func (a *App) rememberProject(ctx context.Context) error {
	project := a.workspace.CurrentProject()
	if project == nil {
		return a.state.Delete(ctx, constants.KeyProjectID)
	}
	return a.state.Set(ctx, constants.KeyProjectID, project.ID)
}

// printNotices writes the notices produced by the command.
func (a *App) printNotices() {
	for _, n := range a.notices.Drain() {
		fmt.Fprintln(a.out, a.styles.notice(n))
	}
}
