package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/kanban-web/internal/config"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/handlers"
	"github.com/yukikurage/kanban-web/internal/middleware"
	"github.com/yukikurage/kanban-web/internal/repository"
	"github.com/yukikurage/kanban-web/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("KANBAN_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var logger *slog.Logger
	if cfg.GinMode == gin.ReleaseMode {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	slog.SetDefault(logger)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	handlers.ConfigureBinding()

	store, err := middleware.NewSessionStore(cfg)
	if err != nil {
		logger.Error("failed to create session store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := newWorkspaceRegistry(cfg, logger)
	r := setupRouter(cfg, store, registry, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sweepWorkspaces(ctx, registry, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("api", cfg.APIBaseURL))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// newWorkspaceRegistry builds the per-session workspaces over one shared
// board API client. The client reads the access token from the request
// context, filled in by middleware.InjectTokens.
func newWorkspaceRegistry(cfg *config.Config, logger *slog.Logger) *services.WorkspaceRegistry {
	client := newClient(cfg, logger)
	repos := services.Repositories{
		Projects: repository.NewProjectRepository(client),
		Boards:   repository.NewBoardRepository(client),
		Columns:  repository.NewColumnRepository(client),
		Tasks:    repository.NewTaskRepository(client),
	}

	return services.NewWorkspaceRegistry(func(notifier services.Notifier) *services.Workspace {
		return services.NewWorkspace(repos,
			services.WithNotifier(notifier),
			services.WithLogger(logger),
			services.WithMutationTimeout(cfg.MutationTimeout),
		)
	}, constants.WorkspaceIdleTTL)
}

func newClient(cfg *config.Config, logger *slog.Logger) *repository.Client {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	return repository.NewClient(cfg.APIBaseURL, httpClient, repository.TokenSourceFunc(middleware.AccessToken), logger)
}

func setupRouter(cfg *config.Config, store sessions.Store, registry *services.WorkspaceRegistry, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.InjectTokens())

	authHandler := handlers.NewAuthHandler(repository.NewAuthRepository(newClient(cfg, logger)), registry, logger)
	boardHandler := handlers.NewBoardHandler(logger)

	handlers.RegisterRoutes(r, authHandler, boardHandler, registry)
	return r
}

// sweepWorkspaces drops idle workspaces until ctx is done.
func sweepWorkspaces(ctx context.Context, registry *services.WorkspaceRegistry, logger *slog.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Sweep(); n > 0 {
				logger.Debug("evicted idle workspaces", slog.Int("count", n), slog.Int("remaining", registry.Len()))
			}
		}
	}
}
