package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-web/internal/config"
	"github.com/yukikurage/kanban-web/internal/database"
)

// NewRootCmd builds the kanbanctl command tree around app. verbose, when
// non-nil, is raised to debug by --verbose.
func NewRootCmd(app *App, version string, verbose *slog.LevelVar) *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "kanbanctl",
		Short: "kanbanctl - command line client for the Kanban board API",
		Long: `kanbanctl logs in to the Kanban board API and manages projects, the project
board and its tasks. Tokens and the selected project are kept between runs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug && verbose != nil {
				verbose.Set(slog.LevelDebug)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.projectID, "project", "", "Project id to work on (default: last selected, else first)")

	rootCmd.AddCommand(loginCmd(app))
	rootCmd.AddCommand(registerCmd(app))
	rootCmd.AddCommand(logoutCmd(app))
	rootCmd.AddCommand(whoamiCmd(app))
	rootCmd.AddCommand(projectsCmd(app))
	rootCmd.AddCommand(boardCmd(app))
	rootCmd.AddCommand(taskCmd(app))
	rootCmd.AddCommand(reportCmd(app))

	return rootCmd
}

// Execute runs kanbanctl with the configuration named by KANBAN_CONFIG.
func Execute(version string) error {
	cfg, err := config.Load(os.Getenv("KANBAN_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	level := new(slog.LevelVar)
	level.Set(max(cfg.SlogLevel(), slog.LevelWarn))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	db, err := database.Open(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := database.Migrate(db); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}

	app := NewApp(cfg, db, os.Stdout, logger)
	if err := NewRootCmd(app, version, level).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// withNotices wraps a command body so the notices it produced are printed
// whether or not it failed.
func withNotices(app *App, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer app.printNotices()
		return run(cmd, args)
	}
}
