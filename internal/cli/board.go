package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-web/internal/models"
	"github.com/yukikurage/kanban-web/internal/services"
)

func boardCmd(app *App) *cobra.Command {
	var filter models.TaskFilter
	var priority string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board of the selected project",
		Args:  cobra.NoArgs,
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			filter.Priority = models.Priority(priority)
			if filter.Priority != "all" && !filter.Priority.Valid() {
				return fmt.Errorf("invalid priority %q, want all, baixa, media, alta or urgente", priority)
			}

			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			if err := app.openBoard(ctx); err != nil {
				return err
			}

			app.printBoard(filter)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Only show tasks whose title or description contains this text")
	cmd.Flags().StringVar(&priority, "priority", "all", "Only show tasks with this priority")

	return cmd
}

func (a *App) printBoard(filter models.TaskFilter) {
	board := a.workspace.Board()
	if board == nil {
		return
	}
	fmt.Fprintln(a.out, renderBoard(a.styles, a.workspace.CurrentProject(), board.Filtered(filter), a.workspace.MovingTaskID()))
}

func taskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Create, move and delete tasks on the selected board",
	}

	cmd.AddCommand(taskCreateCmd(app))
	cmd.AddCommand(taskMoveCmd(app))
	cmd.AddCommand(taskDeleteCmd(app))

	return cmd
}

func taskCreateCmd(app *App) *cobra.Command {
	var (
		input    services.TaskInput
		priority string
		status   string
		due      string
	)

	cmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a task in the column matching --status",
		Args:  cobra.ExactArgs(1),
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			input.Title = args[0]
			input.Priority = models.Priority(priority)
			input.Status = models.ColumnStatus(status)
			if due != "" {
				d, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("invalid --due %q, want YYYY-MM-DD", due)
				}
				input.DueDate = &d
			}

			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			if err := app.openBoard(ctx); err != nil {
				return err
			}

			task, err := app.workspace.CreateTask(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Created task %s\n", task.ID)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", string(models.PriorityMedia), "baixa, media, alta or urgente")
	cmd.Flags().StringVar(&status, "status", string(models.StatusBacklog), "backlog, a-fazer, em-progresso or concluido")
	cmd.Flags().StringVar(&input.AssigneeID, "assignee", "", "Assignee user id")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")

	return cmd
}

func taskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID STATUS",
		Short: "Move a task to the column with STATUS",
		Args:  cobra.ExactArgs(2),
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			if err := app.openBoard(ctx); err != nil {
				return err
			}

			if err := app.workspace.MoveTask(ctx, args[0], models.ColumnStatus(args[1])); err != nil {
				return err
			}
			app.printBoard(models.TaskFilter{})
			return nil
		}),
	}
}

func taskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			if err := app.openBoard(ctx); err != nil {
				return err
			}

			return app.workspace.DeleteTask(ctx, args[0])
		}),
	}
}
