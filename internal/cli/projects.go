package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/dto"
	"github.com/yukikurage/kanban-web/internal/services"
)

func projectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List, create and delete projects",
	}

	cmd.AddCommand(projectsListCmd(app))
	cmd.AddCommand(projectsCreateCmd(app))
	cmd.AddCommand(projectsDeleteCmd(app))

	return cmd
}

func projectsListCmd(app *App) *cobra.Command {
	var params dto.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, marking the selected one",
		Args:  cobra.NoArgs,
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}
			if err := app.workspace.LoadProjects(ctx, params); err != nil {
				return err
			}

			projects := app.workspace.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(app.out, "No projects")
				return nil
			}

			selected, _, err := app.state.Get(ctx, constants.KeyProjectID)
			if err != nil {
				return err
			}
			if selected == "" {
				if current := app.workspace.CurrentProject(); current != nil {
					selected = current.ID
				}
			}
			fmt.Fprintln(app.out, renderProjects(projects, selected))
			return nil
		}),
	}

	cmd.Flags().IntVar(&params.Skip, "skip", 0, "Number of projects to skip")
	cmd.Flags().IntVar(&params.Limit, "limit", constants.DefaultLimit, "Maximum number of projects to list")

	return cmd
}

func projectsCreateCmd(app *App) *cobra.Command {
	var input services.ProjectInput

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a project and select it",
		Args:  cobra.ExactArgs(1),
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			input.Name = args[0]
			project, err := app.workspace.CreateProject(ctx, input)
			if err != nil {
				return err
			}
			if err := app.rememberProject(ctx); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Created project %s (%s)\n", project.Name, project.ID)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "Project description")

	return cmd
}

func projectsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: withNotices(app, func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireLogin(ctx); err != nil {
				return err
			}

			if err := app.workspace.DeleteProject(ctx, args[0]); err != nil {
				return err
			}
			selected, _, err := app.state.Get(ctx, constants.KeyProjectID)
			if err != nil {
				return err
			}
			if selected == args[0] {
				return app.state.Delete(ctx, constants.KeyProjectID)
			}
			return nil
		}),
	}
}
