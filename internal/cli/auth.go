package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/kanban-web/internal/constants"
	"github.com/yukikurage/kanban-web/internal/services"
)

func loginCmd(app *App) *cobra.Command {
	var input services.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := app.session.Login(ctx, input)
			if err != nil {
				return err
			}
			// another account's project must not stay selected
			if err := app.state.Delete(ctx, constants.KeyProjectID); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Logged in as %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "Password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}

func registerCmd(app *App) *cobra.Command {
	var input services.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input.ConfirmPassword == "" {
				input.ConfirmPassword = input.Password
			}
			user, err := app.session.Register(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Registered %s, log in with `kanbanctl login -u %s`\n", user.Username, user.Username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Username, "username", "u", "", "Username (3-50 characters)")
	cmd.Flags().StringVarP(&input.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVar(&input.FullName, "full-name", "", "Full name")
	cmd.Flags().StringVarP(&input.Password, "password", "p", "", "Password (6-100 characters)")
	cmd.Flags().StringVar(&input.ConfirmPassword, "confirm-password", "", "Password confirmation (default: --password)")

	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.session.Teardown(ctx); err != nil {
				return err
			}
			if err := app.state.Delete(ctx, constants.KeyProjectID); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Logged out")
			return nil
		},
	}
}

func whoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(cmd.Context()); err != nil {
				return err
			}
			user, err := app.session.User()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}
