package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/services/app/core"
)

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var data core.LoginData

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := core.ValidateLoginForm(data); len(errs) > 0 {
				return errs
			}
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				a.session.Login(ctx, data)
				if err := a.sessionErr(); err != nil {
					return err
				}
				return printGreeting(cmd, a.session.State())
			})
		},
	}

	cmd.Flags().StringVar(&data.Email, "email", "", "account email")
	cmd.Flags().StringVar(&data.Password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var data core.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if errs := core.ValidateRegisterForm(data); len(errs) > 0 {
				return errs
			}
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				a.session.Register(ctx, data)
				if err := a.sessionErr(); err != nil {
					return err
				}
				return printGreeting(cmd, a.session.State())
			})
		},
	}

	cmd.Flags().StringVar(&data.Name, "name", "", "display name")
	cmd.Flags().StringVar(&data.Email, "email", "", "account email")
	cmd.Flags().StringVar(&data.Password, "password", "", "account password")
	cmd.Flags().StringVar(&data.ConfirmPassword, "confirm-password", "", "repeat the password")
	return cmd
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				a.session.InitializeAuth(ctx)
				a.session.Logout(ctx)
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
				return err
			})
		},
	}
}

func newWhoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, cmd, func(ctx context.Context, a *app) error {
				u, err := a.currentUser(ctx)
				if err != nil {
					return err
				}
				return render(cmd, opts.output, u, func(p *printer) {
					p.row("ID", "NAME", "EMAIL")
					p.row(u.ID.String(), u.Name, u.Email)
				})
			})
		},
	}
}

func printGreeting(cmd *cobra.Command, st core.SessionState) error {
	if st.User == nil {
		return errNotLoggedIn
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Olá, %s (%s)\n", st.User.Name, st.User.Email)
	return err
}
