package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"church-cms/internal/core/domain"

	"github.com/spf13/cobra"
)

const minPasswordLength = 8

// adminAPI is the part of the auth provider's admin API the CLI drives.
type adminAPI interface {
	ListAdmins(ctx context.Context) ([]domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	SetRole(ctx context.Context, userID, role string) error
	SetPassword(ctx context.Context, userID, password string) error
}

func (a *app) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users on the auth provider",
		Long: `Manage which users hold the admin role. The role lives in the
user's app_metadata, which only the service-role key can change.`,
	}
	cmd.AddCommand(a.adminGrantCmd())
	cmd.AddCommand(a.adminRevokeCmd())
	cmd.AddCommand(a.adminListCmd())
	cmd.AddCommand(a.adminSetPasswordCmd())
	return cmd
}

func (a *app) client() (adminAPI, error) {
	c, err := a.newAdmin(a.cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("auth admin client: %w", err)
	}
	return c, nil
}

func (a *app) adminGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <email>",
		Short: "Give a user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setRole(cmd, args[0], domain.RoleAdmin)
		},
	}
}

func (a *app) adminRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <email>",
		Short: "Remove the admin role from a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.setRole(cmd, args[0], "")
		},
	}
}

func (a *app) setRole(cmd *cobra.Command, email, role string) error {
	c, err := a.client()
	if err != nil {
		return err
	}
	user, err := c.FindByEmail(cmd.Context(), strings.TrimSpace(email))
	if err != nil {
		return err
	}

	wasAdmin := user.IsAdmin()
	if (role == domain.RoleAdmin) == wasAdmin {
		fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged\n", user.Email)
		return nil
	}
	if err := c.SetRole(cmd.Context(), user.UserID, role); err != nil {
		return err
	}
	if role == domain.RoleAdmin {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", user.Email)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is no longer an admin\n", user.Email)
	}
	return nil
}

func (a *app) adminListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List admin users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			admins, err := c.ListAdmins(cmd.Context())
			if err != nil {
				return err
			}
			if len(admins) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No admin users")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL")
			for _, u := range admins {
				fmt.Fprintf(tw, "%s\t%s\n", u.UserID, u.Email)
			}
			return tw.Flush()
		},
	}
}

func (a *app) adminSetPasswordCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "set-password <email>",
		Short: "Replace a user's password",
		Long: `Replace a user's password. Without --password the new password is
read from the first line of stdin.

Examples:
  churchctl admin set-password pastor@example.org --password 's3cret-pass'
  echo 's3cret-pass' | churchctl admin set-password pastor@example.org`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given on --password or stdin")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if len(password) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters", minPasswordLength)
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			user, err := c.FindByEmail(cmd.Context(), strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			if err := c.SetPassword(cmd.Context(), user.UserID, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	return cmd
}
