package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/authorsite/authorsite/internal/adminsession"
)

// envAdminPassword is read when --password is not given.
const envAdminPassword = "AUTHORSITE_ADMIN_PASSWORD"

var (
	adminUser     string
	adminPassword string
)

func init() { //nolint: gochecknoinits
	adminLoginCmd.Flags().StringVar(&adminUser, "user", "admin", "admin user name")
	adminLoginCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (default $"+envAdminPassword+")")

	adminCmd.AddCommand(adminLoginCmd, adminStatusCmd, adminLogoutCmd)
	rootCmd.AddCommand(adminCmd)
}

var (
	adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Manage the local admin session",
		Long: `The admin session only decides whether this client sends the admin header.
It is stored locally and never verified by the server.`,
	}

	adminLoginCmd = &cobra.Command{
		Use:   "login",
		Short: "Start a 24 hour admin session; the first login sets the credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := adminPassword
			if password == "" {
				password = os.Getenv(envAdminPassword)
			}

			return withSessions(func(m *adminsession.Manager) error {
				s, err := m.Login(adminUser, password)
				if err != nil {
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s until %s\n",
					s.Username, s.LoginTime.Add(adminsession.TTL).Format("2006-01-02 15:04"))

				return err
			})
		},
	}

	adminStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSessions(func(m *adminsession.Manager) error {
				s, ok, err := m.Current()
				if err != nil {
					return err
				}

				if !ok {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "not logged in")
					return err
				}

				_, err = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s since %s\n",
					s.Username, s.LoginTime.Format("2006-01-02 15:04"))

				return err
			})
		},
	}

	adminLogoutCmd = &cobra.Command{
		Use:   "logout",
		Short: "End the admin session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSessions(func(m *adminsession.Manager) error {
				if err := m.Logout(); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "logged out")

				return err
			})
		},
	}
)

func withSessions(fn func(m *adminsession.Manager) error) error {
	local, err := openLocal()
	if err != nil {
		return err
	}
	defer local.Close() //nolint:errcheck

	return fn(adminsession.New(local))
}
