package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taleemtrack/taleemtrack-cli/internal/models"
	"github.com/taleemtrack/taleemtrack-cli/internal/tui"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the TaleemTrack server",
	Long: `Sign in to the TaleemTrack server. Without flags an interactive
login screen opens; with --username and --password the credentials are
submitted directly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		if loginUsername == "" || loginPassword == "" {
			if err := tui.RunLogin(a.authSvc); err != nil {
				return err
			}
			if !a.authSvc.IsAuthenticated() {
				return fmt.Errorf("login cancelled")
			}
		} else {
			err := a.authSvc.Login(context.Background(), models.LoginRequest{
				Username: loginUsername,
				Password: loginPassword,
			})
			if err != nil {
				return err
			}
		}

		user := a.authSvc.CurrentUser()
		fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		a.authSvc.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := initApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		user := a.authSvc.CurrentUser()
		if user == nil || !a.authSvc.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}
		status := "valid"
		if a.authSvc.IsTokenExpired() {
			status = "expired"
		}
		fmt.Printf("%s (%s), user id %d, token %s\n", user.Username, user.Role, user.UserID, status)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password")
}
