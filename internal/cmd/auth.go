package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/geia-vip/pet-manager-console/internal/token"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the console session",
	Long: `Manage the console session against the pet-manager platform.

Credentials are stored in ~/.petconsole/auth.json (0600). A logged-in
session refreshes its access token automatically while the console is
running.

Examples:
  petconsole auth login --username admin
  petconsole auth status
  petconsole auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in with a username and password. Missing credentials are
prompted for interactively.

Examples:
  petconsole auth login --username admin --password secret
  petconsole auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if username == "" || password == "" {
			if err := promptCredentials(&username, &password); err != nil {
				return err
			}
		}

		if err := a.manager.Login(cmd.Context(), username, password); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", username)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		a.manager.Logout()
		fmt.Println("Logged out")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		current := a.manager.Store().Current()
		if !current.Authenticated {
			fmt.Println("Not logged in")
			return nil
		}

		fmt.Printf("Logged in as %s (%s)\n", current.User.Username, current.User.Role)
		if remaining, ok := token.RemainingValidity(current.AccessToken, time.Now()); ok {
			if remaining > 0 {
				fmt.Printf("Access token valid for %s\n", remaining.Round(time.Second))
			} else {
				fmt.Println("Access token expired; it will refresh on the next request")
			}
		} else {
			fmt.Println("Access token carries no readable expiry")
		}
		return nil
	},
}

func promptCredentials(username, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Username").Value(username),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		),
	)
	return form.Run()
}

func init() {
	authLoginCmd.Flags().String("username", "", "username to log in with")
	authLoginCmd.Flags().String("password", "", "password (prompted when omitted)")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
