package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geia-vip/pet-manager-console/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive console",
	Long: `Open the full-screen interactive console.

The console starts at the login form unless a stored session is still
valid. While it runs, the access token refreshes itself shortly before
expiry; a 401 on any request triggers one refresh-and-retry before the
session is declared dead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		// Keep an already-stored session alive for the whole run.
		a.manager.StartRefreshTimer()

		pets, tutors := a.newSynchronizers()
		defer pets.Close()
		defer tutors.Close()

		return tui.Run(a.manager, pets, tutors, a.pets, a.tutors)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
