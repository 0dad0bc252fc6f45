// Package cmd wires the cobra command tree: authentication, pet and
// tutor management, and the interactive console.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "petconsole",
	Short: "Admin console for the pet-manager platform",
	Long: `petconsole is the operator console for the pet-manager platform.

It manages pets, tutors, and the links between them, either through
one-shot subcommands or through the interactive full-screen console
(petconsole console).

Sessions are kept alive automatically: access tokens are refreshed
before they expire, and credentials survive restarts in
~/.petconsole/auth.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context so an
// interrupt cancels in-flight requests.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.petconsole/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}
