package main

import (
	"fmt"
	"os"

	"github.com/dialbird/canvass/internal/cli"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and manage stored call sessions",
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored session IDs",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ListSessions(sessionOpts(cmd)); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a stored session as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ShowSession(sessionOpts(cmd), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <session-id>",
	Short: "Delete a stored session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ResetSession(sessionOpts(cmd), args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func sessionOpts(cmd *cobra.Command) cli.RunOptions {
	opts := cli.RunOptions{}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.RedisURL, _ = cmd.Flags().GetString("redis")
	return opts
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd, sessionShowCmd, sessionResetCmd)
	sessionCmd.PersistentFlags().String("redis", "", "Redis URL holding the sessions")
}
