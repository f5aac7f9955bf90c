package main

import (
	"fmt"
	"os"

	"github.com/dialbird/canvass/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the survey interactively",
	Long:  `Starts a local survey session against the loaded config, asking questions and branching on answers the way a live call would.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.RunOptions{}
		opts.ConfigPath, _ = cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			opts.ConfigPath = args[0]
		}
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.SessionID, _ = cmd.Flags().GetString("session")
		opts.Fresh, _ = cmd.Flags().GetBool("fresh")
		opts.RedisURL, _ = cmd.Flags().GetString("redis")

		if err := cli.RunSession(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, strict IO)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("debug", false, "Enable debug logging")
	runCmd.Flags().String("session", "local", "Session ID to resume or create")
	runCmd.Flags().Bool("fresh", false, "Discard any stored session and start over")
	runCmd.Flags().String("redis", "", "Redis URL for session persistence (default: in-memory)")

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
}
