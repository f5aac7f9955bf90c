package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "canvass",
	Short: "Canvass is a branching survey engine for voice calls",
	Long:  `Canvass validates survey configs, resolves answer branching, and serves the survey API used by call sessions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "survey.yaml", "Path to the survey config (JSON or YAML)")
}
