package main

import (
	"fmt"
	"os"

	"github.com/dialbird/canvass/internal/presentation/graph"
	"github.com/dialbird/canvass/pkg/survey"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [config]",
	Short: "Export the survey flow visualization",
	Long:  `Loads the config and outputs a Mermaid diagram (graph TD) of the question branching.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			path = args[0]
		}

		cfg, err := survey.LoadFile(path)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(cfg, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
