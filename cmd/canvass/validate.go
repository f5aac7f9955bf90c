package main

import (
	"fmt"
	"os"

	"github.com/dialbird/canvass/pkg/survey"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check a survey config for consistency",
	Long:  `Loads the config and reports every structural violation: broken references, missing branches, uncovered options and rating gaps.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			path = args[0]
		}
		if err := runValidate(path); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Survey is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	cfg, err := survey.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if vs := survey.Validate(cfg); len(vs) > 0 {
		for _, v := range vs {
			fmt.Printf("  %s: %s (%s)\n", v.QuestionID, v.Detail, v.Invariant)
		}
		return fmt.Errorf("%d violation(s)", len(vs))
	}
	return nil
}
