package main

import (
	"fmt"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/ops"
	"github.com/jacksmith/menu/internal/storage"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored catalog for bad records",
	Long: `Check the stored catalog for records that cannot be loaded.

Checks for:
- Prices that are not numbers
- Missing name, description or image, and unknown categories
- Duplicate IDs
- IDs that are not ULIDs (reported only)

A single bad record makes list and show start from an empty catalog,
and add, edit, rm and serve refuse to run. Use --fix to drop the bad
records and keep the rest.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var validateFix bool

func init() {
	validateCmd.Flags().BoolVar(&validateFix, "fix", false, "drop records that cannot be loaded")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := storage.Open(rootDir)
	if err != nil {
		return err
	}
	backend, err := s.OpenBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	issues, err := ops.Validate(backend)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintln(stdout, cli.Green("No issues found."))
		return nil
	}

	fmt.Fprintf(stdout, "Found %d issue(s):\n", len(issues))
	fixable := 0
	for _, issue := range issues {
		fmt.Fprintf(stdout, "  %s\n", issue)
		if issue.Fixable {
			fixable++
		}
	}

	if !validateFix {
		if fixable > 0 {
			return fmt.Errorf("%d record(s) cannot be loaded; run with --fix to drop them", fixable)
		}
		return nil
	}

	fixed, err := ops.Repair(backend)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %d record(s)\n", cli.Green("Dropped"), len(fixed))
	return nil
}
