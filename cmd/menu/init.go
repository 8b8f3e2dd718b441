package main

import (
	"fmt"

	"github.com/jacksmith/menu/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new menu catalog",
	Long: `Create a .menu/ directory holding an empty catalog.

The yaml backend keeps the catalog in .menu/catalog.yaml; the bolt backend
keeps the same document in a bbolt database at .menu/catalog.db.

Fails if .menu/ already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initBackend string

func init() {
	initCmd.Flags().StringVar(&initBackend, "backend", string(storage.BackendYAML), "storage backend (yaml or bolt)")
	initCmd.RegisterFlagCompletionFunc("backend", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(storage.BackendYAML), string(storage.BackendBolt)}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := storage.Init(rootDir, storage.BackendKind(initBackend))
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Initialized menu in %s (%s backend)\n", s.MenuPath(), s.BackendKind())
	return nil
}
