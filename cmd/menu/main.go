// Package main is the entry point for the menu CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Swapped out by tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	rootDir string
	noColor bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "menu",
	Short: "menu - manage a restaurant's product catalog",
	Long: `menu keeps a restaurant's products (name, description, price, category
and an embedded image) in a local .menu/ directory.

Manage products from the command line, or run "menu serve" for the admin
pages and the public menu.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			cli.SetColorEnabled(false)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("menu version {{.Version}}\n")

	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "C", ".", "directory containing .menu/")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}
