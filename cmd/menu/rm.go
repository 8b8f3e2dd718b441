package main

import (
	"errors"
	"fmt"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/ops"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a product",
	Long: `Delete a product after confirmation.

The prompt needs a terminal; pass --yes in scripts.

Examples:
  menu rm 01HX
  menu rm 01HX --yes`,
	Args:              cobra.ExactArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeProductIDs,
}

var rmYes bool

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{writes: true})
	if err != nil {
		return err
	}
	defer a.Close()

	id, ok, err := a.resolve(args[0])
	if err != nil || !ok {
		return err
	}
	p, _ := a.store.FindByID(id)

	admin := ops.NewAdmin(a.store, a.form(), &cli.Prompt{In: stdin, Out: stderr, Yes: rmYes})
	removed, err := admin.Delete(commandContext(cmd), id)
	if errors.Is(err, cli.ErrNotInteractive) {
		return err
	}
	if err := warnPersist(err); err != nil {
		return err
	}

	if removed {
		fmt.Fprintf(stdout, "Deleted %s %s\n", cli.Gray(p.ID), p.Name)
	} else {
		fmt.Fprintln(stdout, "Nothing deleted")
	}
	return nil
}
