package main

import (
	"github.com/jacksmith/menu/internal/render"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:               "show <id>",
	Short:             "Show a product",
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeProductIDs,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	id, ok, err := a.resolve(args[0])
	if err != nil || !ok {
		return err
	}
	p, _ := a.store.FindByID(id)
	render.NewText(stdout, a.cfg.Currency).Detail(p)
	return nil
}
