package main

import (
	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/model"
	"github.com/jacksmith/menu/internal/render"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List products",
	Long: `List products in catalog order.

--search matches name and description, ignoring case.

Examples:
  menu list
  menu list --category=drinks
  menu list --search=cheese`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listCategory string
	listSearch   string
)

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only this category (unique prefix accepted)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive text search")
	listCmd.RegisterFlagCompletionFunc("category", completeCategories)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	var category model.Category
	if listCategory != "" {
		if category, err = cli.MatchCategory(listCategory); err != nil {
			return err
		}
	}

	render.NewText(stdout, a.cfg.Currency).Render(a.store.Filter(listSearch, category))
	return nil
}
