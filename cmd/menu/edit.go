package main

import (
	"fmt"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/ops"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a product",
	Long: `Edit a product's fields. The id may be any unique prefix.

Use flags to change specific fields, or -i to edit the text fields as YAML
in $EDITOR. The image is kept unless --image is given.

Examples:
  menu edit 01HX --price=6.49
  menu edit 01HX --category=combos --name="Burger Combo"
  menu edit 01HX --image=new.webp
  menu edit 01HX -i`,
	Args:              cobra.ExactArgs(1),
	RunE:              runEdit,
	ValidArgsFunction: completeProductIDs,
}

var (
	editName        string
	editDescription string
	editPrice       string
	editCategory    string
	editImage       string
	editInteractive bool
)

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "set product name")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "set description")
	editCmd.Flags().StringVarP(&editPrice, "price", "p", "", "set price")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "set category (unique prefix accepted)")
	editCmd.Flags().StringVar(&editImage, "image", "", "replace the image")
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit in $EDITOR")

	editCmd.RegisterFlagCompletionFunc("category", completeCategories)
	editCmd.MarkFlagFilename("image", "png", "jpg", "jpeg", "gif", "webp")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{writes: true})
	if err != nil {
		return err
	}
	defer a.Close()

	id, ok, err := a.resolve(args[0])
	if err != nil || !ok {
		return err
	}

	form := a.form()
	if !form.BeginEdit(id) {
		fmt.Fprintln(stdout, cli.NotFoundMessage(args[0]))
		return nil
	}
	values := form.Values()

	if editInteractive {
		edited, err := cli.EditFields(cli.ProductFields(values))
		if err != nil {
			return err
		}
		values = ops.FormValues(edited)
	}

	if editName != "" {
		values.Name = editName
	}
	if editDescription != "" {
		values.Description = editDescription
	}
	if editPrice != "" {
		values.Price = editPrice
	}
	if editCategory != "" {
		c, err := categoryArg(editCategory)
		if err != nil {
			return err
		}
		values.Category = c
	} else if values.Category != "" {
		// -i accepts prefixes too.
		if c, err := categoryArg(values.Category); err == nil {
			values.Category = c
		}
	}

	upload, closeUpload, err := openUpload(editImage)
	if err != nil {
		return err
	}
	defer closeUpload()

	p, err := form.Submit(commandContext(cmd), values, upload)
	if cli.IsNotFound(err) {
		fmt.Fprintln(stdout, cli.NotFoundMessage(args[0]))
		return nil
	}
	if err != nil && !ops.IsPersistError(err) {
		return err
	}

	fmt.Fprintf(stdout, "Updated %s %s %s\n", cli.Gray(p.ID), p.Name, p.FormatPrice(a.cfg.Currency))
	return warnPersist(err)
}
