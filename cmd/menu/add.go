package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/imagedata"
	"github.com/jacksmith/menu/internal/ops"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a product",
	Long: `Add a product to the catalog.

Every field is required. The image is read from --image; without it, the
image_dir from .menuconfig.yaml is searched for <slug>.webp, .jpg or .png
where the slug is the lower-cased name with accents removed.

Categories accept unique prefixes.

Examples:
  menu add "Classic Burger" --description="Beef, lettuce, cheese" --price=5.99 --category=burg --image=burger.png
  menu add "Crème Brûlée" -d "Vanilla custard" -p 4.50 -c desserts   # uses image_dir/creme-brulee.*`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPrice       string
	addCategory    string
	addImage       string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "product description")
	addCmd.Flags().StringVarP(&addPrice, "price", "p", "", "price, e.g. 5.99")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category or unique prefix")
	addCmd.Flags().StringVar(&addImage, "image", "", "image file (png, jpeg, gif or webp)")

	addCmd.RegisterFlagCompletionFunc("category", completeCategories)
	addCmd.MarkFlagFilename("image", "png", "jpg", "jpeg", "gif", "webp")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{writes: true})
	if err != nil {
		return err
	}
	defer a.Close()

	category, err := categoryArg(addCategory)
	if err != nil {
		return err
	}

	imagePath := addImage
	if imagePath == "" && a.cfg.ImageDir != "" {
		if found, ok := imagedata.FindBySlug(a.cfg.ImageDir, args[0]); ok {
			imagePath = found
		}
	}

	upload, closeUpload, err := openUpload(imagePath)
	if err != nil {
		return err
	}
	defer closeUpload()

	p, err := a.form().Submit(commandContext(cmd), ops.FormValues{
		Name:        args[0],
		Description: addDescription,
		Price:       addPrice,
		Category:    category,
	}, upload)
	if err != nil && !ops.IsPersistError(err) {
		return err
	}

	fmt.Fprintf(stdout, "%s %s %s\n", cli.Gray(p.ID), p.Name, p.FormatPrice(a.cfg.Currency))
	return warnPersist(err)
}

// categoryArg resolves a category flag. Empty stays empty so the form
// reports it with the other missing fields.
func categoryArg(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	c, err := cli.MatchCategory(s)
	if err != nil {
		return "", err
	}
	return string(c), nil
}

// openUpload opens path for the form. An empty path means no upload.
func openUpload(path string) (*ops.Upload, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening image: %w", err)
	}
	return &ops.Upload{Name: filepath.Base(path), Body: f}, func() { f.Close() }, nil
}
