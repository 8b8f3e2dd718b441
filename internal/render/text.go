// Package render projects the product collection for display: a text
// table for the terminal and HTML pages for the admin server.
package render

import (
	"fmt"
	"io"

	"github.com/jacksmith/menu/internal/cli"
	"github.com/jacksmith/menu/internal/model"
)

// EmptyMessage is shown in place of the list when there are no products.
const EmptyMessage = "No products saved"

// nameWidth caps the name column of the text table.
const nameWidth = 40

// Text writes the collection as an aligned table.
type Text struct {
	Out      io.Writer
	Currency string
}

// NewText returns a text renderer writing to out.
func NewText(out io.Writer, currency string) *Text {
	return &Text{Out: out, Currency: currency}
}

// Render writes one row per product in collection order, or EmptyMessage.
func (t *Text) Render(products []model.Product) {
	if len(products) == 0 {
		fmt.Fprintln(t.Out, cli.Gray(EmptyMessage))
		return
	}

	tbl := cli.NewTable()
	tbl.SetMaxWidth(1, nameWidth)
	tbl.SetAlign(3, cli.AlignRight)
	for _, p := range products {
		tbl.AddRow(
			cli.Gray(p.ID),
			p.Name,
			cli.Cyan(p.Category.Title()),
			p.FormatPrice(t.Currency),
		)
	}
	tbl.Render(t.Out)
}

// Detail writes every field of p except the image payload, which is
// summarized by its media type and size.
func (t *Text) Detail(p model.Product) {
	tbl := cli.NewTable()
	tbl.AddRow(cli.Bold("id:"), p.ID)
	tbl.AddRow(cli.Bold("name:"), p.Name)
	tbl.AddRow(cli.Bold("category:"), p.Category.Title())
	tbl.AddRow(cli.Bold("price:"), p.FormatPrice(t.Currency))
	tbl.AddRow(cli.Bold("image:"), describeImage(p.Image))
	tbl.Render(t.Out)
	fmt.Fprintln(t.Out)
	fmt.Fprintln(t.Out, p.Description)
}

func describeImage(uri string) string {
	if !model.IsImageDataURI(uri) {
		return "none"
	}
	mime := uri[len("data:"):]
	for i, r := range mime {
		if r == ';' || r == ',' {
			mime = mime[:i]
			break
		}
	}
	return fmt.Sprintf("%s, %d bytes encoded", mime, len(uri))
}
