package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/jacksmith/menu/internal/catalog"
	"github.com/jacksmith/menu/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// HTML renders the admin product list and the server's pages. The list is
// re-rendered into a cache on every Render call so page requests never
// walk the collection themselves.
type HTML struct {
	currency string
	policy   *bluemonday.Policy

	mu    sync.RWMutex
	list  template.HTML
	count int
	err   error
}

// NewHTML returns a renderer whose cached list starts in the empty state.
func NewHTML(currency string) *HTML {
	h := &HTML{currency: currency, policy: bluemonday.UGCPolicy()}
	h.Render(nil)
	return h
}

// Render implements ops.Renderer.
func (h *HTML) Render(products []model.Product) {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = h.View(p)
	}

	var buf bytes.Buffer
	err := pages.ExecuteTemplate(&buf, "list", listData{Products: views, Empty: EmptyMessage})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
	if err != nil {
		return
	}
	h.list = template.HTML(buf.String())
	h.count = len(products)
}

type listData struct {
	Products []ProductView
	Empty    string
}

// List returns the most recently rendered list fragment.
func (h *HTML) List() template.HTML {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.list
}

// Len returns the number of products in the cached list.
func (h *HTML) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Err returns the error of the last Render, if it failed. The previous
// list stays cached in that case.
func (h *HTML) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.err
}

// ProductView is a product prepared for a template.
type ProductView struct {
	ID          string
	Name        string
	Description template.HTML
	Price       string
	Category    string
	Image       template.URL
}

// View prepares p for display. The description is sanitized and the image
// is only passed through when it is an embedded data URI.
func (h *HTML) View(p model.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: template.HTML(h.policy.Sanitize(p.Description)),
		Price:       p.FormatPrice(h.currency),
		Category:    p.Category.Title(),
	}
	if model.IsImageDataURI(p.Image) {
		v.Image = template.URL(p.Image)
	}
	return v
}

// FormView is the state of the create/edit form.
type FormView struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	Preview     string
	SubmitLabel string
}

// AdminPage is the product management page: banner, form and list.
type AdminPage struct {
	Form    FormView
	Errors  []string
	Warning string
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type adminData struct {
	Title      string
	Form       formData
	Errors     []string
	Warning    string
	Categories []categoryOption
	List       template.HTML
}

type formData struct {
	FormView
	Preview template.URL
}

// Admin writes the admin page using the cached list.
func (h *HTML) Admin(w io.Writer, page AdminPage) error {
	data := adminData{
		Title:   "Products",
		Form:    formData{FormView: page.Form},
		Errors:  page.Errors,
		Warning: page.Warning,
		List:    h.List(),
	}
	if model.IsImageDataURI(page.Form.Preview) {
		data.Form.Preview = template.URL(page.Form.Preview)
	}
	for _, c := range model.Categories {
		data.Categories = append(data.Categories, categoryOption{
			Value:    string(c),
			Label:    c.Title(),
			Selected: string(c) == page.Form.Category,
		})
	}
	return execute(w, "admin", data)
}

// Confirm writes the delete confirmation page for p.
func (h *HTML) Confirm(w io.Writer, p model.Product) error {
	return execute(w, "confirm", struct{ Product ProductView }{h.View(p)})
}

type sectionView struct {
	ID       string
	Title    string
	Products []ProductView
}

type menuData struct {
	Title    string
	Query    string
	Sections []sectionView
	Empty    string
}

// Menu writes the public menu: products grouped under their category
// headings. query is echoed in the search box and only changes the empty
// state text; filtering is the caller's job.
func (h *HTML) Menu(w io.Writer, products []model.Product, query string) error {
	data := menuData{Title: "Menu", Query: query, Empty: EmptyMessage}
	if query != "" {
		data.Empty = fmt.Sprintf("No products match %q", query)
	}
	for _, s := range catalog.GroupByCategory(products) {
		sv := sectionView{ID: string(s.Category), Title: s.Category.Title()}
		for _, p := range s.Products {
			sv.Products = append(sv.Products, h.View(p))
		}
		data.Sections = append(data.Sections, sv)
	}
	return execute(w, "menu", data)
}

// execute renders into a buffer first so a template error never leaves a
// half-written page behind.
func execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
