// Package catalog holds the ordered product collection and its pure
// mutations. Nothing here performs I/O.
package catalog

import (
	"fmt"
	"strings"

	"github.com/jacksmith/menu/internal/model"
)

// Catalog is an ordered list of products. Insertion order is display order.
type Catalog struct {
	products []model.Product
}

// New returns a catalog holding a copy of products.
func New(products []model.Product) *Catalog {
	c := &Catalog{}
	c.products = append(c.products, products...)
	return c
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the collection in display order.
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Upsert replaces the product with the same ID in place, or appends it.
// It reports whether an existing product was replaced.
func (c *Catalog) Upsert(p model.Product) (replaced bool) {
	if i := c.index(p.ID); i >= 0 {
		c.products[i] = p
		return true
	}
	c.products = append(c.products, p)
	return false
}

// Remove deletes the product with the given ID. Absent IDs are a no-op.
func (c *Catalog) Remove(id string) (removed bool) {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.products = append(c.products[:i:i], c.products[i+1:]...)
	return true
}

// Find returns the product with the given ID.
func (c *Catalog) Find(id string) (model.Product, bool) {
	if i := c.index(id); i >= 0 {
		return c.products[i], true
	}
	return model.Product{}, false
}

func (c *Catalog) index(id string) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}

// Filter returns products matching query and category, in display order.
// The query matches case-insensitively against name and description; an
// empty query or category matches everything.
func (c *Catalog) Filter(query string, category model.Category) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []model.Product
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// GroupByCategory splits products into menu sections following
// model.Categories order. Empty sections are omitted.
func GroupByCategory(products []model.Product) []Section {
	var sections []Section
	for _, cat := range model.Categories {
		var items []model.Product
		for _, p := range products {
			if p.Category == cat {
				items = append(items, p)
			}
		}
		if len(items) > 0 {
			sections = append(sections, Section{Category: cat, Products: items})
		}
	}
	return sections
}

// Section is one category heading with its products.
type Section struct {
	Category model.Category
	Products []model.Product
}

// Resolve maps a user-supplied reference to a product ID. An exact match
// (in any letter case) wins, otherwise ref must be a unique ID prefix.
func (c *Catalog) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty product id")
	}
	upper := strings.ToUpper(ref)

	for _, p := range c.products {
		if strings.ToUpper(p.ID) == upper {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range c.products {
		if strings.HasPrefix(strings.ToUpper(p.ID), upper) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous product id %q matches: %s", ref, strings.Join(matches, ", "))
	}
}

// NotFoundError indicates no product matched an ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}
