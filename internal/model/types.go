// Package model defines the core data structures for menu.
package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is the menu section a product is listed under.
type Category string

const (
	CategoryBurgers  Category = "burgers"
	CategoryHotdogs  Category = "hotdogs"
	CategorySides    Category = "sides"
	CategoryDrinks   Category = "drinks"
	CategoryDesserts Category = "desserts"
	CategoryCombos   Category = "combos"
)

// Categories lists every valid category in menu display order.
var Categories = []Category{
	CategoryBurgers,
	CategoryHotdogs,
	CategorySides,
	CategoryDrinks,
	CategoryDesserts,
	CategoryCombos,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Title returns the display heading for the category.
func (c Category) Title() string {
	switch c {
	case CategoryHotdogs:
		return "Hot Dogs"
	case "":
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory converts s to a Category. Matching is case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q (expected one of %s)", s, CategoryList())
	}
	return c, nil
}

// CategoryList returns the categories joined for help and error messages.
func CategoryList() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// Product is a single menu item.
type Product struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Price       decimal.Decimal `yaml:"price"`
	Category    Category        `yaml:"category"`
	Image       string          `yaml:"image"` // data URI
}

// Validate checks that every required field is populated.
// It is the last line of defence before a product reaches storage.
func (p *Product) Validate() error {
	priceErr := CheckPrice(p.Price)
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("product has no id")
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("product %s has no name", p.ID)
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("product %s has no description", p.ID)
	case priceErr != nil:
		return fmt.Errorf("product %s has invalid price: %w", p.ID, priceErr)
	case !p.Category.Valid():
		return fmt.Errorf("product %s has unknown category %q", p.ID, p.Category)
	case !IsImageDataURI(p.Image):
		return fmt.Errorf("product %s has no embedded image", p.ID)
	}
	return nil
}

// MaxPrice is the exclusive upper bound for a product price.
var MaxPrice = decimal.NewFromInt(1_000_000)

const priceDecimals = 2

var (
	errPriceNotNumber = errors.New("must be a number")
	errPriceNegative  = errors.New("must not be negative")
	errPriceDecimals  = fmt.Errorf("must have at most %d decimals", priceDecimals)
	errPriceTooLarge  = fmt.Errorf("must be less than %s", MaxPrice)
)

// plainDecimal accepts digits with an optional fraction. Exponent notation
// is refused: "1e4000000" would expand to millions of digits.
var plainDecimal = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParsePrice reads a price written as a plain decimal number and checks it
// with CheckPrice. The text is bounded before it is converted.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !plainDecimal.MatchString(s) {
		return decimal.Zero, errPriceNotNumber
	}

	whole, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	whole = strings.TrimLeft(whole, "0")
	switch {
	case strings.HasPrefix(s, "-") && strings.Trim(whole+frac, "0") != "":
		return decimal.Zero, errPriceNegative
	case len(frac) > priceDecimals:
		return decimal.Zero, errPriceDecimals
	case len(whole) > len(MaxPrice.String()):
		return decimal.Zero, errPriceTooLarge
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errPriceNotNumber
	}
	return d, CheckPrice(d)
}

// CheckPrice reports whether d is a valid product price: not negative, at
// most two decimals, and below MaxPrice.
func CheckPrice(d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return errPriceNegative
	case d.Exponent() < -priceDecimals:
		return errPriceDecimals
	case int(d.Exponent()) >= len(MaxPrice.String()) || !d.LessThan(MaxPrice):
		return errPriceTooLarge
	}
	return nil
}

// FormatPrice renders the price with two decimals behind the currency symbol.
func (p *Product) FormatPrice(currency string) string {
	return currency + p.Price.StringFixed(2)
}

// IsImageDataURI reports whether s looks like an embedded image data URI.
func IsImageDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ",")
}

// CatalogFile is the durable document holding the whole collection.
type CatalogFile struct {
	Version  int       `yaml:"version"`
	Products []Product `yaml:"products,omitempty"`
}

// CurrentVersion is written into every catalog document.
const CurrentVersion = 1
