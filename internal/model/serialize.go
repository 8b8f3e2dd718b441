package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// productDoc mirrors Product on disk. The price is read as text so that
// decimal values keep their exact representation.
type productDoc struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
}

type catalogDoc struct {
	Version  int          `yaml:"version"`
	Products []productDoc `yaml:"products"`
}

// DecodeCatalog parses a catalog document.
// Every product must pass Validate and IDs must be unique; otherwise the
// whole document is rejected.
func DecodeCatalog(data []byte) (*CatalogFile, error) {
	cf, issues, err := InspectCatalog(data)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, issues[0]
	}
	return cf, nil
}

// RecordIssue describes one product record that cannot be loaded.
type RecordIssue struct {
	Index int    // 1-based position in the document
	ID    string // may be empty
	Kind  string // "duplicate_id", "invalid_price" or "invalid_record"
	Err   error
}

func (e RecordIssue) Error() string {
	if e.Kind == "duplicate_id" {
		return fmt.Sprintf("duplicate product id %s", e.ID)
	}
	return fmt.Sprintf("product %d: %v", e.Index, e.Err)
}

func (e RecordIssue) Unwrap() error {
	return e.Err
}

// InspectCatalog parses a catalog document leniently: records that fail
// validation are reported as issues and left out of the returned catalog.
// Only a document that is not YAML at all is an error.
func InspectCatalog(data []byte) (*CatalogFile, []RecordIssue, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	cf := &CatalogFile{Version: doc.Version}
	var issues []RecordIssue
	seen := make(map[string]bool, len(doc.Products))
	for i, pd := range doc.Products {
		price, err := ParsePrice(pd.Price)
		if err != nil {
			issues = append(issues, RecordIssue{
				Index: i + 1, ID: pd.ID, Kind: "invalid_price",
				Err: fmt.Errorf("invalid price %q: %w", pd.Price, err),
			})
			continue
		}
		p := Product{
			ID:          pd.ID,
			Name:        pd.Name,
			Description: pd.Description,
			Price:       price,
			Category:    Category(pd.Category),
			Image:       pd.Image,
		}
		if err := p.Validate(); err != nil {
			issues = append(issues, RecordIssue{Index: i + 1, ID: pd.ID, Kind: "invalid_record", Err: err})
			continue
		}
		if seen[p.ID] {
			issues = append(issues, RecordIssue{
				Index: i + 1, ID: p.ID, Kind: "duplicate_id",
				Err: fmt.Errorf("duplicate product id %s", p.ID),
			})
			continue
		}
		seen[p.ID] = true
		cf.Products = append(cf.Products, p)
	}
	return cf, issues, nil
}

// EncodeCatalog renders a catalog document.
// Products keep their slice order, which is the display order.
// Multi-line descriptions use block scalar style.
func EncodeCatalog(cf *CatalogFile) ([]byte, error) {
	node, err := buildCatalogNode(cf)
	if err != nil {
		return nil, fmt.Errorf("failed to build YAML: %w", err)
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return data, nil
}

// buildCatalogNode creates a yaml.Node tree for a CatalogFile.
func buildCatalogNode(cf *CatalogFile) (*yaml.Node, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	version := cf.Version
	if version == 0 {
		version = CurrentVersion
	}
	addIntField(doc, "version", version)

	productsNode := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range cf.Products {
		productsNode.Content = append(productsNode.Content, buildProductNode(&cf.Products[i]))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "products"},
		productsNode,
	)

	return doc, nil
}

// buildProductNode creates a yaml.Node for a Product.
func buildProductNode(p *Product) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addStringField(node, "id", p.ID)
	addStringField(node, "name", p.Name)
	addMultilineStringField(node, "description", p.Description)
	addDecimalField(node, "price", p.Price)
	addStringField(node, "category", string(p.Category))
	addStringField(node, "image", p.Image)

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addIntField(node *yaml.Node, key string, value int) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", value), Tag: "!!int"},
	)
}

// addDecimalField writes the exact decimal text; the YAML resolver decides
// between int and float on the way back, and both read as text.
func addDecimalField(node *yaml.Node, key string, value decimal.Decimal) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value.String()},
	)
}

func addMultilineStringField(node *yaml.Node, key, value string) {
	// Use literal block scalar style for multi-line strings
	style := yaml.LiteralStyle
	if !strings.Contains(value, "\n") {
		style = 0
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Style: style, Tag: "!!str"},
	)
}
