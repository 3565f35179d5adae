// internal/domain/catalog/catalog.go
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog holds the static product list, validated at load time and
// immutable afterwards. Products are addressed by a stable ID rather
// than by display name.
type Catalog struct {
	products []Product
	byID     map[string]*Product
}

// Load builds the catalog from the built-in product set
func Load() (*Catalog, error) {
	return New(defaultProducts())
}

// New builds a catalog from the given product set, failing fast on
// duplicate IDs, empty option sets or negative prices
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: products,
		byID:     make(map[string]*Product, len(products)),
	}

	for i := range products {
		p := &products[i]

		if p.ID == "" {
			return nil, fmt.Errorf("product %q has no ID", p.Name)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product ID %q", p.ID)
		}
		if len(p.Options) == 0 {
			return nil, fmt.Errorf("product %q has no options", p.ID)
		}

		seen := make(map[string]bool, len(p.Options))
		for _, opt := range p.Options {
			if opt.Name == "" {
				return nil, fmt.Errorf("product %q has an unnamed option", p.ID)
			}
			if seen[opt.Name] {
				return nil, fmt.Errorf("product %q has duplicate option %q", p.ID, opt.Name)
			}
			if opt.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("product %q option %q has negative price", p.ID, opt.Name)
			}
			seen[opt.Name] = true
		}

		c.byID[p.ID] = p
	}

	return c, nil
}

// All returns every product in catalog order
func (c *Catalog) All() []Product {
	return c.products
}

// ByID returns the product with the given ID
func (c *Catalog) ByID(id string) (*Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("product %q not found", id)
	}
	return p, nil
}

// FindOption resolves a product option, failing on unknown products
// instead of silently returning an empty option set
func (c *Catalog) FindOption(productID, optionName string) (*Product, *Option, error) {
	p, err := c.ByID(productID)
	if err != nil {
		return nil, nil, err
	}

	opt, ok := p.FindOption(optionName)
	if !ok {
		return nil, nil, fmt.Errorf("product %q has no option %q", productID, optionName)
	}

	return p, opt, nil
}

// price is a shorthand for building decimal prices in the static table
func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func flavorOptions(unit string) []Option {
	flavors := []string{"Limão", "Morango", "Brigadeiro", "Maracujá", "Beijinho"}
	options := make([]Option, 0, len(flavors))
	for _, flavor := range flavors {
		options = append(options, Option{Name: flavor, UnitPrice: price(unit)})
	}
	return options
}

// defaultProducts returns the shop's static product table
func defaultProducts() []Product {
	trufas := flavorOptions("4.50")
	// Lemon truffles are on permanent promo
	trufas[0].UnitPrice = price("1.00")

	return []Product{
		{
			ID:       "trufas",
			Name:     "Trufas",
			ImageRef: "/img/Trufas.jpg",
			Options:  trufas,
		},
		{
			ID:       "barras",
			Name:     "Barras",
			ImageRef: "/img/Barras.webp",
			Options:  flavorOptions("18.00"),
		},
		{
			ID:       "coracao",
			Name:     "Coração",
			ImageRef: "/img/coraçao_de_chocolate.jpg",
			Options:  flavorOptions("6.50"),
		},
		{
			ID:       "cones",
			Name:     "Cones Recheado",
			ImageRef: "/img/cone.jpg",
			Options:  flavorOptions("12.00"),
		},
	}
}
