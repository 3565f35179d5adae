// internal/domain/catalog/entity.go
package catalog

import (
	"github.com/shopspring/decimal"
)

// Product represents a sellable product with its purchasable options
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageRef string   `json:"image_ref"`
	Options  []Option `json:"options"`
}

// Option represents a purchasable variant of a product (flavor/size)
type Option struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// FindOption returns the option with the given name, if present
func (p *Product) FindOption(name string) (*Option, bool) {
	for i := range p.Options {
		if p.Options[i].Name == name {
			return &p.Options[i], true
		}
	}
	return nil, false
}
