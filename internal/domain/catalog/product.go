// Package catalog holds the showroom products labels are printed for.
package catalog

import (
	"strings"

	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/shared"
)

// Product is a showroom product. Only the fields labels are rendered from are modelled.
type Product struct {
	shared.BaseEntity
	SKU     string
	Name    string
	Brand   *string
	URLKey  *string
	Enabled bool
}

// NewProduct creates a new enabled product
func NewProduct(sku, name string) (*Product, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		SKU:        strings.TrimSpace(sku),
		Name:       strings.TrimSpace(name),
		Enabled:    true,
	}, nil
}

// URLKeyValue returns the storefront URL key or an empty string
func (p *Product) URLKeyValue() string {
	if p.URLKey == nil {
		return ""
	}
	return *p.URLKey
}

// LabelInput maps the product to a label input whose QR points at the
// storefront page under baseURL. A product without URL key cannot be labelled.
func (p *Product) LabelInput(baseURL string) (labeling.ProductLabelInput, error) {
	dest, err := labeling.DestinationURL(baseURL, p.URLKeyValue())
	if err != nil {
		return labeling.ProductLabelInput{}, err
	}
	return labeling.ProductLabelInput{
		SKU:            p.SKU,
		Name:           p.Name,
		Brand:          p.Brand,
		DestinationURL: dest,
	}, nil
}
