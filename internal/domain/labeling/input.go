package labeling

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/showroom/backend/internal/domain/shared"
)

// ProductLabelInput is everything a label is rendered from
type ProductLabelInput struct {
	SKU            string  `json:"sku"`
	Name           string  `json:"name"`
	Brand          *string `json:"brand,omitempty"`
	DestinationURL string  `json:"destination_url"`
}

// Validate checks the caller contract: SKU and name must be present
func (in ProductLabelInput) Validate() error {
	if strings.TrimSpace(in.SKU) == "" || strings.TrimSpace(in.Name) == "" {
		return ErrInvalidLabelInput
	}
	return nil
}

// ValidateDestination checks that the destination URL is an absolute http(s) URL
func (in ProductLabelInput) ValidateDestination() error {
	return ValidateDestinationURL(in.DestinationURL)
}

// BrandName returns the brand or an empty string
func (in ProductLabelInput) BrandName() string {
	if in.Brand == nil {
		return ""
	}
	return *in.Brand
}

// ValidateDestinationURL checks that raw is an absolute http(s) URL with a host
func ValidateDestinationURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrInvalidDestinationURL
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return shared.NewDomainError(CodeInvalidDestinationURL, fmt.Sprintf("invalid destination URL %q: %v", raw, err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError(CodeInvalidDestinationURL, fmt.Sprintf("invalid destination URL %q: must be an absolute http(s) URL", raw))
	}
	return nil
}

// DestinationURL builds the storefront page URL for a product: {base}/{urlKey}.html
func DestinationURL(baseURL, urlKey string) (string, error) {
	key := strings.TrimSpace(urlKey)
	if key == "" {
		return "", ErrMissingURLKey
	}
	return strings.TrimRight(baseURL, "/") + "/" + key + ".html", nil
}
