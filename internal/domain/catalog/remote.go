package catalog

import (
	"context"

	"github.com/showroom/backend/internal/domain/shared"
)

// RemoteProduct is a product as published on the e-commerce storefront
type RemoteProduct struct {
	SKU     string  `json:"sku"`
	Name    string  `json:"name"`
	Brand   *string `json:"brand"`
	URLKey  *string `json:"url_key"`
	Enabled bool    `json:"enabled"`
}

// RemoteCatalog looks products up on the e-commerce platform.
// FindBySKU returns shared.ErrNotFound when the platform has no such SKU.
type RemoteCatalog interface {
	FindBySKU(ctx context.Context, sku string) (*RemoteProduct, error)
}

// Remote catalog errors
var (
	ErrRemoteCatalogDisabled    = shared.NewDomainError("REMOTE_CATALOG_DISABLED", "E-commerce integration is not enabled")
	ErrRemoteCatalogUnavailable = shared.NewDomainError("REMOTE_CATALOG_UNAVAILABLE", "E-commerce platform unavailable")
	ErrRemoteCatalogAuthFailed  = shared.NewDomainError("REMOTE_CATALOG_AUTH_FAILED", "E-commerce platform rejected the credentials")
)
