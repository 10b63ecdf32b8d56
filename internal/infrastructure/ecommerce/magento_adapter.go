// Package ecommerce contains adapters for the storefront platforms products
// are published on.
package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/showroom/backend/internal/domain/catalog"
	"github.com/showroom/backend/internal/domain/shared"
	"github.com/showroom/backend/internal/infrastructure/cache"
	"go.uber.org/zap"
)

// maxResponseSize is the maximum allowed response size from Magento (10MB)
const maxResponseSize = 10 * 1024 * 1024

const brandCacheKey = "magento:brand"

// errUnauthorized marks a 401 so the caller can refresh the token once
var errUnauthorized = errors.New("magento: unauthorized")

// MagentoAdapter implements catalog.RemoteCatalog against the Magento 2 REST API
type MagentoAdapter struct {
	config     *MagentoConfig
	httpClient *http.Client
	brands     cache.BrandCache
	logger     *zap.Logger

	mu    sync.Mutex // protects token
	token string
}

// NewMagentoAdapter creates an adapter. brands may be nil to disable caching.
func NewMagentoAdapter(cfg *MagentoConfig, brands cache.BrandCache, logger *zap.Logger) (*MagentoAdapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MagentoAdapter{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		brands:     brands,
		logger:     logger,
	}, nil
}

// FindBySKU looks a product up by exact SKU. The brand attribute is resolved
// to its label through the brand option map.
func (a *MagentoAdapter) FindBySKU(ctx context.Context, sku string) (*catalog.RemoteProduct, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU is required")
	}

	product, err := a.searchBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	remote := &catalog.RemoteProduct{
		SKU:     product.SKU,
		Name:    product.Name,
		Enabled: product.Status == 1,
	}
	if key, ok := product.customAttribute("url_key"); ok {
		remote.URLKey = &key
	}
	if brandID, ok := product.customAttribute("brand"); ok {
		if label, found := a.brandOptions(ctx)[brandID]; found {
			remote.Brand = &label
		}
	}
	return remote, nil
}

func (a *MagentoAdapter) searchBySKU(ctx context.Context, sku string) (*magentoProduct, error) {
	q := url.Values{}
	q.Set("searchCriteria[filter_groups][0][filters][0][field]", "sku")
	q.Set("searchCriteria[filter_groups][0][filters][0][value]", sku)
	q.Set("searchCriteria[filter_groups][0][filters][0][condition_type]", "eq")
	q.Set("searchCriteria[pageSize]", "1")

	var resp magentoSearchResponse
	if err := a.getJSON(ctx, "/products?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.TotalCount == 0 || len(resp.Items) == 0 {
		return nil, shared.NewDomainError(shared.ErrNotFound.Code,
			fmt.Sprintf("Product with SKU %q not found in Magento", sku))
	}
	return &resp.Items[0], nil
}

// brandOptions returns the brand option map. Failures degrade to an empty map
// so a lookup still succeeds without the brand.
func (a *MagentoAdapter) brandOptions(ctx context.Context) map[string]string {
	if a.brands != nil {
		cached, ok, err := a.brands.Get(ctx, brandCacheKey)
		if err != nil {
			a.logger.Warn("Brand cache read failed", zap.Error(err))
		} else if ok {
			return cached
		}
	}

	var options []magentoAttributeOption
	if err := a.getJSON(ctx, "/products/attributes/brand/options", &options); err != nil {
		a.logger.Warn("Failed to fetch Magento brand options", zap.Error(err))
		return map[string]string{}
	}

	brands := make(map[string]string, len(options))
	for _, o := range options {
		if o.Value != "" && o.Label != "" {
			brands[o.Value] = o.Label
		}
	}

	if a.brands != nil {
		if err := a.brands.Set(ctx, brandCacheKey, brands, a.config.BrandCacheTTL); err != nil {
			a.logger.Warn("Brand cache write failed", zap.Error(err))
		}
	}
	return brands
}

// getJSON performs an authenticated GET, refreshing the token once on 401
func (a *MagentoAdapter) getJSON(ctx context.Context, path string, dest any) error {
	token, err := a.authToken(ctx, false)
	if err != nil {
		return err
	}

	body, err := a.doRequest(ctx, http.MethodGet, path, token, nil)
	if errors.Is(err, errUnauthorized) {
		if token, err = a.authToken(ctx, true); err != nil {
			return err
		}
		body, err = a.doRequest(ctx, http.MethodGet, path, token, nil)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", catalog.ErrRemoteCatalogUnavailable, err)
	}
	return nil
}

// authToken returns the admin token, requesting a new one when none is held or refresh is set
func (a *MagentoAdapter) authToken(ctx context.Context, refresh bool) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" && !refresh {
		return a.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"username": a.config.Username,
		"password": a.config.Password,
	})
	if err != nil {
		return "", fmt.Errorf("magento: failed to encode credentials: %w", err)
	}

	body, err := a.doRequest(ctx, http.MethodPost, "/integration/admin/token", "", payload)
	if err != nil {
		if errors.Is(err, errUnauthorized) {
			return "", catalog.ErrRemoteCatalogAuthFailed
		}
		return "", err
	}

	// the token is returned as a JSON string
	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return "", fmt.Errorf("%w: empty token", catalog.ErrRemoteCatalogAuthFailed)
	}
	a.token = token
	return token, nil
}

func (a *MagentoAdapter) doRequest(ctx context.Context, method, path, token string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("magento: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", a.config.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", catalog.ErrRemoteCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("magento: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errUnauthorized
	case resp.StatusCode >= 400:
		a.logger.Warn("Magento request failed",
			zap.String("method", method),
			zap.String("path", strings.SplitN(path, "?", 2)[0]),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: HTTP %d", catalog.ErrRemoteCatalogUnavailable, resp.StatusCode)
	}
	return body, nil
}

var _ catalog.RemoteCatalog = (*MagentoAdapter)(nil)
