package ecommerce

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/showroom/backend/internal/infrastructure/config"
)

// MagentoConfig holds the Magento REST API settings
type MagentoConfig struct {
	// BaseURL is the REST root, e.g. https://shop.example.com/rest/V1
	BaseURL  string
	Username string
	Password string
	// Timeout bounds every HTTP request
	Timeout time.Duration
	// BrandCacheTTL is how long the brand option map is cached
	BrandCacheTTL time.Duration
	// UserAgent is sent with every request; some storefront CDNs block the Go default
	UserAgent string
}

const defaultMagentoUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Errors for Magento configuration
var (
	ErrMagentoConfigMissingBaseURL  = errors.New("magento: base URL is required")
	ErrMagentoConfigInvalidBaseURL  = errors.New("magento: base URL must be absolute")
	ErrMagentoConfigMissingUsername = errors.New("magento: username is required")
	ErrMagentoConfigMissingPassword = errors.New("magento: password is required")
)

// NewMagentoConfig maps the application configuration
func NewMagentoConfig(cfg config.MagentoConfig) *MagentoConfig {
	return &MagentoConfig{
		BaseURL:       cfg.BaseURL,
		Username:      cfg.Username,
		Password:      cfg.Password,
		Timeout:       cfg.Timeout,
		BrandCacheTTL: cfg.BrandCacheTTL,
	}
}

// Validate checks required fields and fills defaults
func (c *MagentoConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrMagentoConfigMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrMagentoConfigInvalidBaseURL
	}
	if c.Username == "" {
		return ErrMagentoConfigMissingUsername
	}
	if c.Password == "" {
		return ErrMagentoConfigMissingPassword
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.BrandCacheTTL <= 0 {
		c.BrandCacheTTL = time.Hour
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultMagentoUserAgent
	}
	return nil
}
