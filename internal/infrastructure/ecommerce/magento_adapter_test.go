package ecommerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/showroom/backend/internal/domain/catalog"
	"github.com/showroom/backend/internal/domain/shared"
	"github.com/showroom/backend/internal/infrastructure/cache"
	"github.com/showroom/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// ---------------------------------------------------------------------------
// Config Tests
// ---------------------------------------------------------------------------

func TestMagentoConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *MagentoConfig
		wantErr error
	}{
		{
			name:   "valid config",
			config: &MagentoConfig{BaseURL: "https://shop.example.com/rest/V1/", Username: "admin", Password: "secret"},
		},
		{
			name:    "missing base url",
			config:  &MagentoConfig{Username: "admin", Password: "secret"},
			wantErr: ErrMagentoConfigMissingBaseURL,
		},
		{
			name:    "relative base url",
			config:  &MagentoConfig{BaseURL: "rest/V1", Username: "admin", Password: "secret"},
			wantErr: ErrMagentoConfigInvalidBaseURL,
		},
		{
			name:    "missing username",
			config:  &MagentoConfig{BaseURL: "https://shop.example.com/rest/V1", Password: "secret"},
			wantErr: ErrMagentoConfigMissingUsername,
		},
		{
			name:    "missing password",
			config:  &MagentoConfig{BaseURL: "https://shop.example.com/rest/V1", Username: "admin"},
			wantErr: ErrMagentoConfigMissingPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://shop.example.com/rest/V1", tt.config.BaseURL)
			assert.Equal(t, 15*time.Second, tt.config.Timeout)
			assert.Equal(t, time.Hour, tt.config.BrandCacheTTL)
			assert.NotEmpty(t, tt.config.UserAgent)
		})
	}
}

func TestNewMagentoConfig(t *testing.T) {
	cfg := NewMagentoConfig(config.MagentoConfig{
		BaseURL:       "https://shop/rest/V1",
		Username:      "u",
		Password:      "p",
		Timeout:       3 * time.Second,
		BrandCacheTTL: time.Minute,
	})
	assert.Equal(t, "https://shop/rest/V1", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.BrandCacheTTL)
}

// ---------------------------------------------------------------------------
// Attribute parsing
// ---------------------------------------------------------------------------

func TestAttributeString(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{`"silla-eames"`, "silla-eames", true},
		{`42`, "42", true},
		{`4.5`, "4.5", true},
		{`null`, "", false},
		{`[]`, "", false},
		{`["17", "18"]`, "17", true},
		{`[17]`, "17", true},
		{`[null]`, "", false},
		{`true`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := attributeString(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ---------------------------------------------------------------------------
// Adapter Tests
// ---------------------------------------------------------------------------

type fakeMagento struct {
	server        *httptest.Server
	tokenCalls    atomic.Int32
	brandCalls    atomic.Int32
	expireOnce    atomic.Bool
	rejectLogin   bool
	failBrands    bool
	products      map[string]string // sku -> JSON product
	lastUserAgent atomic.Value
}

func newFakeMagento(t *testing.T) *fakeMagento {
	f := &fakeMagento{products: map[string]string{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /rest/V1/integration/admin/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if f.rejectLogin || creds["username"] != "admin" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"The account sign-in was incorrect"}`))
			return
		}
		_, _ = w.Write([]byte(`"tok-` + string(rune('0'+f.tokenCalls.Load())) + `"`))
	})

	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		f.lastUserAgent.Store(r.Header.Get("User-Agent"))
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		if f.expireOnce.CompareAndSwap(true, false) {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("GET /rest/V1/products", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		sku := r.URL.Query().Get("searchCriteria[filter_groups][0][filters][0][value]")
		if r.URL.Query().Get("searchCriteria[filter_groups][0][filters][0][condition_type]") != "eq" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if p, ok := f.products[sku]; ok {
			_, _ = w.Write([]byte(`{"items":[` + p + `],"total_count":1}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[],"total_count":0}`))
	})

	mux.HandleFunc("GET /rest/V1/products/attributes/brand/options", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		f.brandCalls.Add(1)
		if f.failBrands {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"label":" ","value":""},{"label":"Nordika","value":"12"},{"label":"Kartell","value":"13"}]`))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeMagento) adapter(t *testing.T, brands cache.BrandCache, logger *zap.Logger) *MagentoAdapter {
	a, err := NewMagentoAdapter(&MagentoConfig{
		BaseURL:  f.server.URL + "/rest/V1",
		Username: "admin",
		Password: "secret",
	}, brands, logger)
	require.NoError(t, err)
	return a
}

const chairJSON = `{"sku":"SIL-01","name":"Silla Eames","status":1,"custom_attributes":[
	{"attribute_code":"url_key","value":"silla-eames"},
	{"attribute_code":"brand","value":"12"}]}`

func TestMagentoAdapter_FindBySKU(t *testing.T) {
	t.Run("maps product with brand label", func(t *testing.T) {
		f := newFakeMagento(t)
		f.products["SIL-01"] = chairJSON
		a := f.adapter(t, nil, nil)

		p, err := a.FindBySKU(context.Background(), " SIL-01 ")
		require.NoError(t, err)
		assert.Equal(t, "SIL-01", p.SKU)
		assert.Equal(t, "Silla Eames", p.Name)
		assert.True(t, p.Enabled)
		require.NotNil(t, p.URLKey)
		assert.Equal(t, "silla-eames", *p.URLKey)
		require.NotNil(t, p.Brand)
		assert.Equal(t, "Nordika", *p.Brand)
		assert.Equal(t, defaultMagentoUserAgent, f.lastUserAgent.Load())
	})

	t.Run("disabled product without attributes", func(t *testing.T) {
		f := newFakeMagento(t)
		f.products["OFF"] = `{"sku":"OFF","name":"Mesa","status":2,"custom_attributes":[{"attribute_code":"brand","value":null}]}`
		a := f.adapter(t, nil, nil)

		p, err := a.FindBySKU(context.Background(), "OFF")
		require.NoError(t, err)
		assert.False(t, p.Enabled)
		assert.Nil(t, p.Brand)
		assert.Nil(t, p.URLKey)
	})

	t.Run("unknown brand id leaves brand empty", func(t *testing.T) {
		f := newFakeMagento(t)
		f.products["X"] = `{"sku":"X","name":"X","status":1,"custom_attributes":[{"attribute_code":"brand","value":"999"}]}`
		a := f.adapter(t, nil, nil)

		p, err := a.FindBySKU(context.Background(), "X")
		require.NoError(t, err)
		assert.Nil(t, p.Brand)
	})

	t.Run("missing product is not found", func(t *testing.T) {
		f := newFakeMagento(t)
		a := f.adapter(t, nil, nil)

		_, err := a.FindBySKU(context.Background(), "NOPE")
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Contains(t, err.Error(), "NOPE")
	})

	t.Run("empty sku", func(t *testing.T) {
		f := newFakeMagento(t)
		a := f.adapter(t, nil, nil)

		_, err := a.FindBySKU(context.Background(), "  ")
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_SKU", de.Code)
		assert.Zero(t, f.tokenCalls.Load())
	})

	t.Run("rejected credentials", func(t *testing.T) {
		f := newFakeMagento(t)
		f.rejectLogin = true
		a := f.adapter(t, nil, nil)

		_, err := a.FindBySKU(context.Background(), "SIL-01")
		assert.ErrorIs(t, err, catalog.ErrRemoteCatalogAuthFailed)
	})

	t.Run("platform down", func(t *testing.T) {
		f := newFakeMagento(t)
		a := f.adapter(t, nil, nil)
		f.server.Close()

		_, err := a.FindBySKU(context.Background(), "SIL-01")
		assert.ErrorIs(t, err, catalog.ErrRemoteCatalogUnavailable)
	})
}

func TestMagentoAdapter_TokenReuseAndRefresh(t *testing.T) {
	f := newFakeMagento(t)
	f.products["SIL-01"] = chairJSON
	a := f.adapter(t, cache.NewInMemoryBrandCache(), nil)
	ctx := context.Background()

	_, err := a.FindBySKU(ctx, "SIL-01")
	require.NoError(t, err)
	_, err = a.FindBySKU(ctx, "SIL-01")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.tokenCalls.Load(), "token is reused across lookups")

	f.expireOnce.Store(true)
	_, err = a.FindBySKU(ctx, "SIL-01")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.tokenCalls.Load(), "expired token is refreshed once")
}

func TestMagentoAdapter_BrandCache(t *testing.T) {
	t.Run("brand options fetched once while cached", func(t *testing.T) {
		f := newFakeMagento(t)
		f.products["SIL-01"] = chairJSON
		brands := cache.NewInMemoryBrandCache()
		defer brands.Close()
		a := f.adapter(t, brands, nil)

		for range 3 {
			p, err := a.FindBySKU(context.Background(), "SIL-01")
			require.NoError(t, err)
			assert.Equal(t, "Nordika", *p.Brand)
		}
		assert.Equal(t, int32(1), f.brandCalls.Load())

		cached, ok, err := brands.Get(context.Background(), brandCacheKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[string]string{"12": "Nordika", "13": "Kartell"}, cached)
	})

	t.Run("brand fetch failure degrades with a warning", func(t *testing.T) {
		f := newFakeMagento(t)
		f.products["SIL-01"] = chairJSON
		f.failBrands = true
		core, logs := observer.New(zap.WarnLevel)
		a := f.adapter(t, nil, zap.New(core))

		p, err := a.FindBySKU(context.Background(), "SIL-01")
		require.NoError(t, err)
		assert.Nil(t, p.Brand)
		assert.Equal(t, "SIL-01", p.SKU)
		assert.NotZero(t, logs.FilterMessage("Failed to fetch Magento brand options").Len())
	})
}
