package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showroom/backend/internal/domain/labeling"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(" abc-1 ", "Silla de oficina")
	require.NoError(t, err)
	assert.Equal(t, "abc-1", p.SKU)
	assert.True(t, p.Enabled)

	_, err = NewProduct("", "x")
	assert.Error(t, err)
	_, err = NewProduct("x", " ")
	assert.Error(t, err)
}

func TestProduct_LabelInput(t *testing.T) {
	brand := "Gili"
	key := "silla-de-oficina"
	p, err := NewProduct("abc-1", "silla de oficina")
	require.NoError(t, err)
	p.Brand = &brand
	p.URLKey = &key

	in, err := p.LabelInput("https://giliycia.com.ar")
	require.NoError(t, err)
	assert.Equal(t, "https://giliycia.com.ar/silla-de-oficina.html", in.DestinationURL)
	assert.Equal(t, "abc-1", in.SKU)
	assert.Equal(t, "Gili", in.BrandName())

	p.URLKey = nil
	_, err = p.LabelInput("https://giliycia.com.ar")
	assert.ErrorIs(t, err, labeling.ErrMissingURLKey)
}
