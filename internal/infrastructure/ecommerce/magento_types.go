package ecommerce

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// magentoProduct is the subset of the catalog product payload we read
type magentoProduct struct {
	SKU              string                   `json:"sku"`
	Name             string                   `json:"name"`
	Status           int                      `json:"status"`
	CustomAttributes []magentoCustomAttribute `json:"custom_attributes"`
}

// magentoCustomAttribute values can be a string, a number, null or an array
type magentoCustomAttribute struct {
	AttributeCode string          `json:"attribute_code"`
	Value         json.RawMessage `json:"value"`
}

type magentoSearchResponse struct {
	Items      []magentoProduct `json:"items"`
	TotalCount int              `json:"total_count"`
}

type magentoAttributeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// customAttribute returns the attribute as a string. Arrays yield their first
// element; null, empty arrays and missing attributes yield ok=false.
func (p *magentoProduct) customAttribute(code string) (string, bool) {
	for _, attr := range p.CustomAttributes {
		if attr.AttributeCode == code {
			return attributeString(attr.Value)
		}
	}
	return "", false
}

func attributeString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return "", false
		}
		return attributeString(items[0])
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", false
		}
		if i, err := n.Int64(); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		return n.String(), true
	}
}
