package models

import (
	"github.com/showroom/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	SKU     string  `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_products_sku"`
	Name    string  `gorm:"type:varchar(255);not null"`
	Brand   *string `gorm:"type:varchar(255)"`
	URLKey  *string `gorm:"column:url_key;type:varchar(255)"`
	Enabled bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		SKU:        m.SKU,
		Name:       m.Name,
		Brand:      m.Brand,
		URLKey:     m.URLKey,
		Enabled:    m.Enabled,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Brand = p.Brand
	m.URLKey = p.URLKey
	m.Enabled = p.Enabled
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
