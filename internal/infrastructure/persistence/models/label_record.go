package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/showroom/backend/internal/domain/labeling"
)

// LabelRecordModel is one row of label history
type LabelRecordModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID     `gorm:"type:uuid;not null;index:idx_label_history_product_id"`
	URL       string        `gorm:"column:url;type:text;not null"`
	LabelURL  string        `gorm:"column:label_url;type:text;not null"`
	CreatedAt time.Time     `gorm:"not null;index:idx_label_history_created_at"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (LabelRecordModel) TableName() string {
	return "label_history"
}

// ToDomain converts the model, including the product summary when it was preloaded
func (m *LabelRecordModel) ToDomain() *labeling.LabelRecord {
	r := &labeling.LabelRecord{
		ID:        m.ID,
		ProductID: m.ProductID,
		URL:       m.URL,
		LabelURL:  m.LabelURL,
		CreatedAt: m.CreatedAt,
	}
	if m.Product != nil {
		r.ProductSKU = m.Product.SKU
		r.ProductName = m.Product.Name
		r.ProductBrand = m.Product.Brand
	}
	return r
}

// LabelRecordModelFromDomain creates a persistence model from a domain record
func LabelRecordModelFromDomain(r *labeling.LabelRecord) *LabelRecordModel {
	return &LabelRecordModel{
		ID:        r.ID,
		ProductID: r.ProductID,
		URL:       r.URL,
		LabelURL:  r.LabelURL,
		CreatedAt: r.CreatedAt,
	}
}
