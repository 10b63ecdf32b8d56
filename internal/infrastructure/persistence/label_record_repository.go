package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/showroom/backend/internal/domain/labeling"
	"github.com/showroom/backend/internal/domain/shared"
	"github.com/showroom/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLabelRecordRepository implements labeling.LabelRecordRepository using GORM
type GormLabelRecordRepository struct {
	db *gorm.DB
}

// NewGormLabelRecordRepository creates a new GormLabelRecordRepository
func NewGormLabelRecordRepository(db *gorm.DB) *GormLabelRecordRepository {
	return &GormLabelRecordRepository{db: db}
}

// Create stores a new history entry
func (r *GormLabelRecordRepository) Create(ctx context.Context, record *labeling.LabelRecord) error {
	return r.db.WithContext(ctx).Create(models.LabelRecordModelFromDomain(record)).Error
}

// FindByID finds a history entry with its product summary
func (r *GormLabelRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*labeling.LabelRecord, error) {
	var model models.LabelRecordModel
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns one page of history, newest first, and the total number of
// matching entries. Search matches the product SKU case-insensitively.
func (r *GormLabelRecordRepository) List(ctx context.Context, filter labeling.HistoryFilter) ([]labeling.LabelRecord, int64, error) {
	filter = filter.Normalize()

	query := r.db.WithContext(ctx).Model(&models.LabelRecordModel{})
	if filter.Search != "" {
		// LOWER/LIKE instead of ILIKE so the query also runs on SQLite
		query = query.
			Joins("JOIN products ON products.id = label_history.product_id").
			Where(`LOWER(products.sku) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Search))+"%")
	}
	if filter.ProductID != nil {
		query = query.Where("label_history.product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.LabelRecordModel
	if err := query.
		Preload("Product").
		Order("label_history.created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toLabelRecords(rows), total, nil
}

// FindByProductIDs returns every history entry for the given products
func (r *GormLabelRecordRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]labeling.LabelRecord, error) {
	if len(productIDs) == 0 {
		return []labeling.LabelRecord{}, nil
	}
	var rows []models.LabelRecordModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toLabelRecords(rows), nil
}

// DeleteByProductIDs removes every history entry for the given products
func (r *GormLabelRecordRepository) DeleteByProductIDs(ctx context.Context, productIDs []uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Delete(&models.LabelRecordModel{})
	return result.RowsAffected, result.Error
}

func toLabelRecords(rows []models.LabelRecordModel) []labeling.LabelRecord {
	records := make([]labeling.LabelRecord, len(rows))
	for i := range rows {
		records[i] = *rows[i].ToDomain()
	}
	return records
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Ensure GormLabelRecordRepository implements the interface
var _ labeling.LabelRecordRepository = (*GormLabelRecordRepository)(nil)
