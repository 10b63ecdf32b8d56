package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/showroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

var productColumns = []string{"id", "created_at", "updated_at", "sku", "name", "brand", "url_key", "enabled"}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(productColumns).
			AddRow(id, now, now, "ABC-123", "Silla Eames", "Nordika", "silla-eames", true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
		assert.Equal(t, "ABC-123", product.SKU)
		require.NotNil(t, product.Brand)
		assert.Equal(t, "Nordika", *product.Brand)
		assert.Equal(t, "silla-eames", product.URLKeyValue())
		assert.True(t, product.Enabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows(productColumns))

		product, err := repo.FindByID(context.Background(), id)
		assert.Nil(t, product)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("null brand and url key", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(productColumns).
			AddRow(id, now, now, "NOKEY", "Mesa", nil, nil, false)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, product.Brand)
		assert.Nil(t, product.URLKey)
		assert.Empty(t, product.URLKeyValue())
	})
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	t.Run("keeps request order and skips unknown ids", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		first, second, missing := uuid.New(), uuid.New(), uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(productColumns).
			AddRow(second, now, now, "B", "Second", nil, "second", true).
			AddRow(first, now, now, "A", "First", nil, "first", true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2,\$3\)`).
			WithArgs(first, missing, second).
			WillReturnRows(rows)

		products, err := repo.FindByIDs(context.Background(), []uuid.UUID{first, missing, second})
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "A", products[0].SKU)
		assert.Equal(t, "B", products[1].SKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input does not query", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		products, err := repo.FindByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, products)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindBySKU(t *testing.T) {
	t.Run("finds by trimmed sku", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows(productColumns).
			AddRow(id, now, now, "SKU-9", "Lampara", nil, "lampara", true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE sku = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("SKU-9", 1).
			WillReturnRows(rows)

		product, err := repo.FindBySKU(context.Background(), "  SKU-9 ")
		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
	})

	t.Run("rejects empty sku", func(t *testing.T) {
		repo, _, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		_, err := repo.FindBySKU(context.Background(), " ")
		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_SKU", de.Code)
	})
}
