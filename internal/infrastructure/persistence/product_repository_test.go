package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM DB backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
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

	return gormDB, mock, mockDB
}

func TestGormProductRepository_FindByBarcode(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		productID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "code", "name", "barcode", "selling_price", "image_ref", "stock", "status"}).
			AddRow(productID, "SKU-1", "Coffee", "654321", "4.50", "", 10, "active")

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE barcode = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("654321", 1).
			WillReturnRows(rows)

		product, err := repo.FindByBarcode(context.Background(), "654321")

		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, productID, product.ID)
		assert.Equal(t, "654321", product.Barcode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil for unknown barcode", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE barcode = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("999", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByBarcode(context.Background(), "999")

		assert.NoError(t, err)
		assert.Nil(t, product)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty barcode", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)

		_, err := repo.FindByBarcode(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestGormProductRepository_ExistsByBarcode(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "products" WHERE barcode = \$1`).
		WithArgs("654321").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByBarcode(context.Background(), "654321")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateSortField(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, "name", ValidateSortField("name", allowed, "created_at"))
	assert.Equal(t, "name", ValidateSortField("  NAME ", allowed, "created_at"))
	// injection attempts fall back to the default
	assert.Equal(t, "created_at", ValidateSortField("name; DROP TABLE products", allowed, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", allowed, "created_at"))
}
