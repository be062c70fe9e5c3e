package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	carts := `
CREATE TABLE IF NOT EXISTS cart_records (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  variant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  size TEXT NOT NULL,
  color TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	for _, stmt := range []string{carts, cartItems} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedCart(t *testing.T, db *gorm.DB, updatedAt time.Time) *models.CartRecord {
	t.Helper()

	record := &models.CartRecord{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func testCartItem(name string, qty int) models.CartItem {
	return models.CartItem{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		VariantID: uuid.New(),
		Name:      name,
		UnitPrice: decimal.NewFromFloat(19.99),
		Size:      "M",
		Color:     "black",
		Quantity:  qty,
	}
}

func TestReplaceItemsSwapsLineSet(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	record := seedCart(t, db, stale)

	old := testCartItem("Relaxed Tee", 1)
	old.CartID = record.ID
	require.NoError(t, db.Create(&old).Error)

	replacement := []models.CartItem{
		testCartItem("Oversized Hoodie", 2),
		testCartItem("Straight Jeans", 1),
	}
	require.NoError(t, repo.ReplaceItems(ctx, record.ID, replacement))

	var items []models.CartItem
	require.NoError(t, db.Where("cart_id = ?", record.ID).Order("name").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, "Oversized Hoodie", items[0].Name)
	assert.Equal(t, "Straight Jeans", items[1].Name)
	for _, item := range items {
		assert.NotEqual(t, old.ID, item.ID)
	}

	var reloaded models.CartRecord
	require.NoError(t, db.First(&reloaded, "id = ?", record.ID).Error)
	assert.True(t, reloaded.UpdatedAt.After(stale), "updated_at not bumped: %s", reloaded.UpdatedAt)
}

func TestReplaceItemsWithEmptySetClearsCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	record := seedCart(t, db, stale)

	item := testCartItem("Relaxed Tee", 3)
	item.CartID = record.ID
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, repo.ReplaceItems(ctx, record.ID, nil))

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", record.ID).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded models.CartRecord
	require.NoError(t, db.First(&reloaded, "id = ?", record.ID).Error)
	assert.True(t, reloaded.UpdatedAt.After(stale))
}

func TestReplaceItemsUnknownCart(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)

	err := repo.ReplaceItems(context.Background(), uuid.New(), []models.CartItem{testCartItem("Relaxed Tee", 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
