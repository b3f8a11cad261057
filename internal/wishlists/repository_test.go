package wishlists

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/pkg/pagination"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&properties.Property{}, &WishlistItem{}))
	return db
}

func TestAddRemoveList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	property := &properties.Property{
		ID: uuid.New(), OwnerID: uuid.New(), Title: "Test flat",
		PropertyType: "APARTMENT", ListingType: properties.ListingRent,
		Price: 10000, City: "Delhi", Status: "ACTIVE",
		VerificationStatus: properties.VerificationNotVerified,
	}
	require.NoError(t, db.Create(property).Error)

	require.NoError(t, repo.Add(ctx, &WishlistItem{ID: uuid.New(), UserID: userID, PropertyID: property.ID}))

	exists, err := repo.Exists(ctx, userID, property.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	items, err := repo.ListByUser(ctx, userID, pagination.Parse("1", "10"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Test flat", items[0].Property.Title)

	removed, err := repo.Remove(ctx, userID, property.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = repo.Remove(ctx, userID, property.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
